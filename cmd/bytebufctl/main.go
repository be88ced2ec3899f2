// File: cmd/bytebufctl/main.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// bytebufctl runs a buffer workload from a YAML profile and prints the
// resulting allocator and pool metrics.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/momentics/bytebuf/control"
	"github.com/momentics/bytebuf/facade"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute root command")
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "bytebufctl",
		Short:         "Inspect growth policies and exercise buffer allocators",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd.ErrOrStderr(), logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "zerolog level (trace, debug, info, warn, error)")
	root.AddCommand(newPolicyCmd(), newRunCmd())
	return root
}

func setupLogging(w io.Writer, level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	return nil
}

func newPolicyCmd() *cobra.Command {
	var (
		kind    string
		initCap int
		diff    int
		ratio   float64
		target  int
	)
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Print the capacities a growth policy visits up to a target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := control.GrowthConfig{
				Kind:         kind,
				InitCapacity: initCap,
				Difference:   diff,
				Ratio:        ratio,
			}.Policy()
			if err != nil {
				return err
			}
			seq, err := p.Sequence(initCap, target)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), joinInts(seq))
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&kind, "kind", "pow2", "policy kind: pow2, ap (arithmetic) or gp (geometric)")
	flags.IntVar(&initCap, "init", 16, "initial capacity")
	flags.IntVar(&diff, "diff", 16, "arithmetic difference")
	flags.Float64Var(&ratio, "ratio", 2, "geometric ratio")
	flags.IntVar(&target, "target", 1024, "capacity to reach")
	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		iterations int
		writeBytes int
		debug      bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a write/grow/read workload from a YAML profile and print metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := control.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = control.LoadConfig(configPath); err != nil {
					return err
				}
				if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
					if err := setupLogging(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
						return err
					}
				}
			}
			rt, err := facade.New(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := rt.Close(); cerr != nil {
					log.Error().Err(cerr).Msg("[bytebufctl] runtime close")
				}
			}()

			rep, err := rt.RunWorkload(iterations, writeBytes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "iterations=%d bytes=%d grows=%d capacity=%d policy=%s\n",
				rep.Iterations, rep.BytesWritten, rep.Grows, rep.FinalCapacity, rt.Policy())
			snap := rt.Metrics().GetSnapshot()
			for _, k := range rt.Metrics().Keys() {
				fmt.Fprintf(out, "%s %v\n", k, snap[k])
			}
			if debug {
				state := rt.Inspector().Snapshot()
				for _, name := range rt.Inspector().Names() {
					log.Debug().Interface("value", state[name]).Msgf("[bytebufctl] state %s", name)
				}
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML profile (defaults when empty)")
	flags.IntVar(&iterations, "iterations", 0, "override workload iterations")
	flags.IntVar(&writeBytes, "bytes", 0, "override bytes written per iteration")
	flags.BoolVar(&debug, "debug", false, "log allocator and pool state at debug level")
	return cmd
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
