// File: facade/workload.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"errors"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/autobuf"
	"github.com/momentics/bytebuf/control"
)

// WorkloadReport summarizes a RunWorkload call.
type WorkloadReport struct {
	Iterations    int
	BytesWritten  int64
	Grows         int
	FinalCapacity int
}

// RunWorkload repeatedly fills a fresh auto buffer with writeBytes bytes,
// reads them back and closes it, on the configured allocator kind. It then
// publishes stats. Zero arguments fall back to the configured workload.
func (r *Runtime) RunWorkload(iterations, writeBytes int) (WorkloadReport, error) {
	if iterations <= 0 {
		iterations = r.config.Workload.Iterations
	}
	if writeBytes <= 0 {
		writeBytes = r.config.Workload.WriteBytes
	}
	if err := r.live(); err != nil {
		return WorkloadReport{}, err
	}

	var (
		rep WorkloadReport
		err error
	)
	if r.config.Allocator == control.AllocatorDirect {
		rep, err = runWorkload(r.direct, r.config.Growth.InitCapacity, r.policy, iterations, writeBytes)
	} else {
		rep, err = runWorkload(r.heap, r.config.Growth.InitCapacity, r.policy, iterations, writeBytes)
	}
	r.PublishStats()
	r.metrics.SetAll(map[string]any{
		"workload.iterations":    rep.Iterations,
		"workload.bytes_written": rep.BytesWritten,
		"workload.grows":         rep.Grows,
	})
	if err != nil {
		return rep, err
	}
	log.Info().
		Int("iterations", rep.Iterations).
		Int64("bytes", rep.BytesWritten).
		Int("grows", rep.Grows).
		Msg("[Runtime] workload complete")
	return rep, nil
}

func runWorkload[B api.Poolable](a api.Allocator[B], initCapacity int, policy autobuf.Policy, iterations, writeBytes int) (WorkloadReport, error) {
	var rep WorkloadReport
	for i := 0; i < iterations; i++ {
		buf, err := autobuf.New(a, initCapacity, policy)
		if err != nil {
			return rep, err
		}
		if err := fillAndVerify(buf, i, writeBytes); err != nil {
			return rep, errors.Join(err, buf.Close())
		}
		rep.Iterations++
		rep.BytesWritten += int64(writeBytes)
		rep.Grows += buf.Grows()
		rep.FinalCapacity = buf.Capacity()
		if err := buf.Close(); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

func fillAndVerify[B api.Poolable](buf *autobuf.Buffer[B], seed, n int) error {
	for j := 0; j < n; j++ {
		if err := buf.PutByte(byte(seed + j)); err != nil {
			return err
		}
	}
	buf.Flip()
	for j := 0; j < n; j++ {
		v, err := buf.GetByte()
		if err != nil {
			return err
		}
		if v != byte(seed+j) {
			return api.InvalidState("workload readback mismatch").
				WithContext("iteration", seed).
				WithContext("offset", j)
		}
	}
	return nil
}

func sortedKeys(m map[int]int) []int {
	return slices.Sorted(maps.Keys(m))
}
