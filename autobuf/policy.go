// File: autobuf/policy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package autobuf

import (
	"fmt"
	"math"

	"github.com/momentics/bytebuf/api"
	"github.com/momentics/bytebuf/internal/bounds"
)

// Kind names a growth policy preset.
type Kind int

const (
	KindPow2 Kind = iota + 1
	KindArithmetic
	KindGeometric
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPow2:
		return "pow2"
	case KindArithmetic:
		return "arithmetic"
	case KindGeometric:
		return "geometric"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a preset name to its Kind. Short forms "ap" and "gp" are
// accepted.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "pow2":
		return KindPow2, nil
	case "arithmetic", "ap":
		return KindArithmetic, nil
	case "geometric", "gp":
		return KindGeometric, nil
	default:
		return 0, api.InvalidArgument("unknown growth policy").WithContext("kind", s)
	}
}

// Policy maps a capacity to the next, larger one. The zero Policy is invalid.
type Policy struct {
	kind  Kind
	diff  int
	ratio float64
	fn    func(int) int
}

// Pow2 doubles the capacity. The initial capacity must be a power of two.
func Pow2() Policy { return Policy{kind: KindPow2} }

// Arithmetic adds diff to the capacity. diff must be positive.
func Arithmetic(diff int) Policy { return Policy{kind: KindArithmetic, diff: diff} }

// Geometric multiplies the capacity by ratio, rounding down. ratio must be
// above 1 and large enough that the first step adds at least one byte.
func Geometric(ratio float64) Policy { return Policy{kind: KindGeometric, ratio: ratio} }

// Custom uses fn. Each call must return a capacity larger than its argument.
func Custom(fn func(capacity int) int) Policy { return Policy{kind: KindCustom, fn: fn} }

func (p Policy) Kind() Kind { return p.kind }

func (p Policy) String() string {
	switch p.kind {
	case KindArithmetic:
		return fmt.Sprintf("arithmetic(+%d)", p.diff)
	case KindGeometric:
		return fmt.Sprintf("geometric(x%g)", p.ratio)
	default:
		return p.kind.String()
	}
}

// Validate checks the policy against the capacity growth will start from.
func (p Policy) Validate(initCapacity int) error {
	if initCapacity <= 0 {
		return api.InvalidArgument("initial capacity must be positive").WithContext("initCapacity", initCapacity)
	}
	switch p.kind {
	case KindPow2:
		if !bounds.IsPow2(initCapacity) {
			return api.InvalidArgument("initial capacity is not a power of two").WithContext("initCapacity", initCapacity)
		}
	case KindArithmetic:
		if p.diff <= 0 {
			return api.InvalidArgument("difference must be positive").WithContext("difference", p.diff)
		}
	case KindGeometric:
		if math.IsNaN(p.ratio) || math.IsInf(p.ratio, 0) || p.ratio <= 1 {
			return api.InvalidArgument("ratio must be a finite number above 1").WithContext("ratio", p.ratio)
		}
		if float64(initCapacity)*(p.ratio-1) < 1 {
			return api.InvalidArgument("ratio too small for initial capacity").
				WithContext("ratio", p.ratio).
				WithContext("initCapacity", initCapacity)
		}
	case KindCustom:
		if p.fn == nil {
			return api.InvalidArgument("custom growth function is nil")
		}
	default:
		return api.InvalidArgument("growth policy not set")
	}
	return nil
}

// Next returns the capacity after one growth step. A step that would
// overflow int or fails to increase the capacity is an invalid-state error.
func (p Policy) Next(capacity int) (int, error) {
	var (
		next int
		ok   = true
	)
	switch p.kind {
	case KindPow2:
		next, ok = bounds.AddOverflowSafe(capacity, capacity)
	case KindArithmetic:
		next, ok = bounds.AddOverflowSafe(capacity, p.diff)
	case KindGeometric:
		next, ok = bounds.ScaleFloor(capacity, p.ratio)
	case KindCustom:
		if p.fn == nil {
			return 0, api.InvalidState("custom growth function is nil")
		}
		next = p.fn(capacity)
	default:
		return 0, api.InvalidState("growth policy not set")
	}
	if !ok {
		return 0, api.InvalidState("capacity overflow").WithContext("capacity", capacity).WithContext("policy", p.String())
	}
	if next <= capacity {
		return 0, api.InvalidState("growth policy did not increase capacity").
			WithContext("capacity", capacity).
			WithContext("next", next).
			WithContext("policy", p.String())
	}
	return next, nil
}

// Grow applies Next from capacity until the result reaches target.
func (p Policy) Grow(capacity, target int) (int, error) {
	for capacity < target {
		next, err := p.Next(capacity)
		if err != nil {
			return 0, err
		}
		capacity = next
	}
	return capacity, nil
}

// Sequence lists the capacities visited growing from from to at least
// target, from included.
func (p Policy) Sequence(from, target int) ([]int, error) {
	if err := p.Validate(from); err != nil {
		return nil, err
	}
	seq := []int{from}
	for c := from; c < target; {
		next, err := p.Next(c)
		if err != nil {
			return nil, err
		}
		seq = append(seq, next)
		c = next
	}
	return seq, nil
}
