// Copyright 2025 go-pstl Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package execution defines the execution policies callers pass to the
// algorithms in package algo, and the Runtime that carries everything a
// parallel or vectorized run needs: the capability descriptor, the
// scheduler, the mask buffer budget, logging and degradation diagnostics.
//
// A policy is a Policy[V, P] whose type arguments are the two capability
// tags: V is Vector or Scalar and P is Parallel or Serial. The four
// combinations are exposed as Seq, Unseq, Par and ParUnseq:
//
//	n := algo.CopyIf(execution.ParUnseq, src, dst, isOdd)
//
// Policies bind to Default() unless attached to another runtime with On.
package execution

import (
	"fmt"
	"strings"
)

// Vector selects vectorized bricks.
type Vector struct{}

// Scalar selects element-at-a-time bricks.
type Scalar struct{}

// Parallel selects parallel decomposition.
type Parallel struct{}

// Serial selects execution on the calling goroutine.
type Serial struct{}

// VectorTag is the vectorization axis.
type VectorTag interface{ Vector | Scalar }

// ParallelTag is the parallelism axis.
type ParallelTag interface{ Parallel | Serial }

// Policy is an execution mode request. Its zero value runs on Default().
type Policy[V VectorTag, P ParallelTag] struct {
	rt *Runtime
}

type (
	// SequencedPolicy runs serial-scalar.
	SequencedPolicy = Policy[Scalar, Serial]
	// UnsequencedPolicy runs serial-vectorized.
	UnsequencedPolicy = Policy[Vector, Serial]
	// ParallelPolicy runs parallel-scalar.
	ParallelPolicy = Policy[Scalar, Parallel]
	// ParallelUnsequencedPolicy runs parallel-vectorized.
	ParallelUnsequencedPolicy = Policy[Vector, Parallel]
)

var (
	Seq      SequencedPolicy
	Unseq    UnsequencedPolicy
	Par      ParallelPolicy
	ParUnseq ParallelUnsequencedPolicy
)

// On returns the policy bound to rt.
func (p Policy[V, P]) On(rt *Runtime) Policy[V, P] {
	p.rt = rt
	return p
}

// Runtime returns the runtime the policy is bound to.
func (p Policy[V, P]) Runtime() *Runtime {
	if p.rt == nil {
		return Default()
	}
	return p.rt
}

// Vectorized reports whether V is Vector.
func (Policy[V, P]) Vectorized() bool {
	var v V
	_, ok := any(v).(Vector)
	return ok
}

// Parallel reports whether P is Parallel.
func (Policy[V, P]) Parallel() bool {
	var p P
	_, ok := any(p).(Parallel)
	return ok
}

// Mode returns the requested mode.
func (p Policy[V, P]) Mode() Mode {
	return ModeOf(p.Vectorized(), p.Parallel())
}

func (p Policy[V, P]) String() string {
	return p.Mode().String()
}

// Mode enumerates the four execution modes.
type Mode uint8

const (
	SerialScalar Mode = iota
	SerialVector
	ParallelScalar
	ParallelVector
)

const (
	vectorBit   Mode = 1
	parallelBit Mode = 2
)

// Modes lists every mode in order of increasing capability.
var Modes = []Mode{SerialScalar, SerialVector, ParallelScalar, ParallelVector}

// ModeOf returns the mode with the given axes.
func ModeOf(vector, parallel bool) Mode {
	var m Mode
	if vector {
		m |= vectorBit
	}
	if parallel {
		m |= parallelBit
	}
	return m
}

// Vectorized reports whether m uses vectorized bricks.
func (m Mode) Vectorized() bool { return m&vectorBit != 0 }

// Parallel reports whether m uses parallel decomposition.
func (m Mode) Parallel() bool { return m&parallelBit != 0 }

// String returns the policy name for m: seq, unseq, par or par_unseq.
func (m Mode) String() string {
	switch m {
	case SerialScalar:
		return "seq"
	case SerialVector:
		return "unseq"
	case ParallelScalar:
		return "par"
	case ParallelVector:
		return "par_unseq"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses a policy name as printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seq", "sequenced":
		return SerialScalar, nil
	case "unseq", "unsequenced":
		return SerialVector, nil
	case "par", "parallel":
		return ParallelScalar, nil
	case "par_unseq", "par-unseq", "parallel_unsequenced":
		return ParallelVector, nil
	}
	return 0, fmt.Errorf("execution: unknown mode %q", s)
}
