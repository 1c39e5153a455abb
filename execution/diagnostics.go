package execution

import (
	"cmp"
	"slices"
	"sync/atomic"
)

// Axis names the capability a degradation affected.
type Axis string

const (
	AxisVector   Axis = "vector"
	AxisParallel Axis = "parallel"
)

// Reason explains why a run used a weaker mode than requested.
type Reason string

const (
	// ReasonUnimplemented: the algorithm has no path for the axis.
	ReasonUnimplemented Reason = "unimplemented"
	// ReasonDisabled: the capability descriptor turned the axis off.
	ReasonDisabled Reason = "disabled"
	// ReasonTrivial: the input was too small to be worth splitting.
	ReasonTrivial Reason = "trivial"
	// ReasonExhausted: the mask buffer budget could not cover the input.
	ReasonExhausted Reason = "exhausted"
	// ReasonUnavailable: the scheduler refused work.
	ReasonUnavailable Reason = "unavailable"
)

// Diagnostic counts how often an algorithm ran in a weaker mode.
type Diagnostic struct {
	Algorithm string
	Axis      Axis
	Reason    Reason
	Count     int64
}

type diagKey struct {
	algorithm string
	axis      Axis
	reason    Reason
}

// Algorithm declares which accelerated paths an algorithm implements.
type Algorithm struct {
	Name string

	// Vector and Parallel report whether the paths exist.
	Vector   bool
	Parallel bool

	// Monotonic and EarlyExit name the vector features the vector path
	// depends on.
	Monotonic bool
	EarlyExit bool
}

// Resolve returns the mode alg actually runs in when want is requested.
// Each axis that has to be dropped is recorded in Diagnostics.
func (rt *Runtime) Resolve(alg Algorithm, want Mode) Mode {
	vec, parallel := want.Vectorized(), want.Parallel()
	if vec {
		switch {
		case !alg.Vector:
			rt.Degrade(alg.Name, AxisVector, ReasonUnimplemented)
			vec = false
		case !rt.caps.Vector,
			alg.Monotonic && !rt.caps.Monotonic,
			alg.EarlyExit && !rt.caps.EarlyExit:
			rt.Degrade(alg.Name, AxisVector, ReasonDisabled)
			vec = false
		}
	}
	if parallel {
		switch {
		case !alg.Parallel:
			rt.Degrade(alg.Name, AxisParallel, ReasonUnimplemented)
			parallel = false
		case !rt.caps.Parallel:
			rt.Degrade(alg.Name, AxisParallel, ReasonDisabled)
			parallel = false
		}
	}
	return ModeOf(vec, parallel)
}

// Degrade records that algorithm dropped axis for reason and logs a
// rate-limited advisory at debug level.
func (rt *Runtime) Degrade(algorithm string, axis Axis, reason Reason) {
	k := diagKey{algorithm, axis, reason}
	rt.diagMu.Lock()
	c, ok := rt.diag[k]
	if !ok {
		c = new(atomic.Int64)
		rt.diag[k] = c
	}
	rt.diagMu.Unlock()
	c.Add(1)

	if !rt.advice.Allow() {
		return
	}
	msg := "parallel algorithm " + string(reason) + ", redirected to serial"
	if axis == AxisVector {
		msg = "vectorized algorithm " + string(reason) + ", redirected to serial"
	}
	rt.logger.Debug(msg, "algorithm", algorithm, "axis", string(axis), "reason", string(reason))
}

// Diagnostics returns a snapshot of degradation counters, sorted by
// algorithm, axis and reason.
func (rt *Runtime) Diagnostics() []Diagnostic {
	rt.diagMu.Lock()
	out := make([]Diagnostic, 0, len(rt.diag))
	for k, c := range rt.diag {
		out = append(out, Diagnostic{
			Algorithm: k.algorithm,
			Axis:      k.axis,
			Reason:    k.reason,
			Count:     c.Load(),
		})
	}
	rt.diagMu.Unlock()

	slices.SortFunc(out, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Algorithm, b.Algorithm),
			cmp.Compare(a.Axis, b.Axis),
			cmp.Compare(a.Reason, b.Reason),
		)
	})
	return out
}

// Degraded returns how many times algorithm dropped axis for any reason.
func (rt *Runtime) Degraded(algorithm string, axis Axis) int64 {
	var n int64
	for _, d := range rt.Diagnostics() {
		if d.Algorithm == algorithm && d.Axis == axis {
			n += d.Count
		}
	}
	return n
}

// ResetDiagnostics clears all counters.
func (rt *Runtime) ResetDiagnostics() {
	rt.diagMu.Lock()
	clear(rt.diag)
	rt.diagMu.Unlock()
}
