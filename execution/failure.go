package execution

import (
	"errors"
	"fmt"

	"github.com/ajroetker/go-pstl/par"
)

// ErrExecution matches every *Failure.
var ErrExecution = errors.New("pstl: parallel execution failed")

// Failure is raised, as a panic on the caller's goroutine, when a parallel
// run fails. Value is what the failing predicate, comparator or generator
// panicked with; scheduler specifics are not kept.
type Failure struct {
	Algorithm string
	Value     any
}

func (f *Failure) Error() string {
	return fmt.Sprintf("pstl: parallel %s failed: %v", f.Algorithm, f.Value)
}

// Is reports whether target is ErrExecution.
func (f *Failure) Is(target error) bool {
	return target == ErrExecution
}

// Unwrap returns Value when it is an error.
func (f *Failure) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}

func newFailure(algorithm string, err error) *Failure {
	var pe *par.PanicError
	if errors.As(err, &pe) {
		return &Failure{Algorithm: algorithm, Value: pe.Value}
	}
	return &Failure{Algorithm: algorithm, Value: err}
}

// Handle runs the parallel path of algorithm and returns its result.
//
// When the scheduler is unavailable before any work started, Handle runs
// serial instead. Any other failure is re-raised on the caller as a
// *Failure once all parallel work has stopped.
func Handle[R any](rt *Runtime, algorithm string, parallel func() (R, error), serial func() R) R {
	r, err := parallel()
	if err == nil {
		return r
	}
	if errors.Is(err, par.ErrUnavailable) {
		rt.Degrade(algorithm, AxisParallel, ReasonUnavailable)
		return serial()
	}
	panic(newFailure(algorithm, err))
}

// Run is Handle for algorithms without a result.
func Run(rt *Runtime, algorithm string, parallel func() error, serial func()) {
	Handle(rt, algorithm,
		func() (struct{}, error) { return struct{}{}, parallel() },
		func() struct{} { serial(); return struct{}{} },
	)
}

// Catch calls fn and returns the *Failure it raised, if any. Other panics
// propagate.
func Catch(fn func()) (err error) {
	defer func() {
		if v := recover(); v != nil {
			if f, ok := v.(*Failure); ok {
				err = f
				return
			}
			panic(v)
		}
	}()
	fn()
	return nil
}

// Pinned marks element types that must stay where they are: parallel
// sorts, which move elements through scratch buffers, use their serial
// path for such types.
type Pinned interface {
	Pinned()
}

// IsPinned reports whether T or *T implements Pinned.
func IsPinned[T any]() bool {
	var z T
	if _, ok := any(z).(Pinned); ok {
		return true
	}
	_, ok := any(&z).(Pinned)
	return ok
}
