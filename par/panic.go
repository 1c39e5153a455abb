package par

import (
	"fmt"
	"runtime"
)

// stackSize bounds the trace kept for a recovered panic.
const stackSize = 8 << 10

// PanicError is a panic raised inside a brick, recovered on the goroutine
// that ran the leaf. Primitives report it as an ordinary error so that a
// failing predicate or comparator never takes down a worker.
type PanicError struct {
	Value any    // argument of the panic call
	Stack string // trace of the leaf goroutine when it panicked
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("par: brick panicked: %v\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func recovered(v any) *PanicError {
	if pe, ok := v.(*PanicError); ok {
		return pe
	}
	buf := make([]byte, stackSize)
	return &PanicError{Value: v, Stack: string(buf[:runtime.Stack(buf, false)])}
}

// Protect calls fn and converts a panic into a *PanicError.
// A panic that already carries a *PanicError is passed through unchanged.
func Protect(fn func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recovered(v)
		}
	}()
	return fn()
}
