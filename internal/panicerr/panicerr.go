// Package panicerr converts panics and runtime.Goexit calls into error
// returns, retaining the panic stack for later reporting.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, returning its error, or an error
// describing any panic or runtime.Goexit that escaped from it.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// the happy path, or a recovered panic, already sent
	}
}

func recoverPanic(name string, errch chan<- error) {
	if e := recover(); e != nil {
		select {
		case errch <- panicError{name, e, debug.Stack()}:
		default:
		}
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "panicked: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v panicked: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns a non-empty stacktrace string if err is a recovered
// goroutine panic.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
