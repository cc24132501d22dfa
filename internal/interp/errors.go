package interp

import (
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

// NewNativeError builds a line-less runtime error for use inside
// internal/builtins, which has no source token to attach to a failure
// (a bad argument to a native method, say).
func NewNativeError(message string) error {
	return &errors.RuntimeError{Message: message}
}

// newRuntimeError builds an *errors.RuntimeError located at tok, the
// single error type every evaluation function returns for domain
// failures (wrong operand types, undefined name, bad call, and so
// on).
func newRuntimeError(tok token.Token, message string) *errors.RuntimeError {
	return errors.NewRuntimeError(tok, message)
}

// returnSignal unwinds a function call to its Call boundary carrying
// the returned value. It implements error purely so it can travel
// through the same (Value, error) / error return paths as a genuine
// failure; executeBlock passes it through unchanged, and Function.Call
// is the only place that type-asserts for it and treats it as control
// flow rather than failure.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return" }
