package pkg

// Sentinel errors shared by the lambdapp binaries.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrReadInput is returned when reading the source input fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrWriteOutput is returned when writing the transformed output fails.
var ErrWriteOutput = MakeErrorf("failed to write output")

// ErrNoCompiler is returned when the driver cannot locate a system compiler
// through $CC, $CXX, or the search path.
var ErrNoCompiler = MakeErrorf("no system compiler found")

// ErrNoPreprocessor is returned when the driver cannot locate the lambda-pp
// executable through $LAMBDA_PP, its own directory, or the search path.
var ErrNoPreprocessor = MakeErrorf("lambda-pp not found")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
func (e Error) Wrap(err ...error) Error {
	return append(e, err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether target's chain is fully contained in the receiver.
// Error is a slice type, which errors.Is cannot compare directly, so this
// method makes derived errors match the sentinel they extend.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 {
		return false
	}

	for _, want := range t {
		found := false

		for _, err := range e {
			if errors.Is(err, want) {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
