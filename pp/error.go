package pp

import (
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies an engine error.
type Kind int

const (
	// KindNone is the zero Kind.
	KindNone Kind = iota

	// KindUnbalancedDelimiter: a closing delimiter with nothing open, or
	// end of input with delimiters still open.
	KindUnbalancedDelimiter

	// KindMismatchedDelimiter: a closing delimiter that does not match
	// the innermost open one.
	KindMismatchedDelimiter

	// KindUnterminatedConstruct: a string, character literal, or block
	// comment with no closing marker before end of input.
	KindUnterminatedConstruct

	// KindNestingTooDeep: lambda nesting beyond the supported depth.
	KindNestingTooDeep

	// KindReadInput: the source could not be read.
	KindReadInput
)

// String returns the diagnostic message stem for the kind.
func (k Kind) String() string {
	switch k {
	case KindUnbalancedDelimiter:
		return "unbalanced delimiter"
	case KindMismatchedDelimiter:
		return "mismatched delimiter"
	case KindUnterminatedConstruct:
		return "unterminated construct"
	case KindNestingTooDeep:
		return "lambda nesting too deep"
	case KindReadInput:
		return "failed to read input"
	default:
		return "error"
	}
}

// Predefined errors (sentinel values). Site errors derived with [Error.At]
// compare equal to these under errors.Is.
var (
	ErrUnbalancedDelimiter   = &Error{kind: KindUnbalancedDelimiter}
	ErrMismatchedDelimiter   = &Error{kind: KindMismatchedDelimiter}
	ErrUnterminatedConstruct = &Error{kind: KindUnterminatedConstruct}
	ErrNestingTooDeep        = &Error{kind: KindNestingTooDeep}
	ErrReadInput             = &Error{kind: KindReadInput}
)

// Error is a terminal engine error. It carries the kind, the file and
// line of the offending character, and optional structured logging
// attributes. It implements both error and slog.LogValuer.
type Error struct {
	kind  Kind
	err   error // wrapped cause (for errors.Unwrap)
	file  string
	line  int
	attrs []slog.Attr
}

// Kind returns the error classification.
func (e *Error) Kind() Kind { return e.kind }

// File returns the source file the error was reported against.
func (e *Error) File() string { return e.file }

// Line returns the 1-based line of the offending character, or 0 when
// no source position applies.
func (e *Error) Line() int { return e.line }

// Error formats the diagnostic as `<file>:<line> error: <message>`.
// The line is omitted when zero, the file prefix when empty.
func (e *Error) Error() string {
	var sb strings.Builder

	switch {
	case e.file != "" && e.line > 0:
		fmt.Fprintf(&sb, "%s:%d error: ", e.file, e.line)
	case e.file != "":
		fmt.Fprintf(&sb, "%s: error: ", e.file)
	}

	sb.WriteString(e.kind.String())

	if e.err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.err.Error())
	}

	return sb.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an [*Error] of the same kind, so that
// site errors match the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.kind == e.kind
}

// At returns a copy of the error positioned at the given file and line.
func (e *Error) At(file string, line int) *Error {
	clone := *e
	clone.file = file
	clone.line = line

	return &clone
}

// Wrap returns a copy of the error wrapping the given cause.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.err = err

	return &clone
}

// Wrapf returns a copy of the error wrapping a formatted cause.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With returns a copy of the error with additional logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	clone := *e
	clone.attrs = append(append([]slog.Attr{}, e.attrs...), attrs...)

	return &clone
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)
	attrs = append(attrs, slog.String("error", e.kind.String()))

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.file != "" {
		attrs = append(attrs, slog.String("file", e.file))
	}

	if e.line > 0 {
		attrs = append(attrs, slog.Int("line", e.line))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}
