package pp

import "fmt"

// Record describes one lambda occurrence.
//
// Records are appended as they seal (when the closing brace returning
// the scan to the lambda's own nesting level is found) and never mutated
// afterwards. After parsing completes they are sorted once by Start, so
// a lambda nested inside another's body always ranks after its encloser.
type Record struct {
	// Start is the offset of the `lambda` keyword itself.
	Start int

	// Type covers the return type text, from the first non-whitespace
	// byte after the keyword up to the argument list's opening paren.
	Type Range

	// Args covers the argument list, parens included.
	Args Range

	// Body covers the body, braces included.
	Body Range

	// TypeLine, BodyLine, and EndLine are the line numbers of the first
	// return-type byte, the body's opening brace, and the body's closing
	// brace.
	TypeLine int
	BodyLine int
	EndLine  int
}

// End returns the offset one past the body's closing brace.
func (r Record) End() int { return r.Body.End() }

// Contains reports whether other lies strictly inside r's body.
func (r Record) Contains(other Record) bool {
	return other.Start > r.Start && other.End() < r.End()
}

// Anchor marks a legal top-level source position at which hoisted
// forward declarations may be inserted, together with the line number
// needed to restore diagnostics after the insertion.
type Anchor struct {
	Pos  int
	Line int
}

// Result holds the outcome of one parse: the lambda records sorted by
// ascending start offset and the anchor positions in buffer order. Both
// lists are read-only once returned.
type Result struct {
	Records []Record
	Anchors []Anchor
}

// name returns the hoisted function name of the record at index i.
func name(i int) string {
	return fmt.Sprintf("lambda_%d", i)
}
