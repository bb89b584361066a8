package pp

import (
	"fmt"
	"io"
)

// Source is one immutable C source buffer with its file identity.
// The buffer is loaded once, before any scanning begins, and is never
// mutated afterwards.
type Source struct {
	file string
	data []byte
}

// NewSource creates a Source over the given buffer.
// The buffer must not be modified after the call.
func NewSource(file string, data []byte) *Source {
	return &Source{file: file, data: data}
}

// LoadSource reads the entire reader into a new Source.
func LoadSource(file string, r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.At(file, 0).Wrap(err)
	}

	return NewSource(file, data), nil
}

// File returns the file identity used in diagnostics and line markers.
func (s *Source) File() string { return s.file }

// Len returns the buffer length in bytes.
func (s *Source) Len() int { return len(s.data) }

// Bytes returns the raw buffer. Callers must treat it as read-only.
func (s *Source) Bytes() []byte { return s.data }

// Slice returns the buffer contents covered by r.
func (s *Source) Slice(r Range) []byte {
	return s.data[r.Start : r.Start+r.Length]
}

// Range is a half-open span [Start, Start+Length) of the source buffer.
type Range struct {
	Start  int
	Length int
}

// End returns the offset one past the last byte of the range.
func (r Range) End() int { return r.Start + r.Length }

// rangeBetween constructs a Range covering [start, end), validated
// against the buffer bounds. Offsets are produced by the parser, so a
// violation is a programming error, not an input error.
func (s *Source) rangeBetween(start, end int) Range {
	if start < 0 || end < start || end > len(s.data) {
		panic(fmt.Sprintf("pp: range [%d,%d) outside buffer of %d bytes",
			start, end, len(s.data)))
	}

	return Range{Start: start, Length: end - start}
}
