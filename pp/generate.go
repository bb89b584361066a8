package pp

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Generate writes the transformed translation unit for a parsed source.
//
// Pass A walks the buffer from offset zero emitting rewritten top-level
// text: hoisted forward declarations are inserted at the last anchor not
// past each lambda occurrence, every occurrence is replaced by its
// &lambda_<N> reference, and #line markers keep the surrounding original
// text on its true line numbers. Pass B then appends one hoisted
// definition per record, bodies sliced by the same algorithm so nested
// lambdas surface as their own definitions. A trailing newline is always
// appended, even if the input lacked one.
func Generate(w io.Writer, src *Source, res *Result) error {
	g := &generator{src: src, res: res, w: bufio.NewWriter(w)}

	g.marker(1)
	g.rewriteTop()
	g.hoisted()
	g.raw("\n")

	if g.err != nil {
		return g.err
	}

	return g.w.Flush()
}

// Expand parses the source and generates its transformation in one call.
// On a parse error nothing is written to w.
func Expand(w io.Writer, src *Source, opts ...Option) error {
	res, err := Parse(src, opts...)
	if err != nil {
		return err
	}

	return Generate(w, src, res)
}

// generator tracks output state for one Generate call. The first write
// error is retained and suppresses all subsequent output.
type generator struct {
	src *Source
	res *Result
	w   *bufio.Writer
	err error
}

// rewriteTop is pass A.
func (g *generator) rewriteTop() {
	recs := g.res.Records
	anchors := g.res.Anchors

	pos := 0
	next := 0 // index of the first anchor past the current record

	for lam := 0; lam < len(recs); {
		rec := recs[lam]

		for next < len(anchors) && anchors[next].Pos <= rec.Start {
			next++
		}

		// Insert declarations at the governing anchor unless an earlier
		// record in the same segment already emitted them.
		if next > 0 && anchors[next-1].Pos >= pos {
			anchor := anchors[next-1]

			segEnd := g.src.Len() + 1
			if next < len(anchors) {
				segEnd = anchors[next].Pos
			}

			g.text(pos, anchor.Pos)
			g.raw("\n")

			for j := lam; j < len(recs) && recs[j].Start < segEnd; j++ {
				g.raw(g.signature(j))
				g.raw(";\n")
			}

			g.marker(anchor.Line)
			pos = anchor.Pos
		}

		g.text(pos, rec.Start)
		g.raw("&")
		g.raw(name(lam))
		pos = rec.End()

		// A body spanning lines displaces the remainder of the original
		// line; restore it for diagnostics.
		if rec.EndLine != rec.TypeLine {
			g.raw("\n")
			g.marker(rec.EndLine)
		}

		// Records inside the consumed span surface in pass B only.
		for lam++; lam < len(recs) && recs[lam].Start < pos; lam++ {
		}
	}

	g.text(pos, g.src.Len())
}

// hoisted is pass B.
func (g *generator) hoisted() {
	for i, rec := range g.res.Records {
		g.raw("\n")
		g.marker(rec.TypeLine)
		g.raw(g.signature(i))
		g.raw("\n")
		g.marker(rec.BodyLine)
		g.body(i)
	}
}

// body emits record i's body, braces included, replacing each directly
// nested lambda with its reference.
func (g *generator) body(i int) {
	recs := g.res.Records
	rec := recs[i]

	pos := rec.Body.Start
	end := rec.End()

	for j := i + 1; j < len(recs) && recs[j].Start < end; j++ {
		nested := recs[j]
		if nested.Start < pos {
			// Grandchild consumed with its encloser.
			continue
		}

		g.text(pos, nested.Start)
		g.raw("&")
		g.raw(name(j))
		pos = nested.End()

		if nested.EndLine != nested.TypeLine {
			g.raw("\n")
			g.marker(nested.EndLine)
		}
	}

	g.text(pos, end)
}

// signature reconstructs `<return-type> lambda_<i>(<args>)` from the
// record's captured spans.
func (g *generator) signature(i int) string {
	rec := g.res.Records[i]

	typ := strings.TrimRight(string(g.src.Slice(rec.Type)), " \t\n\r\v\f")
	args := string(g.src.Slice(rec.Args))

	if typ == "" {
		return name(i) + args
	}

	return typ + " " + name(i) + args
}

// marker emits a synthetic line marker so compiler diagnostics keep
// pointing at the original source.
func (g *generator) marker(line int) {
	if g.err != nil {
		return
	}

	_, g.err = fmt.Fprintf(g.w, "#line %d \"%s\"\n", line, g.src.File())
}

// text emits the original buffer span [start, end) verbatim.
func (g *generator) text(start, end int) {
	if g.err != nil {
		return
	}

	_, g.err = g.w.Write(g.src.Bytes()[start:end])
}

func (g *generator) raw(s string) {
	if g.err != nil {
		return
	}

	_, g.err = g.w.WriteString(s)
}
