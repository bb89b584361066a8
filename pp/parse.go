package pp

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/graphitemaster/lambdapp/log"
)

// maxNestingDepth bounds recursion through nested lambdas and balanced
// groups so that hostile input cannot exhaust the goroutine stack.
const maxNestingDepth = 512

// parser is the explicit scan state threaded through all parse modes.
// Each invocation of Parse builds a fresh parser; nothing is shared
// across runs.
type parser struct {
	src     *Source
	data    []byte
	keyword string
	logger  log.Logger

	pos   int
	line  int
	depth int

	records []Record
	anchors []Anchor
}

// Parse scans the source and returns its lambda records, sorted by
// ascending start offset, along with the top-level anchor positions.
// Any structural inconsistency aborts the scan with an [*Error]; no
// partial result is returned.
func Parse(src *Source, opts ...Option) (*Result, error) {
	cfg := makeOptions(opts...)

	p := &parser{
		src:     src,
		data:    src.Bytes(),
		keyword: cfg.keyword,
		logger:  cfg.logger,
		line:    1,
	}

	if err := p.parseTop(); err != nil {
		return nil, err
	}

	slices.SortFunc(p.records, func(a, b Record) int {
		return cmp.Compare(a.Start, b.Start)
	})

	p.logger.Debug("parse complete",
		slog.String("file", src.File()),
		slog.Int("lambdas", len(p.records)),
		slog.Int("anchors", len(p.anchors)),
	)

	return &Result{Records: p.records, Anchors: p.anchors}, nil
}

// parseTop is the outermost mode. Besides the general token walk it
// maintains the anchor cursor: at nesting depth zero the prospective
// anchor slides across whitespace (so hoisted declarations are never
// glued to the tail of the preceding construct), freezes inside
// preprocessor directives until their terminating newline, and is
// finalized and restarted by statement terminators and depth-zero
// closing braces. An anchor is recorded each time the cursor settles.
func (p *parser) parseTop() error {
	var stack []byte

	anchorPos := 0
	anchorMove := true
	directive := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if len(stack) == 0 {
			if anchorMove {
				if isSpace(c) {
					if c == '\n' {
						p.line++
					}

					p.pos++
					anchorPos = p.pos

					continue
				}

				anchorMove = false
				p.anchors = append(p.anchors, Anchor{Pos: anchorPos, Line: p.line})
			}

			switch {
			case c == ';':
				p.pos++
				anchorPos = p.pos
				anchorMove = true

				continue

			case c == '#':
				// Declarations must not interrupt the directive: freeze
				// the anchor until its depth-zero newline.
				p.pos++
				anchorPos = p.pos
				directive = true

				continue

			case directive && c == '\n':
				p.line++
				p.pos++
				anchorPos = p.pos
				anchorMove = true
				directive = false

				continue
			}
		}

		switch {
		case c == '"' || c == '\'':
			if err := p.skipLiteral(); err != nil {
				return err
			}

		case c == '/' && p.peekAt(p.pos+1) == '/':
			p.skipLineComment()

		case c == '/' && p.peekAt(p.pos+1) == '*':
			if err := p.skipBlockComment(); err != nil {
				return err
			}

		case isIdentByte(c):
			start := p.scanIdent()
			if p.atKeyword(start) {
				if err := p.parseLambda(start); err != nil {
					return err
				}
			}

		case isOpenDelim(c):
			stack = append(stack, closerFor(c))
			p.pos++

		case isCloseDelim(c):
			var err error
			if stack, err = p.popDelim(stack, c); err != nil {
				return err
			}

			p.pos++

			if c == '}' && len(stack) == 0 {
				anchorPos = p.pos
				anchorMove = true
			}

		case c == '\n':
			p.line++
			p.pos++

		default:
			p.pos++
		}
	}

	if len(stack) != 0 {
		return p.fail(ErrUnbalancedDelimiter).
			Wrapf("%d delimiter(s) still open at end of input", len(stack)).
			With(slog.Int("open", len(stack)))
	}

	return nil
}

// parseLambda parses one lambda occurrence. The cursor sits just past
// the keyword; start is the keyword's own offset, which becomes the
// record's start. The record is appended once its closing brace seals
// it, and the cursor is left just past that brace.
func (p *parser) parseLambda(start int) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	rec := Record{Start: start}

	p.skipSpace()
	rec.TypeLine = p.line
	typeStart := p.pos

	// A parenthesized leading type group covers lambdas returning
	// function pointers; it belongs to the return type, so it is
	// validated here and the argument-list search continues after it.
	if p.peek() == '(' {
		if err := p.parseBalanced(); err != nil {
			return err
		}
	}

	argOpen, err := p.scanToUnmatched('(')
	if err != nil {
		return err
	}

	rec.Type = p.src.rangeBetween(typeStart, argOpen)

	if err := p.parseBalanced(); err != nil {
		return err
	}

	rec.Args = p.src.rangeBetween(argOpen, p.pos)

	bodyOpen, err := p.scanToUnmatched('{')
	if err != nil {
		return err
	}

	rec.BodyLine = p.line

	if err := p.parseBalanced(); err != nil {
		return err
	}

	rec.Body = p.src.rangeBetween(bodyOpen, p.pos)
	rec.EndLine = p.line

	p.records = append(p.records, rec)

	return nil
}

// parseBalanced consumes exactly one delimiter-balanced group; the
// cursor must sit on the opening delimiter and is left just past its
// matching closer. The walk recurses into any lambdas nested inside the
// group but performs no anchor tracking of its own.
func (p *parser) parseBalanced() error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	stack := []byte{closerFor(p.data[p.pos])}
	p.pos++

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		switch {
		case c == '"' || c == '\'':
			if err := p.skipLiteral(); err != nil {
				return err
			}

		case c == '/' && p.peekAt(p.pos+1) == '/':
			p.skipLineComment()

		case c == '/' && p.peekAt(p.pos+1) == '*':
			if err := p.skipBlockComment(); err != nil {
				return err
			}

		case isIdentByte(c):
			start := p.scanIdent()
			if p.atKeyword(start) {
				if err := p.parseLambda(start); err != nil {
					return err
				}
			}

		case isOpenDelim(c):
			stack = append(stack, closerFor(c))
			p.pos++

		case isCloseDelim(c):
			var err error
			if stack, err = p.popDelim(stack, c); err != nil {
				return err
			}

			p.pos++

			if len(stack) == 0 {
				return nil
			}

		case c == '\n':
			p.line++
			p.pos++

		default:
			p.pos++
		}
	}

	return p.fail(ErrUnbalancedDelimiter).
		Wrapf("%d delimiter(s) still open at end of input", len(stack)).
		With(slog.Int("open", len(stack)))
}

// scanToUnmatched walks forward until target appears outside any
// balanced group, skipping literals and comments and counting lines.
// The cursor is left on the target, whose offset is returned.
func (p *parser) scanToUnmatched(target byte) (int, error) {
	var stack []byte

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if len(stack) == 0 && c == target {
			return p.pos, nil
		}

		switch {
		case c == '"' || c == '\'':
			if err := p.skipLiteral(); err != nil {
				return 0, err
			}

		case c == '/' && p.peekAt(p.pos+1) == '/':
			p.skipLineComment()

		case c == '/' && p.peekAt(p.pos+1) == '*':
			if err := p.skipBlockComment(); err != nil {
				return 0, err
			}

		case isOpenDelim(c):
			stack = append(stack, closerFor(c))
			p.pos++

		case isCloseDelim(c):
			var err error
			if stack, err = p.popDelim(stack, c); err != nil {
				return 0, err
			}

			p.pos++

		case c == '\n':
			p.line++
			p.pos++

		default:
			p.pos++
		}
	}

	return 0, p.fail(ErrUnbalancedDelimiter).
		Wrapf("expected %q before end of input", string(target))
}

// enter and leave bound the recursion depth across parseLambda and
// parseBalanced calls.
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return p.fail(ErrNestingTooDeep).
			Wrapf("more than %d nested groups", maxNestingDepth).
			With(slog.Int("depth", p.depth))
	}

	return nil
}

func (p *parser) leave() { p.depth-- }
