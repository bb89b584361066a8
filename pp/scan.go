package pp

import "log/slog"

// Byte classification. The engine deliberately operates on bytes: UTF-8
// multibyte sequences never collide with the ASCII delimiters, quotes,
// and keyword characters it inspects.

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isOpenDelim(c byte) bool {
	return c == '(' || c == '[' || c == '{'
}

func isCloseDelim(c byte) bool {
	return c == ')' || c == ']' || c == '}'
}

// closerFor returns the closing delimiter matching an opener.
func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// peek returns the byte at the cursor, or 0 at end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.data) {
		return 0
	}

	return p.data[p.pos]
}

// peekAt returns the byte at offset i, or 0 past end of input.
func (p *parser) peekAt(i int) byte {
	if i >= len(p.data) {
		return 0
	}

	return p.data[i]
}

// skipSpace advances the cursor over whitespace, counting newlines.
func (p *parser) skipSpace() {
	for p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		if p.data[p.pos] == '\n' {
			p.line++
		}

		p.pos++
	}
}

// skipLiteral advances the cursor past a string or character literal.
// The cursor must be on the opening quote. Backslash escapes the next
// byte; newlines inside the literal still count toward the line number.
// A literal with no closing quote is a terminal error.
func (p *parser) skipLiteral() error {
	quote := p.data[p.pos]
	opened := p.line
	p.pos++

	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case quote:
			p.pos++

			return nil
		case '\\':
			p.pos++
			if p.pos >= len(p.data) {
				return p.failAt(ErrUnterminatedConstruct, opened).
					Wrapf("literal %c...%c has no closing quote", quote, quote)
			}

			if p.data[p.pos] == '\n' {
				p.line++
			}
		case '\n':
			p.line++
		}

		p.pos++
	}

	return p.failAt(ErrUnterminatedConstruct, opened).
		Wrapf("literal %c...%c has no closing quote", quote, quote)
}

// skipLineComment advances the cursor to just past the next newline, or
// to end of input. The cursor must be on the leading "//".
func (p *parser) skipLineComment() {
	for p.pos < len(p.data) {
		if p.data[p.pos] == '\n' {
			p.line++
			p.pos++

			return
		}

		p.pos++
	}
}

// skipBlockComment advances the cursor past the closing "*/", counting
// newlines along the way. The cursor must be on the leading "/*". A
// comment with no closing marker is a terminal error, reported at the
// line the comment opened.
func (p *parser) skipBlockComment() error {
	opened := p.line
	p.pos += 2

	for p.pos+1 < len(p.data) {
		if p.data[p.pos] == '*' && p.data[p.pos+1] == '/' {
			p.pos += 2

			return nil
		}

		if p.data[p.pos] == '\n' {
			p.line++
		}

		p.pos++
	}

	// Count any newline in the final unmatched byte before reporting.
	if p.pos < len(p.data) && p.data[p.pos] == '\n' {
		p.line++
	}

	p.pos = len(p.data)

	return p.failAt(ErrUnterminatedConstruct, opened).
		Wrapf("block comment has no closing */")
}

// scanIdent advances the cursor over an identifier/number run and
// returns its start offset. The cursor must be on an identifier byte.
func (p *parser) scanIdent() int {
	start := p.pos
	for p.pos < len(p.data) && isIdentByte(p.data[p.pos]) {
		p.pos++
	}

	return start
}

// atKeyword reports whether the identifier run at [start, p.pos)
// is exactly the configured keyword.
func (p *parser) atKeyword(start int) bool {
	return string(p.data[start:p.pos]) == p.keyword
}

// popDelim verifies that c closes the innermost open delimiter and pops
// it from the stack. A pop with nothing open and a non-matching closer
// are both terminal errors.
func (p *parser) popDelim(stack []byte, c byte) ([]byte, error) {
	if len(stack) == 0 {
		return nil, p.fail(ErrUnbalancedDelimiter).
			Wrapf("too many closing %q", string(c))
	}

	want := stack[len(stack)-1]
	if want != c {
		return nil, p.fail(ErrMismatchedDelimiter).
			Wrapf("expected %q, found %q", string(want), string(c)).
			With(
				slog.String("expected", string(want)),
				slog.String("found", string(c)),
			)
	}

	return stack[:len(stack)-1], nil
}

// fail positions a sentinel at the current cursor line.
func (p *parser) fail(sentinel *Error) *Error {
	return p.failAt(sentinel, p.line)
}

// failAt positions a sentinel at an explicit line.
func (p *parser) failAt(sentinel *Error, line int) *Error {
	return sentinel.At(p.src.File(), line)
}
