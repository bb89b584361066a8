package pp

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRecords(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		opts  []Option
		want  int // number of records
	}{
		{
			name:  "empty input",
			input: "",
			want:  0,
		},
		{
			name:  "no lambda",
			input: "int main(void) { return 0; }\n",
			want:  0,
		},
		{
			name:  "single lambda",
			input: "int (*f)(void) = lambda int(void) { return 1; };\n",
			want:  1,
		},
		{
			name: "nested lambda",
			input: "void (*f)(void) = lambda void(void) {\n" +
				"\tg(lambda int(void) { return 2; });\n" +
				"};\n",
			want: 2,
		},
		{
			name:  "keyword requires exact match",
			input: "int lambdax = 1;\nint xlambda = 2;\nint lambda2 = 3;\n",
			want:  0,
		},
		{
			name:  "keyword inside string literal",
			input: "const char *s = \"lambda int(void) { return 1; }\";\n",
			want:  0,
		},
		{
			name:  "keyword inside char literal",
			input: "int c = 'l'; /* not: */ const char *s = \"x\";\n",
			want:  0,
		},
		{
			name:  "keyword inside line comment",
			input: "// lambda int(void) { return 1; }\nint x;\n",
			want:  0,
		},
		{
			name:  "keyword inside block comment",
			input: "/* lambda int(void)\n{ return 1; } */\nint x;\n",
			want:  0,
		},
		{
			name:  "custom keyword",
			input: "int (*f)(void) = fn int(void) { return 1; };\n",
			opts:  []Option{WithKeyword("fn")},
			want:  1,
		},
		{
			name:  "custom keyword ignores default",
			input: "int lambda = 5; int (*f)(void) = fn int(void) { return lambda; };\n",
			opts:  []Option{WithKeyword("fn")},
			want:  1,
		},
		{
			name:  "escaped quote in literal",
			input: "const char *s = \"\\\"lambda\\\"\"; int x;\n",
			want:  0,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(NewSource("test.c", []byte(tt.input)), tt.opts...)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if got := len(res.Records); got != tt.want {
				t.Errorf("Parse() records = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseRecordSpans(t *testing.T) {
	input := "int (*f)(void) = lambda const char *(int n) { return 0; };\n"

	src := NewSource("spans.c", []byte(input))

	res, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(res.Records))
	}

	rec := res.Records[0]

	if got, want := rec.Start, strings.Index(input, "lambda"); got != want {
		t.Errorf("Start = %d, want %d", got, want)
	}

	if got, want := string(src.Slice(rec.Type)), "const char *"; got != want {
		t.Errorf("Type = %q, want %q", got, want)
	}

	if got, want := string(src.Slice(rec.Args)), "(int n)"; got != want {
		t.Errorf("Args = %q, want %q", got, want)
	}

	if got, want := string(src.Slice(rec.Body)), "{ return 0; }"; got != want {
		t.Errorf("Body = %q, want %q", got, want)
	}

	if rec.TypeLine != 1 || rec.BodyLine != 1 || rec.EndLine != 1 {
		t.Errorf("lines = %d/%d/%d, want 1/1/1",
			rec.TypeLine, rec.BodyLine, rec.EndLine)
	}
}

func TestParseRecordLines(t *testing.T) {
	input := "void (*f)(void) =\n" +
		"\tlambda\n" +
		"\tvoid(void)\n" +
		"\t{\n" +
		"\t\twork();\n" +
		"\t};\n"

	res, err := Parse(NewSource("lines.c", []byte(input)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(res.Records))
	}

	rec := res.Records[0]

	if rec.TypeLine != 3 {
		t.Errorf("TypeLine = %d, want 3", rec.TypeLine)
	}

	if rec.BodyLine != 4 {
		t.Errorf("BodyLine = %d, want 4", rec.BodyLine)
	}

	if rec.EndLine != 6 {
		t.Errorf("EndLine = %d, want 6", rec.EndLine)
	}
}

func TestParseFunctionPointerReturnType(t *testing.T) {
	input := "f = lambda (int (*)(int))(int n) { return handler; };\n"

	src := NewSource("fp.c", []byte(input))

	res, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(res.Records) != 1 {
		t.Fatalf("Parse() records = %d, want 1", len(res.Records))
	}

	rec := res.Records[0]

	if got, want := string(src.Slice(rec.Type)), "(int (*)(int))"; got != want {
		t.Errorf("Type = %q, want %q", got, want)
	}

	if got, want := string(src.Slice(rec.Args)), "(int n)"; got != want {
		t.Errorf("Args = %q, want %q", got, want)
	}
}

func TestParseRecordOrdering(t *testing.T) {
	input := "void (*f)(void) = lambda void(void) {\n" +
		"\tg(lambda int(void) { return 2; });\n" +
		"\th(lambda int(void) { return 3; });\n" +
		"};\n"

	res, err := Parse(NewSource("order.c", []byte(input)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(res.Records) != 3 {
		t.Fatalf("Parse() records = %d, want 3", len(res.Records))
	}

	// The enclosing lambda starts first and must rank first, even though
	// the nested records seal before it does.
	for i := 1; i < len(res.Records); i++ {
		if res.Records[i].Start <= res.Records[i-1].Start {
			t.Errorf("records[%d].Start = %d, not after records[%d].Start = %d",
				i, res.Records[i].Start, i-1, res.Records[i-1].Start)
		}
	}

	outer := res.Records[0]
	for i, rec := range res.Records[1:] {
		if !outer.Contains(rec) {
			t.Errorf("records[0] does not contain records[%d]", i+1)
		}
	}
}

func TestParseAnchors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		want  []Anchor
	}{
		{
			name:  "start of input",
			input: "int x;\n",
			want:  []Anchor{{Pos: 0, Line: 1}},
		},
		{
			name:  "after statement",
			input: "int x;\nint y;\n",
			want:  []Anchor{{Pos: 0, Line: 1}, {Pos: 7, Line: 2}},
		},
		{
			name:  "after directive",
			input: "#include <stdio.h>\nint x;\n",
			want:  []Anchor{{Pos: 0, Line: 1}, {Pos: 19, Line: 2}},
		},
		{
			name:  "after function definition",
			input: "void f(void) { }\nint x;\n",
			want:  []Anchor{{Pos: 0, Line: 1}, {Pos: 17, Line: 2}},
		},
		{
			name:  "leading whitespace skipped",
			input: "\n\n  int x;\n",
			want:  []Anchor{{Pos: 4, Line: 3}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(NewSource("anchor.c", []byte(tt.input)))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if len(res.Anchors) != len(tt.want) {
				t.Fatalf("Parse() anchors = %+v, want %+v", res.Anchors, tt.want)
			}

			for i, want := range tt.want {
				if res.Anchors[i] != want {
					t.Errorf("anchors[%d] = %+v, want %+v", i, res.Anchors[i], want)
				}
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		want  *Error
		line  int // 0 means do not check
	}{
		{
			name:  "unclosed brace",
			input: "int main(void) {\n",
			want:  ErrUnbalancedDelimiter,
		},
		{
			name:  "stray closer",
			input: ")\n",
			want:  ErrUnbalancedDelimiter,
			line:  1,
		},
		{
			name:  "mismatched closer",
			input: "void f() {\n\tint x = (1\n\t];\n}\n",
			want:  ErrMismatchedDelimiter,
			line:  3,
		},
		{
			name:  "truncated lambda body",
			input: "int x = lambda int(void) {\n",
			want:  ErrUnbalancedDelimiter,
		},
		{
			name:  "lambda without argument list",
			input: "int x = lambda int\n",
			want:  ErrUnbalancedDelimiter,
		},
		{
			name:  "unterminated string",
			input: "const char *s = \"abc;\n",
			want:  ErrUnterminatedConstruct,
			line:  1,
		},
		{
			name:  "unterminated string reports opening line",
			input: "int x;\nint y;\nconst char *s = \"abc\\\n",
			want:  ErrUnterminatedConstruct,
			line:  3,
		},
		{
			name:  "unterminated block comment",
			input: "int x;\n/* comment\n",
			want:  ErrUnterminatedConstruct,
			line:  2,
		},
		{
			name:  "nesting too deep",
			input: strings.Repeat("lambda void(void) { ", 300),
			want:  ErrNestingTooDeep,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(NewSource("bad.c", []byte(tt.input)))
			if err == nil {
				t.Fatal("Parse() error = nil")
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse() error type = %T, want *Error", err)
			}

			if perr.File() != "bad.c" {
				t.Errorf("File() = %q, want %q", perr.File(), "bad.c")
			}

			if tt.line != 0 && perr.Line() != tt.line {
				t.Errorf("Line() = %d, want %d", perr.Line(), tt.line)
			}
		})
	}
}

func TestErrorFormat(t *testing.T) {
	for _, tt := range []struct {
		name string
		err  error
		want string
	}{
		{
			name: "sentinel",
			err:  ErrMismatchedDelimiter,
			want: "mismatched delimiter",
		},
		{
			name: "positioned",
			err:  ErrUnbalancedDelimiter.At("a.c", 12),
			want: "a.c:12 error: unbalanced delimiter",
		},
		{
			name: "positioned with cause",
			err:  ErrUnterminatedConstruct.At("a.c", 3).Wrapf("no closing quote"),
			want: "a.c:3 error: unterminated construct: no closing quote",
		},
		{
			name: "file without line",
			err:  ErrReadInput.At("a.c", 0),
			want: "a.c: error: failed to read input",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

type failReader struct{ err error }

func (r failReader) Read([]byte) (int, error) { return 0, r.err }

func TestLoadSourceError(t *testing.T) {
	cause := errors.New("device gone")

	_, err := LoadSource("dev.c", failReader{err: cause})
	if err == nil {
		t.Fatal("LoadSource() error = nil")
	}

	if !errors.Is(err, ErrReadInput) {
		t.Errorf("LoadSource() error = %v, want %v", err, ErrReadInput)
	}

	if !errors.Is(err, cause) {
		t.Errorf("LoadSource() error does not wrap cause: %v", err)
	}
}
