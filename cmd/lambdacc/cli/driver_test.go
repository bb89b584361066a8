package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/graphitemaster/lambdapp/pkg"
)

func TestSplitInvocation(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
		want invocation
	}{
		{
			name: "link only",
			args: []string{"foo.o", "bar.o", "-o", "prog"},
			want: invocation{output: "a.out"},
		},
		{
			name: "simple compile",
			args: []string{"main.c"},
			want: invocation{
				source: "main.c",
				output: "a.out",
			},
		},
		{
			name: "explicit output",
			args: []string{"-O2", "main.c", "-o", "prog", "-lm"},
			want: invocation{
				source: "main.c",
				output: "prog",
				before: []string{"-O2"},
				after:  []string{"-lm"},
			},
		},
		{
			name: "cpp source",
			args: []string{"main.cpp", "-o", "prog"},
			want: invocation{
				source: "main.cpp",
				cpp:    true,
				output: "prog",
			},
		},
		{
			name: "cc source",
			args: []string{"main.cc"},
			want: invocation{
				source: "main.cc",
				cpp:    true,
				output: "a.out",
			},
		},
		{
			name: "suffix only at end of name",
			args: []string{"include.c.d", "main.c"},
			want: invocation{
				source: "main.c",
				output: "a.out",
				before: []string{"include.c.d"},
			},
		},
		{
			// The split stops at -o, so a source file named after the
			// output is forwarded to the compiler verbatim alongside the
			// expanded stdin unit. Name the source before -o to expand it.
			name: "output before source",
			args: []string{"-o", "prog", "main.c"},
			want: invocation{
				source: "main.c",
				output: "prog",
				after:  []string{"main.c"},
			},
		},
		{
			name: "dangling -o ignored",
			args: []string{"main.c", "-o"},
			want: invocation{
				source: "main.c",
				output: "a.out",
				before: []string{"-o"},
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := splitInvocation(tt.args)

			if got.source != tt.want.source {
				t.Errorf("source = %q, want %q", got.source, tt.want.source)
			}

			if got.cpp != tt.want.cpp {
				t.Errorf("cpp = %v, want %v", got.cpp, tt.want.cpp)
			}

			if got.output != tt.want.output {
				t.Errorf("output = %q, want %q", got.output, tt.want.output)
			}

			if !slices.Equal(got.before, tt.want.before) {
				t.Errorf("before = %q, want %q", got.before, tt.want.before)
			}

			if !slices.Equal(got.after, tt.want.after) {
				t.Errorf("after = %q, want %q", got.after, tt.want.after)
			}
		})
	}
}

func TestInvocationCompileArgs(t *testing.T) {
	inv := invocation{
		source: "main.c",
		output: "prog",
		before: []string{"-O2", "-Wall"},
		after:  []string{"-lm"},
	}

	want := []string{"-xc", "-O2", "-Wall", "-", "-o", "prog", "-lm"}
	if got := inv.compileArgs(); !slices.Equal(got, want) {
		t.Errorf("compileArgs() = %q, want %q", got, want)
	}

	inv.cpp = true

	if got := inv.compileArgs(); got[0] != "-xc++" {
		t.Errorf("compileArgs()[0] = %q, want %q", got[0], "-xc++")
	}
}

// writeExecutable creates an executable fixture file under dir.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	return p
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	want := writeExecutable(t, dir, "tool")

	// Non-executable and directory entries must be skipped.
	other := t.TempDir()
	if err := os.WriteFile(filepath.Join(other, "tool"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	pathEnv := other + string(os.PathListSeparator) + dir

	got, ok := lookPath(pathEnv, "tool")
	if !ok {
		t.Fatal("lookPath() found nothing")
	}

	if got != want {
		t.Errorf("lookPath() = %q, want %q", got, want)
	}

	if _, ok := lookPath(pathEnv, "missing"); ok {
		t.Error("lookPath() found a nonexistent tool")
	}
}

func TestFindCompiler(t *testing.T) {
	dir := t.TempDir()
	gcc := writeExecutable(t, dir, "gcc")

	env := func(m map[string]string) func(string) string {
		return func(key string) string { return m[key] }
	}

	t.Run("CC wins", func(t *testing.T) {
		got, err := findCompiler(env(map[string]string{"CC": "mycc"}), dir)
		if err != nil || got != "mycc" {
			t.Errorf("findCompiler() = %q, %v; want %q", got, err, "mycc")
		}
	})

	t.Run("CXX second", func(t *testing.T) {
		got, err := findCompiler(env(map[string]string{"CXX": "myc++"}), dir)
		if err != nil || got != "myc++" {
			t.Errorf("findCompiler() = %q, %v; want %q", got, err, "myc++")
		}
	})

	t.Run("path fallback", func(t *testing.T) {
		got, err := findCompiler(env(nil), dir)
		if err != nil || got != gcc {
			t.Errorf("findCompiler() = %q, %v; want %q", got, err, gcc)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := findCompiler(env(nil), t.TempDir())
		if !errors.Is(err, pkg.ErrNoCompiler) {
			t.Errorf("findCompiler() error = %v, want %v", err, pkg.ErrNoCompiler)
		}
	})
}

func TestFindPreprocessor(t *testing.T) {
	env := func(m map[string]string) func(string) string {
		return func(key string) string { return m[key] }
	}

	t.Run("LAMBDA_PP names the directory", func(t *testing.T) {
		got, err := findPreprocessor(
			env(map[string]string{"LAMBDA_PP": "/opt/lambdapp"}),
			".", "",
		)
		if err != nil {
			t.Fatalf("findPreprocessor() error = %v", err)
		}

		if want := filepath.Join("/opt/lambdapp", pkg.Name); got != want {
			t.Errorf("findPreprocessor() = %q, want %q", got, want)
		}
	})

	t.Run("executable directory precedes PATH", func(t *testing.T) {
		exeDir := t.TempDir()
		want := writeExecutable(t, exeDir, pkg.Name)

		pathDir := t.TempDir()
		writeExecutable(t, pathDir, pkg.Name)

		got, err := findPreprocessor(env(nil), exeDir, pathDir)
		if err != nil {
			t.Fatalf("findPreprocessor() error = %v", err)
		}

		if got != want {
			t.Errorf("findPreprocessor() = %q, want %q", got, want)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := findPreprocessor(env(nil), t.TempDir(), t.TempDir())
		if !errors.Is(err, pkg.ErrNoPreprocessor) {
			t.Errorf("findPreprocessor() error = %v, want %v",
				err, pkg.ErrNoPreprocessor)
		}
	})
}
