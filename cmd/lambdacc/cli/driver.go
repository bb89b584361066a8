package cli

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/graphitemaster/lambdapp/log"
	"github.com/graphitemaster/lambdapp/pkg"
)

// sourceExts are the recognized translation-unit suffixes. The first entry
// selects the C language; every later entry selects C++.
var sourceExts = []string{".c", ".cc", ".cx", ".cxx", ".cpp"}

// compilers are the toolchain names probed on the search path when neither
// $CC nor $CXX is set.
var compilers = []string{"cc", "gcc", "clang", "pathcc", "tcc"}

// invocation is one compiler command line split around its source file and
// its -o flag, so that the expanded translation unit can be spliced in on
// stdin where the source file used to be.
type invocation struct {
	source string // translation unit, empty for link-only invocations
	cpp    bool
	output string
	before []string // arguments preceding -o, source file removed
	after  []string // arguments following -o <output>
}

// splitInvocation classifies the forwarded compiler arguments. The first
// argument ending in a recognized source suffix is the translation unit;
// the first -o with a following value names the output, defaulting to
// a.out otherwise.
func splitInvocation(args []string) invocation {
	inv := invocation{output: "a.out"}

	srcIdx := -1

	for i, arg := range args {
		for n, ext := range sourceExts {
			if strings.HasSuffix(arg, ext) {
				inv.source = arg
				inv.cpp = n > 0
				srcIdx = i

				break
			}
		}

		if srcIdx >= 0 {
			break
		}
	}

	if srcIdx < 0 {
		return inv
	}

	stop := len(args)

	for i, arg := range args {
		if arg == "-o" && i+1 < len(args) {
			inv.output = args[i+1]
			stop = i

			break
		}
	}

	for i := 0; i < stop; i++ {
		if i == srcIdx {
			continue
		}

		inv.before = append(inv.before, args[i])
	}

	if stop+2 < len(args) {
		inv.after = append(inv.after, args[stop+2:]...)
	}

	return inv
}

// lang returns the forced source-language name passed to the compiler's -x
// flag. Piping on stdin hides the file suffix, so the language must be
// stated explicitly.
func (v invocation) lang() string {
	if v.cpp {
		return "c++"
	}

	return "c"
}

// compileArgs assembles the wrapped compiler's argument list, with stdin
// standing in for the removed source file.
func (v invocation) compileArgs() []string {
	args := make([]string, 0, len(v.before)+len(v.after)+4)

	args = append(args, "-x"+v.lang())
	args = append(args, v.before...)
	args = append(args, "-", "-o", v.output)
	args = append(args, v.after...)

	return args
}

// lookPath searches an explicit PATH-like string for an executable file.
// Unlike exec.LookPath it does not consult the process environment, so the
// caller controls exactly which directories are probed.
func lookPath(pathEnv, name string) (string, bool) {
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}

		p := filepath.Join(dir, name)

		info, err := os.Stat(p)
		if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
			continue
		}

		return p, true
	}

	return "", false
}

// findCompiler resolves the wrapped compiler: $CC, then $CXX, then the
// first known toolchain name found on the search path.
func findCompiler(getenv func(string) string, pathEnv string) (string, error) {
	for _, key := range []string{"CC", "CXX"} {
		if cc := getenv(key); cc != "" {
			return cc, nil
		}
	}

	for _, name := range compilers {
		if p, ok := lookPath(pathEnv, name); ok {
			return p, nil
		}
	}

	return "", pkg.ErrNoCompiler
}

// findPreprocessor resolves the lambda-pp executable. $LAMBDA_PP names the
// directory containing it; otherwise the driver's own directory is
// prefixed onto the search path, so an adjacent lambda-pp wins over any
// installed one.
func findPreprocessor(
	getenv func(string) string,
	exeDir, pathEnv string,
) (string, error) {
	if dir := getenv("LAMBDA_PP"); dir != "" {
		return filepath.Join(dir, pkg.Name), nil
	}

	search := mung.Make(
		mung.WithSubjectItems(pathEnv),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(exeDir),
	).String()

	if p, ok := lookPath(search, pkg.Name); ok {
		return p, nil
	}

	return "", pkg.ErrNoPreprocessor
}

// Run expands the source file named on the command line and pipes the
// result into the system compiler. It is invoked by kong once flag parsing
// succeeds.
func (c *CLI) Run(ctx context.Context) error {
	pathEnv := os.Getenv("PATH")

	cc, err := findCompiler(os.Getenv, pathEnv)
	if err != nil {
		return err
	}

	inv := splitInvocation(c.Args)

	// No translation unit means the compiler is being used to drive the
	// linker; forward the invocation untouched.
	if inv.source == "" {
		log.DebugContext(ctx, "link-only invocation",
			slog.String("compiler", cc),
		)

		link := exec.CommandContext(ctx, cc, c.Args...)
		link.Stdin = os.Stdin
		link.Stdout = os.Stdout
		link.Stderr = os.Stderr

		return link.Run()
	}

	exeDir := "."
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	pp, err := findPreprocessor(os.Getenv, exeDir, pathEnv)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "compile invocation",
		slog.String("compiler", cc),
		slog.String("preprocessor", pp),
		slog.String("source", inv.source),
		slog.String("output", inv.output),
		slog.Bool("cpp", inv.cpp),
	)

	return pipeline(ctx, pp, cc, inv)
}

// pipeline runs `<pp> <source> | <cc> -x<lang> <before> - -o <output>
// <after>`. A failed expansion aborts the compilation.
func pipeline(ctx context.Context, pp, cc string, inv invocation) error {
	expand := exec.CommandContext(ctx, pp, inv.source)
	expand.Stderr = os.Stderr

	pipe, err := expand.StdoutPipe()
	if err != nil {
		return pkg.MakeError(err).Wrapf("failed to pipe %s", pkg.Name)
	}

	compile := exec.CommandContext(ctx, cc, inv.compileArgs()...)
	compile.Stdin = pipe
	compile.Stdout = os.Stdout
	compile.Stderr = os.Stderr

	if err := expand.Start(); err != nil {
		return pkg.MakeError(err).Wrapf("failed to start %s", pkg.Name)
	}

	if err := compile.Start(); err != nil {
		_ = expand.Process.Kill()
		_ = expand.Wait()

		return pkg.MakeError(err).Wrapf("failed to start compiler")
	}

	if err := expand.Wait(); err != nil {
		// lambda-pp produces no output on error, but make sure the
		// compiler never turns a failed expansion into an artifact.
		_ = compile.Process.Kill()
		_ = compile.Wait()

		return pkg.MakeError(err).Wrapf("%s failed", pkg.Name)
	}

	return compile.Wait()
}
