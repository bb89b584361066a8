package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/graphitemaster/lambdapp/log"
	"github.com/graphitemaster/lambdapp/pkg"
	"github.com/graphitemaster/lambdapp/pp"
)

// stdinName is the file identity used in diagnostics and line markers
// when the source is read from standard input.
const stdinName = "<stdin>"

// CLI is the top-level command-line interface for lambda-pp.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Keyword string `default:"lambda" help:"Identifier that introduces a lambda expression." short:"k"`
	Output  string `help:"Write transformed source to file instead of stdout." placeholder:"FILE" short:"o"`

	Version kong.VersionFlag `help:"Print version information and quit." short:"V"`

	File string `arg:"" help:"C source file to expand, or '-' for stdin."`
}

// Run executes the lambda-pp CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version": pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:   true,
				Summary:   true,
				FlagsLast: false,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath+".yaml"),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx)
}

// Run expands the selected source file. It is invoked by kong once flag
// parsing succeeds.
func (c *CLI) Run(ctx context.Context) error {
	src, err := c.load()
	if err != nil {
		return err
	}

	res, err := pp.Parse(src,
		pp.WithKeyword(c.Keyword),
		pp.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "source parsed",
		slog.String("file", src.File()),
		slog.Int("lambdas", len(res.Records)),
	)

	return c.emit(src, res)
}

// load reads the entire source before any output is produced, so that a
// failed translation never emits partial text.
func (c *CLI) load() (*pp.Source, error) {
	if c.File == "-" {
		return pp.LoadSource(stdinName, os.Stdin)
	}

	f, err := os.Open(c.File)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	return pp.LoadSource(c.File, f)
}

// emit generates the transformed source on stdout, or on the file given
// with --output.
func (c *CLI) emit(src *pp.Source, res *pp.Result) error {
	var out io.Writer = os.Stdout

	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
		defer f.Close()

		out = f
	}

	if err := pp.Generate(out, src, res); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	return nil
}
