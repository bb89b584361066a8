package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/graphitemaster/lambdapp/pkg"
)

// CLI is the top-level command-line interface for lambda-cc.
//
// Only the leading flags belong to the driver itself; everything from the
// first positional argument on is the wrapped compiler invocation and is
// forwarded untouched.
type CLI struct {
	Log logConfig `embed:"" group:"log" prefix:"log-"`

	Version kong.VersionFlag `help:"Print version information and quit." short:"V"`

	Args []string `arg:"" help:"Compiler arguments." passthrough:""`
}

// Run executes the lambda-cc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	vars := kong.Vars{
		"version": pkg.DriverName + " " + pkg.Version,
	}.CloneWith(cli.Log.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.DriverName),
		kong.Description(pkg.DriverDescription),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group()},
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
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	return ktx.Run(ctx)
}
