package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/graphitemaster/lambdapp/cli"
	"github.com/graphitemaster/lambdapp/log"
	"github.com/graphitemaster/lambdapp/pp"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Parse errors carry their own file:line diagnostic format, which
		// downstream tooling matches against compiler output.
		var perr *pp.Error
		if errors.As(err, &perr) {
			fmt.Fprintln(os.Stderr, perr)
		} else {
			log.Error(
				"run failed",
				slog.Any("error", err),
			) // slog automatically uses LogValue()
		}

		os.Exit(1)
	}
}
