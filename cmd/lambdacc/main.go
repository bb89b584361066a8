package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"

	"github.com/graphitemaster/lambdapp/cmd/lambdacc/cli"
	"github.com/graphitemaster/lambdapp/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// A failed toolchain subprocess already printed its own
		// diagnostics; just forward its exit code.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}

		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
