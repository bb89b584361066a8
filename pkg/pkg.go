//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the lambdapp module embedded at build
// time. It is printed by both CLIs when users pass the version flag.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier of the expansion
	// engine. It appears in help text and default config paths.
	Name = "lambda-pp"
	// Description is a short, human-readable summary of the engine used in
	// help output.
	Description = "Inline anonymous-function expansion preprocessor for C"

	// DriverName is the command identifier of the companion compiler driver.
	DriverName = "lambda-cc"
	// DriverDescription summarizes the compiler driver for help output.
	DriverDescription = "Compiler driver that expands lambdas before invoking the system compiler"
)
