// Package cli contains the command line interface for lambda-cc.
//
// lambda-cc is a drop-in compiler front end: it accepts an ordinary C or
// C++ compiler command line, runs lambda-pp over the translation unit, and
// pipes the expanded source into the system compiler on stdin with a
// forced -x language flag:
//
//	lambda-cc -O2 main.c -o prog -lm
//
// expands to the equivalent of:
//
//	lambda-pp main.c | cc -xc -O2 - -o prog -lm
//
// The compiler is resolved through $CC, then $CXX, then well-known
// toolchain names on $PATH. The lambda-pp executable is resolved through
// $LAMBDA_PP (the directory containing it), then the driver's own
// directory, then $PATH. Command lines without a source file are forwarded
// to the compiler untouched, so the driver also works for link steps.
package cli
