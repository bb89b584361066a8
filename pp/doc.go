// Package pp implements the lambda-expression expansion engine.
//
// The engine performs a single pass over one C source buffer, locating
// inline anonymous-function expressions of the form
//
//	lambda <return-type>(<args>) { <body> }
//
// wherever a value is expected, to arbitrary nesting depth. Each
// occurrence is hoisted into a named top-level function definition
// (lambda_0, lambda_1, ... ranked by start offset) and the occurrence
// itself is rewritten into the reference expression &lambda_<N>.
//
// Parsing is delimiter-aware rather than grammatical: the scanner skips
// string and character literals and both comment forms, tracks bracket
// balance with an explicit stack, and records the top-level "anchor"
// positions where hoisted forward declarations may legally be inserted
// under declaration-before-use rules, including across preprocessor
// directives. Synthetic #line markers preserve the original line numbers
// for compiler diagnostics.
//
// Typical use:
//
//	src, err := pp.LoadSource("input.c", reader)
//	res, err := pp.Parse(src, pp.WithKeyword("lambda"))
//	err = pp.Generate(out, src, res)
//
// Any structural inconsistency (unbalanced or mismatched delimiters,
// unterminated literals or comments) aborts the whole translation with
// an [*Error] carrying the file and line of the offending character;
// no partial output is produced.
package pp
