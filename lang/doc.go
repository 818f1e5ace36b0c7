// Package lang implements a spreadsheet-style formula language: a tokenizer,
// a precedence-climbing parser, and an evaluator over a tagged value union.
//
// Formulas combine literals, {{name}} variable placeholders, arithmetic and
// comparison operators, text concatenation with &, and function calls whose
// arguments are separated by semicolons:
//
//	=IF({{score}} >= 60; "pass"; "fail")
//
// Evaluation is driven by an [Engine], which resolves function calls through
// a [Registry]. The package-level [Evaluate], [Parse], and [Describe] helpers
// share a default engine and registry.
package lang
