// Package repl implements an interactive read-eval-print loop for formulas.
//
// The prompt evaluates each submitted line against a shared variable scope,
// completes function and variable names with fuzzy matching, and persists
// input history across sessions.
package repl
