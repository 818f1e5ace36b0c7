// Package cmd implements the eval, describe, and repl subcommands of the
// cellang command-line interface.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"
)
