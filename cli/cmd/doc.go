// Package cmd implements the clj CLI's subcommands: eval, fmt, and init.
//
// Each subcommand is a thin wrapper around the lang package's public
// Session/Parse/PrintString API; none of them reach into interpreter
// internals. The repl subcommand lives in its own sub-package since it
// pulls in the bubbletea UI stack.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// to the default configuration file.
	ConfigIdentifier = "config"
)
