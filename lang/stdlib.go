package lang

import _ "embed"

// stdlibSource is the standard macro library's source text, embedded
// exactly once at build time, grounded on the teacher's `pkg.Version`
// //go:embed VERSION pattern (pkg/pkg.go).
//
//go:embed stdlib.clj
var stdlibSource string

// StdlibEntries returns the session `entries` slice that installs the
// standard macro library, for callers assembling SessionOptions by hand.
func StdlibEntries() []string {
	return []string{stdlibSource}
}
