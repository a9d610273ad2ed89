// Package fzf implements the fzf integration protocol from
// SPEC_FULL.md §4.6: three build-time UUID handshake tokens, the argv
// sad builds for fzf, and parsing self re-entry (-c <payload>) back
// into a Mode.
package fzf

import (
	"sync"

	"github.com/google/uuid"
)

// These three are overridden at build time via:
//
//	-ldflags "-X github.com/sad-cli/sad/pkg/fzf.previewToken=... \
//	          -X github.com/sad-cli/sad/pkg/fzf.patchToken=... \
//	          -X github.com/sad-cli/sad/pkg/fzf.argvToken=..."
//
// Grounded on the teacher's pkg/version/verison.go ldflags-injected
// version string pattern. They must never be regenerated per run —
// fzf's --preview/--bind flags and the running process must agree on
// the same constant for the entire invocation.
var (
	previewToken string
	patchToken   string
	argvToken    string
)

var fallbackOnce sync.Once

// fallback generates process-lifetime-stable tokens when the build
// didn't inject them (e.g. `go test`, `go run`). It only runs once; a
// real release build always has the ldflags set and never reaches
// this path.
func fallback() {
	fallbackOnce.Do(func() {
		if previewToken == "" {
			previewToken = uuid.NewString()
		}
		if patchToken == "" {
			patchToken = uuid.NewString()
		}
		if argvToken == "" {
			argvToken = uuid.NewString()
		}
	})
}

// PreviewToken is the first field of a -c payload selecting Preview
// mode.
func PreviewToken() string { fallback(); return previewToken }

// PatchToken is the first field of a -c payload selecting Patch mode.
func PatchToken() string { fallback(); return patchToken }

// ArgvToken is the environment variable name under which the original
// argv is replayed to a re-entrant invocation.
func ArgvToken() string { fallback(); return argvToken }
