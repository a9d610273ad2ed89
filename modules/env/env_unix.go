//go:build !windows

package env

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// allowedEnv is the allowlist Environ keeps: broad enough that locale,
// proxy and terminal settings still work, narrow enough that a child
// started with it doesn't see its parent's full environment.
var allowedEnv = map[string]bool{
	"HOME":             true,
	"PATH":             true,
	"TZ":               true,
	"LANG":             true,
	"LC_ALL":           true,
	"TERM":             true,
	"COLORTERM":        true,
	"SHELL":            true,
	"TEMP":             true,
	"TMPDIR":           true,
	"LD_LIBRARY_PATH":  true,
	"all_proxy":        true,
	"http_proxy":       true,
	"HTTP_PROXY":       true,
	"https_proxy":      true,
	"HTTPS_PROXY":      true,
	"no_proxy":         true,
	"NO_PROXY":         true,
	"NO_COLOR":         true,
	"PAGER":            true,
	"GIT_PAGER":        true,
	"FZF_DEFAULT_OPTS": true,
}

// Environ is the sanitized environment (sorted, allowlisted) that
// modules/command gives a child when the caller passes no environment.
// fzf and the pager are started with SanitizerEnv's output instead.
var Environ = sync.OnceValue(func() []string {
	origin := os.Environ()
	cleanEnv := make([]string, 0, len(origin))
	for _, s := range origin {
		k, _, ok := strings.Cut(s, "=")
		if !ok {
			continue
		}
		if !allowedEnv[k] {
			continue
		}
		cleanEnv = append(cleanEnv, s)
	}
	slices.Sort(cleanEnv) // order by
	return cleanEnv
})

// DelayInitializeEnv dedupes and cleans PATH once at startup, so repeated
// LookupBinary calls don't pay for a PATH with duplicate entries
// (compared case-insensitively after filepath.Clean). Empty and "."
// entries are dropped; other relative entries are kept.
func DelayInitializeEnv() error {
	pathEnv := os.Getenv("PATH")
	pathList := strings.Split(pathEnv, string(os.PathListSeparator))
	pathNewList := make([]string, 0, len(pathList))
	seen := make(map[string]bool)
	for _, p := range pathList {
		cleanedPath := filepath.Clean(p)
		if cleanedPath == "." {
			continue
		}
		u := strings.ToLower(cleanedPath)
		if seen[u] {
			continue
		}
		seen[u] = true
		pathNewList = append(pathNewList, cleanedPath)
	}
	_ = os.Setenv("PATH", strings.Join(pathNewList, string(os.PathListSeparator)))
	return nil
}

// LookupBinary resolves name (a pager, fzf, delta, diff-so-fancy, ...)
// against PATH.
func LookupBinary(name string) (string, error) {
	return exec.LookPath(name)
}
