//go:build windows

package env

import (
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

var allowedEnv = map[string]bool{
	"HOME":             true,
	"PATH":             true,
	"TZ":               true,
	"LANG":             true,
	"LC_ALL":           true,
	"TERM":             true,
	"SHELL":            true,
	"TEMP":             true,
	"TMP":              true,
	"all_proxy":        true,
	"http_proxy":       true,
	"HTTP_PROXY":       true,
	"https_proxy":      true,
	"HTTPS_PROXY":      true,
	"no_proxy":         true,
	"NO_PROXY":         true,
	"NO_COLOR":         true,
	"PAGER":            true,
	"FZF_DEFAULT_OPTS": true,
}

// Environ is the sanitized environment (sorted, allowlisted) that
// modules/command gives a child when the caller passes no environment.
// fzf and the pager are started with SanitizerEnv's output instead.
var Environ = sync.OnceValue(func() []string {
	originEnv := os.Environ()
	sanitizedEnv := make([]string, 0, len(originEnv))
	for _, s := range originEnv {
		k, _, ok := strings.Cut(s, "=")
		if !ok || !allowedEnv[k] {
			continue
		}
		sanitizedEnv = append(sanitizedEnv, s)
	}
	slices.Sort(sanitizedEnv) // order by
	return sanitizedEnv
})

// DelayInitializeEnv dedupes PATH once at startup.
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
