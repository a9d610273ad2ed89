// Package term detects whether standard output/error are interactive
// terminals, which gates color rendering and the fzf hand-off. Pager
// selection does not consult it.
package term

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/sad-cli/sad/modules/env"
)

// IsTerminal reports whether fd is a real or cygwin/msys2 pty terminal.
func IsTerminal(fd uintptr) bool {
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)
}

var (
	// StdoutIsTTY and StderrIsTTY are resolved once at process start; the
	// pipeline never reopens or reassigns os.Stdout/os.Stderr mid-run.
	StdoutIsTTY = IsTerminal(os.Stdout.Fd())
	StderrIsTTY = IsTerminal(os.Stderr.Fd())
)

// UseColor reports whether output to a stream should be colorized:
// SAD_FORCE_COLOR, when set, overrides the TTY/NO_COLOR checks outright;
// otherwise the stream must be a terminal and NO_COLOR must be unset, per
// https://no-color.org.
func UseColor(isTTY bool) bool {
	if _, forced := os.LookupEnv(string(env.SAD_FORCE_COLOR)); forced {
		return env.SAD_FORCE_COLOR.SimpleAtob(isTTY)
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return isTTY
}
