// Package sink implements the SINK stage (SPEC_FULL.md §4.5): draining
// OutputRecords to stdout, a pager, or fzf's stdin.
package sink

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/kballard/go-shellquote"

	"github.com/sad-cli/sad/modules/command"
	"github.com/sad-cli/sad/modules/env"
	"github.com/sad-cli/sad/pkg/model"
)

// Drain writes every record from in to dst, via a buffered writer.
// Writing is best-effort: a broken pipe ends the drain cleanly; any
// other write error is returned for the caller to wrap as an IO
// failure.
func Drain(in <-chan model.OutputRecord, dst io.Writer) error {
	w := bufio.NewWriter(dst)
	for rec := range in {
		if _, err := w.Write(rec.Data); err != nil {
			if isBrokenPipe(err) {
				return nil
			}
			return err
		}
	}
	return w.Flush()
}

func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

// Stdout drains in directly to os.Stdout.
func Stdout(in <-chan model.OutputRecord) error {
	return Drain(in, os.Stdout)
}

// Pager spawns cmd under a command.Shepherd, inherits stdout/stderr,
// pipes in to its stdin, and waits for it to exit. Using
// modules/command instead of a bare exec.CommandContext means a
// cancelled ctx sends the child SIGTERM (cleanExit) rather than the
// default SIGKILL, giving fzf/the pager a chance to restore the
// terminal.
func Pager(ctx context.Context, in <-chan model.OutputRecord, cmd model.SubprocCommand) error {
	c := command.NewFromOptions(ctx, &command.RunOpts{
		RepoPath: command.NoDir,
		Environ:  cmd.Env,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}, cmd.Prog, cmd.Args...)
	stdin, err := c.StdinPipe()
	if err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return err
	}
	drainErr := Drain(in, stdin)
	_ = stdin.Close()
	waitErr := c.Wait()
	if drainErr != nil {
		return drainErr
	}
	return waitErr
}

// ResolvePager implements the printer-selection precedence from
// SPEC_FULL.md §4.5/§4.7: an explicit "never" or user-supplied pager
// string wins; otherwise $GIT_PAGER, then delta, then diff-so-fancy on
// PATH; otherwise Stdout (returned as a zero SubprocCommand and ok=false).
func ResolvePager(userPager string) (model.SubprocCommand, bool) {
	candidate := userPager
	if candidate == "never" {
		return model.SubprocCommand{}, false
	}
	if candidate == "" {
		candidate = os.Getenv("GIT_PAGER")
	}
	if candidate == "" {
		if _, err := env.LookupBinary("delta"); err == nil {
			candidate = "delta"
		}
	}
	if candidate == "" {
		if _, err := env.LookupBinary("diff-so-fancy"); err == nil {
			candidate = "diff-so-fancy"
		}
	}
	if candidate == "" {
		return model.SubprocCommand{}, false
	}
	words, err := shellquote.Split(candidate)
	if err != nil || len(words) == 0 {
		return model.SubprocCommand{}, false
	}
	prog, lookErr := env.LookupBinary(words[0])
	if lookErr != nil {
		return model.SubprocCommand{}, false
	}
	return model.SubprocCommand{
		Prog: prog,
		Args: words[1:],
		Env:  env.SanitizerEnv("PAGER", "LESS", "LV"),
	}, true
}
