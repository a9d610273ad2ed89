package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sad-cli/sad/modules/env"
	"github.com/sad-cli/sad/pkg/cliargs"
	"github.com/sad-cli/sad/pkg/fzf"
	"github.com/sad-cli/sad/pkg/logging"
	"github.com/sad-cli/sad/pkg/model"
	"github.com/sad-cli/sad/pkg/pipeline"
	"github.com/sad-cli/sad/pkg/sink"
	"github.com/sad-cli/sad/pkg/version"
)

func main() {
	if err := env.DelayInitializeEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "sad: %v\n", err)
	}
	os.Exit(run(os.Args[1:]))
}

// run is the full top-to-bottom wiring: argv -> Options -> PATH SOURCE
// -> DISPLACER POOL -> SINK, self re-entering into Preview/Patch mode
// when fzf calls this same binary back.
func run(argv []string) int {
	cwd, _ := os.Getwd()

	if mode, reArgv, ok, err := fzf.ParseReentry(argv); ok {
		if err != nil {
			fmt.Fprintf(os.Stderr, "sad: %v\n", err)
			return 1
		}
		return runReentrant(mode, reArgv, cwd)
	}

	parsed, err := cliargs.Parse(argv, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sad: %v\n", err)
		return 1
	}
	if parsed.ShowVersion {
		fmt.Println(version.GetVersionString())
		return 0
	}
	logging.Init(parsed.Options.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	abort := pipeline.NewAbort(ctx)
	go func() {
		<-ctx.Done()
		abort.Send(model.Interrupt{})
	}()

	opts := parsed.Options
	opts.Cwd = cwd
	paths := pipeline.ReadPaths(os.Stdin, opts.Read0, abort)
	out := pipeline.Run(&opts, abort, paths)

	if _, isFzf := opts.Action.(model.ActionFzfPreview); isFzf {
		runFzf(abort, parsed, argv, out)
	} else {
		drain(abort, opts, out)
	}

	return report(abort)
}

// runReentrant handles -c <payload> invocations: rebuild Options from
// the argv replayed through the ARGV_TOKEN environment variable, switch
// to Preview or Commit, and drive the pipeline over the hunk records in
// the handshake file the payload names (fzf's {+f} temp file).
func runReentrant(mode model.Mode, reArgv []string, cwd string) int {
	parsed, err := cliargs.Parse(reArgv, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sad: %v\n", err)
		return 1
	}
	opts := parsed.Options
	opts.Cwd = cwd
	opts.Mode = mode

	var path string
	switch m := mode.(type) {
	case model.ModePreview:
		opts.Action = model.ActionPreview{}
		path = m.Path
	case model.ModePatch:
		opts.Action = model.ActionCommit{}
		path = m.Path
	}

	abort := pipeline.NewAbort(context.Background())
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sad: %v\n", err)
		return 1
	}
	defer f.Close()

	paths := pipeline.ReadHandshake(f, abort)
	out := pipeline.Run(&opts, abort, paths)
	if err := sink.Stdout(out); err != nil {
		abort.Send(model.IO{Path: path, Err: err})
	}
	return report(abort)
}

// runFzf spawns fzf over the ActionFzfPreview handshake stream and lets
// fzf itself re-invoke this binary (via Build's --preview/--bind
// tokens) for previews and the final patch commit.
func runFzf(abort *pipeline.Abort, parsed cliargs.Parsed, argv []string, out <-chan model.OutputRecord) {
	// The full original argv is replayed verbatim via ARGV_TOKEN so a
	// -c re-invocation reconstructs byte-identical Options by running
	// the same cliargs.Parse again.
	cmd, err := fzf.Build(parsed.FzfBin, argv, parsed.FzfArgs)
	if err != nil {
		abort.Send(model.IO{Path: "<fzf>", Err: err})
		return
	}
	if err := sink.Pager(abort.Context(), out, cmd); err != nil {
		if exit, ok := asExitError(err); ok {
			abort.Send(model.BadExit{Path: "<fzf>", Code: exit})
			return
		}
		abort.Send(model.IO{Path: "<fzf>", Err: err})
	}
}

func drain(abort *pipeline.Abort, opts model.Options, out <-chan model.OutputRecord) {
	switch p := opts.Printer.(type) {
	case model.PrinterPager:
		if err := sink.Pager(abort.Context(), out, p.Cmd); err != nil {
			abort.Send(model.IO{Path: "<pager>", Err: err})
		}
	default:
		if err := sink.Stdout(out); err != nil {
			abort.Send(model.IO{Path: "<stdout>", Err: err})
		}
	}
}

// report prints every recorded Failure (Interrupt never prints) and
// returns the process exit code (SPEC_FULL.md §7).
func report(abort *pipeline.Abort) int {
	for _, f := range abort.Failures() {
		if _, ok := f.(model.Interrupt); ok {
			continue
		}
		fmt.Fprintf(os.Stderr, "sad: %v\n", f)
	}
	return abort.ExitCode()
}

func asExitError(err error) (int, bool) {
	type exitCoder interface{ ExitCode() int }
	if ee, ok := err.(exitCoder); ok {
		return ee.ExitCode(), true
	}
	return 0, false
}
