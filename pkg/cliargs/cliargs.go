// Package cliargs parses sad's command line into a model.Options,
// using spf13/pflag for flag parsing (SPEC_FULL.md §1.1/§4.7/§6).
package cliargs

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/pflag"

	"github.com/sad-cli/sad/modules/env"
	"github.com/sad-cli/sad/modules/term"
	"github.com/sad-cli/sad/pkg/engine"
	"github.com/sad-cli/sad/pkg/model"
	"github.com/sad-cli/sad/pkg/sink"
)

// Parsed is the result of parsing argv: the built Options plus the
// fzf binary/args to use when Action ends up being ActionFzfPreview.
type Parsed struct {
	Options     model.Options
	FzfBin      string
	FzfArgs     []string
	FzfNever    bool
	ShowVersion bool
}

// Parse builds Options from a top-level (non-re-entrant) argv. Callers
// must first try fzf.ParseReentry and only fall back to Parse when that
// reports ok=false.
func Parse(argv []string, cwd string) (Parsed, error) {
	fs := pflag.NewFlagSet("sad", pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	read0 := fs.BoolP("read0", "0", false, "read NUL-delimited paths from stdin")
	commit := fs.BoolP("commit", "k", false, "commit replacements in place instead of previewing")
	exact := fs.BoolP("exact", "e", false, "treat the pattern as a literal string, not a regex")
	flagsArg := fs.StringP("flags", "f", "", "extra engine flags: i m s x u (regex only, except i)")
	pagerArg := fs.StringP("pager", "p", "", `pager command, or "never" to force stdout`)
	fzfArg := fs.String("fzf", "", `extra fzf arguments, or "never" to disable fzf`)
	unified := fs.IntP("unified", "u", 3, "number of context lines in a preview diff")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(argv); err != nil {
		return Parsed{}, err
	}
	if *showVersion {
		return Parsed{ShowVersion: true}, nil
	}
	positional := fs.Args()
	if len(positional) < 1 || len(positional) > 2 {
		return Parsed{}, fmt.Errorf("expected <pattern> [replacement], got %d positional argument(s)", len(positional))
	}
	pattern := positional[0]
	var replacement string
	if len(positional) == 2 {
		replacement = positional[1]
	}

	isRegex := !*exact
	base := engine.DefaultFlags(pattern, isRegex)
	flags, err := engine.ParseFlags(base, *flagsArg, isRegex)
	if err != nil {
		return Parsed{}, err
	}

	var repl model.ReplaceEngine
	if isRegex {
		repl, err = engine.NewRegex(pattern, replacement, flags)
		if err != nil {
			return Parsed{}, fmt.Errorf("compiling pattern: %w", err)
		}
	} else {
		repl = engine.NewLiteral(pattern, replacement, flags)
	}

	opts := model.Options{
		Cwd:     cwd,
		Mode:    model.ModeInitial{},
		Engine:  repl,
		Unified: *unified,
		Read0:   *read0,
		Verbose: *verbose,
	}

	fzfNever := *fzfArg == "never"
	fzfBin := ""
	if !fzfNever {
		fzfBin, _ = env.LookupBinary("fzf")
	}

	opts.Color = term.UseColor(term.StdoutIsTTY)
	switch {
	case *commit:
		opts.Action = model.ActionCommit{}
		opts.Printer = model.PrinterStdout{}
		opts.Color = false
	case fzfBin != "" && term.StdoutIsTTY && term.StderrIsTTY:
		opts.Action = model.ActionFzfPreview{}
		opts.Printer = model.PrinterStdout{}
	default:
		opts.Action = model.ActionPreview{}
		if cmd, ok := sink.ResolvePager(*pagerArg); ok {
			opts.Printer = model.PrinterPager{Cmd: cmd}
			opts.Color = term.UseColor(true)
		} else {
			opts.Printer = model.PrinterStdout{}
		}
	}

	var fzfExtra []string
	if !fzfNever && *fzfArg != "" {
		words, splitErr := shellquote.Split(*fzfArg)
		if splitErr != nil {
			return Parsed{}, fmt.Errorf("invalid --fzf arguments: %w", splitErr)
		}
		fzfExtra = words
	}

	return Parsed{
		Options:  opts,
		FzfBin:   fzfBin,
		FzfArgs:  fzfExtra,
		FzfNever: fzfNever,
	}, nil
}
