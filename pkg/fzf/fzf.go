package fzf

import (
	"fmt"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/sad-cli/sad/modules/env"
	"github.com/sad-cli/sad/pkg/model"
)

// Build constructs the SubprocCommand sad runs fzf with (SPEC_FULL.md
// §4.6): the hard-coded --read0/--print0/-m/--ansi/--preview-window
// flags, the enter/double-click binds that abort+execute the patch
// hand-off, and the preview bind that execs a preview hand-off — each
// extended by extraArgs (the user's --fzf tail) and then by
// SAD_FZF_OPTS (shell-split the same way), plus the SHELL/ARGV_TOKEN/
// LC_ALL environment fzf needs to call back into this binary.
//
// fzf's execute(...)/--preview run their command via "$SHELL -c cmd";
// pointing SHELL at this same executable turns that indirection into a
// direct re-invocation, so the bind/preview strings below carry only
// the handshake payload (token + {+f}), not another "self -c" wrapper.
func Build(fzfBin string, argv []string, extraArgs []string) (model.SubprocCommand, error) {
	self, err := os.Executable()
	if err != nil {
		return model.SubprocCommand{}, err
	}
	exec := fmt.Sprintf("abort+execute:%s\x04{+f}", PatchToken())
	args := []string{
		"--read0",
		"--print0",
		"-m",
		"--ansi",
		"--preview-window=70%:wrap",
		"--bind=enter:" + exec,
		"--bind=double-click:" + exec,
		fmt.Sprintf("--preview=%s\x04{+f}", PreviewToken()),
	}
	args = append(args, extraArgs...)
	if opts, ok := env.LookupEnv(string(env.SAD_FZF_OPTS)); ok && opts != "" {
		words, err := shellquote.Split(opts)
		if err != nil {
			return model.SubprocCommand{}, fmt.Errorf("invalid %s: %w", env.SAD_FZF_OPTS, err)
		}
		args = append(args, words...)
	}

	runtimeEnv := env.SanitizerEnv("SHELL", ArgvToken(), "LC_ALL")
	runtimeEnv = append(runtimeEnv,
		"SHELL="+self,
		ArgvToken()+"="+strings.Join(argv, "\x04"),
		"LC_ALL=C.UTF-8",
	)
	return model.SubprocCommand{Prog: fzfBin, Args: args, Env: runtimeEnv}, nil
}

// ParseReentry recognizes the `-c <payload>` self re-invocation form
// (SPEC_FULL.md §4.6). ok is false when argv doesn't match the
// handshake shape at all (a normal top-level invocation); err is set
// when `-c` is present but its payload is malformed.
func ParseReentry(argv []string) (mode model.Mode, reconstructedArgv []string, ok bool, err error) {
	if len(argv) < 2 || argv[0] != "-c" {
		return nil, nil, false, nil
	}
	fields := strings.SplitN(argv[1], "\x04", 2)
	if len(fields) != 2 {
		return nil, nil, true, fmt.Errorf("malformed handshake payload %q", argv[1])
	}
	token, path := fields[0], fields[1]
	switch token {
	case PreviewToken():
		mode = model.ModePreview{Path: path}
	case PatchToken():
		mode = model.ModePatch{Path: path}
	default:
		return nil, nil, true, fmt.Errorf("unrecognized handshake token")
	}
	raw, ok2 := os.LookupEnv(ArgvToken())
	if !ok2 {
		return nil, nil, true, fmt.Errorf("missing %s environment for handshake replay", ArgvToken())
	}
	return mode, strings.Split(raw, "\x04"), true, nil
}
