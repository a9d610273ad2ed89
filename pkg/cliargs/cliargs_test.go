package cliargs

import (
	"testing"

	"github.com/sad-cli/sad/pkg/model"
)

func TestParseAllowsOmittedReplacement(t *testing.T) {
	p, err := Parse([]string{"--fzf=never", "onlyone"}, "/tmp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Options.Engine == nil {
		t.Fatal("expected a non-nil Engine")
	}
	out, err := p.Options.Engine.Replace("onlyone onlyone")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if out != " " {
		t.Fatalf("expected an omitted replacement to default to deletion, got %q", out)
	}
}

func TestParseRejectsThreePositionals(t *testing.T) {
	if _, err := Parse([]string{"--fzf=never", "a", "b", "c"}, "/tmp"); err == nil {
		t.Fatal("expected an error for three positional arguments")
	}
}

func TestParseDefaultsToPreviewAction(t *testing.T) {
	p, err := Parse([]string{"--fzf=never", "foo", "bar"}, "/tmp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.FzfNever {
		t.Fatal("expected FzfNever to be true")
	}
	if _, ok := p.Options.Action.(model.ActionPreview); !ok {
		t.Fatalf("expected ActionPreview, got %T", p.Options.Action)
	}
}

func TestParseCommitSelectsCommitAction(t *testing.T) {
	p, err := Parse([]string{"--fzf=never", "--commit", "foo", "bar"}, "/tmp")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Options.Engine == nil {
		t.Fatal("expected a non-nil Engine")
	}
	if _, ok := p.Options.Action.(model.ActionCommit); !ok {
		t.Fatalf("expected ActionCommit, got %T", p.Options.Action)
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	if _, err := Parse([]string{"--fzf=never", "-f", "z", "foo", "bar"}, "/tmp"); err == nil {
		t.Fatal("expected an error for an unknown --flags letter")
	}
}

func TestParseExactDisablesRegexOnlyFlags(t *testing.T) {
	if _, err := Parse([]string{"--fzf=never", "-e", "-f", "m", "foo", "bar"}, "/tmp"); err == nil {
		t.Fatal("expected an error: -m is regex-only but -e selects the literal engine")
	}
}
