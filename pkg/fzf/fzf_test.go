package fzf

import (
	"os"
	"testing"

	"github.com/sad-cli/sad/pkg/model"
)

func TestParseReentryIgnoresNormalInvocation(t *testing.T) {
	_, _, ok, err := ParseReentry([]string{"pattern", "replacement"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for a non-handshake argv")
	}
}

func TestParseReentryRejectsMalformedPayload(t *testing.T) {
	_, _, ok, err := ParseReentry([]string{"-c", "not-a-valid-payload"})
	if !ok {
		t.Fatal("expected ok=true: -c was present")
	}
	if err == nil {
		t.Fatal("expected an error for a payload missing the \\x04 separator")
	}
}

func TestParseReentryRecognizesPreviewToken(t *testing.T) {
	t.Setenv(ArgvToken(), "pattern\x04replacement")
	payload := PreviewToken() + "\x04/some/path.txt"
	mode, argv, ok, err := ParseReentry([]string{"-c", payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	pm, isPreview := mode.(model.ModePreview)
	if !isPreview || pm.Path != "/some/path.txt" {
		t.Fatalf("unexpected mode: %+v", mode)
	}
	if len(argv) != 2 || argv[0] != "pattern" || argv[1] != "replacement" {
		t.Fatalf("unexpected reconstructed argv: %v", argv)
	}
}

func TestBuildIncludesExtraArgs(t *testing.T) {
	cmd, err := Build("fzf", []string{"pattern"}, []string{"--height=40%"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	found := false
	for _, a := range cmd.Args {
		if a == "--height=40%" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected extra --fzf args to be appended")
	}
	if _, ok := os.LookupEnv("__never_set__"); ok {
		t.Fatal("sanity check broke")
	}
}
