package engine

import "testing"

func TestLiteralCaseSensitive(t *testing.T) {
	e := NewLiteral("a", "b", Flags{CaseInsensitive: false})
	got, err := e.Replace("aa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "bb" {
		t.Fatalf("got %q, want %q", got, "bb")
	}
}

func TestLiteralCaseInsensitive(t *testing.T) {
	e := NewLiteral("foo", "bar", Flags{CaseInsensitive: true})
	got, err := e.Replace("a FOO b Foo c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a bar b bar c" {
		t.Fatalf("got %q", got)
	}
}

func TestDefaultFlagsUppercaseDisablesCaseInsensitive(t *testing.T) {
	f := DefaultFlags("FOO", false)
	if f.CaseInsensitive {
		t.Fatal("expected case-insensitive to be disabled by uppercase pattern")
	}
}

func TestDefaultFlagsLowercaseEnablesCaseInsensitive(t *testing.T) {
	f := DefaultFlags("foo", false)
	if !f.CaseInsensitive {
		t.Fatal("expected case-insensitive to be enabled by lowercase pattern")
	}
}

func TestRegexBasic(t *testing.T) {
	f := DefaultFlags("x", true)
	re, err := NewRegex("x+", "y", f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := re.Replace("xxbxx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "yby" {
		t.Fatalf("got %q, want %q", got, "yby")
	}
}

func TestParseFlagsRejectsUnknownLetter(t *testing.T) {
	if _, err := ParseFlags(Flags{}, "z", true); err == nil {
		t.Fatal("expected error for unknown flag letter")
	}
}

func TestParseFlagsRejectsRegexOnlyForLiteral(t *testing.T) {
	if _, err := ParseFlags(Flags{}, "m", false); err == nil {
		t.Fatal("expected error for regex-only flag on literal engine")
	}
}

func TestSwapGreedyTogglesStarQuantifier(t *testing.T) {
	got := swapGreedy("a*b+")
	if got == "a*b+" {
		t.Fatal("swapGreedy made no change")
	}
	if swapGreedy(got) != "a*b+" {
		t.Fatalf("swapGreedy should be its own inverse, got %q", swapGreedy(got))
	}
}
