package term

import (
	"os"
	"testing"
)

func TestUseColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if UseColor(true) {
		t.Fatal("UseColor should be false when NO_COLOR is set")
	}
}

func TestUseColorRequiresTTY(t *testing.T) {
	_ = os.Unsetenv("NO_COLOR")
	if UseColor(false) {
		t.Fatal("UseColor should be false for a non-terminal stream")
	}
	if !UseColor(true) {
		t.Fatal("UseColor should be true for a terminal stream with NO_COLOR unset")
	}
}
