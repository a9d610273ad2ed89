package patchio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSpitReplacesContentAndPreservesPermissions(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(target, []byte("old"), 0640); err != nil {
		t.Fatalf("setup: %v", err)
	}
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("setup stat: %v", err)
	}
	if err := Spit(target, info.Mode().Perm(), "new"); err != nil {
		t.Fatalf("Spit: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("content = %q, want %q", got, "new")
	}
	after, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat after: %v", err)
	}
	if after.Mode().Perm() != 0640 {
		t.Fatalf("mode = %v, want %v", after.Mode().Perm(), os.FileMode(0640))
	}
}

func TestSpitLeavesNoSiblingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(target, []byte("old"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := Spit(target, 0644, "new"); err != nil {
		t.Fatalf("Spit: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the target file, got %d entries", len(entries))
	}
}
