package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sad-cli/sad/pkg/model"
)

func TestReadPathsDedupsRepeatedPath(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	abort := NewAbort(context.Background())
	input := strings.NewReader(f + "\n" + f + "\n")
	var items []model.PathItem
	for item := range ReadPaths(input, false, abort) {
		items = append(items, item)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 deduped item, got %d", len(items))
	}
}

func TestReadPathsDropsVanishedFileSilently(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.txt")
	abort := NewAbort(context.Background())
	input := strings.NewReader(missing + "\n")
	var items []model.PathItem
	for item := range ReadPaths(input, false, abort) {
		items = append(items, item)
	}
	if len(items) != 0 {
		t.Fatalf("expected vanished path to be dropped, got %d items", len(items))
	}
	if len(abort.Failures()) != 0 {
		t.Fatalf("expected no failures for a vanished path, got %v", abort.Failures())
	}
}

func TestReadPathsRead0Delimiter(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	abort := NewAbort(context.Background())
	input := strings.NewReader(a + "\x00" + b + "\x00")
	var items []model.PathItem
	for item := range ReadPaths(input, true, abort) {
		items = append(items, item)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestReadHandshakeGroupsConsecutiveRecordsByPath(t *testing.T) {
	abort := NewAbort(context.Background())
	payload := "a.txt\n\n\n\n@@ -1,1 +1,1 @@\x00" +
		"a.txt\n\n\n\n@@ -5,1 +5,1 @@\x00" +
		"b.txt\n\n\n\n@@ -2,1 +2,1 @@\x00"
	var items []model.PathItem
	for item := range ReadHandshake(strings.NewReader(payload), abort) {
		items = append(items, item)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 grouped items, got %d", len(items))
	}
	pw, ok := items[0].(model.Piecewise)
	if !ok || pw.Path() != "a.txt" || len(pw.Ranges) != 2 {
		t.Fatalf("unexpected first group: %+v", items[0])
	}
}
