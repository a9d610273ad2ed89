package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sad-cli/sad/pkg/engine"
	"github.com/sad-cli/sad/pkg/model"
)

type constEngine struct {
	out string
	err error
}

func (e constEngine) Replace(string) (string, error) { return e.out, e.err }

func TestRunPreviewEmitsUnifiedDiff(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "greeting.txt")
	if err := os.WriteFile(f, []byte("hi\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	opts := &model.Options{
		Action:  model.ActionPreview{},
		Engine:  engine.NewLiteral("hi", "yo", engine.Flags{}),
		Unified: 3,
	}
	abort := NewAbort(context.Background())
	input := make(chan model.PathItem, 1)
	input <- model.Entire{P: f}
	close(input)

	var records []model.OutputRecord
	for rec := range Run(opts, abort, input) {
		records = append(records, rec)
	}
	if len(abort.Failures()) != 0 {
		t.Fatalf("unexpected failures: %v", abort.Failures())
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := string(records[0].Data)
	if got == "" {
		t.Fatal("expected non-empty diff output")
	}
}

func TestRunCommitWritesFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(f, []byte("aa\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	opts := &model.Options{
		Action:  model.ActionCommit{},
		Engine:  engine.NewLiteral("a", "b", engine.Flags{}),
		Unified: 3,
	}
	abort := NewAbort(context.Background())
	input := make(chan model.PathItem, 1)
	input <- model.Entire{P: f}
	close(input)

	for range Run(opts, abort, input) {
	}
	if len(abort.Failures()) != 0 {
		t.Fatalf("unexpected failures: %v", abort.Failures())
	}
	got, err := os.ReadFile(f)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "bb\n" {
		t.Fatalf("content = %q, want %q", got, "bb\n")
	}
}

func TestRunSkipsWhenNoChange(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(f, []byte("same\n"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	opts := &model.Options{
		Action:  model.ActionPreview{},
		Engine:  constEngine{out: "same\n"},
		Unified: 3,
	}
	abort := NewAbort(context.Background())
	input := make(chan model.PathItem, 1)
	input <- model.Entire{P: f}
	close(input)

	var records []model.OutputRecord
	for rec := range Run(opts, abort, input) {
		records = append(records, rec)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records for an unchanged file, got %d", len(records))
	}
}
