package sink

import (
	"bytes"
	"testing"

	"github.com/sad-cli/sad/pkg/model"
)

func TestDrainWritesAllRecords(t *testing.T) {
	in := make(chan model.OutputRecord, 2)
	in <- model.OutputRecord{Data: []byte("a")}
	in <- model.OutputRecord{Data: []byte("b")}
	close(in)

	var buf bytes.Buffer
	if err := Drain(in, &buf); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if buf.String() != "ab" {
		t.Fatalf("got %q, want %q", buf.String(), "ab")
	}
}

func TestResolvePagerNeverMeansStdout(t *testing.T) {
	if _, ok := ResolvePager("never"); ok {
		t.Fatal("expected ResolvePager(\"never\") to select stdout")
	}
}
