package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/sirupsen/logrus"

	"github.com/sad-cli/sad/modules/diferenco"
	"github.com/sad-cli/sad/modules/term"
	"github.com/sad-cli/sad/pkg/model"
)

// ReadPaths implements the normal-mode PATH SOURCE contract
// (SPEC_FULL.md §4.1): split r on '\n' (or '\0' when read0), canonicalize
// each segment, drop duplicates and vanished files silently, and emit
// Entire PathItems on the returned channel. The channel closes when r is
// exhausted or abort fires; a hard I/O error ends the stream via
// abort.Send.
//
// r being an interactive terminal means sad was invoked with nothing
// piped to it; that's an argument error, not an empty run, so it's
// rejected before any reading starts.
func ReadPaths(r io.Reader, read0 bool, abort *Abort) <-chan model.PathItem {
	out := make(chan model.PathItem, 1)
	if f, ok := r.(*os.File); ok && term.IsTerminal(f.Fd()) {
		abort.Send(model.ArgumentError{Msg: "refusing to read file paths from a terminal; pipe paths into stdin instead"})
		close(out)
		return out
	}
	delim := byte('\n')
	if read0 {
		delim = 0
	}
	go func() {
		defer close(out)
		seen := treeset.NewWith(utils.StringComparator)
		br := bufio.NewReader(r)
		for {
			segment, err := br.ReadString(delim)
			if len(segment) > 0 {
				segment = trimDelim(segment, delim)
				if canonical, ok := canonicalize(segment, abort); ok {
					if !seen.Contains(canonical) {
						seen.Add(canonical)
						select {
						case out <- model.Entire{P: canonical}:
						case <-abort.Done():
							return
						}
					}
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					abort.Send(model.IO{Path: "<stdin>", Err: err})
				}
				return
			}
			select {
			case <-abort.Done():
				return
			default:
			}
		}
	}()
	return out
}

func trimDelim(s string, delim byte) string {
	if len(s) > 0 && s[len(s)-1] == delim {
		return s[:len(s)-1]
	}
	return s
}

// canonicalize resolves path to an absolute, symlink-free form. A
// vanished file is dropped silently (ok=false, no failure sent); any
// other error is a terminal IO failure.
func canonicalize(path string, abort *Abort) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abort.Send(model.IO{Path: path, Err: err})
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("skipping %s: does not exist", path)
			return "", false
		}
		abort.Send(model.IO{Path: path, Err: err})
		return "", false
	}
	return resolved, true
}

// ReadHandshake implements the Preview/Patch mode PATH SOURCE contract
// (SPEC_FULL.md §4.1): parse NUL-delimited
// "{path}\n\n\n\n@@ -A,B +C,D @@" records and group consecutive
// records sharing a path into one Piecewise PathItem.
func ReadHandshake(r io.Reader, abort *Abort) <-chan model.PathItem {
	out := make(chan model.PathItem, 1)
	go func() {
		defer close(out)
		data, err := io.ReadAll(r)
		if err != nil {
			abort.Send(model.IO{Path: "<handshake>", Err: err})
			return
		}
		var curPath string
		var ranges []diferenco.DiffRange
		flush := func() bool {
			if curPath == "" {
				return true
			}
			select {
			case out <- model.Piecewise{P: curPath, Ranges: ranges}:
				return true
			case <-abort.Done():
				return false
			}
		}
		for _, record := range bytes.Split(data, []byte{0}) {
			if len(record) == 0 {
				continue
			}
			path, r, ok := diferenco.ParseRecord(string(record))
			if !ok {
				abort.Send(model.IO{Path: "<handshake>", Err: fmt.Errorf("malformed record: %q", record)})
				return
			}
			if path != curPath {
				if !flush() {
					return
				}
				curPath = path
				ranges = nil
			}
			ranges = append(ranges, r)
		}
		flush()
	}()
	return out
}
