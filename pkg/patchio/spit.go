// Package patchio implements the atomic safe-write protocol
// (SPEC_FULL.md §4.4): write content to a sibling temp file, then
// os.Rename it over the target as the single atomic commit point.
// Grounded on the teacher's modules/zeta/config/encode.go atomicEncode,
// generalized from a TOML config file to arbitrary target content and
// using a google/uuid suffix rather than a timestamp.
package patchio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Spit atomically replaces target's content with content, preserving
// perm (normally target's existing os.FileMode). Any failure is
// returned as a plain error carrying target; callers wrap it as a
// model.IO failure.
func Spit(target string, perm os.FileMode, content string) error {
	dir := filepath.Dir(target)
	sibling := filepath.Join(dir, filepath.Base(target)+"___"+uuid.NewString())

	fd, err := os.OpenFile(sibling, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("%s: create sibling: %w", target, err)
	}
	if err := func() error {
		defer fd.Close()
		if err := fd.Chmod(perm); err != nil {
			return err
		}
		w := bufio.NewWriter(fd)
		if _, err := w.WriteString(content); err != nil {
			return err
		}
		return w.Flush()
	}(); err != nil {
		_ = os.Remove(sibling)
		return fmt.Errorf("%s: write: %w", target, err)
	}
	if err := os.Rename(sibling, target); err != nil {
		_ = os.Remove(sibling)
		return fmt.Errorf("%s: rename: %w", target, err)
	}
	return nil
}
