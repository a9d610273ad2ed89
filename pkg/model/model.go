// Package model holds the data types shared across every pipeline stage:
// the path/range vocabulary, the immutable run options, and the closed
// Failure taxonomy.
package model

import (
	"os"

	"github.com/sad-cli/sad/modules/diferenco"
)

// PathItem is either a whole file (Entire) or a file restricted to a
// specific set of diff ranges (Piecewise), as produced by the fzf
// preview/patch hand-off.
type PathItem interface {
	Path() string
	isPathItem()
}

type Entire struct {
	P string
}

func (e Entire) Path() string { return e.P }
func (Entire) isPathItem()    {}

type Piecewise struct {
	P      string
	Ranges []diferenco.DiffRange
}

func (p Piecewise) Path() string { return p.P }
func (Piecewise) isPathItem()    {}

// Action picks what a Displacer does with a computed diff.
type Action interface {
	isAction()
}

type ActionPreview struct{}

func (ActionPreview) isAction() {}

type ActionCommit struct{}

func (ActionCommit) isAction() {}

// ActionFzfPreview instructs the pool to emit pure DiffRanges in the
// fzf handshake payload format instead of a rendered diff or a commit.
type ActionFzfPreview struct {
	Bin  string
	Argv []string
}

func (ActionFzfPreview) isAction() {}

// Printer picks where a SINK's bytes go.
type Printer interface {
	isPrinter()
}

type PrinterStdout struct{}

func (PrinterStdout) isPrinter() {}

type PrinterPager struct {
	Cmd SubprocCommand
}

func (PrinterPager) isPrinter() {}

// SubprocCommand is everything needed to exec.CommandContext a child
// process: program, argv tail, and an already-sanitized environment.
type SubprocCommand struct {
	Prog string
	Args []string
	Env  []string
}

// Mode distinguishes the top-level invocation from the two
// self-re-entrant modes fzf drives.
type Mode interface {
	isMode()
}

type ModeInitial struct{}

func (ModeInitial) isMode() {}

type ModePreview struct{ Path string }

func (ModePreview) isMode() {}

type ModePatch struct{ Path string }

func (ModePatch) isMode() {}

// Options is built once in cmd/sad and shared read-only by every
// worker for the lifetime of the process.
type Options struct {
	Cwd     string
	Mode    Mode
	Action  Action
	Engine  ReplaceEngine
	Printer Printer
	Unified int
	Read0   bool
	Verbose bool
	Color   bool
}

// ReplaceEngine is implemented by pkg/engine's Literal and Regex
// variants.
type ReplaceEngine interface {
	Replace(s string) (string, error)
}

// Slurped is one file's content plus the metadata needed to preserve
// permissions on commit. Content is empty when the file is absent, not
// regular, or not valid UTF-8 — all three cases are silently skipped
// rather than surfaced as failures.
type Slurped struct {
	Meta    os.FileInfo
	Content string
}

// OutputRecord is what a Displacer hands to the SINK: either rendered
// diff/handshake text, or (in Commit mode) the committed path.
type OutputRecord struct {
	Data []byte
}
