// Package pipeline wires PATH SOURCE -> DISPLACER POOL -> SINK: the
// bounded, backpressured concurrent core from SPEC_FULL.md §2/§5.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sad-cli/sad/modules/diferenco"
	"github.com/sad-cli/sad/modules/diferenco/color"
	"github.com/sad-cli/sad/pkg/model"
	"github.com/sad-cli/sad/pkg/patchio"
)

// Run drains input through a pool of runtime.NumCPU() workers and
// returns a channel of OutputRecords. The input channel's own
// production rate is the backpressure mechanism (the PATH SOURCE in
// source.go blocks on a channel of capacity 1); Run additionally bounds
// in-flight work with errgroup.SetLimit so no more than NumCPU files
// are open at once.
func Run(opts *model.Options, abort *Abort, input <-chan model.PathItem) <-chan model.OutputRecord {
	out := make(chan model.OutputRecord)
	g, ctx := errgroup.WithContext(abort.Context())
	g.SetLimit(runtime.NumCPU())

	go func() {
		defer close(out)
		for {
			select {
			case item, ok := <-input:
				if !ok {
					_ = g.Wait()
					return
				}
				g.Go(func() error {
					rec, err := displace(opts, item)
					if err != nil {
						var f model.Failure
						if !errors.As(err, &f) {
							f = model.IO{Path: item.Path(), Err: err}
						}
						abort.Send(f)
						return err
					}
					if rec == nil {
						return nil
					}
					select {
					case out <- *rec:
					case <-ctx.Done():
					}
					return nil
				})
			case <-ctx.Done():
				_ = g.Wait()
				return
			}
		}
	}()
	return out
}

// displace runs the full read -> replace -> diff/write -> emit
// sequence for one PathItem (SPEC_FULL.md §4.2).
func displace(opts *model.Options, item model.PathItem) (*model.OutputRecord, error) {
	path := item.Path()
	slurped, err := slurp(path)
	if err != nil {
		return nil, err
	}
	if slurped.Content == "" {
		return nil, nil
	}
	after, err := opts.Engine.Replace(slurped.Content)
	if err != nil {
		return nil, model.RegexError{Err: err}
	}
	if after == slurped.Content {
		logrus.Debugf("skipping %s: no match", path)
		return nil, nil
	}

	display := displayName(path, opts.Cwd)

	switch opts.Action.(type) {
	case model.ActionFzfPreview:
		return fzfPreviewRecord(display, slurped.Content, after, opts.Unified)
	case model.ActionCommit:
		return commit(path, display, item, slurped, after, opts.Unified)
	default:
		return previewRecord(display, item, slurped.Content, after, opts.Unified, opts.Color)
	}
}

func slurp(path string) (model.Slurped, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("skipping %s: does not exist", path)
			return model.Slurped{}, nil
		}
		return model.Slurped{}, model.IO{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		logrus.Debugf("skipping %s: not a regular file", path)
		return model.Slurped{Meta: info}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Slurped{}, model.IO{Path: path, Err: err}
	}
	if !utf8.Valid(raw) {
		logrus.Debugf("skipping %s: not valid utf-8", path)
		return model.Slurped{Meta: info}, nil
	}
	return model.Slurped{Meta: info, Content: string(raw)}, nil
}

func displayName(path, cwd string) string {
	if cwd == "" {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func previewRecord(display string, item model.PathItem, before, after string, unified int, useColor bool) (*model.OutputRecord, error) {
	d := diferenco.Compute(before, after, unified)
	var selected map[diferenco.DiffRange]bool
	if pw, ok := item.(model.Piecewise); ok {
		selected = make(map[diferenco.DiffRange]bool, len(pw.Ranges))
		for _, r := range pw.Ranges {
			selected[r] = true
		}
	}
	var cc color.ColorConfig
	if useColor {
		cc = color.NewColorConfig()
	}
	text := d.Render(display, cc, selected)
	return &model.OutputRecord{Data: []byte(text)}, nil
}

func fzfPreviewRecord(display, before, after string, unified int) (*model.OutputRecord, error) {
	d := diferenco.Compute(before, after, unified)
	red := color.NewColorConfig()
	var b bytes.Buffer
	for _, r := range d.Ranges() {
		fmt.Fprintf(&b, "%s\n\n\n\n%s%s%s\x00", display, red[color.Old], r.String(), red.Reset(color.Old))
	}
	return &model.OutputRecord{Data: b.Bytes()}, nil
}

func commit(path, display string, item model.PathItem, slurped model.Slurped, after string, unified int) (*model.OutputRecord, error) {
	final := after
	if pw, ok := item.(model.Piecewise); ok {
		d := diferenco.Compute(slurped.Content, after, unified)
		live := make(map[diferenco.DiffRange]bool, len(d.Ranges()))
		for _, r := range d.Ranges() {
			live[r] = true
		}
		selected := make(map[diferenco.DiffRange]bool, len(pw.Ranges))
		for _, r := range pw.Ranges {
			if !live[r] {
				// Open question (SPEC_FULL.md §9) resolved as reject:
				// a stale range no longer present in the live diff
				// means the file changed since the handshake payload
				// was produced.
				return nil, model.IO{Path: path, Err: fmt.Errorf("stale patch range %s", r)}
			}
			selected[r] = true
		}
		final = diferenco.ApplyPatches(d.Patches(), selected, diferenco.SplitInclusive(slurped.Content))
	}
	if final == slurped.Content {
		return nil, nil
	}
	if err := patchio.Spit(path, slurped.Meta.Mode().Perm(), final); err != nil {
		return nil, model.IO{Path: path, Err: err}
	}
	return &model.OutputRecord{Data: []byte(display + "\n")}, nil
}
