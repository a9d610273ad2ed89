package diferenco

import (
	"fmt"
	"regexp"
	"strconv"
)

// DiffRange is a maximal contiguous region of change plus its surrounding
// context, expressed as two half-open line intervals in zero-based
// coordinates. It is the unit the rest of the tool selects, previews, and
// patches by.
type DiffRange struct {
	BeforeStart, BeforeLen int
	AfterStart, AfterLen   int
}

// rangePattern matches the trailer sad appends after a path so a previously
// serialized hunk reference can be parsed back out: the regex is anchored at
// the end of the record, and whatever precedes the match is the path.
var rangePattern = regexp.MustCompile(`\n\n\n\n@@ -(\d+),(\d+) \+(\d+),(\d+) @@$`)

// String renders the range the way a unified diff hunk header would,
// 1-based and inclusive as readers expect.
func (r DiffRange) String() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", r.BeforeStart+1, r.BeforeLen, r.AfterStart+1, r.AfterLen)
}

// ParseRecord splits a serialized "{path}\n\n\n\n@@ ... @@" record into its
// path and DiffRange. It is the exact inverse of String combined with the
// record separator used by the preview/patch temp file format.
func ParseRecord(record string) (path string, r DiffRange, ok bool) {
	loc := rangePattern.FindStringSubmatchIndex(record)
	if loc == nil {
		return "", DiffRange{}, false
	}
	path = record[:loc[0]]
	nums := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(record[loc[2+i*2]:loc[3+i*2]])
		if err != nil {
			return "", DiffRange{}, false
		}
		nums[i] = v
	}
	r = DiffRange{BeforeStart: nums[0] - 1, BeforeLen: nums[1], AfterStart: nums[2] - 1, AfterLen: nums[3]}
	return path, r, true
}

// Hunk is a contiguous run of equal/delete/insert lines, including the
// unified-context lines padding either side.
type Hunk struct {
	FromLine int // 1-based start in before
	ToLine   int // 1-based start in after
	Lines    []Line
}

// Line is one rendered line of a hunk.
type Line struct {
	Kind    Operation
	Content string
}

// Range reports the DiffRange spanned by h: before = (h.FromLine-1, count of
// non-insert lines), after = (h.ToLine-1, count of non-delete lines).
func (h *Hunk) Range() DiffRange {
	var beforeLen, afterLen int
	for _, l := range h.Lines {
		switch l.Kind {
		case Delete:
			beforeLen++
		case Insert:
			afterLen++
		default:
			beforeLen++
			afterLen++
		}
	}
	return DiffRange{
		BeforeStart: h.FromLine - 1,
		BeforeLen:   beforeLen,
		AfterStart:  h.ToLine - 1,
		AfterLen:    afterLen,
	}
}

// Patch is the replacement text for one hunk's before-range: the
// concatenation of its equal-context lines and its inserted/replaced lines,
// in hunk order, i.e. exactly what should appear at that position once the
// hunk is accepted.
type Patch struct {
	Range    DiffRange
	NewLines []string
}

func (h *Hunk) toPatch() Patch {
	p := Patch{Range: h.Range(), NewLines: make([]string, 0, len(h.Lines))}
	for _, l := range h.Lines {
		if l.Kind != Delete {
			p.NewLines = append(p.NewLines, l.Content)
		}
	}
	return p
}

// Diff is the full set of hunks found between a before and after text at a
// given context radius.
type Diff struct {
	Hunks []*Hunk
}

// Ranges returns the pure DiffRanges of d, disjoint and sorted by
// before-start because hunks are produced and merged in that order.
func (d *Diff) Ranges() []DiffRange {
	ranges := make([]DiffRange, len(d.Hunks))
	for i, h := range d.Hunks {
		ranges[i] = h.Range()
	}
	return ranges
}

// Patches returns one Patch per hunk, in hunk order.
func (d *Diff) Patches() []Patch {
	patches := make([]Patch, len(d.Hunks))
	for i, h := range d.Hunks {
		patches[i] = h.toPatch()
	}
	return patches
}

// addEqualLines appends index[start:end] (clamped) as Equal lines to h,
// returning how many lines were actually appended.
func addEqualLines(h *Hunk, sk *Sink, index []int, start, end int) int {
	delta := 0
	for i := start; i < end; i++ {
		if i < 0 {
			continue
		}
		if i >= len(index) {
			return delta
		}
		h.Lines = append(h.Lines, Line{Kind: Equal, Content: sk.Lines[index[i]]})
		delta++
	}
	return delta
}

// group turns the raw LCS Changes into context-padded Hunks, merging any
// two hunks whose context windows overlap. Ported from the sink/unified
// grouping used by hugescm's diferenco package, generalized from git-style
// file headers to bare before/after line arrays.
func group(changes []Change, sk *Sink, linesA, linesB []int, unified int) []*Hunk {
	if len(changes) == 0 {
		return nil
	}
	gap := unified * 2
	var hunks []*Hunk
	var h *Hunk
	last := 0
	toLine := 0
	for _, ch := range changes {
		start := ch.P1
		end := ch.P1 + ch.Del
		switch {
		case h != nil && start == last:
		case h != nil && start <= last+gap:
			addEqualLines(h, sk, linesA, last, start)
			toLine += start - last
		default:
			if h != nil {
				addEqualLines(h, sk, linesA, last, last+unified)
				hunks = append(hunks, h)
			}
			toLine += start - last
			h = &Hunk{FromLine: start + 1, ToLine: toLine + 1}
			delta := addEqualLines(h, sk, linesA, start-unified, start)
			h.FromLine -= delta
			h.ToLine -= delta
		}
		last = start
		for i := start; i < end; i++ {
			h.Lines = append(h.Lines, Line{Kind: Delete, Content: sk.Lines[linesA[i]]})
			last++
		}
		addEnd := ch.P2 + ch.Ins
		for i := ch.P2; i < addEnd; i++ {
			h.Lines = append(h.Lines, Line{Kind: Insert, Content: sk.Lines[linesB[i]]})
			toLine++
		}
	}
	if h != nil {
		addEqualLines(h, sk, linesA, last, last+unified)
		hunks = append(hunks, h)
	}
	return hunks
}

// Compute diffs before against after at the given unified context radius.
func Compute(before, after string, unified int) *Diff {
	sk := NewSink()
	a := sk.SplitLines(before)
	b := sk.SplitLines(after)
	changes := MyersDiff(a, b)
	return &Diff{Hunks: group(changes, sk, a, b, unified)}
}

// ApplyPatches reconstructs a file's content from a selected subset of its
// patches. Patches are walked in order; any patch whose Range is not in
// selected is left as the original before-content for that span, so
// selected == nil (or empty) reproduces before exactly.
func ApplyPatches(patches []Patch, selected map[DiffRange]bool, before []string) string {
	clamp := func(i int) int { return min(max(i, 0), len(before)) }
	var b []byte
	prev := 0
	for _, p := range patches {
		s, end := clamp(p.Range.BeforeStart), clamp(p.Range.BeforeStart+p.Range.BeforeLen)
		for _, l := range before[clamp(prev):s] {
			b = append(b, l...)
		}
		if selected[p.Range] {
			for _, l := range p.NewLines {
				b = append(b, l...)
			}
		} else {
			for _, l := range before[s:end] {
				b = append(b, l...)
			}
		}
		prev = end
	}
	for _, l := range before[clamp(prev):] {
		b = append(b, l...)
	}
	return string(b)
}
