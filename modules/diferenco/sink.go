package diferenco

import "strings"

// Sink interns lines to small integers so the LCS algorithms compare ints
// instead of strings, and so two equal lines (even across the before/after
// pair) share one backing string.
type Sink struct {
	Lines []string
	Index map[string]int
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{
		Lines: make([]string, 0, 200),
		Index: make(map[string]int),
	}
}

func (s *Sink) addLine(line string) int {
	if i, ok := s.Index[line]; ok {
		return i
	}
	i := len(s.Lines)
	s.Index[line] = i
	s.Lines = append(s.Lines, line)
	return i
}

// SplitLines splits text the way Rust's split_inclusive('\n') does: every
// line keeps its trailing newline, and a file that does not end in a
// newline yields a final line without one. Losing that distinction breaks
// exact round-trip on the last line of a file.
func (s *Sink) SplitLines(text string) []int {
	if len(text) == 0 {
		return nil
	}
	lines := make([]int, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			lines = append(lines, s.addLine(text[:i+1]))
			text = text[i+1:]
			continue
		}
		lines = append(lines, s.addLine(text))
		break
	}
	return lines
}

// SplitInclusive is the string-only form of SplitLines, used where interning
// is not worth the bookkeeping (e.g. applying a patch against a single file).
func SplitInclusive(text string) []string {
	if len(text) == 0 {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			lines = append(lines, text[:i+1])
			text = text[i+1:]
			continue
		}
		lines = append(lines, text)
		break
	}
	return lines
}
