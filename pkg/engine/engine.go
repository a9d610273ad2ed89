// Package engine implements the two replacement engine variants from
// SPEC_FULL.md §3: a single-needle literal matcher and a regexp2-backed
// regex matcher. Construction (parsing --flags, building the matcher) is
// a thin collaborator per SPEC_FULL.md §1, but both variants are fully
// implemented here since the pipeline depends on their Replace contract.
package engine

import (
	"sort"
	"strings"

	goahocorasick "github.com/BobuSumisu/aho-corasick"
	"github.com/dlclark/regexp2"
)

// Literal replaces exact occurrences of a needle via a single-needle
// Aho-Corasick trie, case-(in)sensitively. Grounded on
// github.com/BobuSumisu/aho-corasick, already part of the pack's stack
// (trufflesecurity-trufflehog's secret-matching engine).
type Literal struct {
	trie            *goahocorasick.Trie
	needleLen       int
	replacement     string
	caseInsensitive bool
}

// NewLiteral builds a Literal engine. Case-insensitive matching folds
// both the needle and the haystack to lower case before feeding the
// trie; since the match is discarded in favor of replacement text, the
// original casing of a matched span never needs to be recovered.
func NewLiteral(needle, replacement string, f Flags) *Literal {
	matchNeedle := needle
	if f.CaseInsensitive {
		matchNeedle = strings.ToLower(needle)
	}
	trie := goahocorasick.NewTrieBuilder().AddString(matchNeedle).Build()
	return &Literal{
		trie:            trie,
		needleLen:       len(matchNeedle),
		replacement:     replacement,
		caseInsensitive: f.CaseInsensitive,
	}
}

func (l *Literal) Replace(s string) (string, error) {
	if l.needleLen == 0 {
		return s, nil
	}
	haystack := s
	if l.caseInsensitive {
		haystack = strings.ToLower(s)
	}
	matches := l.trie.MatchString(haystack)
	if len(matches) == 0 {
		return s, nil
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Pos() < matches[j].Pos() })

	var b strings.Builder
	b.Grow(len(s))
	cursor := 0
	for _, m := range matches {
		pos := m.Pos()
		if pos < cursor {
			// Overlapping with a match already emitted (e.g. needle "aa"
			// against "aaa"); strings.ReplaceAll's left-to-right,
			// non-overlapping semantics win.
			continue
		}
		b.WriteString(s[cursor:pos])
		b.WriteString(l.replacement)
		cursor = pos + l.needleLen
	}
	b.WriteString(s[cursor:])
	return b.String(), nil
}

// Regex replaces matches of a dlclark/regexp2 pattern. regexp2 is used
// instead of the standard library's RE2-based regexp because the flag
// surface in SPEC_FULL.md §6 includes swap-greed ('u') and
// ignore-whitespace ('x'), neither of which RE2 exposes in a form this
// tool can drive from a single letter.
type Regex struct {
	re          *regexp2.Regexp
	replacement string
}

// NewRegex compiles pattern under f, returning regexp2's compile error
// unwrapped on failure.
func NewRegex(pattern, replacement string, f Flags) (*Regex, error) {
	opts := regexp2.RegexOptions(0)
	if f.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	if f.DotAll {
		opts |= regexp2.Singleline
	}
	if f.IgnoreWhitespace {
		opts |= regexp2.IgnorePatternWhitespace
	}
	if f.SwapGreed {
		pattern = swapGreedy(pattern)
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Regex{re: re, replacement: replacement}, nil
}

func (r *Regex) Replace(s string) (string, error) {
	return r.re.Replace(s, r.replacement, -1, -1)
}
