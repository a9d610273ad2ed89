package engine

import (
	"fmt"
	"strings"
)

// Flags is the parsed form of a --flags/-f string (SPEC_FULL.md §6):
// lowercase letters turn a behavior on, the matching uppercase letter
// turns it off. Unknown letters are a caller-surfaced error.
type Flags struct {
	CaseInsensitive bool
	Multiline       bool
	DotAll          bool
	SwapGreed       bool
	IgnoreWhitespace bool
}

// DefaultFlags derives the implicit flag set from the pattern and
// whether the engine is regex: a pattern containing an uppercase
// letter disables case-insensitivity; regex mode additionally enables
// multiline by default (SPEC_FULL.md §4.7/§6).
func DefaultFlags(pattern string, isRegex bool) Flags {
	f := Flags{CaseInsensitive: !hasUpper(pattern)}
	if isRegex {
		f.Multiline = true
	}
	return f
}

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// ParseFlags applies letters over a base Flags set. For literal
// engines only i/I are meaningful; any other letter is an error.
func ParseFlags(base Flags, letters string, isRegex bool) (Flags, error) {
	f := base
	for _, r := range letters {
		switch r {
		case 'i':
			f.CaseInsensitive = true
		case 'I':
			f.CaseInsensitive = false
		case 'm':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.Multiline = true
		case 'M':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.Multiline = false
		case 's':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.DotAll = true
		case 'S':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.DotAll = false
		case 'u':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.SwapGreed = true
		case 'U':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.SwapGreed = false
		case 'x':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.IgnoreWhitespace = true
		case 'X':
			if !isRegex {
				return f, fmt.Errorf("flag %q is only valid for regex patterns", string(r))
			}
			f.IgnoreWhitespace = false
		default:
			return f, fmt.Errorf("unrecognized flag %q", string(r))
		}
	}
	return f, nil
}

// swapGreedy flips the default greediness of every top-level quantifier
// in pattern: `*`, `+`, `?` and `{m,n}` become lazy when not already
// suffixed with `?`, and lazy quantifiers become greedy. regexp2 has no
// native swap-greed option (it follows .NET semantics, not RE2's), so
// this performs the same textual transform RE2's "u" flag effects,
// without touching character classes or escaped metacharacters.
func swapGreedy(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))
	runes := []rune(pattern)
	inClass := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			b.WriteRune(r)
			i++
			b.WriteRune(runes[i])
			continue
		}
		if r == '[' {
			inClass = true
		} else if r == ']' {
			inClass = false
		}
		quantifierEnd := !inClass && (r == '*' || r == '+' || r == '?')
		if inClass || r != '{' {
			b.WriteRune(r)
		} else {
			// Copy a {m}, {m,}, or {m,n} quantifier verbatim.
			j := i
			for j < len(runes) && runes[j] != '}' {
				j++
			}
			if j == len(runes) {
				b.WriteRune(r)
			} else {
				b.WriteString(string(runes[i : j+1]))
				i = j
				quantifierEnd = true
			}
		}
		if !quantifierEnd {
			continue
		}
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		if next == '?' {
			i++ // already lazy: drop the marker to make it greedy
			continue
		}
		b.WriteByte('?') // already greedy: add the marker to make it lazy
	}
	return b.String()
}
