// Package pages parses user-supplied page selection strings.
//
// A selection string is a comma-separated list of 1-based page numbers and
// inclusive ranges, e.g. "2", "1,4", "3-6", "1,3-5,8". An empty or entirely
// malformed string selects all pages. Out-of-range pages are filtered when
// the selection is applied to a real document, never at parse time.
package pages

import (
	"sort"
	"strconv"
	"strings"
)

// Selection is a set of 1-based page numbers.
// The zero value (and any empty parse result) selects all pages.
type Selection struct {
	pages map[int]struct{}
}

// Parse builds a Selection from a free-form string.
//
// Tokens are split on commas. A token is either a bare number or a
// dash-separated pair interpreted as an inclusive range; reversed range
// endpoints are normalized (so "5-3" means 3-5). Malformed tokens are
// silently skipped. If nothing parses, the result selects all pages.
func Parse(s string) Selection {
	out := make(map[int]struct{})

	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if lo, hi, ok := strings.Cut(tok, "-"); ok {
			start, okLo := parseNumber(lo)
			end, okHi := parseNumber(hi)
			if !okLo || !okHi {
				continue
			}
			if start > end {
				start, end = end, start
			}
			for p := start; p <= end; p++ {
				out[p] = struct{}{}
			}
			continue
		}

		if p, ok := parseNumber(tok); ok {
			out[p] = struct{}{}
		}
	}

	if len(out) == 0 {
		return Selection{}
	}
	return Selection{pages: out}
}

// All reports whether the selection means "all pages".
func (sel Selection) All() bool {
	return len(sel.pages) == 0
}

// Includes reports whether the given 1-based page should be kept.
// An all-pages selection includes everything.
func (sel Selection) Includes(page int) bool {
	if sel.All() {
		return true
	}
	_, ok := sel.pages[page]
	return ok
}

// Pages returns the explicitly selected page numbers in ascending order.
// It is empty for an all-pages selection.
func (sel Selection) Pages() []int {
	out := make([]int, 0, len(sel.pages))
	for p := range sel.pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Count returns how many pages of a document with total pages survive the
// selection. Out-of-range selected pages are dropped silently.
func (sel Selection) Count(total int) int {
	if sel.All() {
		return total
	}
	n := 0
	for p := range sel.pages {
		if p >= 1 && p <= total {
			n++
		}
	}
	return n
}

// parseNumber accepts only unsigned decimal digits, mirroring the strictness
// of the selection grammar: "+3", "-3" and "3.5" are all malformed tokens.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
