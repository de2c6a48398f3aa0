package extract

import (
	"strings"
	"unicode"
)

// Term is a label descriptor with one or more recognized spellings.
// Document authors retype labels with different capitalization, add or
// drop trailing colons, and collapse or insert whitespace, but never
// alter word order or substitute synonyms outside the curated alias
// list, so matching stays purely lexical.
//
// A Term is immutable after construction; the zero value is not useful.
type Term struct {
	main    string
	label   string
	aliases []string
}

// NewTerm creates a term with a canonical spelling and optional
// alternate spellings. The canonical spelling is itself part of the
// alias set.
func NewTerm(main string, aliases ...string) Term {
	all := make([]string, 0, len(aliases)+1)
	all = append(all, main)
	all = append(all, aliases...)
	return Term{main: main, label: main, aliases: all}
}

// WithLabel returns a copy of the term with a different output column
// label. The matching behavior is unchanged.
func (t Term) WithLabel(label string) Term {
	t.label = label
	return t
}

// Main returns the canonical display string of the term.
func (t Term) Main() string {
	return t.main
}

// Label returns the output column label, which defaults to Main.
func (t Term) Label() string {
	return t.label
}

// Aliases returns a copy of all recognized spellings, canonical first.
func (t Term) Aliases() []string {
	out := make([]string, len(t.aliases))
	copy(out, t.aliases)
	return out
}

// Is reports whether the term's canonical spelling equals main.
// Two terms describe the same label exactly when their canonical
// spellings are equal.
func (t Term) Is(main string) bool {
	return t.main == main
}

// MatchesExact reports whether the trimmed text equals any alias.
func (t Term) MatchesExact(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, a := range t.aliases {
		if trimmed == a {
			return true
		}
	}
	return false
}

// MatchesDeep reports whether the normalized form of text equals the
// normalized form of any alias. This is the fallback tier used when
// exact matching fails, absorbing spacing, case, and colon drift.
//
// Deep matching must not be the first attempt: some labels are
// legitimate substrings of unrelated narrative sentences, and the
// exact tier avoids those false positives.
func (t Term) MatchesDeep(text string) bool {
	norm := Normalize(text)
	for _, a := range t.aliases {
		if norm == Normalize(a) {
			return true
		}
	}
	return false
}

// Matches reports whether text matches any alias exactly or deeply.
func (t Term) Matches(text string) bool {
	return t.MatchesExact(text) || t.MatchesDeep(text)
}

// HasPrefix reports whether the trimmed text begins with any alias.
// Used when a label and its value share one paragraph or cell, as in
// "Subject: Physics".
func (t Term) HasPrefix(text string) bool {
	trimmed := strings.TrimSpace(text)
	for _, a := range t.aliases {
		if strings.HasPrefix(trimmed, a) {
			return true
		}
	}
	return false
}

// Strip removes the matched alias from the front of text, then strips
// one leading colon and surrounding whitespace, recovering the value
// portion of a shared label/value cell. The longest matching alias
// wins, so an alias that extends another is stripped whole and the
// value text itself is never touched.
func (t Term) Strip(text string) string {
	trimmed := strings.TrimSpace(text)
	var matched string
	for _, a := range t.aliases {
		if strings.HasPrefix(trimmed, a) && len(a) > len(matched) {
			matched = a
		}
	}
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, matched))
	if after, ok := strings.CutPrefix(rest, ":"); ok {
		return strings.TrimSpace(after)
	}
	return rest
}

// Normalize lowercases s and removes all whitespace and colons.
// Both sides of a deep comparison go through the same normalization.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || r == ':' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
