package domain

import (
	"sort"
	"strings"
)

const (
	SourceDefault = "default"
	SourceCustom  = "custom"
)

// Result is a completion for typed input. Text is the full suggested value
// (typed prefix plus completion); the zero Result means no suggestion.
type Result struct {
	Input  string
	Text   string
	Source string
	Total  int
}

func (r Result) Empty() bool { return r.Text == "" }

// Completion is the part of Text that follows Input.
func (r Result) Completion() string {
	if len(r.Text) <= len(r.Input) || !strings.EqualFold(r.Text[:len(r.Input)], r.Input) {
		return ""
	}
	return r.Text[len(r.Input):]
}

type entry struct {
	domain string
	source string
}

// Index is an immutable, sorted domain list. Custom domains win over
// defaults on ties.
type Index struct {
	entries []entry
}

func NewIndex(defaults, custom []string) *Index {
	seen := map[string]bool{}
	var entries []entry
	add := func(list []string, source string) {
		for _, d := range list {
			d = strings.ToLower(strings.TrimSpace(d))
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			entries = append(entries, entry{domain: d, source: source})
		}
	}
	add(custom, SourceCustom)
	add(defaults, SourceDefault)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].source != entries[j].source {
			return entries[i].source == SourceCustom
		}
		return entries[i].domain < entries[j].domain
	})
	return &Index{entries: entries}
}

func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Complete matches input as a case-insensitive prefix of an indexed domain.
// Input containing a path, whitespace or a scheme separator gets no result.
func (x *Index) Complete(input string) Result {
	if x == nil || input == "" || strings.ContainsAny(input, " /:") {
		return Result{}
	}
	needle := strings.ToLower(input)
	for _, e := range x.entries {
		if len(e.domain) > len(needle) && strings.HasPrefix(e.domain, needle) {
			return Result{Input: input, Text: input + e.domain[len(needle):], Source: e.source, Total: len(x.entries)}
		}
		if w := "www." + e.domain; len(w) > len(needle) && strings.HasPrefix(w, needle) {
			return Result{Input: input, Text: input + w[len(needle):], Source: e.source, Total: len(x.entries)}
		}
	}
	return Result{}
}
