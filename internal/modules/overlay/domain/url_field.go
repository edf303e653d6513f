package domain

import (
	"strings"

	autocomplete "tvshell/internal/modules/autocomplete/domain"
)

// URLField is the overlay's address entry: typed text plus an inline
// completion from the autocomplete index.
type URLField struct {
	text        string
	cached      autocomplete.Result
	index       *autocomplete.Index
	focused     bool
	userChanged bool
}

func (f *URLField) SetIndex(idx *autocomplete.Index) {
	f.index = idx
	if f.focused && f.userChanged {
		f.complete()
	}
}

func (f *URLField) Text() string                        { return f.text }
func (f *URLField) Cached() autocomplete.Result         { return f.cached }
func (f *URLField) Focused() bool                       { return f.focused }
func (f *URLField) UserChanged() bool                   { return f.userChanged }
func (f *URLField) Suggestion() string                  { return f.cached.Completion() }
func (f *URLField) HasIndex() bool                      { return f.index.Len() > 0 }
func (f *URLField) IndexSize() int                      { return f.index.Len() }
func (f *URLField) Display() (typed, completion string) { return f.text, f.cached.Completion() }

// SetText replaces the text programmatically. The cached completion is
// always cleared.
func (f *URLField) SetText(text string) {
	f.text = text
	f.cached = autocomplete.Result{}
}

// Type applies a user edit. Completion is only offered while the user is
// extending the text.
func (f *URLField) Type(text string) {
	grew := len(text) > len(f.text) && strings.HasPrefix(text, f.text)
	f.SetText(text)
	f.userChanged = true
	if grew {
		f.complete()
	}
}

func (f *URLField) complete() {
	f.cached = f.index.Complete(f.text)
}

// SetDisplayURL mirrors the page URL unless the user is editing.
func (f *URLField) SetDisplayURL(url string) {
	if f.userChanged {
		return
	}
	f.SetText(url)
}

func (f *URLField) Focus() { f.focused = true }

// Blur ends the edit: later page URLs are mirrored again.
func (f *URLField) Blur() {
	f.userChanged = false
	f.focused = false
	f.cached = autocomplete.Result{}
}

// Commit returns the text to load and the completion cached just before the
// commit. Blank input is not committed.
func (f *URLField) Commit() (string, autocomplete.Result, bool) {
	if strings.TrimSpace(f.text) == "" {
		return "", autocomplete.Result{}, false
	}
	cached := f.cached
	committed := f.text
	if !cached.Empty() {
		committed = cached.Text
	}
	f.SetText(committed)
	f.userChanged = false
	return committed, cached, true
}
