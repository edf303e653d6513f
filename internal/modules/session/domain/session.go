package domain

import (
	"fmt"
	"strings"
	"time"
)

// HomeURL is the sentinel URL of a session that shows the home tile overlay.
const HomeURL = "shell:home"

// Source records how a session's URL was supplied.
type Source string

const (
	SourceNone        Source = "none"
	SourceUserEntered Source = "user_entered"
	SourceView        Source = "view"
	SourceShare       Source = "share"
	SourceHomeScreen  Source = "home_screen"
	SourceMenu        Source = "menu"
)

func ParseSource(raw string) (Source, error) {
	switch s := Source(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return SourceNone, nil
	case SourceNone, SourceUserEntered, SourceView, SourceShare, SourceHomeScreen, SourceMenu:
		return s, nil
	default:
		return "", fmt.Errorf("unsupported session source %q", raw)
	}
}

type Session struct {
	ID        string
	URL       string
	Source    Source
	Progress  int
	CreatedAt time.Time
}

func (s Session) IsHome() bool {
	return s.URL == "" || s.URL == HomeURL
}

// ClampProgress bounds a load progress value to 0..100.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
