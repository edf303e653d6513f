package domain

import (
	"fmt"
	"strings"

	session "tvshell/internal/modules/session/domain"
	apperrors "tvshell/internal/platform/errors"
	"tvshell/internal/platform/urlutil"
)

// Request is a validated ask from outside the shell to open something.
type Request struct {
	URL    string
	Source session.Source
}

// Validate trims raw, refuses empty input and scripting or local schemes, and
// gives bare hosts a scheme. Shared text that is not a URL is kept as-is so it
// can be searched.
func Validate(raw, source string) (Request, error) {
	src, err := session.ParseSource(source)
	if err != nil {
		return Request{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if src == session.SourceNone {
		src = session.SourceView
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return Request{}, fmt.Errorf("%w: url is required", apperrors.ErrInvalidInput)
	}
	if urlutil.IsBlockedScheme(text) {
		return Request{}, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedScheme, text)
	}
	if !urlutil.LooksLikeURL(text) {
		if src == session.SourceShare {
			return Request{URL: text, Source: src}, nil
		}
		return Request{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidURL, text)
	}
	return Request{URL: urlutil.Normalize(text, "%s"), Source: src}, nil
}
