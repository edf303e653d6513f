package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tvshell/internal/modules/intent/domain"
	session "tvshell/internal/modules/session/domain"
	apperrors "tvshell/internal/platform/errors"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw, source string
		wantURL     string
		wantSource  session.Source
		wantErr     error
	}{
		{raw: "  mozilla.org ", wantURL: "http://mozilla.org", wantSource: session.SourceView},
		{raw: "https://example.com/a?b=c", source: "share", wantURL: "https://example.com/a?b=c", wantSource: session.SourceShare},
		{raw: "funny cat videos", source: "share", wantURL: "funny cat videos", wantSource: session.SourceShare},
		{raw: "funny cat videos", source: "view", wantErr: apperrors.ErrInvalidURL},
		{raw: "   ", wantErr: apperrors.ErrInvalidInput},
		{raw: "javascript:alert(1)", wantErr: apperrors.ErrUnsupportedScheme},
		{raw: "file:///etc/passwd", wantErr: apperrors.ErrUnsupportedScheme},
		{raw: "DATA:text/html,hi", wantErr: apperrors.ErrUnsupportedScheme},
		{raw: "mozilla.org", source: "carrier-pigeon", wantErr: apperrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		req, err := domain.Validate(tc.raw, tc.source)
		if tc.wantErr != nil {
			require.ErrorIs(t, err, tc.wantErr, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.wantURL, req.URL, tc.raw)
		require.Equal(t, tc.wantSource, req.Source, tc.raw)
	}
}
