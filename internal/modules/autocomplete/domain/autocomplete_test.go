package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tvshell/internal/modules/autocomplete/domain"
)

func TestCompleteKeepsTypedCase(t *testing.T) {
	t.Parallel()
	idx := domain.NewIndex([]string{"mozilla.org", "mozilla.com", "wikipedia.org"}, []string{"moviedb.example"})

	r := idx.Complete("Moz")
	require.Equal(t, "Mozilla.com", r.Text)
	require.Equal(t, "illa.com", r.Completion())
	require.Equal(t, domain.SourceDefault, r.Source)
	require.Equal(t, 4, r.Total)

	r = idx.Complete("mo")
	require.Equal(t, "moviedb.example", r.Text, "custom domains are preferred")
	require.Equal(t, domain.SourceCustom, r.Source)

	r = idx.Complete("www.wik")
	require.Equal(t, "www.wikipedia.org", r.Text)
}

func TestCompleteWithoutMatch(t *testing.T) {
	t.Parallel()
	idx := domain.NewIndex([]string{"mozilla.org"}, nil)
	require.True(t, idx.Complete("mozilla.org").Empty(), "exact match has nothing to complete")
	require.True(t, idx.Complete("moz illa").Empty())
	require.True(t, idx.Complete("https://moz").Empty())
	require.True(t, idx.Complete("").Empty())

	var none *domain.Index
	require.True(t, none.Complete("moz").Empty())
}
