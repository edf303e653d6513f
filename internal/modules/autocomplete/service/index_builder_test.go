package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	autocompleteout "tvshell/internal/modules/autocomplete/adapter/out"
	"tvshell/internal/modules/autocomplete/domain"
	"tvshell/internal/modules/autocomplete/service"
)

func TestBuildMergesPinnedHosts(t *testing.T) {
	t.Parallel()
	b := service.NewIndexBuilder(autocompleteout.DefaultDomains)
	idx, err := b.Build(context.Background(), []string{"https://www.Kodi.example/tv", "not a url"})
	require.NoError(t, err)

	r := idx.Complete("ko")
	require.Equal(t, "kodi.example", r.Text)
	require.Equal(t, domain.SourceCustom, r.Source)
	require.Equal(t, "wikipedia.org", idx.Complete("wiki").Text)
}

func TestBuildStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := service.NewIndexBuilder(nil).Build(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}
