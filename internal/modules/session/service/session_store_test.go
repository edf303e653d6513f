package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tvshell/internal/modules/session/domain"
	"tvshell/internal/modules/session/service"
	"tvshell/internal/platform/clock"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return "s" + string(rune('0'+s.n))
}

func newStore() *service.SessionStore {
	return service.NewSessionStore(clock.Fixed(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)), &seqID{})
}

func TestObserveDeliversCurrentListThenChanges(t *testing.T) {
	t.Parallel()
	store := newStore()
	var got [][]domain.Session
	cancel := store.Observe(func(list []domain.Session) { got = append(got, list) })

	first := store.Create(domain.HomeURL, domain.SourceNone)
	store.Create("https://mozilla.org", domain.SourceView)
	cancel()
	store.RemoveAll()

	require.Len(t, got, 3, "initial list plus two creates")
	require.Empty(t, got[0])
	require.Len(t, got[1], 1)
	require.Len(t, got[2], 2)
	require.Equal(t, first.ID, got[1][0].ID)
	require.True(t, got[1][0].IsHome())
}

func TestChangesFromObserverAreDeliveredInOrder(t *testing.T) {
	t.Parallel()
	store := newStore()
	var sizes []int
	store.Observe(func(list []domain.Session) {
		sizes = append(sizes, len(list))
		if len(list) == 0 {
			store.Create(domain.HomeURL, domain.SourceNone)
		}
	})
	// initial [] -> create -> [S1]
	require.Equal(t, []int{0, 1}, sizes)
	store.RemoveAll()
	// [] -> create -> [S2]
	require.Equal(t, []int{0, 1, 0, 1}, sizes)
}

func TestRemoveSelectAndProgress(t *testing.T) {
	t.Parallel()
	store := newStore()
	a := store.Create("https://a.example", domain.SourceUserEntered)
	b := store.Create("https://b.example", domain.SourceUserEntered)
	cur, _ := store.Current()
	require.Equal(t, b.ID, cur.ID, "latest session is current")
	require.True(t, store.Select(a.ID))
	require.False(t, store.Select(a.ID), "selecting the current session is not a change")

	store.UpdateProgress(a.ID, 140)
	store.UpdateURL(a.ID, "https://a.example/next")
	cur, _ = store.Current()
	require.Equal(t, 100, cur.Progress)
	require.Equal(t, "https://a.example/next", cur.URL)

	require.True(t, store.Remove(a.ID))
	cur, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, b.ID, cur.ID)
	require.False(t, store.Remove("missing"))
}

func TestParseSource(t *testing.T) {
	t.Parallel()
	s, err := domain.ParseSource("")
	require.NoError(t, err)
	require.Equal(t, domain.SourceNone, s)
	_, err = domain.ParseSource("carrier-pigeon")
	require.Error(t, err)
}
