package out_test

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	telemetry "tvshell/internal/modules/telemetry/adapter/out"
	"tvshell/internal/modules/telemetry/domain"
)

func TestJSONLSinkFlushesOnClose(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "telemetry", "events.jsonl")
	sink, err := telemetry.NewJSONLSink(path, 16)
	require.NoError(t, err)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, sink.Write(domain.Record{At: at, Kind: domain.KindOverlayClick, Name: name}))
	}
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close())
	require.ErrorIs(t, sink.Write(domain.Record{}), telemetry.ErrSinkClosed)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var r domain.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		require.Equal(t, at, r.At)
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}

func TestDiscardSink(t *testing.T) {
	t.Parallel()
	var s telemetry.DiscardSink
	require.NoError(t, s.Write(domain.Record{Kind: domain.KindSessionStarted}))
	require.NoError(t, s.Close())
}
