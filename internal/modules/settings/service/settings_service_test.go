package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	settingsout "tvshell/internal/modules/settings/adapter/out"
	"tvshell/internal/modules/settings/service"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/sqlitedb"
)

func TestUnpinToastBudgetStopsAtThree(t *testing.T) {
	t.Parallel()
	svc := service.NewSettingsService(settingsout.NewMemoryKeyValueStore())
	ctx := context.Background()
	consumed := 0
	for i := 0; i < 5; i++ {
		ok, err := svc.TryConsumeUnpinToast(ctx)
		require.NoError(t, err)
		if ok {
			consumed++
		}
	}
	require.Equal(t, 3, consumed)

	require.NoError(t, svc.ResetUnpinToastCounter(ctx))
	ok, err := svc.TryConsumeUnpinToast(ctx)
	require.NoError(t, err)
	require.True(t, ok, "budget is available after reset")
}

func TestReadsDegradeToDefaultsOnStoreFailure(t *testing.T) {
	t.Parallel()
	store := settingsout.NewMemoryKeyValueStore()
	store.Err = errors.New("disk on fire")
	svc := service.NewSettingsService(store)
	ctx := context.Background()
	require.True(t, svc.IsBlockingEnabled(ctx), "blocking defaults to enabled")
	require.True(t, svc.ShouldShowOnboarding(ctx), "onboarding defaults to shown")
	require.Error(t, svc.SetBlockingEnabled(ctx, false))

	ok, err := svc.TryConsumeUnpinToast(ctx)
	require.Error(t, err)
	require.False(t, ok, "a failed store does not consume the budget")
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "tvshell.db")
	clk := clock.Fixed(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	db, err := sqlitedb.Open(dbPath)
	require.NoError(t, err)
	svc := service.NewSettingsService(settingsout.NewSQLiteKeyValueStore(db, clk))
	require.NoError(t, svc.SetBlockingEnabled(ctx, false))
	require.NoError(t, svc.MarkOnboardingShown(ctx))
	for i := 0; i < 2; i++ {
		_, err := svc.TryConsumeUnpinToast(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	db, err = sqlitedb.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	svc = service.NewSettingsService(settingsout.NewSQLiteKeyValueStore(db, clk))
	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.False(t, snap.BlockingEnabled)
	require.True(t, snap.OnboardingShown)
	require.Equal(t, 2, snap.UnpinToastsShown)
}
