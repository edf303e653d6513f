package service

import (
	"context"
	"fmt"
	"log/slog"

	"tvshell/internal/modules/settings/domain"
	"tvshell/internal/modules/settings/dto"
	settingsin "tvshell/internal/modules/settings/port/in"
	settingsout "tvshell/internal/modules/settings/port/out"
)

// SettingsService reads degrade to defaults on store failure; writes report
// the error so callers can log and carry on.
type SettingsService struct {
	store settingsout.KeyValueStore
}

func NewSettingsService(store settingsout.KeyValueStore) *SettingsService {
	return &SettingsService{store: store}
}

var _ settingsin.Usecase = (*SettingsService)(nil)

func (s *SettingsService) IsBlockingEnabled(ctx context.Context) bool {
	return s.boolOr(ctx, domain.KeyBlockingEnabled, domain.DefaultBlockingEnabled)
}

func (s *SettingsService) SetBlockingEnabled(ctx context.Context, enabled bool) error {
	if err := s.store.SetBool(ctx, domain.KeyBlockingEnabled, enabled); err != nil {
		return fmt.Errorf("set blocking enabled: %w", err)
	}
	return nil
}

func (s *SettingsService) ShouldShowOnboarding(ctx context.Context) bool {
	return !s.boolOr(ctx, domain.KeyOnboardingShown, false)
}

func (s *SettingsService) MarkOnboardingShown(ctx context.Context) error {
	if err := s.store.SetBool(ctx, domain.KeyOnboardingShown, true); err != nil {
		return fmt.Errorf("mark onboarding shown: %w", err)
	}
	return nil
}

// TryConsumeUnpinToast takes one unit of the lifetime unpin-toast budget. It
// reports false, without writing, once the budget is spent.
func (s *SettingsService) TryConsumeUnpinToast(ctx context.Context) (bool, error) {
	consumed := false
	_, err := s.store.UpdateInt(ctx, domain.KeyUnpinToastCounter, func(current int) (int, bool) {
		if current >= domain.MaxUnpinToastCount {
			return current, false
		}
		consumed = true
		return current + 1, true
	})
	if err != nil {
		return false, fmt.Errorf("update unpin toast counter: %w", err)
	}
	return consumed, nil
}

func (s *SettingsService) ResetUnpinToastCounter(ctx context.Context) error {
	if err := s.store.SetInt(ctx, domain.KeyUnpinToastCounter, 0); err != nil {
		return fmt.Errorf("reset unpin toast counter: %w", err)
	}
	return nil
}

func (s *SettingsService) TilesSeeded(ctx context.Context) bool {
	return s.boolOr(ctx, domain.KeyTilesSeeded, false)
}

func (s *SettingsService) MarkTilesSeeded(ctx context.Context) error {
	if err := s.store.SetBool(ctx, domain.KeyTilesSeeded, true); err != nil {
		return fmt.Errorf("mark tiles seeded: %w", err)
	}
	return nil
}

func (s *SettingsService) Snapshot(ctx context.Context) (dto.Snapshot, error) {
	count, _, err := s.store.GetInt(ctx, domain.KeyUnpinToastCounter)
	if err != nil {
		return dto.Snapshot{}, fmt.Errorf("read unpin toast counter: %w", err)
	}
	return dto.Snapshot{
		BlockingEnabled:  s.IsBlockingEnabled(ctx),
		OnboardingShown:  !s.ShouldShowOnboarding(ctx),
		UnpinToastsShown: count,
		TilesSeeded:      s.TilesSeeded(ctx),
	}, nil
}

func (s *SettingsService) boolOr(ctx context.Context, key string, fallback bool) bool {
	v, found, err := s.store.GetBool(ctx, key)
	if err != nil {
		slog.Warn("settings read failed, using default", "key", key, "error", err)
		return fallback
	}
	if !found {
		return fallback
	}
	return v
}
