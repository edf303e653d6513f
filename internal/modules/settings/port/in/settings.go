package in

import (
	"context"

	"tvshell/internal/modules/settings/dto"
)

type Usecase interface {
	IsBlockingEnabled(ctx context.Context) bool
	SetBlockingEnabled(ctx context.Context, enabled bool) error
	ShouldShowOnboarding(ctx context.Context) bool
	MarkOnboardingShown(ctx context.Context) error
	TryConsumeUnpinToast(ctx context.Context) (bool, error)
	ResetUnpinToastCounter(ctx context.Context) error
	TilesSeeded(ctx context.Context) bool
	MarkTilesSeeded(ctx context.Context) error
	Snapshot(ctx context.Context) (dto.Snapshot, error)
}
