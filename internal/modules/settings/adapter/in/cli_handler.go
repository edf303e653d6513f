package in

import (
	"context"

	"tvshell/internal/modules/settings/dto"
	settingsin "tvshell/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.Snapshot, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) SetTurbo(ctx context.Context, enabled bool) error {
	return h.usecase.SetBlockingEnabled(ctx, enabled)
}

func (h CLIHandler) ResetUnpinToast(ctx context.Context) error {
	return h.usecase.ResetUnpinToastCounter(ctx)
}
