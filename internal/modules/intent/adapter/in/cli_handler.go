package in

import (
	"context"

	"tvshell/internal/modules/intent/dto"
	intentin "tvshell/internal/modules/intent/port/in"
)

type CLIHandler struct {
	usecase intentin.Usecase
}

func NewCLIHandler(usecase intentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Open(ctx context.Context, url, source string) (dto.OpenOutput, error) {
	return h.usecase.Open(ctx, dto.OpenInput{URL: url, Source: source})
}
