package in

import (
	"context"

	"tvshell/internal/modules/intent/dto"
)

type Usecase interface {
	Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error)
}
