package in

import (
	"context"

	"tvshell/internal/modules/tiles/dto"
	tilesin "tvshell/internal/modules/tiles/port/in"
)

type CLIHandler struct {
	usecase tilesin.Usecase
}

func NewCLIHandler(usecase tilesin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TileOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Pin(ctx context.Context, url, title string) (dto.TileOutput, error) {
	t, err := h.usecase.Pin(ctx, dto.PinInput{URL: url, Title: title})
	if err != nil {
		return dto.TileOutput{}, err
	}
	return dto.TileOutput{ID: t.ID, URL: t.URL, Title: t.Title, Kind: string(t.Kind), Thumbnail: t.Thumbnail}, nil
}

func (h CLIHandler) Unpin(ctx context.Context, url string) (bool, error) {
	return h.usecase.UnpinURL(ctx, url)
}
