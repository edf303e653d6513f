package service

import (
	"context"
	"log/slog"

	"tvshell/internal/modules/intent/domain"
	"tvshell/internal/modules/intent/dto"
	intentin "tvshell/internal/modules/intent/port/in"
	intentout "tvshell/internal/modules/intent/port/out"
	"tvshell/internal/platform/mainloop"
)

type IntentService struct {
	opener intentout.Opener
	poster mainloop.Poster
}

func NewIntentService(opener intentout.Opener, poster mainloop.Poster) intentin.Usecase {
	return &IntentService{opener: opener, poster: poster}
}

// Open validates input on the caller's goroutine and hands the request to the
// UI context.
func (s *IntentService) Open(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error) {
	req, err := domain.Validate(input.URL, input.Source)
	if err != nil {
		return dto.OpenOutput{}, err
	}
	if err := ctx.Err(); err != nil {
		return dto.OpenOutput{}, err
	}
	slog.Info("open request accepted", "url", req.URL, "source", string(req.Source))
	s.poster.Post(func() { s.opener.ShowBrowserFor(req.URL, req.Source) })
	return dto.OpenOutput{URL: req.URL, Source: string(req.Source)}, nil
}
