package in

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tvshell/internal/modules/intent/dto"
	intentin "tvshell/internal/modules/intent/port/in"
	apperrors "tvshell/internal/platform/errors"
)

type openRequest struct {
	Body dto.OpenInput
}

type openResponse struct {
	Body dto.OpenOutput
}

type healthResponse struct {
	Body struct {
		Status string `json:"status"`
	}
}

// NewHTTPHandler serves open requests from other processes on this machine.
func NewHTTPHandler(usecase intentin.Usecase) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(intentLogger)
	router.Use(middleware.Recoverer)
	router.Use(loopbackOnly)

	cfg := huma.DefaultConfig("tvshell intent API", "1.0.0")
	cfg.DocsPath = ""
	api := humachi.New(router, cfg)

	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/health", Summary: "Health check", Tags: []string{"Health"}},
		func(ctx context.Context, input *struct{}) (*healthResponse, error) {
			out := &healthResponse{}
			out.Body.Status = "ok"
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "open-url", Method: http.MethodPost, Path: "/api/v1/open", Summary: "Open a URL in the shell", Tags: []string{"Intent"}},
		func(ctx context.Context, input *openRequest) (*openResponse, error) {
			result, err := usecase.Open(ctx, input.Body)
			if err != nil {
				return nil, mapErr(err)
			}
			return &openResponse{Body: result}, nil
		})

	return router
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrInvalidURL):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, apperrors.ErrUnsupportedScheme):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError(err.Error())
	}
}
