package vocabulary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"catalogdash/internal/domain/models"
	"catalogdash/internal/http-server/respond"
)

type Fetcher interface {
	FetchVocabulary(ctx context.Context) (models.Vocabulary, error)
}

type Options struct {
	Log     *slog.Logger
	Fetcher Fetcher
	Timeout time.Duration
}

func NewGetHandler(opts Options) echo.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return func(c echo.Context) error {
		if opts.Fetcher == nil {
			log.Error("vocabulary handler misconfigured: Fetcher is nil")
			return respond.InternalError(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), opts.Timeout)
		defer cancel()

		v, err := opts.Fetcher.FetchVocabulary(ctx)
		if err != nil {
			log.Warn("vocabulary failed", "err", err)
			return respond.Upstream(c, err)
		}
		return respond.JSON(c, http.StatusOK, v)
	}
}
