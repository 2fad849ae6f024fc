package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"catalogdash/internal/dashboard"
	"catalogdash/internal/http-server/respond"
)

type SnapshotGetter interface {
	Snapshot(ctx context.Context) (dashboard.Snapshot, error)
}

type Options struct {
	Log       *slog.Logger
	Dashboard SnapshotGetter
	Timeout   time.Duration
}

func NewGetHandler(opts Options) echo.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}

	return func(c echo.Context) error {
		if opts.Dashboard == nil {
			log.Error("dashboard handler misconfigured: SnapshotGetter is nil")
			return respond.InternalError(c)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), opts.Timeout)
		defer cancel()

		snap, err := opts.Dashboard.Snapshot(ctx)
		if err != nil {
			log.Warn("dashboard failed", "err", err)
			return respond.Upstream(c, err)
		}
		return respond.JSON(c, http.StatusOK, snap)
	}
}
