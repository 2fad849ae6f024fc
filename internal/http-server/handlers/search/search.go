package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"catalogdash/internal/domain/models"
	"catalogdash/internal/gallery"
	"catalogdash/internal/http-server/query"
	"catalogdash/internal/http-server/respond"
	"catalogdash/internal/http-server/sessions"
)

type Renderer interface {
	Render(ctx context.Context, s *gallery.Session, filters models.FilterSet) (gallery.View, error)
}

type Options struct {
	Log      *slog.Logger
	Renderer Renderer
	Sessions *sessions.Store
	Timeout  time.Duration
}

type Response struct {
	SessionID string `json:"session_id"`
	gallery.View
}

type params struct {
	filters  models.FilterSet
	pageSize int
	nav      string
	priceMin *int
	priceMax *int
}

func parse(c echo.Context) (params, error) {
	var p params

	p.filters = models.NewFilterSet(
		c.QueryParam("search"),
		append(query.Strings(c, "tag"), query.List(c, "tags")...),
		append(query.Strings(c, "label"), query.List(c, "labels")...),
		append(query.Strings(c, "promotion"), query.List(c, "promotions")...),
	)

	if v, ok, err := query.Int(c, "page_size"); err != nil {
		return p, err
	} else if ok {
		if !models.ValidPageSize(v) {
			return p, fmt.Errorf("page_size must be one of %v", models.PageSizes)
		}
		p.pageSize = v
	}

	if v, ok, err := query.IntAny(c, "price_min", "min_price"); err != nil {
		return p, err
	} else if ok {
		p.priceMin = &v
	}
	if v, ok, err := query.IntAny(c, "price_max", "max_price"); err != nil {
		return p, err
	} else if ok {
		p.priceMax = &v
	}

	switch p.nav = c.QueryParam("nav"); p.nav {
	case "", "next", "prev":
	default:
		return p, fmt.Errorf("nav must be next or prev")
	}
	return p, nil
}

// NewGetHandler serves one render cycle per request. Page size, navigation
// and price narrowing apply to the session only when the filters are the
// same as on the previous call; a filter change starts over at page 1 with
// the full price range.
func NewGetHandler(opts Options) echo.HandlerFunc {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	return func(c echo.Context) error {
		if opts.Renderer == nil || opts.Sessions == nil {
			log.Error("search handler misconfigured")
			return respond.InternalError(c)
		}

		p, err := parse(c)
		if err != nil {
			return respond.Error(c, http.StatusBadRequest, "bad_request", err.Error())
		}

		entry, created := opts.Sessions.Acquire(c.Request().Header.Get(sessions.HeaderSessionID))
		entry.Lock()
		defer entry.Unlock()
		c.Response().Header().Set(sessions.HeaderSessionID, entry.ID)

		s := entry.Session
		if p.pageSize != 0 {
			_ = s.SetPageSize(p.pageSize)
		}
		if prev, ok := s.Filters(); ok && prev.Equal(p.filters) {
			applyInteraction(s, p)
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), opts.Timeout)
		defer cancel()

		v, err := opts.Renderer.Render(ctx, s, p.filters)
		if err != nil {
			log.Warn("search render failed", "err", err, "session", entry.ID)
			return respond.Upstream(c, err)
		}

		if created {
			log.Debug("session created", "session", entry.ID)
		}
		return respond.JSON(c, http.StatusOK, Response{SessionID: entry.ID, View: v})
	}
}

func applyInteraction(s *gallery.Session, p params) {
	switch p.nav {
	case "next":
		s.NextPage()
	case "prev":
		s.PrevPage()
	}

	if p.priceMin != nil || p.priceMax != nil {
		r := s.PriceRange()
		if p.priceMin != nil {
			r.Min = *p.priceMin
		}
		if p.priceMax != nil {
			r.Max = *p.priceMax
		}
		s.NarrowPrice(r)
	}
}
