package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dashhandler "catalogdash/internal/http-server/handlers/dashboard"
	"catalogdash/internal/http-server/handlers/search"
	"catalogdash/internal/http-server/handlers/vocabulary"
	"catalogdash/internal/http-server/middleware"
	"catalogdash/internal/http-server/sessions"
	"catalogdash/internal/metrics"
)

type Server struct {
	log *slog.Logger
	e   *echo.Echo
}

// New builds the echo instance and its middleware. Request metrics are
// registered on reg; gatherer backs /metrics.
func New(log *slog.Logger, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Server {
	if log == nil {
		log = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(log)

	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(log))
	e.Use(middleware.Metrics(metrics.NewHTTP(reg)))
	e.Use(middleware.RecoverPanic(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{log: log, e: e}
}

func (s *Server) Handler() http.Handler {
	return s.e
}

type Deps struct {
	Renderer   search.Renderer
	Dashboard  dashhandler.SnapshotGetter
	Vocabulary vocabulary.Fetcher
	Sessions   *sessions.Store
	Timeout    time.Duration
	AllTimeout time.Duration
}

func (s *Server) RegisterRoutes(dep Deps) {
	s.e.GET("/search", search.NewGetHandler(search.Options{
		Log:      s.log,
		Renderer: dep.Renderer,
		Sessions: dep.Sessions,
		Timeout:  dep.Timeout,
	}))

	s.e.GET("/dashboard", dashhandler.NewGetHandler(dashhandler.Options{
		Log:       s.log,
		Dashboard: dep.Dashboard,
		Timeout:   dep.AllTimeout,
	}))

	s.e.GET("/vocabulary", vocabulary.NewGetHandler(vocabulary.Options{
		Log:     s.log,
		Fetcher: dep.Vocabulary,
		Timeout: dep.Timeout,
	}))
}
