package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"catalogdash/internal/http-server/respond"
	"catalogdash/internal/metrics"
)

const HeaderRequestID = "X-Request-Id"

const ridKey = "request_id"

func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" {
				rid = NewRID()
			}
			c.Set(ridKey, rid)
			c.Request().Header.Set(HeaderRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}

func GetRequestID(c echo.Context) string {
	if rid, ok := c.Get(ridKey).(string); ok {
		return rid
	}
	return c.Request().Header.Get(HeaderRequestID)
}

func AccessLog(log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"query", req.URL.RawQuery,
				"status", res.Status,
				"bytes", res.Size,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote", c.RealIP(),
				"rid", GetRequestID(c),
			}

			switch {
			case res.Status >= 500:
				if err != nil {
					args = append(args, "err", err.Error())
				}
				log.Error("http", args...)
			case res.Status >= 400:
				log.Warn("http", args...)
			default:
				log.Info("http", args...)
			}
			return nil
		}
	}
}

func RecoverPanic(log *slog.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if v := recover(); v != nil {
					log.Error("panic recovered",
						"panic", v,
						"rid", GetRequestID(c),
						"stack", string(debug.Stack()),
					)
					err = respond.Error(c, http.StatusInternalServerError, "internal_error", "panic")
				}
			}()
			return next(c)
		}
	}
}

// Metrics observes request latency per route template. Unmatched routes
// share one label value.
func Metrics(m *metrics.HTTP) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" || isNotFoundHandler(c.Handler()) {
				path = "/not-found"
			}
			m.Duration.WithLabelValues(c.Request().Method, path, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ErrorHandler renders every unhandled error with the respond error body.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		status, code, msg := http.StatusInternalServerError, "internal_error", "internal error"

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he):
			status = he.Code
			code = codeFor(he.Code)
			msg = fmt.Sprint(he.Message)
		case errors.Is(err, context.Canceled):
			status, code, msg = 499, "canceled", "request canceled"
		default:
			log.Error("unhandled error", "err", err, "rid", GetRequestID(c))
		}

		if werr := respond.Error(c, status, code, msg); werr != nil {
			log.Error("could not respond", "status", status, "err", werr)
		}
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "error"
	}
}

func isNotFoundHandler(h echo.HandlerFunc) bool {
	return reflect.ValueOf(h).Pointer() == reflect.ValueOf(echo.NotFoundHandler).Pointer()
}

func NewRID() string {
	return uuid.NewString()
}
