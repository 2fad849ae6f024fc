package respond

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"catalogdash/internal/apis/catalog/endpoints"
)

type ErrorBody struct {
	Error struct {
		Code           string `json:"code"`
		Message        string `json:"message"`
		UpstreamStatus int    `json:"upstream_status,omitempty"`
	} `json:"error"`
}

func JSON(c echo.Context, status int, v any) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(status, v)
}

func Error(c echo.Context, status int, code, msg string) error {
	var b ErrorBody
	b.Error.Code = code
	b.Error.Message = msg
	return JSON(c, status, b)
}

func InternalError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "internal_error", "internal error")
}

// Upstream reports a failed catalog query. The response is always 502; the
// catalog status, when there is one, travels in upstream_status.
func Upstream(c echo.Context, err error) error {
	var b ErrorBody
	b.Error.Code = "upstream_error"
	b.Error.Message = err.Error()
	b.Error.UpstreamStatus = endpoints.StatusOf(err)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		b.Error.Code = "upstream_timeout"
	case errors.Is(err, endpoints.ErrMalformedPayload):
		b.Error.Code = "upstream_malformed"
	}
	return JSON(c, http.StatusBadGateway, b)
}
