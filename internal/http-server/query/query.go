package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func Int(c echo.Context, key string) (val int, present bool, err error) {
	raw := strings.TrimSpace(c.QueryParam(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be integer", key)
	}
	return n, true, nil
}

func IntAny(c echo.Context, keys ...string) (val int, present bool, err error) {
	for _, k := range keys {
		v, ok, e := Int(c, k)
		if e != nil {
			return 0, false, e
		}
		if ok {
			return v, true, nil
		}
	}
	return 0, false, nil
}

// Strings returns every value of a repeated parameter (?tag=a&tag=b).
// Values are taken whole, commas included; blanks are dropped.
func Strings(c echo.Context, key string) []string {
	var out []string
	for _, v := range c.QueryParams()[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// List splits a comma separated parameter (?tags=a,b). When the key is
// repeated only the first value is used.
func List(c echo.Context, key string) []string {
	var out []string
	for _, part := range strings.Split(c.QueryParam(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
