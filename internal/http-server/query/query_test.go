package query

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestStrings_RepeatedValuesKeepCommas(t *testing.T) {
	c := newContext("/search?tag=Salt%2C%20Pepper&tag=%20snack%20&tag=")
	assert.Equal(t, []string{"Salt, Pepper", "snack"}, Strings(c, "tag"))
	assert.Empty(t, Strings(c, "label"))
}

func TestList_SplitsOnCommas(t *testing.T) {
	c := newContext("/search?tags=a,%20b,,c")
	assert.Equal(t, []string{"a", "b", "c"}, List(c, "tags"))
	assert.Empty(t, List(c, "labels"))
}

func TestInt(t *testing.T) {
	c := newContext("/search?page_size=24&bad=x")

	v, ok, err := Int(c, "page_size")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 24, v)

	_, ok, err = Int(c, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Int(c, "bad")
	assert.Error(t, err)
}

func TestIntAny_FirstPresentKeyWins(t *testing.T) {
	c := newContext("/search?min_price=300")

	v, ok, err := IntAny(c, "price_min", "min_price")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 300, v)
}
