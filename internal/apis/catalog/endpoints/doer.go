package endpoints

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Paths are the catalog endpoints relative to BaseURL.
type Paths struct {
	Products   string
	All        string
	Tags       string
	Labels     string
	Promotions string
}

func DefaultPaths() Paths {
	return Paths{
		Products:   "/products/",
		All:        "/products/all/",
		Tags:       "/tags/",
		Labels:     "/labels/",
		Promotions: "/promotion-tags/",
	}
}

type Client struct {
	Doer         Doer
	BaseURL      string
	Paths        Paths
	ApplyHeaders func(*http.Request)
}

func New(doer Doer, baseURL string, paths Paths, applyHeaders func(*http.Request)) *Client {
	def := DefaultPaths()
	if paths.Products == "" {
		paths.Products = def.Products
	}
	if paths.All == "" {
		paths.All = def.All
	}
	if paths.Tags == "" {
		paths.Tags = def.Tags
	}
	if paths.Labels == "" {
		paths.Labels = def.Labels
	}
	if paths.Promotions == "" {
		paths.Promotions = def.Promotions
	}

	return &Client{
		Doer:         doer,
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Paths:        paths,
		ApplyHeaders: applyHeaders,
	}
}

func (c *Client) newReq(ctx context.Context, method, path string, q url.Values) (*http.Request, error) {
	if c.BaseURL == "" {
		return nil, fmt.Errorf("BaseURL is empty")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, err
	}
	if c.ApplyHeaders != nil {
		c.ApplyHeaders(req)
	}
	return req, nil
}

// get performs a GET and returns the body of a 2xx response.
// Any other status becomes an *APIError.
func (c *Client) get(ctx context.Context, path string, q url.Values, limit int64) ([]byte, error) {
	req, err := c.newReq(ctx, http.MethodGet, path, q)
	if err != nil {
		return nil, err
	}

	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}

	b, err := readLimited(resp, limit)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ParseAPIError(resp.StatusCode, b)
	}
	return b, nil
}

func readLimited(resp *http.Response, limit int64) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}
