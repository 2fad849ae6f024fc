package endpoints

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"catalogdash/internal/apis/catalog/responses"
)

func (c *Client) ListNames(ctx context.Context, path string, pageSize int) ([]string, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}

	b, err := c.get(ctx, path, q, pageBodyLimit)
	if err != nil {
		return nil, err
	}

	names, err := responses.ParseNames(b)
	if err != nil {
		return nil, fmt.Errorf("ListNames %s: %w", path, err)
	}
	return names, nil
}
