package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// PageLimit is the fixed page size sent as the "limit" query parameter on
// every paginated request.
const PageLimit = 5

// MaxPages bounds the pagination loop. The API contract says a null
// next_cursor is the sole termination signal; the cap guards against a
// server that never sends one.
const MaxPages = 100

// page is the API's paginated response envelope. A nil NextCursor (null or
// absent in JSON) means the listing is exhausted; an empty Items slice alone
// does not.
type page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor"`
}

// collectPages fetches every page of a listing endpoint sequentially,
// preserving the server-provided item order. The first request carries no
// cursor; each subsequent request carries the prior page's cursor.
func collectPages[T any](ctx context.Context, c *Client, path string, base url.Values) ([]T, error) {
	items := make([]T, 0)
	var cursor *string

	for n := 0; n < MaxPages; n++ {
		query := url.Values{}
		for k, vs := range base {
			query[k] = vs
		}
		query.Set("limit", strconv.Itoa(PageLimit))
		if cursor != nil {
			query.Set("cursor", *cursor)
		}

		body, err := c.do(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}

		pg, err := decode[page[T]](path, body)
		if err != nil {
			return nil, err
		}

		items = append(items, pg.Items...)

		if pg.NextCursor == nil {
			return items, nil
		}
		cursor = pg.NextCursor
	}

	return nil, fmt.Errorf("pagination for %s exceeded %d pages without a terminating cursor", path, MaxPages)
}
