package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPSource fetches the eggTypes document from a game-data mirror.
type HTTPSource struct {
	client *resty.Client
	path   string
}

// NewHTTPSource builds a source for rawURL, e.g. https://example.org/data/eggTypes.json.
func NewHTTPSource(rawURL string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog url %q", rawURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	path := u.RequestURI()
	u.Path, u.RawPath, u.RawQuery = "", "", ""

	c := resty.New().
		SetBaseURL(u.String()).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &HTTPSource{client: c, path: path}, nil
}

// Fetch downloads and converts the document. Mirrors often serve it as
// text/plain, so the body is decoded here rather than by resty.
func (h *HTTPSource) Fetch(ctx context.Context) (Catalog, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(h.path)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode())
	}
	return Parse(resp.Body())
}
