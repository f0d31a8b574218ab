package loader

import (
	"context"
	"net/http"
	"time"

	"logias/internal/models"
)

// HTTPSource fetches the dataset document from a fixed URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

// NewHTTPSource returns a source for url. A zero timeout leaves the client
// without one.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "logias-loader/1.0",
	}
}

func (s *HTTPSource) Describe() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Logia, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, loadError("build request for %s: %w", s.url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, loadError("get %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, loadError("get %s: unexpected status: %s", s.url, resp.Status)
	}
	return decode(resp.Body)
}
