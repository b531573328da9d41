package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 1 << 20

// HTTPSource fetches invoices from {baseURL}/invoices/{id}.json.
type HTTPSource struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSource returns a source that reads from baseURL. A nil client
// gets one with the given timeout.
func NewHTTPSource(baseURL string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *HTTPSource) Fetch(ctx context.Context, id string) (*Resource, error) {
	u := fmt.Sprintf("%s/invoices/%s", s.baseURL, url.PathEscape(ResourceName(id)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDocumentSize))
		return nil, newLoadError("fetch", id, ErrNotFound, fmt.Errorf("status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, newLoadError("fetch", id, ErrNetwork, err)
	}

	var modified time.Time
	if lm := resp.Header.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			modified = t
		}
	}
	return &Resource{Body: body, Version: NewVersion(modified, body)}, nil
}
