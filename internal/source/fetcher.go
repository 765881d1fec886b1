package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const httpTimeout = 15 * time.Second

// Posting is one raw inbound listing, before normalization.
type Posting struct {
	NativeID    string
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	UpdatedAt   time.Time
}

// Fetcher retrieves the current full listing batch for a source. Read-only.
type Fetcher interface {
	Fetch(ctx context.Context, src string) ([]Posting, error)
}

// HTTPFetcher pulls JSON feeds over HTTP. Each source maps to a priority
// list of candidate endpoints tried in order; the first success
// short-circuits, and all failures are aggregated into one per-source error.
type HTTPFetcher struct {
	endpoints map[string][]string
	client    *http.Client
}

// NewHTTPFetcher constructs a fetcher with a shared time-bounded client.
func NewHTTPFetcher(endpoints map[string][]string) *HTTPFetcher {
	return &HTTPFetcher{
		endpoints: endpoints,
		client:    &http.Client{Timeout: httpTimeout},
	}
}

// feedPosting mirrors one entry of the JSON feed shape.
type feedPosting struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updated_at"`
}

type feedResponse struct {
	Postings []feedPosting `json:"postings"`
}

// Fetch tries the source's candidate endpoints in priority order.
func (f *HTTPFetcher) Fetch(ctx context.Context, src string) ([]Posting, error) {
	candidates := f.endpoints[src]
	if len(candidates) == 0 {
		return nil, ErrUnknownSource
	}

	var attempts []error
	for _, endpoint := range candidates {
		postings, err := f.fetchOne(ctx, endpoint)
		if err == nil {
			return postings, nil
		}
		attempts = append(attempts, fmt.Errorf("%s: %w", endpoint, err))
	}
	return nil, aggregate(attempts)
}

func (f *HTTPFetcher) fetchOne(ctx context.Context, endpoint string) ([]Posting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &TransientError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		// Timeouts classify the same as any network failure.
		return nil, &TransientError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransientError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrUnknownSource
	case resp.StatusCode != http.StatusOK:
		return nil, &TransientError{Err: fmt.Errorf("feed returned %d", resp.StatusCode)}
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, &MalformedError{Err: err}
	}

	postings := make([]Posting, 0, len(feed.Postings))
	for _, p := range feed.Postings {
		postings = append(postings, Posting{
			NativeID:    p.ID,
			Title:       p.Title,
			Company:     p.Company,
			Location:    p.Location,
			URL:         p.URL,
			Description: p.Description,
			UpdatedAt:   parseFeedTime(p.UpdatedAt),
		})
	}
	return postings, nil
}

// aggregate folds every candidate failure into one error, keeping the worst
// classification: malformed beats transient beats not-found, so operators see
// format breakage even when a fallback endpoint merely 404s.
func aggregate(attempts []error) error {
	joined := errors.Join(attempts...)
	var me *MalformedError
	if errors.As(joined, &me) {
		return &MalformedError{Err: joined}
	}
	var te *TransientError
	if errors.As(joined, &te) {
		return &TransientError{Err: joined}
	}
	return ErrUnknownSource
}

func parseFeedTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
