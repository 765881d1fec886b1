package source_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobmate/radar-service/internal/source"
)

const feedBody = `{"postings":[
	{"id":"7","title":"Leasing Agent","company":"Greystar","location":"Austin, TX",
	 "url":"https://example.com/jobs/7","description":"","updated_at":"2026-08-01T12:00:00Z"}
]}`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ── HTTPFetcher — candidate endpoints tried in priority order ──────────────

func TestHTTPFetcher_FallsBackToNextCandidate(t *testing.T) {
	broken := feedServer(t, http.StatusInternalServerError, "")
	healthy := feedServer(t, http.StatusOK, feedBody)

	fetcher := source.NewHTTPFetcher(map[string][]string{
		"boards": {broken.URL, healthy.URL},
	})
	postings, err := fetcher.Fetch(context.Background(), "boards")
	if err != nil {
		t.Fatal(err)
	}
	if len(postings) != 1 {
		t.Fatalf("expected 1 posting, got %d", len(postings))
	}
	p := postings[0]
	if p.NativeID != "7" || p.Title != "Leasing Agent" || p.URL != "https://example.com/jobs/7" {
		t.Errorf("posting decoded wrong: %+v", p)
	}
	if p.UpdatedAt.IsZero() {
		t.Error("updated_at should parse")
	}
}

func TestHTTPFetcher_FirstSuccessShortCircuits(t *testing.T) {
	var fallbackHit bool
	primary := feedServer(t, http.StatusOK, feedBody)
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackHit = true
		w.Write([]byte(feedBody))
	}))
	t.Cleanup(fallback.Close)

	fetcher := source.NewHTTPFetcher(map[string][]string{
		"boards": {primary.URL, fallback.URL},
	})
	if _, err := fetcher.Fetch(context.Background(), "boards"); err != nil {
		t.Fatal(err)
	}
	if fallbackHit {
		t.Error("fallback endpoint must not be tried after a success")
	}
}

// ── HTTPFetcher — error classification ─────────────────────────────────────

func TestHTTPFetcher_MalformedResponse(t *testing.T) {
	srv := feedServer(t, http.StatusOK, `<html>not json</html>`)
	fetcher := source.NewHTTPFetcher(map[string][]string{"boards": {srv.URL}})

	_, err := fetcher.Fetch(context.Background(), "boards")
	var me *source.MalformedError
	if !errors.As(err, &me) {
		t.Errorf("err = %v, want MalformedError", err)
	}
}

func TestHTTPFetcher_AllCandidatesNotFound(t *testing.T) {
	srv := feedServer(t, http.StatusNotFound, "")
	fetcher := source.NewHTTPFetcher(map[string][]string{"boards": {srv.URL, srv.URL}})

	_, err := fetcher.Fetch(context.Background(), "boards")
	if !errors.Is(err, source.ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource", err)
	}
}

func TestHTTPFetcher_UnconfiguredSource(t *testing.T) {
	fetcher := source.NewHTTPFetcher(nil)
	_, err := fetcher.Fetch(context.Background(), "nope")
	if !errors.Is(err, source.ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource", err)
	}
}
