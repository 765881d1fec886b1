package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobmate/radar-service/internal/model"
)

// MemStore is an in-memory Store used by tests and dry-run verification.
// Semantics match PGStore, including the idempotent upsert and the sweep.
type MemStore struct {
	mu   sync.Mutex
	jobs map[string]model.Job
}

// NewMemStore returns an empty in-memory catalog.
func NewMemStore() *MemStore {
	return &MemStore{jobs: make(map[string]model.Job)}
}

func (s *MemStore) Upsert(ctx context.Context, job model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job.IsActive = true
	s.jobs[job.Fingerprint] = job
	return nil
}

func (s *MemStore) Sweep(ctx context.Context, source string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var swept int64
	for fp, j := range s.jobs {
		if j.Source == source && j.IsActive && j.LastSeenAt.Before(cutoff) {
			j.IsActive = false
			s.jobs[fp] = j
			swept++
		}
	}
	return swept, nil
}

func (s *MemStore) Get(ctx context.Context, fingerprint string) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[fingerprint]
	if !ok {
		return nil, ErrJobNotFound
	}
	return &j, nil
}

func (s *MemStore) List(ctx context.Context, q Query) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var want map[string]bool
	if len(q.Fingerprints) > 0 {
		want = make(map[string]bool, len(q.Fingerprints))
		for _, fp := range q.Fingerprints {
			want[fp] = true
		}
	}

	jobs := make([]model.Job, 0)
	for _, j := range s.jobs {
		if q.Source != "" && j.Source != q.Source {
			continue
		}
		if q.ActiveOnly && !j.IsActive {
			continue
		}
		if q.SeenSince != nil && j.LastSeenAt.Before(*q.SeenSince) {
			continue
		}
		if want != nil && !want[j.Fingerprint] {
			continue
		}
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(a, b int) bool {
		return jobs[a].LastSeenAt.After(jobs[b].LastSeenAt)
	})
	return jobs, nil
}
