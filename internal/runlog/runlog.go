// Package runlog persists Run records: one audit row per sync or alert
// cycle, finalized exactly once for operational visibility.
package runlog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobmate/radar-service/internal/model"
)

// Store is the run-record port.
type Store interface {
	// Create opens a run in the running state.
	Create(ctx context.Context, kind string, startedAt time.Time) (*model.Run, error)

	// Finish finalizes a run. A finished run is immutable; finishing it
	// twice is an error.
	Finish(ctx context.Context, run *model.Run) error
}

// ErrRunFinalized is returned when finishing an already-finalized run.
var ErrRunFinalized = fmt.Errorf("run already finalized")

// ─── PostgreSQL ──────────────────────────────────────────────────────────────

// PGStore persists runs in the runs table.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Create(ctx context.Context, kind string, startedAt time.Time) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: startedAt,
		Status:    model.RunRunning,
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, kind, started_at, status) VALUES ($1, $2, $3, $4)`,
		run.ID, run.Kind, run.StartedAt, run.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

func (s *PGStore) Finish(ctx context.Context, run *model.Run) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs
		 SET finished_at = $1, status = $2, processed = $3, queued = $4, errors = $5
		 WHERE id = $6 AND finished_at IS NULL`,
		run.FinishedAt, run.Status, run.Processed, run.Queued, run.Errors, run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", run.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRunFinalized
	}
	return nil
}

// ─── In-memory ───────────────────────────────────────────────────────────────

// MemStore is the in-memory run store used by tests.
type MemStore struct {
	runs map[string]model.Run
}

func NewMemStore() *MemStore {
	return &MemStore{runs: make(map[string]model.Run)}
}

func (s *MemStore) Create(ctx context.Context, kind string, startedAt time.Time) (*model.Run, error) {
	run := &model.Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: startedAt,
		Status:    model.RunRunning,
	}
	s.runs[run.ID] = *run
	return run, nil
}

func (s *MemStore) Finish(ctx context.Context, run *model.Run) error {
	stored, ok := s.runs[run.ID]
	if !ok {
		return fmt.Errorf("finish run %s: not found", run.ID)
	}
	if stored.FinishedAt != nil {
		return ErrRunFinalized
	}
	s.runs[run.ID] = *run
	return nil
}

// Get returns a stored run by id; test helper.
func (s *MemStore) Get(id string) (model.Run, bool) {
	run, ok := s.runs[id]
	return run, ok
}
