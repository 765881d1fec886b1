package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobmate/radar-service/internal/model"
)

// ErrJobNotFound is returned when a fingerprint has no catalog row.
var ErrJobNotFound = fmt.Errorf("job not found")

// PGStore is the PostgreSQL-backed catalog store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore returns a catalog store over the given pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Upsert(ctx context.Context, job model.Job) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO job_catalog
		   (fingerprint, source, source_id, title, company_raw, company,
		    location_raw, city, region, url, description,
		    has_pay, pay_extracted, posted_at, is_active, last_seen_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, true, $15)
		 ON CONFLICT (fingerprint) DO UPDATE SET
		   source_id     = EXCLUDED.source_id,
		   title         = EXCLUDED.title,
		   company_raw   = EXCLUDED.company_raw,
		   company       = EXCLUDED.company,
		   location_raw  = EXCLUDED.location_raw,
		   city          = EXCLUDED.city,
		   region        = EXCLUDED.region,
		   url           = EXCLUDED.url,
		   description   = EXCLUDED.description,
		   has_pay       = EXCLUDED.has_pay,
		   pay_extracted = EXCLUDED.pay_extracted,
		   posted_at     = EXCLUDED.posted_at,
		   is_active     = true,
		   last_seen_at  = EXCLUDED.last_seen_at`,
		job.Fingerprint, job.Source, job.SourceID, job.Title,
		job.CompanyRaw, job.Company, job.LocationRaw, job.City, job.Region,
		job.URL, job.Description, job.HasPay, job.PayExtracted,
		job.PostedAt, job.LastSeenAt,
	)
	if err != nil {
		return fmt.Errorf("catalog upsert %s: %w", job.Fingerprint, err)
	}
	return nil
}

func (s *PGStore) Sweep(ctx context.Context, source string, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_catalog
		 SET is_active = false
		 WHERE source = $1 AND is_active AND last_seen_at < $2`,
		source, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("catalog sweep %s: %w", source, err)
	}
	return tag.RowsAffected(), nil
}

func (s *PGStore) Get(ctx context.Context, fingerprint string) (*model.Job, error) {
	row := s.pool.QueryRow(ctx, selectJob+` WHERE fingerprint = $1`, fingerprint)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("catalog get %s: %w", fingerprint, err)
	}
	return &job, nil
}

func (s *PGStore) List(ctx context.Context, q Query) ([]model.Job, error) {
	sql := selectJob
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if q.Source != "" {
		conds = append(conds, "source = "+arg(q.Source))
	}
	if q.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if q.SeenSince != nil {
		conds = append(conds, "last_seen_at >= "+arg(*q.SeenSince))
	}
	if len(q.Fingerprints) > 0 {
		conds = append(conds, "fingerprint = ANY("+arg(q.Fingerprints)+")")
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY last_seen_at DESC"

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog list: %w", err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog list scan: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

const selectJob = `
	SELECT fingerprint, source, source_id, title, company_raw, company,
	       location_raw, city, region, url, description,
	       has_pay, pay_extracted, posted_at, is_active, last_seen_at
	FROM job_catalog`

func scanJob(row pgx.Row) (model.Job, error) {
	var j model.Job
	err := row.Scan(
		&j.Fingerprint, &j.Source, &j.SourceID, &j.Title,
		&j.CompanyRaw, &j.Company, &j.LocationRaw, &j.City, &j.Region,
		&j.URL, &j.Description, &j.HasPay, &j.PayExtracted,
		&j.PostedAt, &j.IsActive, &j.LastSeenAt,
	)
	return j, err
}
