package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fieldserve/crewsched/core/model"
)

// Config defines the snapshot store location.
type Config struct {
	Path string `json:"path"`
}

// SetDefaults applies the conventional database location.
func (c *Config) SetDefaults() {
	if c.Path == "" {
		c.Path = "crewsched.db"
	}
}

// Store is a SQLite-backed document store holding job and technician
// snapshots synced from the upstream system. The conflict engine never
// touches it directly: handlers read a snapshot and pass values in.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `
    CREATE TABLE IF NOT EXISTS jobs (
        id TEXT PRIMARY KEY,
        status TEXT,
        doc TEXT
    );
    CREATE TABLE IF NOT EXISTS technicians (
        id TEXT PRIMARY KEY,
        doc TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

// PutJob inserts or replaces a job document.
func (s *Store) PutJob(ctx context.Context, job model.Job) error {
	if job.ID == "" {
		return fmt.Errorf("job id is required")
	}
	b, err := json.Marshal(job)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO jobs (id, status, doc) VALUES (?, ?, ?)`,
		job.ID, job.Status, string(b))
	return err
}

// Job returns the job with the given id, or nil when absent.
func (s *Store) Job(ctx context.Context, id string) (*model.Job, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM jobs WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var job model.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ActiveJobs returns every job whose status still occupies technician time.
// Documents that fail to decode are skipped: one corrupt record must not
// block conflict checks for everyone.
func (s *Store) ActiveJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM jobs WHERE status NOT IN (?, ?) ORDER BY id`,
		model.StatusCancelled, model.StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var jobs []model.Job
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var job model.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// PutTechnician inserts or replaces a technician document.
func (s *Store) PutTechnician(ctx context.Context, tech model.Technician) error {
	if tech.ID == "" {
		return fmt.Errorf("technician id is required")
	}
	b, err := json.Marshal(tech)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO technicians (id, doc) VALUES (?, ?)`,
		tech.ID, string(b))
	return err
}

// Technician returns the technician with the given id, or nil when absent.
func (s *Store) Technician(ctx context.Context, id string) (*model.Technician, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM technicians WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tech model.Technician
	if err := json.Unmarshal([]byte(raw), &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
