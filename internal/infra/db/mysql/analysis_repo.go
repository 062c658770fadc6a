package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// EnsureSchema creates the tables when they do not exist yet.
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	const analysesDDL = `
CREATE TABLE IF NOT EXISTS system_analyses (
  user_id       VARCHAR(64)  NOT NULL,
  analysis_id   BIGINT       NOT NULL,
  cpu_model     VARCHAR(255) NOT NULL,
  cpu_speed_ghz DOUBLE       NOT NULL,
  cores         INT          NOT NULL,
  ram_gb        DOUBLE       NOT NULL,
  disk_type     VARCHAR(32)  NOT NULL,
  gpu_model     VARCHAR(255) NOT NULL,
  gpu_vram_gb   DOUBLE       NOT NULL,
  main_profile  VARCHAR(64)  NOT NULL,
  main_score    DOUBLE       NOT NULL,
  pdf_url       TEXT         NULL,
  json_url      TEXT         NULL,
  created_at    DATETIME     NOT NULL,
  PRIMARY KEY (user_id, analysis_id)
);`
	const countersDDL = `
CREATE TABLE IF NOT EXISTS analysis_counters (
  user_id VARCHAR(64) NOT NULL PRIMARY KEY,
  last_id BIGINT      NOT NULL
);`
	if _, err := r.db.ExecContext(ctx, analysesDDL); err != nil {
		return fmt.Errorf("create system_analyses: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, countersDDL); err != nil {
		return fmt.Errorf("create analysis_counters: %w", err)
	}
	return nil
}

// ReserveID bumps the owner's counter row inside one transaction. The
// upsert takes a row lock, so concurrent reservations for the same
// owner serialize while different owners proceed in parallel.
func (r *AnalysisRepository) ReserveID(ctx context.Context, owner string) (domain.AnalysisID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const up = `
INSERT INTO analysis_counters (user_id, last_id) VALUES (?, 1)
ON DUPLICATE KEY UPDATE last_id = last_id + 1;`
	if _, err := tx.ExecContext(ctx, up, owner); err != nil {
		return 0, fmt.Errorf("bump counter: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT last_id FROM analysis_counters WHERE user_id = ?;`, owner).Scan(&id); err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return domain.AnalysisID(id), nil
}

// Save inserts one record. Records are write-once: a duplicate
// (owner, analysis_id) means an allocation race and surfaces as an
// error instead of silently overwriting.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO system_analyses
(user_id, analysis_id, cpu_model, cpu_speed_ghz, cores, ram_gb, disk_type,
 gpu_model, gpu_vram_gb, main_profile, main_score, pdf_url, json_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?);`
	_, err := r.db.ExecContext(ctx, q,
		a.Owner, int64(a.ID),
		a.Hardware.CPUModel, a.Hardware.CPUSpeedGH, a.Hardware.Cores, a.Hardware.RAMGB, a.Hardware.DiskType,
		a.Hardware.GPUModel, a.Hardware.GPUVRAMGB,
		a.MainProfile, a.MainScore,
		nullString(a.PDFURL), nullString(a.JSONURL),
		a.CreatedAt,
	)
	return err
}

const selectColumns = `
user_id, analysis_id, cpu_model, cpu_speed_ghz, cores, ram_gb, disk_type,
gpu_model, gpu_vram_gb, main_profile, main_score, pdf_url, json_url, created_at`

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var id int64
	var pdfURL, jsonURL sql.NullString
	if err := row.Scan(
		&a.Owner, &id,
		&a.Hardware.CPUModel, &a.Hardware.CPUSpeedGH, &a.Hardware.Cores, &a.Hardware.RAMGB, &a.Hardware.DiskType,
		&a.Hardware.GPUModel, &a.Hardware.GPUVRAMGB,
		&a.MainProfile, &a.MainScore,
		&pdfURL, &jsonURL,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.ID = domain.AnalysisID(id)
	a.PDFURL = ptrString(pdfURL)
	a.JSONURL = ptrString(jsonURL)
	return &a, nil
}

// Get by owner + id. Foreign ids read as not found.
func (r *AnalysisRepository) Get(ctx context.Context, owner string, id domain.AnalysisID) (*domain.Analysis, error) {
	q := `SELECT` + selectColumns + `
FROM system_analyses
WHERE user_id=? AND analysis_id=? LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, owner, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// List returns the owner's records newest-first plus the total count.
func (r *AnalysisRepository) List(ctx context.Context, owner string, offset, limit int) ([]*domain.Analysis, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := `SELECT` + selectColumns + `
FROM system_analyses
WHERE user_id=?
ORDER BY created_at DESC, analysis_id DESC
LIMIT ? OFFSET ?;`
	rows, err := r.db.QueryContext(ctx, q, owner, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying analyses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM system_analyses WHERE user_id=?;`, owner).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting analyses: %w", err)
	}
	return out, total, nil
}

// Delete removes one owned record; reports whether a row existed.
func (r *AnalysisRepository) Delete(ctx context.Context, owner string, id domain.AnalysisID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM system_analyses WHERE user_id=? AND analysis_id=?;`, owner, int64(id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Stats aggregates live; owner == "" aggregates everything.
func (r *AnalysisRepository) Stats(ctx context.Context, owner string) (*domain.Stats, error) {
	where := ""
	args := []interface{}{}
	if owner != "" {
		where = " WHERE user_id=?"
		args = append(args, owner)
	}

	st := &domain.Stats{ProfileDistribution: map[string]int64{}}
	q := `SELECT COUNT(*), COALESCE(AVG(main_score),0) FROM system_analyses` + where + `;`
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&st.Count, &st.MeanScore); err != nil {
		return nil, fmt.Errorf("stats aggregate: %w", err)
	}

	q = `SELECT main_profile, COUNT(*) FROM system_analyses` + where + ` GROUP BY main_profile;`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("stats distribution: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var profile string
		var n int64
		if err := rows.Scan(&profile, &n); err != nil {
			return nil, err
		}
		st.ProfileDistribution[profile] = n
	}
	return st, rows.Err()
}
