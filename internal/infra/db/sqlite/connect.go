package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite is file-backed: keep a single writer connection
	db.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx2, `PRAGMA busy_timeout = 5000`); err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}
