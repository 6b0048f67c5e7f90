package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"venturelens/internal/errors"
)

// Connect opens a Postgres pool and verifies it with a ping.
func Connect(ctx context.Context, url string, maxOpenConns int, connectTimeout time.Duration) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres connection")
	}
	db.SetMaxOpenConns(maxOpenConns)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping postgres")
	}
	return db, nil
}
