package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
)

const defaultQueryTimeout = 5 * time.Second

// Postgres error codes the store turns into API errors.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Store is the handle every query runs through. It is created by the
// process entry point and passed to whatever needs it.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Connect opens and pings a Postgres connection pool.
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	logrus.Info("Database connection established")
	return conn, nil
}

// New wraps an open pool. A zero timeout means the default per-query
// timeout.
func New(conn *sqlx.DB, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Store{db: conn, timeout: timeout}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return apperr.Store(err, "ping")
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// isNoRows reports whether err is the empty-result sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// pqCode returns the Postgres error code carried by err, if any.
func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
