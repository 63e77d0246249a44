// /internal/storage/storage.go
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnavailable is returned when the database cannot complete an operation.
// Callers may treat it as transient; no partial effect has been applied.
var ErrUnavailable = errors.New("storage unavailable")

// DB is the subset of pgxpool.Pool the store relies on. pgxmock satisfies it
// too, which keeps every query testable without a live database.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Store struct {
	db DB
}

func New(db DB) *Store {
	return &Store{db: db}
}

// Connect opens a pgx pool and pings it so a bad DSN fails at startup, not on
// the first command.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS smuckles_users (
		guild_id BIGINT NOT NULL,
		user_id  BIGINT NOT NULL,
		points   BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (guild_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS smuckles_log (
		id         BIGSERIAL PRIMARY KEY,
		guild_id   BIGINT NOT NULL,
		actor_id   BIGINT NOT NULL,
		target_id  BIGINT NOT NULL,
		delta      BIGINT NOT NULL,
		reason     TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS papo_links (
		guild_id   BIGINT NOT NULL,
		owner_id   BIGINT NOT NULL,
		channel_id BIGINT NOT NULL,
		message_id BIGINT NOT NULL,
		url        TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (guild_id, owner_id, message_id, url)
	)`,
	`CREATE TABLE IF NOT EXISTS papo_reminders (
		id         BIGSERIAL PRIMARY KEY,
		guild_id   BIGINT NOT NULL,
		author_id  BIGINT NOT NULL,
		channel_id BIGINT NOT NULL,
		message_id BIGINT NOT NULL,
		mentions   TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS papo_bonks (
		id         BIGSERIAL PRIMARY KEY,
		guild_id   BIGINT NOT NULL,
		actor_id   BIGINT NOT NULL,
		target_id  BIGINT NOT NULL,
		channel_id BIGINT NOT NULL,
		message_id BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS papo_bonks_target_ts
		ON papo_bonks (guild_id, target_id, created_at)`,
}

// InitSchema creates the tables if they are missing. Safe to run at every
// startup.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint violation
// (pgerrcode 23505). Used by the dedup paths to absorb duplicates silently.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// wrapErr converts low-level pgx failures into ErrUnavailable while keeping
// the original message for logs. Context cancellation passes through.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %v: %w", op, err, ErrUnavailable)
}
