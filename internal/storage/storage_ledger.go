// /internal/storage/storage_ledger.go
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// LedgerEntry is one audit record of the smuckles log. Entries are append-only;
// the sum of deltas per (guild, target) always equals the stored balance.
type LedgerEntry struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	ActorID   int64     `db:"actor_id"`
	TargetID  int64     `db:"target_id"`
	Delta     int64     `db:"delta"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// AccountBalance is one row of the balance leaderboard.
type AccountBalance struct {
	UserID int64 `db:"user_id"`
	Points int64 `db:"points"`
}

const upsertBalanceQuery = `
	INSERT INTO smuckles_users (guild_id, user_id, points)
	VALUES ($1, $2, $3)
	ON CONFLICT (guild_id, user_id)
	DO UPDATE SET points = smuckles_users.points + EXCLUDED.points
	RETURNING points`

const insertLogQuery = `
	INSERT INTO smuckles_log (guild_id, actor_id, target_id, delta, reason)
	VALUES ($1, $2, $3, $4, NULLIF($5, ''))`

// ApplyLedger mutates the balance and appends the matching audit record in a
// single transaction. Either both rows land or neither does. The upsert's row
// lock serializes concurrent writers on the same account; different accounts
// do not contend. Returns the new balance.
func (s *Store) ApplyLedger(ctx context.Context, e LedgerEntry) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, wrapErr("ledger begin", err)
	}
	defer tx.Rollback(ctx)

	var balance int64
	err = tx.QueryRow(ctx, upsertBalanceQuery, e.GuildID, e.TargetID, e.Delta).Scan(&balance)
	if err != nil {
		return 0, wrapErr("ledger upsert", err)
	}

	if _, err := tx.Exec(ctx, insertLogQuery, e.GuildID, e.ActorID, e.TargetID, e.Delta, e.Reason); err != nil {
		return 0, wrapErr("ledger log", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, wrapErr("ledger commit", err)
	}
	return balance, nil
}

// Balance returns the current balance, 0 for accounts that were never touched.
func (s *Store) Balance(ctx context.Context, guildID, userID int64) (int64, error) {
	const query = `SELECT points FROM smuckles_users WHERE guild_id = $1 AND user_id = $2`

	var points int64
	err := s.db.QueryRow(ctx, query, guildID, userID).Scan(&points)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, wrapErr("balance", err)
	}
	return points, nil
}

// TopBalances returns up to limit accounts ordered by balance descending.
// Ties break by ascending user id so the board is stable.
func (s *Store) TopBalances(ctx context.Context, guildID int64, limit int) ([]AccountBalance, error) {
	query, args, err := psql.
		Select("user_id", "points").
		From("smuckles_users").
		Where(squirrel.Eq{"guild_id": guildID}).
		OrderBy("points DESC", "user_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, wrapErr("top balances build", err)
	}

	var rows []AccountBalance
	if err := pgxscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, wrapErr("top balances", err)
	}
	return rows, nil
}

// SumDeltas totals the audit log for one account. It must always agree with
// Balance for the same account.
func (s *Store) SumDeltas(ctx context.Context, guildID, userID int64) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(delta), 0) FROM smuckles_log
		WHERE guild_id = $1 AND target_id = $2`

	var sum int64
	if err := s.db.QueryRow(ctx, query, guildID, userID).Scan(&sum); err != nil {
		return 0, wrapErr("sum deltas", err)
	}
	return sum, nil
}
