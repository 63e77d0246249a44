// /internal/storage/storage_bonks.go
package storage

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// BonkEvent is one recorded bonk. The log is append-only; rows only ever
// leave it through DeleteRecentBonks.
type BonkEvent struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	ActorID   int64     `db:"actor_id"`
	TargetID  int64     `db:"target_id"`
	ChannelID int64     `db:"channel_id"`
	MessageID int64     `db:"message_id"`
	CreatedAt time.Time `db:"created_at"`
}

// BonkerCount is one row of the bonk leaderboard.
type BonkerCount struct {
	ActorID int64 `db:"actor_id"`
	Count   int64 `db:"count"`
}

func (s *Store) InsertBonk(ctx context.Context, b BonkEvent) error {
	const query = `
		INSERT INTO papo_bonks (guild_id, actor_id, target_id, channel_id, message_id)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.Exec(ctx, query,
		b.GuildID, b.ActorID, b.TargetID, b.ChannelID, b.MessageID)
	return wrapErr("insert bonk", err)
}

// CountTarget counts bonks received by target from anyone. A zero since
// means all time.
func (s *Store) CountTarget(ctx context.Context, guildID, targetID int64, since time.Time) (int64, error) {
	q := psql.
		Select("COUNT(*)").
		From("papo_bonks").
		Where(squirrel.Eq{"guild_id": guildID, "target_id": targetID})
	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": since})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, wrapErr("count target build", err)
	}

	var n int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr("count target", err)
	}
	return n, nil
}

// CountPair counts bonks delivered by one actor to one target.
func (s *Store) CountPair(ctx context.Context, guildID, actorID, targetID int64, since time.Time) (int64, error) {
	q := psql.
		Select("COUNT(*)").
		From("papo_bonks").
		Where(squirrel.Eq{"guild_id": guildID, "actor_id": actorID, "target_id": targetID})
	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": since})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, wrapErr("count pair build", err)
	}

	var n int64
	if err := s.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr("count pair", err)
	}
	return n, nil
}

// BonkLeaderboard ranks actors by bonks delivered to target within the
// window. Ties break by ascending actor id.
func (s *Store) BonkLeaderboard(ctx context.Context, guildID, targetID int64, since time.Time, limit int) ([]BonkerCount, error) {
	q := psql.
		Select("actor_id", "COUNT(*) AS count").
		From("papo_bonks").
		Where(squirrel.Eq{"guild_id": guildID, "target_id": targetID}).
		GroupBy("actor_id").
		OrderBy("count DESC", "actor_id ASC").
		Limit(uint64(limit))
	if !since.IsZero() {
		q = q.Where(squirrel.GtOrEq{"created_at": since})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, wrapErr("bonk leaderboard build", err)
	}

	var rows []BonkerCount
	if err := pgxscan.Select(ctx, s.db, &rows, query, args...); err != nil {
		return nil, wrapErr("bonk leaderboard", err)
	}
	return rows, nil
}

const deleteRecentBonksQuery = `
	DELETE FROM papo_bonks
	WHERE id IN (
		SELECT id FROM papo_bonks
		WHERE guild_id = $1 AND actor_id = $2 AND target_id = $3 AND created_at >= $4
		ORDER BY created_at DESC, id DESC
		LIMIT $5
	)`

// DeleteRecentBonks removes up to limit of the most recent matching bonks
// and reports how many actually went away. Removing fewer than asked is not
// an error.
func (s *Store) DeleteRecentBonks(ctx context.Context, guildID, actorID, targetID int64, since time.Time, limit int) (int64, error) {
	tag, err := s.db.Exec(ctx, deleteRecentBonksQuery,
		guildID, actorID, targetID, since, limit)
	if err != nil {
		return 0, wrapErr("delete recent bonks", err)
	}
	return tag.RowsAffected(), nil
}
