// /internal/storage/storage_links.go
package storage

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// Link is one captured URL, keyed by its origin message so the same message
// can never produce the same row twice.
type Link struct {
	GuildID   int64     `db:"guild_id"`
	OwnerID   int64     `db:"owner_id"`
	ChannelID int64     `db:"channel_id"`
	MessageID int64     `db:"message_id"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}

const insertLinkQuery = `
	INSERT INTO papo_links (guild_id, owner_id, channel_id, message_id, url)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (guild_id, owner_id, message_id, url) DO NOTHING`

// InsertLink stores a captured link. Re-inserting the same (guild, owner,
// message, url) tuple is a no-op; the returned bool reports whether a new row
// was written. Two concurrent writers racing on the same tuple both succeed,
// exactly one with inserted=true.
func (s *Store) InsertLink(ctx context.Context, l Link) (bool, error) {
	tag, err := s.db.Exec(ctx, insertLinkQuery,
		l.GuildID, l.OwnerID, l.ChannelID, l.MessageID, l.URL)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, wrapErr("insert link", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RecentLinks lists captured links newest first. ownerID 0 means any owner.
func (s *Store) RecentLinks(ctx context.Context, guildID, ownerID int64, limit int) ([]Link, error) {
	q := psql.
		Select("guild_id", "owner_id", "channel_id", "message_id", "url", "created_at").
		From("papo_links").
		Where(squirrel.Eq{"guild_id": guildID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))
	if ownerID != 0 {
		q = q.Where(squirrel.Eq{"owner_id": ownerID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, wrapErr("recent links build", err)
	}

	var links []Link
	if err := pgxscan.Select(ctx, s.db, &links, query, args...); err != nil {
		return nil, wrapErr("recent links", err)
	}
	return links, nil
}
