// /internal/storage/storage_reminders.go
package storage

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/georgysavva/scany/v2/pgxscan"
)

// Reminder is a captured free-text note. Unlike links it carries no dedup
// key: the same text may legitimately be saved twice.
type Reminder struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	AuthorID  int64     `db:"author_id"`
	ChannelID int64     `db:"channel_id"`
	MessageID int64     `db:"message_id"`
	Mentions  string    `db:"mentions"`
	Note      string    `db:"note"`
	CreatedAt time.Time `db:"created_at"`
}

// noteMaxLen bounds the stored note text in bytes.
const noteMaxLen = 500

// truncateNote cuts the note at noteMaxLen without splitting a rune; a cut
// mid-rune would hand Postgres invalid UTF-8 and fail the whole insert.
func truncateNote(note string) string {
	if len(note) <= noteMaxLen {
		return note
	}
	cut := noteMaxLen
	for cut > 0 && !utf8.RuneStart(note[cut]) {
		cut--
	}
	return note[:cut]
}

func (s *Store) InsertReminder(ctx context.Context, r Reminder) error {
	const query = `
		INSERT INTO papo_reminders (guild_id, author_id, channel_id, message_id, mentions, note)
		VALUES ($1, $2, $3, $4, $5, $6)`

	note := truncateNote(r.Note)

	_, err := s.db.Exec(ctx, query,
		r.GuildID, r.AuthorID, r.ChannelID, r.MessageID, r.Mentions, note)
	return wrapErr("insert reminder", err)
}

// ListReminders returns reminders newest first.
func (s *Store) ListReminders(ctx context.Context, guildID int64, limit int) ([]Reminder, error) {
	const query = `
		SELECT id, guild_id, author_id, channel_id, message_id, mentions, note, created_at
		FROM papo_reminders
		WHERE guild_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	var reminders []Reminder
	if err := pgxscan.Select(ctx, s.db, &reminders, query, guildID, limit); err != nil {
		return nil, wrapErr("list reminders", err)
	}
	return reminders, nil
}

// DeleteReminder removes one reminder. Non-admins may only delete their own;
// the author filter is applied in SQL so there is no read-check-delete race.
// Returns whether a row was actually removed.
func (s *Store) DeleteReminder(ctx context.Context, guildID, id, authorID int64, admin bool) (bool, error) {
	query := `DELETE FROM papo_reminders WHERE guild_id = $1 AND id = $2`
	args := []any{guildID, id}
	if !admin {
		query += ` AND author_id = $3`
		args = append(args, authorID)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return false, wrapErr("delete reminder", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAllReminders wipes the guild's reminder bank. Admin-only at the
// command layer.
func (s *Store) DeleteAllReminders(ctx context.Context, guildID int64) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM papo_reminders WHERE guild_id = $1`, guildID)
	if err != nil {
		return 0, wrapErr("delete all reminders", err)
	}
	return tag.RowsAffected(), nil
}
