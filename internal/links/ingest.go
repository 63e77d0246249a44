// /internal/links/ingest.go
package links

import (
	"context"

	"papo-bot/internal/storage"
)

// Store is what ingestion needs from persistence.
type Store interface {
	InsertLink(ctx context.Context, l storage.Link) (bool, error)
	RecentLinks(ctx context.Context, guildID, ownerID int64, limit int) ([]storage.Link, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Ingest persists the extracted links of one message and returns how many
// were actually new. Duplicates are absorbed silently and count as zero,
// wherever the earlier copy came from. The first real storage failure stops
// the batch; links persisted before it stay persisted.
func (s *Service) Ingest(ctx context.Context, guildID, ownerID, channelID, messageID int64, urls []string) (int, error) {
	inserted := 0
	for _, u := range urls {
		ok, err := s.store.InsertLink(ctx, storage.Link{
			GuildID:   guildID,
			OwnerID:   ownerID,
			ChannelID: channelID,
			MessageID: messageID,
			URL:       u,
		})
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// Recent lists captured links newest first; ownerID 0 means any owner.
func (s *Service) Recent(ctx context.Context, guildID, ownerID int64, limit int) ([]storage.Link, error) {
	return s.store.RecentLinks(ctx, guildID, ownerID, limit)
}
