// /internal/discord/capture.go
package discord

import (
	"context"
	"log"
	"strconv"
	"strings"

	"papo-bot/internal/bonk"
	"papo-bot/internal/links"
	"papo-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// onMessageCreate is the single entry point for all passive captures: bonks,
// the owner's links and reminder notes. Captures are independent, so one
// failing never blocks the others. Failures are logged, not swallowed.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	guildID := parseID(m.GuildID)
	if guildID == 0 {
		return // DMs carry no community state
	}

	authorID := parseID(m.Author.ID)
	channelID := parseID(m.ChannelID)
	messageID := parseID(m.ID)
	mentioned := mentionsUser(m.Mentions, s.State.User.ID)
	lower := strings.ToLower(m.Content)

	ctx := context.Background()

	if authorID == b.cfg.LinkOwnerID {
		if urls := links.Extract(m.Content, m.Embeds); len(urls) > 0 {
			inserted, err := b.deps.Links.Ingest(ctx, guildID, authorID, channelID, messageID, urls)
			if err != nil {
				log.Println("[ERR] Link capture failed:", err)
			} else if inserted > 0 {
				log.Printf("[INFO] Captured %d link(s) from message %s", inserted, m.ID)
			}
		}
	}

	if mentioned && strings.Contains(lower, "bonk") {
		err := b.deps.Bonks.Record(ctx, bonk.Event{
			GuildID:   guildID,
			ActorID:   authorID,
			TargetID:  b.cfg.TargetUserID,
			ChannelID: channelID,
			MessageID: messageID,
		})
		if err != nil {
			log.Println("[ERR] Bonk capture failed:", err)
		}
	}

	if mentioned && strings.Contains(lower, "remind") {
		b.captureReminder(ctx, s, m, guildID, authorID, channelID, messageID)
	}
}

func (b *Bot) captureReminder(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, guildID, authorID, channelID, messageID int64) {
	note := stripMention(m.Content, s.State.User.ID)
	if note == "" {
		return
	}

	var mentions []string
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			continue
		}
		mentions = append(mentions, "<@"+u.ID+">")
	}

	err := b.deps.Store.InsertReminder(ctx, storage.Reminder{
		GuildID:   guildID,
		AuthorID:  authorID,
		ChannelID: channelID,
		MessageID: messageID,
		Mentions:  strings.Join(mentions, " "),
		Note:      note,
	})
	if err != nil {
		log.Println("[ERR] Reminder capture failed:", err)
		return
	}

	if err := s.MessageReactionAdd(m.ChannelID, m.ID, "📌"); err != nil {
		log.Println("[WARN] Failed to ack reminder:", err)
	}
}

func mentionsUser(mentions []*discordgo.User, userID string) bool {
	for _, u := range mentions {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// stripMention removes the bot's own mention tokens so only the note text is
// stored.
func stripMention(content, botID string) string {
	content = strings.ReplaceAll(content, "<@"+botID+">", "")
	content = strings.ReplaceAll(content, "<@!"+botID+">", "")
	return strings.TrimSpace(content)
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
