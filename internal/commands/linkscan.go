// /internal/commands/linkscan.go
package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

const scanDefaultMax = 500

func init() {
	Register(&Command{
		Sort:        401,
		Name:        "linkscan",
		Description: "Scan this channel's history for the owner's links (admin only)",
		Category:    "Links",

		DCSlashHandler: linkScanSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "messages",
				Description: "How many recent messages to scan (default 500)",
			},
		},
	})
}

func linkScanSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg

	if !isAdmin(ctx) {
		respondEphemeral(s, i, "Only the admin can run a history scan.")
		return
	}

	maxMessages := scanDefaultMax
	if v, ok := optInt64(i.ApplicationCommandData().Options, "messages"); ok && v > 0 {
		maxMessages = int(v)
	}

	// The scan can outlive the 3s interaction deadline by a wide margin, so
	// defer now and deliver the report as a follow-up when it lands.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Println("[ERR] Failed to defer linkscan response:", err)
		return
	}

	guildID := parseID(i.GuildID)
	channelID := i.ChannelID
	interaction := i.Interaction

	go func() {
		report := deps.Scanner.ScanChannel(context.Background(), guildID, channelID, maxMessages, cfg.LinkOwnerID)

		content := fmt.Sprintf("🔎 Scanned **%d** messages, matched **%d** links, **%d** new.",
			report.Scanned, report.Matched, report.Inserted)
		if _, err := s.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
			Content: content,
		}); err != nil {
			log.Println("[ERR] Failed to deliver scan report:", err)
		}
	}()
}
