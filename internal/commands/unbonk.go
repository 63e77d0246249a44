// /internal/commands/unbonk.go
package commands

import (
	"context"
	"fmt"

	"papo-bot/internal/bonk"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        302,
		Name:        "unbonk",
		Description: "Remove a bonker's most recent bonks (admin only)",
		Category:    "Bonks",

		DCSlashHandler: unbonkSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "bonker",
				Description: "Whose bonks to remove",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many recent bonks to remove",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "window",
				Description: "Time window (default: today)",
				Choices:     windowChoices,
			},
		},
	})
}

func unbonkSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg

	if !isAdmin(ctx) {
		respondEphemeral(s, i, "Only the admin can unbonk.")
		return
	}

	options := i.ApplicationCommandData().Options
	bonker := optUserID(options, "bonker")
	count, _ := optInt64(options, "count")
	if count < 1 {
		respondEphemeral(s, i, "Count must be at least 1.")
		return
	}

	window := bonk.WindowDay
	if w := optString(options, "window"); w != "" {
		window = parseWindow(w)
	}

	removed, err := deps.Bonks.RemoveRecent(context.Background(),
		parseID(i.GuildID), bonker, cfg.TargetUserID, window, int(count))
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not remove bonks: ```%v```", err))
		return
	}

	respond(s, i, fmt.Sprintf("🧹 Removed **%d** of %s's recent bonks.", removed, mention(bonker)))
}
