// /internal/commands/bonkstats.go
package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        300,
		Name:        "bonkstats",
		Description: "How often has someone bonked the target?",
		Category:    "Bonks",

		DCSlashHandler: bonkStatsSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "bonker",
				Description: "Whose bonks to count (default: you)",
			},
		},
	})
}

func bonkStatsSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg

	bonker := optUserID(i.ApplicationCommandData().Options, "bonker")
	if bonker == 0 {
		bonker = parseID(i.Member.User.ID)
	}

	stats, err := deps.Bonks.StatsFor(context.Background(), parseID(i.GuildID), bonker, cfg.TargetUserID)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not count bonks: ```%v```", err))
		return
	}

	respond(s, i, fmt.Sprintf("🔨 %s → %s: **%d** today, **%d** in the last 7 days, **%d** all time.",
		mention(bonker), mention(cfg.TargetUserID), stats.Today, stats.Last7, stats.AllTime))
}
