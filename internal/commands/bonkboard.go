// /internal/commands/bonkboard.go
package commands

import (
	"context"
	"fmt"
	"strings"

	"papo-bot/internal/bonk"

	"github.com/bwmarrin/discordgo"
)

var windowChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "all time", Value: string(bonk.WindowAll)},
	{Name: "today", Value: string(bonk.WindowDay)},
	{Name: "last 7 days", Value: string(bonk.WindowWeek)},
}

func init() {
	Register(&Command{
		Sort:        301,
		Name:        "bonkboard",
		Description: "Top bonkers of the target",
		Category:    "Bonks",

		DCSlashHandler: bonkBoardSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "window",
				Description: "Time window (default: all time)",
				Choices:     windowChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "How many to show (default 10, max 30)",
			},
		},
	})
}

func parseWindow(s string) bonk.Window {
	switch bonk.Window(s) {
	case bonk.WindowDay:
		return bonk.WindowDay
	case bonk.WindowWeek:
		return bonk.WindowWeek
	default:
		return bonk.WindowAll
	}
}

func bonkBoardSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg
	options := i.ApplicationCommandData().Options

	window := parseWindow(optString(options, "window"))

	limit := cfg.LeaderboardLimit
	if v, ok := optInt64(options, "limit"); ok {
		limit = int(v)
	}
	if limit < 1 {
		limit = 1
	}
	if limit > cfg.LeaderboardMax {
		limit = cfg.LeaderboardMax
	}

	rows, err := deps.Bonks.Leaderboard(context.Background(), parseID(i.GuildID), cfg.TargetUserID, window, limit)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not build the bonkboard: ```%v```", err))
		return
	}
	if len(rows) == 0 {
		respond(s, i, "No bonks recorded. Suspiciously peaceful.")
		return
	}

	var lines []string
	for n, r := range rows {
		name := displayName(s, i.GuildID, r.ActorID)
		lines = append(lines, fmt.Sprintf("%d. **%s** — %d bonks", n+1, name, r.Count))
	}

	respond(s, i, "🔨 **Bonkboard**\n"+strings.Join(lines, "\n"))
}
