// /internal/commands/sandia.go
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        203,
		Name:        "sandia",
		Description: "Top members by smuckles (🍉 leaderboard)",
		Category:    "Smuckles",

		DCSlashHandler: sandiaSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "limit",
				Description: "How many to show (default 10, max 30)",
			},
		},
	})
}

func sandiaSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg

	limit := cfg.LeaderboardLimit
	if v, ok := optInt64(i.ApplicationCommandData().Options, "limit"); ok {
		limit = int(v)
	}
	if limit < 1 {
		limit = 1
	}
	if limit > cfg.LeaderboardMax {
		limit = cfg.LeaderboardMax
	}

	rows, err := deps.Smuckles.Top(context.Background(), parseID(i.GuildID), limit)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not read the ledger: ```%v```", err))
		return
	}
	if len(rows) == 0 {
		respond(s, i, "No smuckles yet. Be the first to give some!")
		return
	}

	var lines []string
	for n, r := range rows {
		name := displayName(s, i.GuildID, r.UserID)
		lines = append(lines, fmt.Sprintf("%d. **%s** — %d %s", n+1, name, r.Points, cfg.Currency))
	}

	respond(s, i, "🏆 **Sandia Leaderboard**\n"+strings.Join(lines, "\n"))
}
