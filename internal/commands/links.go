// /internal/commands/links.go
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const linkListLimit = 15

func init() {
	Register(&Command{
		Sort:        400,
		Name:        "links",
		Description: "Recently captured TikTok links",
		Category:    "Links",

		DCSlashHandler: linksSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "owner",
				Description: "Only links posted by this member",
			},
		},
	})
}

func linksSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps

	owner := optUserID(i.ApplicationCommandData().Options, "owner")

	rows, err := deps.Links.Recent(context.Background(), parseID(i.GuildID), owner, linkListLimit)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not read the link log: ```%v```", err))
		return
	}
	if len(rows) == 0 {
		respond(s, i, "No links captured yet.")
		return
	}

	var lines []string
	for _, l := range rows {
		lines = append(lines, fmt.Sprintf("%s — <%s>", l.CreatedAt.Format("2006-01-02"), l.URL))
	}

	respond(s, i, "🔗 **Captured links**\n"+strings.Join(lines, "\n"))
}
