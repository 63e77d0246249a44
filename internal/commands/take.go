// /internal/commands/take.go
package commands

import (
	"papo-bot/internal/smuckles"

	"github.com/bwmarrin/discordgo"
)

func init() {
	Register(&Command{
		Sort:        201,
		Name:        "take",
		Description: "Take smuckles from the designated member",
		Category:    "Smuckles",

		DCSlashHandler: takeSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Must be the designated member",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "A multiple of the step, or the jackpot",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Optional reason",
			},
		},
	})
}

func takeSlashHandler(ctx *SlashContext) {
	executeLedger(ctx, smuckles.ClassRevoke)
}
