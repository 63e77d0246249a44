// /internal/commands/smuckles.go
package commands

import (
	"context"
	"fmt"
)

func init() {
	Register(&Command{
		Sort:        202,
		Name:        "smuckles",
		Description: "Show the designated member's current smuckles",
		Category:    "Smuckles",

		DCSlashHandler: smucklesSlashHandler,
	})
}

func smucklesSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	cfg := deps.Cfg

	balance, err := deps.Smuckles.Balance(context.Background(), parseID(i.GuildID), cfg.TargetUserID)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not read the ledger: ```%v```", err))
		return
	}

	respond(s, i, fmt.Sprintf("%s has **%d %s smuckles**.",
		mention(cfg.TargetUserID), balance, cfg.Currency))
}
