// /internal/commands/ping.go
package commands

import (
	"fmt"
)

func init() {
	Register(&Command{
		Sort:        100,
		Name:        "papoping",
		Description: "Check if the bot is alive and running",
		Category:    "Information",

		DCSlashHandler: pingSlashHandler,
	})
}

func pingSlashHandler(ctx *SlashContext) {
	s, i := ctx.Session, ctx.InteractionCreate
	latency := s.HeartbeatLatency().Milliseconds()
	respond(s, i, fmt.Sprintf("🍉 Papo is online! Ping: `%dms`", latency))
}
