// /internal/commands/context.go
package commands

import (
	"papo-bot/internal/bonk"
	"papo-bot/internal/config"
	"papo-bot/internal/links"
	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Deps bundles everything a handler may need. The discord layer fills it
// once and hands it to every invocation.
type Deps struct {
	Cfg      *config.Config
	Smuckles *smuckles.Service
	Bonks    *bonk.Engine
	Links    *links.Service
	Scanner  *links.Scanner
	Store    *storage.Store
}

type SlashContext struct {
	Session           *discordgo.Session
	InteractionCreate *discordgo.InteractionCreate
	Deps              *Deps
}
