// /internal/discord/bot.go
package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"papo-bot/internal/bonk"
	"papo-bot/internal/commands"
	"papo-bot/internal/config"
	"papo-bot/internal/cooldown"
	"papo-bot/internal/links"
	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Bot is the gateway collaborator: it owns the session, feeds raw message
// events into the capture pipelines and dispatches slash commands. All
// decisions live in the services it carries, not here.
type Bot struct {
	dg   *discordgo.Session
	cfg  *config.Config
	deps *commands.Deps
}

// StartBot wires the session-bound pieces (scanner, bonk notifier) and runs
// until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Store, svc *smuckles.Service, bonkGate *cooldown.Gate) error {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	linkSvc := links.NewService(store)

	notify := func(_ context.Context, channelID int64, text string) {
		if _, err := dg.ChannelMessageSend(strconv.FormatInt(channelID, 10), text); err != nil {
			log.Println("[ERR] Failed to send notification:", err)
		}
	}

	engine := bonk.NewEngine(store, svc, notify, bonkGate, bonk.Config{
		StreakStep:    cfg.StreakStep,
		PenaltyStep:   cfg.PenaltyStep,
		PenaltyAmount: cfg.PenaltyAmount,
		SystemActorID: cfg.AdminUserID,
		Currency:      cfg.Currency,
	})

	b := &Bot{
		dg:  dg,
		cfg: cfg,
		deps: &commands.Deps{
			Cfg:      cfg,
			Smuckles: svc,
			Bonks:    engine,
			Links:    linkSvc,
			Scanner:  links.NewScanner(dg, linkSvc),
			Store:    store,
		},
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	return nil
}

// onReady syncs slash commands. With GUILD_ID set they sync to that guild
// only (instant); otherwise globally.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	defs := buildCommandDefinitions()

	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.cfg.GuildID, defs); err != nil {
		log.Println("[ERR] Failed to register slash commands:", err)
		return
	}

	scope := "globally"
	if b.cfg.GuildID != "" {
		scope = "to guild " + b.cfg.GuildID
	}
	log.Printf("[INFO] ✅ %s is running, %d commands synced %s.", r.User.Username, len(defs), scope)
}

func buildCommandDefinitions() []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range commands.All() {
		defs = append(defs, &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
			Options:     c.SlashOptions,
		})
	}
	return defs
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.Member == nil || i.Member.User == nil {
		return // guild commands only
	}

	name := i.ApplicationCommandData().Name
	cmd, ok := commands.Get(name)
	if !ok || cmd.DCSlashHandler == nil {
		log.Println("[WARN] Unknown command:", name)
		return
	}

	cmd.DCSlashHandler(&commands.SlashContext{
		Session:           s,
		InteractionCreate: i,
		Deps:              b.deps,
	})
}
