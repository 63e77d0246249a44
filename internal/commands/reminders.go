// /internal/commands/reminders.go
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const reminderListLimit = 15

func init() {
	Register(&Command{
		Sort:        500,
		Name:        "reminders",
		Description: "List saved reminders",
		Category:    "Reminders",

		DCSlashHandler: remindersSlashHandler,
	})
	Register(&Command{
		Sort:        501,
		Name:        "reminder-del",
		Description: "Delete a reminder (yours, or any if admin)",
		Category:    "Reminders",

		DCSlashHandler: reminderDelSlashHandler,
		SlashOptions: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "id",
				Description: "Reminder id from /reminders (0 with all=true wipes everything)",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "all",
				Description: "Delete every reminder (admin only)",
			},
		},
	})
}

func remindersSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps

	rows, err := deps.Store.ListReminders(context.Background(), parseID(i.GuildID), reminderListLimit)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not read reminders: ```%v```", err))
		return
	}
	if len(rows) == 0 {
		respond(s, i, "No reminders saved.")
		return
	}

	var lines []string
	for _, r := range rows {
		line := fmt.Sprintf("`#%d` %s — %s", r.ID, mention(r.AuthorID), r.Note)
		if r.Mentions != "" {
			line += fmt.Sprintf(" (about: %s)", r.Mentions)
		}
		lines = append(lines, line)
	}

	respond(s, i, "📌 **Reminders**\n"+strings.Join(lines, "\n"))
}

func reminderDelSlashHandler(ctx *SlashContext) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	options := i.ApplicationCommandData().Options

	wipeAll := false
	for _, opt := range options {
		if opt.Name == "all" && opt.Type == discordgo.ApplicationCommandOptionBoolean {
			wipeAll = opt.BoolValue()
		}
	}

	guildID := parseID(i.GuildID)
	admin := isAdmin(ctx)

	if wipeAll {
		if !admin {
			respondEphemeral(s, i, "Only the admin can wipe all reminders.")
			return
		}
		n, err := deps.Store.DeleteAllReminders(context.Background(), guildID)
		if err != nil {
			respondEphemeral(s, i, fmt.Sprintf("Could not wipe reminders: ```%v```", err))
			return
		}
		respond(s, i, fmt.Sprintf("🧹 Deleted **%d** reminders.", n))
		return
	}

	id, ok := optInt64(options, "id")
	if !ok || id < 1 {
		respondEphemeral(s, i, "Give me a reminder id from /reminders.")
		return
	}

	removed, err := deps.Store.DeleteReminder(context.Background(), guildID, id, parseID(i.Member.User.ID), admin)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not delete reminder: ```%v```", err))
		return
	}
	if !removed {
		respondEphemeral(s, i, "No such reminder — or it isn't yours to delete.")
		return
	}

	respond(s, i, fmt.Sprintf("🗑️ Reminder `#%d` deleted.", id))
}
