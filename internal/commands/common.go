// /internal/commands/common.go
package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// parseID converts a Discord snowflake string to the int64 the core works
// with. Returns 0 on garbage; callers treat 0 as "no id".
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func mention(id int64) string {
	return fmt.Sprintf("<@%d>", id)
}

// displayName resolves a member's display name, falling back to a mention
// when the member cannot be fetched.
func displayName(s *discordgo.Session, guildID string, userID int64) string {
	idStr := strconv.FormatInt(userID, 10)
	member, err := s.State.Member(guildID, idStr)
	if err != nil || member == nil {
		member, err = s.GuildMember(guildID, idStr)
	}
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}
	return mention(userID)
}

func optInt64(options []*discordgo.ApplicationCommandInteractionDataOption, name string) (int64, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt.IntValue(), true
		}
	}
	return 0, false
}

func optString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func optUserID(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int64 {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionUser {
			return parseID(opt.Value.(string))
		}
	}
	return 0
}

func isAdmin(ctx *SlashContext) bool {
	return parseID(ctx.InteractionCreate.Member.User.ID) == ctx.Deps.Cfg.AdminUserID
}

// executeLedger runs a grant or revoke through the orchestrator and turns
// the outcome into a chat reply. Rejections are ephemeral so the channel is
// not flooded with failed attempts.
func executeLedger(ctx *SlashContext, class smuckles.Class) {
	s, i, deps := ctx.Session, ctx.InteractionCreate, ctx.Deps
	options := i.ApplicationCommandData().Options
	cfg := deps.Cfg

	member := optUserID(options, "member")
	amount, _ := optInt64(options, "amount")
	reason := optString(options, "reason")

	actor := parseID(i.Member.User.ID)
	receipt, err := deps.Smuckles.Execute(context.Background(), smuckles.Request{
		GuildID:  parseID(i.GuildID),
		ActorID:  actor,
		TargetID: member,
		Amount:   amount,
		Reason:   reason,
		Class:    class,
	})
	if err != nil {
		var wait time.Duration
		if errors.Is(err, smuckles.ErrCooldown) {
			wait = deps.Smuckles.CooldownRemaining(actor)
		}
		respondEphemeral(s, i, rejectionReply(err, wait, cfg.TargetUserID, cfg.AmountStep, cfg.JackpotAmount, cfg.Currency))
		return
	}

	respond(s, i, receiptReply(class, member, amount, reason, receipt.NewBalance, cfg.Currency, deps.Smuckles.IsJackpot(amount)))
}

func rejectionReply(err error, wait time.Duration, targetID, step, jackpot int64, currency string) string {
	switch {
	case errors.Is(err, smuckles.ErrUnauthorized):
		return "Only authorized users can do that."
	case errors.Is(err, smuckles.ErrWrongTarget):
		return fmt.Sprintf("Only %s can gain or lose %s smuckles.", mention(targetID), currency)
	case errors.Is(err, smuckles.ErrInvalidAmount):
		return fmt.Sprintf("Amount must be a positive multiple of **%d**, or exactly **%d**.", step, jackpot)
	case errors.Is(err, smuckles.ErrCooldown):
		return fmt.Sprintf("Slow down — try again in %ds.", ceilSeconds(wait))
	case errors.Is(err, storage.ErrUnavailable):
		return "The ledger is unreachable right now. Nothing was changed — try again shortly."
	default:
		return fmt.Sprintf("Something went wrong: ```%v```", err)
	}
}

// ceilSeconds rounds up and never reports 0s while a cooldown is active.
func ceilSeconds(d time.Duration) int64 {
	secs := int64((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

func receiptReply(class smuckles.Class, member, amount int64, reason string, total int64, currency string, jackpot bool) string {
	var text string
	switch {
	case class == smuckles.ClassRevoke:
		text = fmt.Sprintf("⚠️ %s lost **%d %s**. New total: **%d %s**.",
			mention(member), amount, currency, total, currency)
	case jackpot:
		return fmt.Sprintf("🎰 JACKPOT! %s hit **%d %s**! Total: **%d %s**.",
			mention(member), amount, currency, total, currency)
	default:
		text = fmt.Sprintf("✅ %s received **%d %s smuckles**. New total: **%d %s**.",
			mention(member), amount, currency, total, currency)
	}
	if reason != "" {
		text += fmt.Sprintf(" (_%s_)", reason)
	}
	return text
}
