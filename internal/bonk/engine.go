// /internal/bonk/engine.go

// Package bonk keeps the bonk counter and fires its side effects. Every
// recorded bonk recomputes today's total for the target and runs two
// independent modulo checks against it: one announces the streak, one
// deducts smuckles through the same transaction path as /take. The checks
// are not exclusive: a count that is a multiple of both steps fires both.
package bonk

import (
	"context"
	"fmt"
	"log"
	"time"

	"papo-bot/internal/cooldown"
	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"
)

// Window selects the time range of a count or leaderboard.
type Window string

const (
	WindowAll  Window = "all"
	WindowDay  Window = "day"  // current UTC calendar day
	WindowWeek Window = "week" // rolling 7×24h from now
)

// Since converts the window into a floor timestamp; zero means unbounded.
func (w Window) Since(now time.Time) time.Time {
	switch w {
	case WindowDay:
		return now.UTC().Truncate(24 * time.Hour)
	case WindowWeek:
		return now.Add(-7 * 24 * time.Hour)
	default:
		return time.Time{}
	}
}

// Event is one incoming bonk, already attributed by the gateway layer.
type Event struct {
	GuildID   int64
	ActorID   int64
	TargetID  int64
	ChannelID int64
	MessageID int64
}

// Stats are the per-pair counts shown by /bonkstats.
type Stats struct {
	Today   int64
	Last7   int64
	AllTime int64
}

// Store is what the engine needs from persistence.
type Store interface {
	InsertBonk(ctx context.Context, b storage.BonkEvent) error
	CountTarget(ctx context.Context, guildID, targetID int64, since time.Time) (int64, error)
	CountPair(ctx context.Context, guildID, actorID, targetID int64, since time.Time) (int64, error)
	BonkLeaderboard(ctx context.Context, guildID, targetID int64, since time.Time, limit int) ([]storage.BonkerCount, error)
	DeleteRecentBonks(ctx context.Context, guildID, actorID, targetID int64, since time.Time, limit int) (int64, error)
}

// Ledger applies the streak penalty. Satisfied by *smuckles.Service.
type Ledger interface {
	Execute(ctx context.Context, req smuckles.Request) (smuckles.Receipt, error)
}

// Notifier delivers the engine's announcements back to chat.
type Notifier func(ctx context.Context, channelID int64, text string)

// Config carries the streak thresholds and the identity the penalty is
// attributed to.
type Config struct {
	StreakStep    int64
	PenaltyStep   int64
	PenaltyAmount int64
	SystemActorID int64 // admin account the penalty is logged under
	Currency      string
}

type Engine struct {
	store  Store
	ledger Ledger
	notify Notifier
	gate   *cooldown.Gate
	cfg    Config
	now    func() time.Time
}

func NewEngine(store Store, ledger Ledger, notify Notifier, gate *cooldown.Gate, cfg Config) *Engine {
	return &Engine{store: store, ledger: ledger, notify: notify, gate: gate, cfg: cfg, now: time.Now}
}

// Record appends one bonk and runs the threshold checks. A rate-limited
// actor is dropped silently before any state is touched. countToday is
// computed once and both checks read that same value.
func (e *Engine) Record(ctx context.Context, ev Event) error {
	if !e.gate.Allow(ev.ActorID) {
		return nil
	}

	if err := e.store.InsertBonk(ctx, storage.BonkEvent{
		GuildID:   ev.GuildID,
		ActorID:   ev.ActorID,
		TargetID:  ev.TargetID,
		ChannelID: ev.ChannelID,
		MessageID: ev.MessageID,
	}); err != nil {
		return fmt.Errorf("record bonk: %w", err)
	}

	countToday, err := e.store.CountTarget(ctx, ev.GuildID, ev.TargetID, WindowDay.Since(e.now()))
	if err != nil {
		return fmt.Errorf("count today: %w", err)
	}

	if e.cfg.StreakStep > 0 && countToday%e.cfg.StreakStep == 0 {
		e.notify(ctx, ev.ChannelID,
			fmt.Sprintf("💥 <@%d> has been bonked **%d** times today!", ev.TargetID, countToday))
	}

	if e.cfg.PenaltyStep > 0 && countToday%e.cfg.PenaltyStep == 0 {
		e.applyPenalty(ctx, ev, countToday)
	}

	return nil
}

func (e *Engine) applyPenalty(ctx context.Context, ev Event, countToday int64) {
	receipt, err := e.ledger.Execute(ctx, smuckles.Request{
		GuildID:  ev.GuildID,
		ActorID:  e.cfg.SystemActorID,
		TargetID: ev.TargetID,
		Amount:   e.cfg.PenaltyAmount,
		Reason:   fmt.Sprintf("bonk penalty at %d bonks today", countToday),
		Class:    smuckles.ClassRevoke,
	})
	if err != nil {
		log.Println("[ERR] Bonk penalty failed:", err)
		return
	}

	e.notify(ctx, ev.ChannelID,
		fmt.Sprintf("🔨 **%d** bonks today — <@%d> loses **%d %s**! New total: **%d %s**.",
			countToday, ev.TargetID, e.cfg.PenaltyAmount, e.cfg.Currency,
			receipt.NewBalance, e.cfg.Currency))
}

// StatsFor returns today / last-7-days / all-time counts for one
// actor→target pair.
func (e *Engine) StatsFor(ctx context.Context, guildID, actorID, targetID int64) (Stats, error) {
	now := e.now()

	today, err := e.store.CountPair(ctx, guildID, actorID, targetID, WindowDay.Since(now))
	if err != nil {
		return Stats{}, err
	}
	week, err := e.store.CountPair(ctx, guildID, actorID, targetID, WindowWeek.Since(now))
	if err != nil {
		return Stats{}, err
	}
	all, err := e.store.CountPair(ctx, guildID, actorID, targetID, time.Time{})
	if err != nil {
		return Stats{}, err
	}

	return Stats{Today: today, Last7: week, AllTime: all}, nil
}

// Leaderboard ranks bonkers of the target within the window.
func (e *Engine) Leaderboard(ctx context.Context, guildID, targetID int64, w Window, limit int) ([]storage.BonkerCount, error) {
	return e.store.BonkLeaderboard(ctx, guildID, targetID, w.Since(e.now()), limit)
}

// RemoveRecent deletes up to n of the actor's most recent bonks on the
// target within the window and reports how many were removed. Fewer matches
// than asked is a normal outcome, not an error.
func (e *Engine) RemoveRecent(ctx context.Context, guildID, actorID, targetID int64, w Window, n int) (int64, error) {
	return e.store.DeleteRecentBonks(ctx, guildID, actorID, targetID, w.Since(e.now()), n)
}
