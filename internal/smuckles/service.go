// /internal/smuckles/service.go

// Package smuckles is the transaction core of the currency. Every balance
// change, whether a slash command or a bonk penalty, funnels through
// Service.Execute so there is exactly one validation order and one atomicity
// discipline.
package smuckles

import (
	"context"
	"fmt"
	"time"

	"papo-bot/internal/cooldown"
	"papo-bot/internal/storage"
)

// Class names a category of validated, rate-limited ledger operation.
type Class string

const (
	ClassGrant  Class = "grant"
	ClassRevoke Class = "revoke"
)

// Request is an authenticated action request. Actor identity is supplied by
// the gateway layer; the service trusts the id, not the intent.
type Request struct {
	GuildID  int64
	ActorID  int64
	TargetID int64
	Amount   int64
	Reason   string
	Class    Class
}

// Receipt reports a completed mutation.
type Receipt struct {
	NewBalance int64
}

// Rules holds the configured predicates of the validation pipeline.
type Rules struct {
	TargetID int64 // the single account allowed to gain or lose smuckles
	GiverID  int64 // authorized to grant and revoke
	AdminID  int64 // authorized for everything, exempt from cooldowns
	Step     int64 // amounts must be a positive multiple of this...
	Jackpot  int64 // ...or exactly this
}

// Store is what the service needs from persistence.
type Store interface {
	ApplyLedger(ctx context.Context, e storage.LedgerEntry) (int64, error)
	Balance(ctx context.Context, guildID, userID int64) (int64, error)
	TopBalances(ctx context.Context, guildID int64, limit int) ([]storage.AccountBalance, error)
}

type Service struct {
	store Store
	rules Rules
	gate  *cooldown.Gate // grant cooldown; revokes are not rate limited
}

func NewService(store Store, rules Rules, gate *cooldown.Gate) *Service {
	return &Service{store: store, rules: rules, gate: gate}
}

// Execute runs the validation pipeline and, on success, applies the balance
// change and its audit record as one atomic unit. The order of checks is
// fixed: authorization, target, amount shape, cooldown. The first failure
// short-circuits and no state is touched; in particular an unauthorized or
// malformed request never consumes a cooldown slot.
func (s *Service) Execute(ctx context.Context, req Request) (Receipt, error) {
	if !s.authorized(req.ActorID) {
		return Receipt{}, ErrUnauthorized
	}

	if req.TargetID != s.rules.TargetID {
		return Receipt{}, ErrWrongTarget
	}

	if !s.validAmount(req.Amount) {
		return Receipt{}, ErrInvalidAmount
	}

	if req.Class == ClassGrant && req.ActorID != s.rules.AdminID {
		if !s.gate.Allow(req.ActorID) {
			return Receipt{}, ErrCooldown
		}
	}

	delta := req.Amount
	if req.Class == ClassRevoke {
		delta = -req.Amount
	}

	balance, err := s.store.ApplyLedger(ctx, storage.LedgerEntry{
		GuildID:  req.GuildID,
		ActorID:  req.ActorID,
		TargetID: req.TargetID,
		Delta:    delta,
		Reason:   req.Reason,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("apply ledger: %w", err)
	}

	return Receipt{NewBalance: balance}, nil
}

// Balance is the read path for a single account.
func (s *Service) Balance(ctx context.Context, guildID, userID int64) (int64, error) {
	return s.store.Balance(ctx, guildID, userID)
}

// Top returns the balance leaderboard.
func (s *Service) Top(ctx context.Context, guildID int64, limit int) ([]storage.AccountBalance, error) {
	return s.store.TopBalances(ctx, guildID, limit)
}

// CooldownRemaining reports how long the actor must still wait before the
// next grant. Zero when the actor may act now.
func (s *Service) CooldownRemaining(actorID int64) time.Duration {
	return s.gate.Remaining(actorID)
}

// IsJackpot reports whether amount hits the jackpot constant, for the
// celebratory reply.
func (s *Service) IsJackpot(amount int64) bool {
	return amount == s.rules.Jackpot
}

func (s *Service) authorized(actorID int64) bool {
	return actorID == s.rules.GiverID || actorID == s.rules.AdminID
}

func (s *Service) validAmount(amount int64) bool {
	if amount <= 0 {
		return false
	}
	return amount%s.rules.Step == 0 || amount == s.rules.Jackpot
}
