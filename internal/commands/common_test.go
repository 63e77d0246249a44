// /internal/commands/common_test.go
package commands

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"papo-bot/internal/smuckles"
	"papo-bot/internal/storage"
)

func TestRejectionReply(t *testing.T) {
	tests := []struct {
		name string
		err  error
		wait time.Duration
		want string
	}{
		{
			"unauthorized stays generic",
			smuckles.ErrUnauthorized, 0,
			"Only authorized users can do that.",
		},
		{
			"wrong target names the member",
			smuckles.ErrWrongTarget, 0,
			"Only <@1001> can gain or lose 🍉 smuckles.",
		},
		{
			"invalid amount states the shape",
			smuckles.ErrInvalidAmount, 0,
			"Amount must be a positive multiple of **5**, or exactly **50**.",
		},
		{
			"cooldown reports the remaining wait",
			smuckles.ErrCooldown, 5 * time.Second,
			"Slow down — try again in 5s.",
		},
		{
			"cooldown wait rounds up",
			smuckles.ErrCooldown, 4100 * time.Millisecond,
			"Slow down — try again in 5s.",
		},
		{
			"storage failure promises no change",
			storage.ErrUnavailable, 0,
			"The ledger is unreachable right now. Nothing was changed — try again shortly.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rejectionReply(tt.err, tt.wait, 1001, 5, 50, "🍉")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCeilSeconds(t *testing.T) {
	assert.Equal(t, int64(5), ceilSeconds(5*time.Second))
	assert.Equal(t, int64(5), ceilSeconds(4100*time.Millisecond))
	assert.Equal(t, int64(1), ceilSeconds(0), "an active cooldown never reads as 0s")
}

func TestReceiptReply(t *testing.T) {
	grant := receiptReply(smuckles.ClassGrant, 1001, 10, "good brat", 60, "🍉", false)
	assert.Contains(t, grant, "✅")
	assert.Contains(t, grant, "(_good brat_)")

	jackpot := receiptReply(smuckles.ClassGrant, 1001, 50, "ignored", 110, "🍉", true)
	assert.Contains(t, jackpot, "🎰 JACKPOT!")
	assert.NotContains(t, jackpot, "ignored", "jackpot line carries no reason")

	revoke := receiptReply(smuckles.ClassRevoke, 1001, 5, "", 105, "🍉", false)
	assert.Contains(t, revoke, "lost **5 🍉**")
}

func TestBuildHelpMessageGroupsByCategory(t *testing.T) {
	msg := buildHelpMessage()

	assert.Contains(t, msg, "**Information**")
	assert.Contains(t, msg, "**Smuckles**")
	assert.Contains(t, msg, "**Bonks**")
	assert.Contains(t, msg, "**Links**")
	assert.Contains(t, msg, "**Reminders**")
	assert.Contains(t, msg, "`/give` - ")

	// Sort order puts Information first.
	assert.Less(t, strings.Index(msg, "**Information**"), strings.Index(msg, "**Smuckles**"))
}
