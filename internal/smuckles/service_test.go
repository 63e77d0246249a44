// /internal/smuckles/service_test.go
package smuckles

import (
	"context"
	"testing"
	"time"

	"papo-bot/internal/cooldown"
	"papo-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTarget  = int64(1001)
	testGiver   = int64(2002)
	testAdmin   = int64(3003)
	someoneElse = int64(4004)
)

type fakeStore struct {
	applied []storage.LedgerEntry
	balance int64
	err     error
}

func (f *fakeStore) ApplyLedger(_ context.Context, e storage.LedgerEntry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.applied = append(f.applied, e)
	f.balance += e.Delta
	return f.balance, nil
}

func (f *fakeStore) Balance(context.Context, int64, int64) (int64, error) {
	return f.balance, nil
}

func (f *fakeStore) TopBalances(context.Context, int64, int) ([]storage.AccountBalance, error) {
	return nil, nil
}

func newTestService(store Store) (*Service, *fakeClock) {
	clock := &fakeClock{now: time.Unix(5000, 0)}
	gate := cooldown.NewWithClock(8*time.Second, clock.Now)
	svc := NewService(store, Rules{
		TargetID: testTarget,
		GiverID:  testGiver,
		AdminID:  testAdmin,
		Step:     5,
		Jackpot:  50,
	}, gate)
	return svc, clock
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func grant(actor, target, amount int64) Request {
	return Request{GuildID: 1, ActorID: actor, TargetID: target, Amount: amount, Class: ClassGrant}
}

func TestExecuteGrant(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	receipt, err := svc.Execute(context.Background(), grant(testGiver, testTarget, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(10), receipt.NewBalance)

	require.Len(t, store.applied, 1)
	assert.Equal(t, int64(10), store.applied[0].Delta)
	assert.Equal(t, testGiver, store.applied[0].ActorID)
}

func TestExecuteRevokeIsNegative(t *testing.T) {
	store := &fakeStore{balance: 100}
	svc, _ := newTestService(store)

	receipt, err := svc.Execute(context.Background(), Request{
		GuildID: 1, ActorID: testGiver, TargetID: testTarget, Amount: 5,
		Reason: "spilled the juice", Class: ClassRevoke,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(95), receipt.NewBalance)
	assert.Equal(t, int64(-5), store.applied[0].Delta)
	assert.Equal(t, "spilled the juice", store.applied[0].Reason)
}

func TestExecuteAuthorizationCheckedFirst(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	// Wrong actor AND out-of-range amount: the rejection must name
	// authorization, not the amount, and nothing may be persisted.
	_, err := svc.Execute(context.Background(), grant(someoneElse, testTarget, 7))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.applied)
}

func TestExecuteTargetBeforeAmount(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	_, err := svc.Execute(context.Background(), grant(testGiver, someoneElse, 7))
	assert.ErrorIs(t, err, ErrWrongTarget)
	assert.Empty(t, store.applied)
}

func TestExecuteAmountShape(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		ok     bool
	}{
		{"multiple of step", 10, true},
		{"step itself", 5, true},
		{"large multiple", 105, true},
		{"jackpot", 50, true},
		{"not a multiple", 7, false},
		{"zero", 0, false},
		{"negative", -5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(&fakeStore{})
			_, err := svc.Execute(context.Background(), grant(testGiver, testTarget, tt.amount))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAmount)
			}
		})
	}
}

func TestExecuteGrantCooldown(t *testing.T) {
	store := &fakeStore{}
	svc, clock := newTestService(store)

	_, err := svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	require.NoError(t, err)

	_, err = svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	assert.ErrorIs(t, err, ErrCooldown)
	assert.Len(t, store.applied, 1, "rate-limited request must not touch the ledger")

	clock.Advance(8 * time.Second)
	_, err = svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	assert.NoError(t, err)
}

func TestExecuteAdminSkipsCooldown(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	for n := 0; n < 3; n++ {
		_, err := svc.Execute(context.Background(), grant(testAdmin, testTarget, 5))
		require.NoError(t, err)
	}
	assert.Len(t, store.applied, 3)
}

func TestExecuteRevokeHasNoCooldown(t *testing.T) {
	store := &fakeStore{balance: 100}
	svc, _ := newTestService(store)

	for n := 0; n < 3; n++ {
		_, err := svc.Execute(context.Background(), Request{
			GuildID: 1, ActorID: testGiver, TargetID: testTarget, Amount: 5, Class: ClassRevoke,
		})
		require.NoError(t, err)
	}
	assert.Len(t, store.applied, 3)
}

func TestExecuteRejectionDoesNotConsumeCooldown(t *testing.T) {
	store := &fakeStore{}
	svc, _ := newTestService(store)

	// A malformed request is rejected before the cooldown check...
	_, err := svc.Execute(context.Background(), grant(testGiver, testTarget, 7))
	require.ErrorIs(t, err, ErrInvalidAmount)

	// ...so a well-formed one right after still passes.
	_, err = svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	assert.NoError(t, err)
}

func TestExecuteStorageFailurePropagates(t *testing.T) {
	store := &fakeStore{err: storage.ErrUnavailable}
	svc, _ := newTestService(store)

	_, err := svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestLedgerConsistency(t *testing.T) {
	store := &fakeStore{}
	svc, clock := newTestService(store)

	deltas := []struct {
		amount int64
		class  Class
	}{
		{10, ClassGrant}, {50, ClassGrant}, {5, ClassRevoke}, {20, ClassGrant},
	}

	for _, d := range deltas {
		_, err := svc.Execute(context.Background(), Request{
			GuildID: 1, ActorID: testGiver, TargetID: testTarget, Amount: d.amount, Class: d.class,
		})
		require.NoError(t, err)
		clock.Advance(10 * time.Second)
	}

	var sum int64
	for _, e := range store.applied {
		sum += e.Delta
	}
	balance, err := svc.Balance(context.Background(), 1, testTarget)
	require.NoError(t, err)
	assert.Equal(t, sum, balance, "balance must equal the sum of audit deltas")
}

func TestCooldownRemaining(t *testing.T) {
	store := &fakeStore{}
	svc, clock := newTestService(store)

	assert.Equal(t, time.Duration(0), svc.CooldownRemaining(testGiver), "fresh actor waits nothing")

	_, err := svc.Execute(context.Background(), grant(testGiver, testTarget, 5))
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	assert.Equal(t, 5*time.Second, svc.CooldownRemaining(testGiver))

	clock.Advance(5 * time.Second)
	assert.Equal(t, time.Duration(0), svc.CooldownRemaining(testGiver))
}

func TestIsJackpot(t *testing.T) {
	svc, _ := newTestService(&fakeStore{})
	assert.True(t, svc.IsJackpot(50))
	assert.False(t, svc.IsJackpot(10))
}
