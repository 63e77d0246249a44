// /internal/links/scanner_test.go
package links

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papo-bot/internal/storage"
)

// memLinkStore implements Store with the same dedup contract as Postgres.
type memLinkStore struct {
	seen      map[string]bool
	order     []storage.Link
	insertErr error
}

func newMemLinkStore() *memLinkStore {
	return &memLinkStore{seen: map[string]bool{}}
}

func (m *memLinkStore) InsertLink(_ context.Context, l storage.Link) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	key := fmt.Sprintf("%d/%d/%d/%s", l.GuildID, l.OwnerID, l.MessageID, l.URL)
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	m.order = append(m.order, l)
	return true, nil
}

func (m *memLinkStore) RecentLinks(_ context.Context, guildID, ownerID int64, limit int) ([]storage.Link, error) {
	var out []storage.Link
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		l := m.order[i]
		if l.GuildID != guildID {
			continue
		}
		if ownerID != 0 && l.OwnerID != ownerID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func TestIngestCountsOnlyNewRows(t *testing.T) {
	store := newMemLinkStore()
	svc := NewService(store)

	urls := []string{
		"https://www.tiktok.com/@papo/video/1",
		"https://www.tiktok.com/@papo/video/2",
	}

	inserted, err := svc.Ingest(context.Background(), 1, 1001, 55, 900, urls)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	// Replay of the same message is fully absorbed.
	inserted, err = svc.Ingest(context.Background(), 1, 1001, 55, 900, urls)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
}

func TestIngestStopsOnStorageFailure(t *testing.T) {
	store := newMemLinkStore()
	store.insertErr = errors.New("db down")
	svc := NewService(store)

	inserted, err := svc.Ingest(context.Background(), 1, 1001, 55, 900,
		[]string{"https://www.tiktok.com/@papo/video/1"})
	assert.Error(t, err)
	assert.Equal(t, 0, inserted)
}

// fakeHistory serves canned pages the way Discord does: newest first, the
// before cursor selecting everything older than the given id.
type fakeHistory struct {
	msgs    []*discordgo.Message // newest first
	pageErr error
	calls   int
}

func (f *fakeHistory) ChannelMessages(_ string, limit int, beforeID, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	f.calls++
	if f.pageErr != nil && f.calls > 1 {
		return nil, f.pageErr
	}

	start := 0
	if beforeID != "" {
		for i, m := range f.msgs {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.msgs) {
		end = len(f.msgs)
	}
	return f.msgs[start:end], nil
}

func historyMessage(id int, authorID int64, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        strconv.Itoa(id),
		ChannelID: "55",
		Author:    &discordgo.User{ID: strconv.FormatInt(authorID, 10)},
		Content:   content,
	}
}

func TestScanChannelKeepsOnlyOwnerMatches(t *testing.T) {
	history := &fakeHistory{msgs: []*discordgo.Message{
		historyMessage(905, 1001, "check https://www.tiktok.com/@papo/video/5"),
		historyMessage(904, 2002, "not mine https://www.tiktok.com/@papo/video/4"),
		historyMessage(903, 1001, "no links here"),
		historyMessage(902, 1001, "https://www.tiktok.com/@papo/video/2"),
		historyMessage(901, 1001, "https://example.com/nope"),
	}}
	store := newMemLinkStore()
	sc := NewScanner(history, NewService(store))

	report := sc.ScanChannel(context.Background(), 1, "55", 50, 1001)

	assert.Equal(t, 5, report.Scanned)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 2, report.Inserted)
}

func TestScanChannelPaginates(t *testing.T) {
	var msgs []*discordgo.Message
	for i := 250; i > 0; i-- {
		msgs = append(msgs, historyMessage(i, 2002, "filler"))
	}
	history := &fakeHistory{msgs: msgs}
	sc := NewScanner(history, NewService(newMemLinkStore()))

	report := sc.ScanChannel(context.Background(), 1, "55", 250, 1001)

	assert.Equal(t, 250, report.Scanned)
	assert.Equal(t, 3, history.calls)
}

func TestScanChannelPartialReportOnPageFailure(t *testing.T) {
	var msgs []*discordgo.Message
	for i := 200; i > 0; i-- {
		msgs = append(msgs, historyMessage(i, 1001, "https://www.tiktok.com/@papo/video/"+strconv.Itoa(i)))
	}
	history := &fakeHistory{msgs: msgs, pageErr: errors.New("rate limited")}
	store := newMemLinkStore()
	sc := NewScanner(history, NewService(store))

	report := sc.ScanChannel(context.Background(), 1, "55", 200, 1001)

	// Only the first page landed; its links stay ingested.
	assert.Equal(t, 100, report.Scanned)
	assert.Equal(t, 100, report.Inserted)
	assert.Len(t, store.order, 100)
}

func TestScanChannelAlreadyCapturedIsNoOp(t *testing.T) {
	history := &fakeHistory{msgs: []*discordgo.Message{
		historyMessage(901, 1001, "https://www.tiktok.com/@papo/video/1"),
	}}
	store := newMemLinkStore()
	svc := NewService(store)

	_, err := svc.Ingest(context.Background(), 1, 1001, 55, 901,
		[]string{"https://www.tiktok.com/@papo/video/1"})
	require.NoError(t, err)

	report := NewScanner(history, svc).ScanChannel(context.Background(), 1, "55", 10, 1001)

	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 0, report.Inserted)
}
