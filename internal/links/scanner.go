// /internal/links/scanner.go
package links

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// HistorySource is the slice of discordgo.Session the scanner reads from.
type HistorySource interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// Report is what a scan has to show for itself. A scan that dies mid-way
// still returns the progress it made; everything ingested before the failure
// stays ingested.
type Report struct {
	Scanned  int
	Matched  int
	Inserted int
}

const pageSize = 100

// Scanner walks a channel's history newest-first and feeds the owner's
// messages through the same extract+ingest pipeline as live capture. Dedup
// at the storage layer makes re-scanning already-captured messages a no-op.
type Scanner struct {
	src     HistorySource
	ingest  *Service
	limiter *rate.Limiter
}

func NewScanner(src HistorySource, ingest *Service) *Scanner {
	// One page per second keeps a long scan under Discord's REST limits and
	// yields between pages so it never starves concurrent handlers.
	return &Scanner{
		src:     src,
		ingest:  ingest,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// ScanChannel reads up to maxMessages recent messages, newest first, keeping
// only those from authorID. Page-fetch failures and cancellation end the
// scan with a partial report; a single message failing to parse or persist
// is logged and skipped without aborting the rest.
func (sc *Scanner) ScanChannel(ctx context.Context, guildID int64, channelID string, maxMessages int, authorID int64) Report {
	var report Report
	before := ""

	for report.Scanned < maxMessages {
		if err := sc.limiter.Wait(ctx); err != nil {
			log.Println("[WARN] Link scan cancelled:", err)
			return report
		}

		limit := pageSize
		if left := maxMessages - report.Scanned; left < limit {
			limit = left
		}

		msgs, err := sc.src.ChannelMessages(channelID, limit, before, "", "")
		if err != nil {
			log.Println("[WARN] Link scan stopped on page fetch:", err)
			return report
		}
		if len(msgs) == 0 {
			return report
		}

		for _, m := range msgs {
			report.Scanned++
			before = m.ID

			if m.Author == nil || m.Author.ID != strconv.FormatInt(authorID, 10) {
				continue
			}

			urls := Extract(m.Content, m.Embeds)
			if len(urls) == 0 {
				continue
			}
			report.Matched += len(urls)

			channel, err1 := strconv.ParseInt(m.ChannelID, 10, 64)
			message, err2 := strconv.ParseInt(m.ID, 10, 64)
			if err1 != nil || err2 != nil {
				log.Printf("[WARN] Link scan: bad ids on message %s, skipping", m.ID)
				continue
			}

			inserted, err := sc.ingest.Ingest(ctx, guildID, authorID, channel, message, urls)
			report.Inserted += inserted
			if err != nil {
				log.Printf("[WARN] Link scan: ingest failed for message %s: %v", m.ID, err)
			}
		}
	}

	return report
}
