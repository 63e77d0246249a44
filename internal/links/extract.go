// /internal/links/extract.go

// Package links captures TikTok links from chat: live from message events
// and retroactively through a channel history scan. Persistence is
// deduplicated per origin message, so the two paths can overlap freely.
package links

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
)

var linkPattern = regexp.MustCompile(`https?://(?:www\.|vm\.|vt\.|m\.)?tiktok\.com/[^\s<>|)\]]+`)

// Extract returns every TikTok link in a message, in order of appearance:
// message text first, then each embed's URL, title, description and footer,
// in that fixed field order. Repeats within one message collapse to the
// first occurrence. Pure function; directly unit-testable without a live
// event.
func Extract(text string, embeds []*discordgo.MessageEmbed) []string {
	var fields []string
	fields = append(fields, text)
	for _, e := range embeds {
		if e == nil {
			continue
		}
		fields = append(fields, e.URL, e.Title, e.Description)
		if e.Footer != nil {
			fields = append(fields, e.Footer.Text)
		}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		for _, m := range linkPattern.FindAllString(f, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
