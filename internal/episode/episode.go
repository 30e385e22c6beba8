// Package episode defines the extracted content of one wiki article and
// its Simplified→Traditional script conversion.
package episode

import (
	"net/url"
	"regexp"

	"github.com/siongui/gojianfan"
)

// Record holds what was extracted from a single episode page. Every field
// except SourceURL is optional; a Record with only SourceURL set is still
// valid and renders as a degraded entry.
type Record struct {
	Title        string
	Introduction string
	Summary      string
	MainEvents   []string
	SourceURL    string
}

var episodeRe = regexp.MustCompile(`(第\d+集)`)

// TitleFromURL pulls the 第N集 marker out of a percent-encoded article URL.
// Returns "" when the URL carries no such marker. Path unescaping keeps
// literal + characters intact, as article URLs are path-shaped.
func TitleFromURL(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}

	return episodeRe.FindString(decoded)
}

// Normalized returns a copy of the record with every text field converted
// to Traditional Chinese. The receiver is left untouched. Converting text
// that is already Traditional is a no-op, so the operation is idempotent.
func (r Record) Normalized() Record {
	out := Record{
		Title:        gojianfan.S2T(r.Title),
		Introduction: gojianfan.S2T(r.Introduction),
		Summary:      gojianfan.S2T(r.Summary),
		SourceURL:    r.SourceURL,
	}

	if len(r.MainEvents) > 0 {
		out.MainEvents = make([]string, len(r.MainEvents))
		for i, ev := range r.MainEvents {
			out.MainEvents[i] = gojianfan.S2T(ev)
		}
	}

	return out
}
