// Package extract turns raw wiki article HTML into an episode.Record.
//
// Episode pages vary across seasons: sections move around, get renamed, or
// are simply absent. Every field is therefore an independent, optional
// lookup keyed on heading anchors and heading text, never on document
// position. Extraction never fails; missing content yields empty fields.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/pokepdf/internal/episode"
)

// Headings holds the synonym sets used to recognize section boundaries.
// Wiki formatting drifts over revisions, so these are configuration, not
// literals baked into the lookup.
type Headings struct {
	Summary    []string `yaml:"summary"`
	MainEvents []string `yaml:"main_events"`
}

// DefaultHeadings matches the markup observed on 52poke episode pages.
func DefaultHeadings() Headings {
	return Headings{
		Summary:    []string{"摘要", "剧情概要", "劇情概要"},
		MainEvents: []string{"主要事件"},
	}
}

type Extractor struct {
	headings Headings
}

func New(h Headings) *Extractor {
	defaults := DefaultHeadings()
	if len(h.Summary) == 0 {
		h.Summary = defaults.Summary
	}
	if len(h.MainEvents) == 0 {
		h.MainEvents = defaults.MainEvents
	}

	return &Extractor{headings: h}
}

// Extract parses raw HTML into a Record. Malformed HTML degrades to
// whatever could be located; a completely unparseable page yields a record
// carrying only the source URL and the URL-derived title.
func (e *Extractor) Extract(raw, sourceURL string) episode.Record {
	rec := episode.Record{
		SourceURL: sourceURL,
		Title:     episode.TitleFromURL(sourceURL),
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return rec
	}

	if rec.Title == "" {
		rec.Title = headingText(doc.Find("h1").First())
	}

	rec.Introduction = firstParagraph(doc)

	if h := findHeading(doc, e.headings.Summary); h != nil {
		rec.Summary = sectionParagraphs(h)
	}
	if h := findHeading(doc, e.headings.MainEvents); h != nil {
		rec.MainEvents = sectionBullets(h)
	}

	return rec
}

// firstParagraph returns the lead paragraph: the first non-empty <p> of
// the content area, or of the whole page when no content area exists.
func firstParagraph(doc *goquery.Document) string {
	sel := doc.Find("#mw-content-text p")
	if sel.Length() == 0 {
		sel = doc.Find("p")
	}

	var out string
	sel.EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if t := flatten(p.Text()); t != "" {
			out = t
			return false
		}
		return true
	})

	return out
}

// findHeading locates the first h2 whose anchor id or visible text matches
// any of the synonyms. Anchor ids are checked in both their plain and
// MediaWiki dot-escaped forms.
func findHeading(doc *goquery.Document, synonyms []string) *goquery.Selection {
	var found *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if headingMatches(h, synonyms) {
			found = h
			return false
		}
		return true
	})

	return found
}

func headingMatches(h *goquery.Selection, synonyms []string) bool {
	text := headingText(h)
	for _, syn := range synonyms {
		if text == syn {
			return true
		}
	}

	matched := false
	h.Find("span[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		id = decodeAnchor(id)
		for _, syn := range synonyms {
			if id == syn {
				matched = true
				return false
			}
		}
		return true
	})

	return matched
}

// headingText flattens a heading to plain text, dropping the [编辑]
// edit-section widget MediaWiki appends.
func headingText(h *goquery.Selection) string {
	c := h.Clone()
	c.Find(".mw-editsection").Remove()

	return flatten(c.Text())
}

// decodeAnchor turns a legacy MediaWiki section anchor like
// ".E6.91.98.E8.A6.81" back into its UTF-8 form (摘要). Ids that do not
// decode are returned unchanged.
func decodeAnchor(id string) string {
	if !strings.Contains(id, ".") {
		return id
	}

	if dec, err := url.PathUnescape(strings.ReplaceAll(id, ".", "%")); err == nil {
		return dec
	}

	return id
}

// sectionParagraphs collects the <p> texts between a section heading and
// the next h2, joined by newlines.
func sectionParagraphs(h *goquery.Selection) string {
	var parts []string
	h.NextUntil("h2").Filter("p").Each(func(_ int, p *goquery.Selection) {
		if t := flatten(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	return strings.Join(parts, "\n")
}

// sectionBullets collects the direct <li> children of the first list
// between a section heading and the next h2, in source order.
func sectionBullets(h *goquery.Selection) []string {
	ul := h.NextUntil("h2").Filter("ul").First()

	var events []string
	ul.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if t := flatten(li.Text()); t != "" {
			events = append(events, t)
		}
	})

	return events
}

// flatten reduces extracted text to a single plain-text line: inline
// markup is already stripped by goquery, so this collapses the leftover
// whitespace runs.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
