// Package render lays batches of episode records out as paginated A4 PDF
// documents with a Chinese-capable font.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/signintech/gopdf"

	"github.com/brogergvhs/pokepdf/internal/episode"
)

// Error reports a rendering failure. Op is "font" or "write".
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("render %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

const fontName = "cjk"

// Layout constants, points on an A4 page.
const (
	pageWidth  = 595.28
	pageHeight = 841.89
	margin     = 48.0

	contentWidth = pageWidth - 2*margin
	bottomY      = pageHeight - margin

	titleSize = 12.0
	bodySize  = 10.0

	titleLeading = 16.0
	bodyLeading  = 14.0

	labelGap     = 6.0
	sectionGap   = 12.0
	episodeGap   = 30.0
	bulletIndent = 16.0
)

const (
	placeholderTitle = "（無標題）"
	summaryLabel     = "摘要"
	eventsLabel      = "主要事件："
)

// Renderer writes one PDF per batch. The font is resolved once per run;
// construction fails when no candidate loads, which aborts the whole run
// since no batch could render correct glyphs.
type Renderer struct {
	fontPath string
}

func New(fontPaths []string) (*Renderer, error) {
	path, err := ResolveFont(fontPaths, probeFont)
	if err != nil {
		return nil, err
	}

	return &Renderer{fontPath: path}, nil
}

// FontPath reports which candidate won, for the startup log line.
func (r *Renderer) FontPath() string { return r.fontPath }

// Render lays out the records sequentially into one PDF at outPath,
// overwriting any previous file. The document is written to a temporary
// sibling first and renamed into place, so reruns and interrupts never
// leave a truncated PDF under the final name.
func (r *Renderer) Render(records []episode.Record, outPath string) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(fontName, r.fontPath); err != nil {
		return &Error{Op: "font", Err: err}
	}

	pdf.AddPage()
	d := &doc{pdf: pdf, y: margin}

	for _, rec := range records {
		if err := d.episode(rec); err != nil {
			return &Error{Op: "write", Err: err}
		}
	}

	tmp := outPath + ".tmp"
	if err := pdf.WritePdf(tmp); err != nil {
		return &Error{Op: "write", Err: err}
	}
	if err := os.Rename(tmp, outPath); err != nil {
		_ = os.Remove(tmp)
		return &Error{Op: "write", Err: err}
	}

	return nil
}

// doc tracks the vertical cursor while flowing content down the pages.
type doc struct {
	pdf *gopdf.GoPdf
	y   float64
}

// episode emits one record: centered title grouped with the introduction,
// then the labeled summary block, then the bulleted main events, each
// section kept whole across page boundaries.
func (d *doc) episode(rec episode.Record) error {
	title := strings.TrimSpace(rec.Title)
	if title == "" {
		title = placeholderTitle
	}

	if err := d.titleAndIntro(title, rec.Introduction); err != nil {
		return err
	}

	if rec.Summary != "" {
		if err := d.labeledParagraphs(summaryLabel, strings.Split(rec.Summary, "\n")); err != nil {
			return err
		}
	}

	if len(rec.MainEvents) > 0 {
		if err := d.bulletSection(eventsLabel, rec.MainEvents); err != nil {
			return err
		}
	}

	d.y += episodeGap

	return nil
}

func (d *doc) titleAndIntro(title, intro string) error {
	titleLines, err := d.wrap(titleSize, title, contentWidth)
	if err != nil {
		return err
	}

	var introLines []string
	if intro != "" {
		if introLines, err = d.wrap(bodySize, intro, contentWidth); err != nil {
			return err
		}
	}

	height := float64(len(titleLines))*titleLeading + sectionGap +
		float64(len(introLines))*bodyLeading
	d.ensure(height)

	if err := d.setFont(titleSize); err != nil {
		return err
	}
	for _, line := range titleLines {
		if err := d.centeredLine(line, titleLeading); err != nil {
			return err
		}
	}
	d.y += sectionGap

	if len(introLines) > 0 {
		if err := d.lines(bodySize, introLines, margin); err != nil {
			return err
		}
		d.y += sectionGap
	}

	return nil
}

func (d *doc) labeledParagraphs(label string, paragraphs []string) error {
	var body []string
	for _, p := range paragraphs {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		wrapped, err := d.wrap(bodySize, p, contentWidth)
		if err != nil {
			return err
		}
		body = append(body, wrapped...)
	}

	d.ensure(bodyLeading + labelGap + float64(len(body))*bodyLeading + sectionGap)

	if err := d.lines(bodySize, []string{label}, margin); err != nil {
		return err
	}
	d.y += labelGap

	if err := d.lines(bodySize, body, margin); err != nil {
		return err
	}
	d.y += sectionGap

	return nil
}

func (d *doc) bulletSection(label string, events []string) error {
	type bullet struct{ lines []string }

	bullets := make([]bullet, 0, len(events))
	total := 0
	for _, ev := range events {
		wrapped, err := d.wrap(bodySize, ev, contentWidth-bulletIndent)
		if err != nil {
			return err
		}
		bullets = append(bullets, bullet{lines: wrapped})
		total += len(wrapped)
	}

	d.ensure(bodyLeading + labelGap + float64(total)*bodyLeading + sectionGap)

	if err := d.lines(bodySize, []string{label}, margin); err != nil {
		return err
	}
	d.y += labelGap

	if err := d.setFont(bodySize); err != nil {
		return err
	}
	for _, b := range bullets {
		for i, line := range b.lines {
			if i == 0 {
				line = "• " + line
			}
			if err := d.line(line, margin+bulletIndent, bodyLeading); err != nil {
				return err
			}
		}
	}
	d.y += sectionGap

	return nil
}

// ensure starts a fresh page when the next block would not fit, unless the
// block is taller than a whole page, in which case it flows line by line.
func (d *doc) ensure(height float64) {
	if height > bottomY-margin {
		return
	}
	if d.y+height > bottomY {
		d.pdf.AddPage()
		d.y = margin
	}
}

func (d *doc) setFont(size float64) error {
	return d.pdf.SetFont(fontName, "", size)
}

// wrap splits text into lines that fit the given width at the given size.
func (d *doc) wrap(size float64, text string, width float64) ([]string, error) {
	if err := d.setFont(size); err != nil {
		return nil, err
	}

	lines, err := d.pdf.SplitTextWithWordWrap(text, width)
	if err != nil {
		// degenerate input (e.g. a single glyph wider than the column);
		// emit it unsplit rather than dropping content
		return []string{text}, nil
	}

	return lines, nil
}

func (d *doc) lines(size float64, lines []string, x float64) error {
	if err := d.setFont(size); err != nil {
		return err
	}
	for _, line := range lines {
		if err := d.line(line, x, bodyLeading); err != nil {
			return err
		}
	}

	return nil
}

// line writes one already-wrapped line at x, breaking the page when the
// cursor runs off the bottom.
func (d *doc) line(text string, x, leading float64) error {
	if d.y+leading > bottomY {
		d.pdf.AddPage()
		d.y = margin
	}

	d.pdf.SetX(x)
	d.pdf.SetY(d.y)
	if err := d.pdf.Cell(nil, text); err != nil {
		return err
	}
	d.y += leading

	return nil
}

func (d *doc) centeredLine(text string, leading float64) error {
	x := margin
	if w, err := d.pdf.MeasureTextWidth(text); err == nil && w < contentWidth {
		x = margin + (contentWidth-w)/2
	}

	return d.line(text, x, leading)
}
