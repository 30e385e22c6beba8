package render

import (
	"errors"
	"os"

	"github.com/signintech/gopdf"
)

// DefaultFontPaths is the ordered preference list of Chinese-capable
// system fonts, macOS candidates first, then common Linux locations.
func DefaultFontPaths() []string {
	return []string{
		"/System/Library/Fonts/PingFang.ttc",
		"/System/Library/Fonts/STHeiti Light.ttc",
		"/System/Library/Fonts/STHeiti Medium.ttc",
		"/Library/Fonts/Arial Unicode.ttf",
		"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
		"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
		"/usr/share/fonts/truetype/wqy/wqy-zenhei.ttc",
		"/usr/share/fonts/truetype/arphic/uming.ttc",
	}
}

// FontProbe attempts to load one candidate font file.
type FontProbe func(path string) error

// ResolveFont walks the candidate list and returns the first font that
// both exists and actually loads. Existence alone is not enough: a present
// but unparseable file (e.g. a collection format the PDF engine rejects)
// must fall through to the next candidate.
func ResolveFont(candidates []string, probe FontProbe) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err != nil {
			continue
		}
		if err := probe(c); err != nil {
			continue
		}
		return c, nil
	}

	return "", &Error{Op: "font", Err: errors.New("no usable Chinese font found among candidates")}
}

// probeFont loads the font into a throwaway document.
func probeFont(path string) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	return pdf.AddTTFFont("probe", path)
}
