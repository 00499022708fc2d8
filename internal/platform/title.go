package platform

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholders for titles that cannot be shown
const (
	UnknownTitle      = "Unknown title"
	NonASCIIOnlyTitle = "Title with special characters"
)

// ASCIITitle folds accented letters to their base form and drops anything
// else outside printable ASCII, so titles render on limited consoles.
func ASCIITitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return UnknownTitle
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range folded {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		}
	}

	safe := strings.TrimSpace(b.String())
	if safe == "" {
		return NonASCIIOnlyTitle
	}
	return safe
}
