package pdf

import (
	"html"
	"regexp"
	"strings"
)

var (
	brTagRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockEndRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li)>`)
	anyTagRe   = regexp.MustCompile(`<[^>]*>`)
	multiNLRe  = regexp.MustCompile(`\n{3,}`)
)

// PlainText converts a stored consent snapshot (HTML) into plain text for
// PDF layout: line breaks become newlines, block closings become paragraph
// breaks, remaining tags are stripped and HTML entities decoded.
func PlainText(snapshot string) string {
	text := brTagRe.ReplaceAllString(snapshot, "\n")
	text = blockEndRe.ReplaceAllString(text, "\n\n")
	text = anyTagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	// Normalize whitespace left behind by the markup
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	text = multiNLRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
