package news

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// truncationMarker matches the "[+1234 chars]" suffix NewsAPI appends to content.
var truncationMarker = regexp.MustCompile(`\s*\[\+\d+ chars\]\s*$`)

// cleanText turns an HTML fragment into single-spaced plain text.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	s = truncationMarker.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
