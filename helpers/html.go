package helpers

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var multiSpaceRegex = regexp.MustCompile(`\s+`)

// StripHTML removes markup (HTML or JATS) from s, decodes entities and
// collapses whitespace. Text in script and style elements is dropped.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return NormalizeWhitespace(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return NormalizeWhitespace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "p", "br", "div", "li", "jats:p", "title", "jats:title":
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li", "jats:p", "title", "jats:title":
				b.WriteByte(' ')
			}
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

// NormalizeWhitespace normalizes all whitespace to single spaces and trims.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}
