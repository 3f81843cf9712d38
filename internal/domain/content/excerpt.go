package content

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Excerpt returns the visible text of an HTML fragment, whitespace-collapsed and cut
// at a word boundary so that it holds at most max runes (ellipsis included).
func Excerpt(fragment string, max int) string {
	if max <= 0 {
		return ""
	}

	var (
		b        strings.Builder
		skipping int
	)
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if tokenizer.Err() != io.EOF {
				return ""
			}
			return truncate(strings.Join(strings.Fields(b.String()), " "), max)
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) {
				skipping++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if isHiddenElement(string(name)) && skipping > 0 {
				skipping--
			}
			b.WriteByte(' ')
		case html.TextToken:
			if skipping == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

func isHiddenElement(name string) bool {
	switch name {
	case "script", "style", "template":
		return true
	}
	return false
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}

	cut := runes[:max-3]
	if idx := strings.LastIndexByte(string(cut), ' '); idx > 0 {
		return strings.TrimRight(string(cut)[:idx], " ,.;:") + "..."
	}
	return string(cut) + "..."
}
