package jobboard

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText flattens an HTML fragment to whitespace-normalized text. Input
// without markup is only whitespace-normalized.
func htmlToText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
