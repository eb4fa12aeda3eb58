package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip converts an HTML fragment to plain text by concatenating its text
// nodes in document order. Canvas discussion messages arrive as HTML and
// must never be pushed verbatim into a task description.
func Strip(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// The tokenizer recovers from almost anything, so this is rare.
		// Better to push the raw text than to drop the post.
		return fragment
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String()
}
