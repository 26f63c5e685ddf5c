package llm

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// maxPromptHTML caps the sanitized HTML included in a prompt to keep
// token usage bounded.
const maxPromptHTML = 15000

// strippedSelector matches subtrees that carry no selector-discovery
// signal and inflate token counts.
const strippedSelector = "script, style, noscript, iframe, svg, form, link, meta[http-equiv]"

// sanitizeHTML removes scripts, styles, and comments, then truncates
// the serialized document to maxPromptHTML characters.
func sanitizeHTML(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}
	doc.Find(strippedSelector).Remove()
	removeComments(doc)

	out, err := doc.Html()
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if len(out) > maxPromptHTML {
		out = out[:maxPromptHTML]
	}
	return out, nil
}

func removeComments(doc *goquery.Document) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		child := n.FirstChild
		for child != nil {
			next := child.NextSibling
			if child.Type == html.CommentNode {
				n.RemoveChild(child)
			} else {
				walk(child)
			}
			child = next
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
}
