package rod

import (
	"strings"

	"golang.org/x/net/html"
)

type CleanConfig struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

// DefaultCleanConfig strips everything the model has no use for: scripts,
// styling, head metadata and presentation-only attributes.
var DefaultCleanConfig = CleanConfig{
	TagsToRemove: []string{
		"script", "style", "noscript", "svg", "iframe",
		"link", "meta", "head", "title",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	MaxOutputSize: 130_000,
}

// CleanHTML reduces raw page HTML to what the agent needs to reason about
// the page. On parse failure the raw HTML is returned unchanged.
func CleanHTML(rawHTML string, cfg *CleanConfig) string {
	if cfg == nil {
		cfg = &DefaultCleanConfig
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return rawHTML
	}

	body := findBodyNode(doc)
	if body == nil {
		return rawHTML
	}

	cleanNode(body, cfg)

	return truncateHTML(renderNode(body), cfg.MaxOutputSize)
}

func findBodyNode(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBodyNode(c); b != nil {
			return b
		}
	}
	return nil
}

func cleanNode(n *html.Node, cfg *CleanConfig) {
	if n.Type == html.CommentNode {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}
	if n.Type != html.ElementNode {
		return
	}

	if isOneOf(n.Data, cfg.TagsToRemove...) {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		return
	}

	n.Attr = filterAttributes(n.Attr, cfg)

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		cleanNode(c, cfg)
		c = next
	}
}

func filterAttributes(attrs []html.Attribute, cfg *CleanConfig) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if shouldRemoveAttr(attr, cfg) {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func shouldRemoveAttr(attr html.Attribute, cfg *CleanConfig) bool {
	for _, r := range cfg.AttrsToRemove {
		if attr.Key == r {
			return true
		}
	}
	// data-*, aria-* and event handlers only add noise for the model.
	if strings.HasPrefix(attr.Key, "data-") || strings.HasPrefix(attr.Key, "aria-") || strings.HasPrefix(attr.Key, "on") {
		return true
	}
	return false
}

func renderNode(n *html.Node) string {
	var sb strings.Builder
	_ = html.Render(&sb, n)
	return sb.String()
}

func truncateHTML(htmlStr string, maxSize int) string {
	if len(htmlStr) > maxSize {
		return htmlStr[:maxSize] + "\n<!-- HTML truncated to fit token limit -->"
	}
	return htmlStr
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
