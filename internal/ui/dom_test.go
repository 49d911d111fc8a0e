package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// dom is a parsed document queried by data-testid, the same handle a
// browser test would use.
type dom struct {
	root *html.Node
}

func renderDOM(t *testing.T, fn func(w *bytes.Buffer) error) *dom {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(&buf))
	root, err := html.Parse(&buf)
	require.NoError(t, err)
	return &dom{root: root}
}

func (d *dom) find(pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && pred(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return out
}

// byTestID returns the single element carrying id, failing otherwise.
func (d *dom) byTestID(t *testing.T, id string) *html.Node {
	t.Helper()
	nodes := d.find(func(n *html.Node) bool { return attr(n, "data-testid") == id })
	require.Len(t, nodes, 1, "elements with data-testid=%q", id)
	return nodes[0]
}

func (d *dom) queryTestID(id string) *html.Node {
	nodes := d.find(func(n *html.Node) bool { return attr(n, "data-testid") == id })
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func (d *dom) allWithPrefix(prefix string) []*html.Node {
	return d.find(func(n *html.Node) bool { return strings.HasPrefix(attr(n, "data-testid"), prefix) })
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
