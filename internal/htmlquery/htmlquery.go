/*
Package htmlquery provides small typed queries over a parsed golang.org/x/net/html tree.

Every lookup returns nil (or an empty slice) when nothing matches, so callers can
treat missing markup as an ordinary negative outcome.
*/
package htmlquery

import (
	"strings"

	"golang.org/x/net/html"
)

// Predicate selects nodes during a search.
type Predicate func(*html.Node) bool

// IsElement matches element nodes with any of the given tag names.
func IsElement(tags ...string) Predicate {
	return func(n *html.Node) bool {
		if n == nil || n.Type != html.ElementNode {
			return false
		}
		for _, t := range tags {
			if n.Data == t {
				return true
			}
		}
		return false
	}
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the node carries the named attribute, whatever its value.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// FindFirst returns the first descendant of root, in document order, matching pred.
// root itself is not considered.
func FindFirst(root *html.Node, pred Predicate) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := FindFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of root matching pred, in document order.
func FindAll(root *html.Node, pred Predicate) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// Closest returns n or its nearest ancestor that is an element with the given tag.
func Closest(n *html.Node, tag string) *html.Node {
	match := IsElement(tag)
	for p := n; p != nil; p = p.Parent {
		if match(p) {
			return p
		}
	}
	return nil
}

// FollowingSiblings lists the element siblings after n with the given tag, in document order.
func FollowingSiblings(n *html.Node, tag string) []*html.Node {
	if n == nil {
		return nil
	}
	match := IsElement(tag)
	var out []*html.Node
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if match(s) {
			out = append(out, s)
		}
	}
	return out
}

// ChildElements lists the direct element children of n with any of the given tags.
func ChildElements(n *html.Node, tags ...string) []*html.Node {
	if n == nil {
		return nil
	}
	match := IsElement(tags...)
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Text concatenates every text node below n without any normalisation.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(Text(c))
	}
	return sb.String()
}

// line breaks in the markup source are plain whitespace once rendered
var sourceBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

var blockTags = map[string]bool{
	"p": true, "div": true, "tr": true, "li": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// LineText renders the text below n the way a browser would break it into lines:
// <br> and block elements start a new line, each line is trimmed and blank lines
// are dropped. Spacing inside a line is kept.
func LineText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(sourceBreaks.Replace(n.Data))
			return
		case html.ElementNode:
			if n.Data == "br" {
				sb.WriteByte('\n')
				return
			}
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			sb.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte('\n')
		}
	}
	walk(n)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// ContainsText matches text nodes whose data contains phrase.
func ContainsText(phrase string) Predicate {
	return func(n *html.Node) bool {
		return n.Type == html.TextNode && strings.Contains(n.Data, phrase)
	}
}

// InnermostContaining returns the first element with one of the given tags whose full text
// contains phrase and which has no descendant of those tags that also contains it.
// Nested layout tables therefore resolve to the cell that actually holds the phrase.
func InnermostContaining(root *html.Node, phrase string, tags ...string) *html.Node {
	isCell := IsElement(tags...)
	matches := func(n *html.Node) bool {
		return isCell(n) && strings.Contains(Text(n), phrase)
	}
	for _, n := range FindAll(root, matches) {
		if FindFirst(n, matches) == nil {
			return n
		}
	}
	return nil
}
