// Package dom builds a navigable HTML node tree that preserves, for every
// node, the exact byte range of the original document it was produced from.
// Parsing is tolerant: mis-nested or unclosed markup never fails, the tree
// is simply recovered as well as the tokenizer allows.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodeType distinguishes element and text nodes
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is one node of the parsed document. Start and End are byte offsets
// into the original source: for an element they span from the opening tag
// to the end of the closing tag, for a text node they cover the raw text.
type Node struct {
	Type     NodeType
	Data     string // Tag name for elements, unescaped text for text nodes
	Attrs    []html.Attribute
	Parent   *Node
	Children []*Node
	Start    int
	End      int
}

// voidElements never take a closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Parse builds the offset-preserving tree for an HTML document.
// The returned root is a synthetic "#document" node spanning the whole input.
func Parse(src string) *Node {
	root := &Node{Type: ElementNode, Data: "#document", Start: 0, End: len(src)}
	stack := []*Node{root}
	top := func() *Node { return stack[len(stack)-1] }

	z := html.NewTokenizer(strings.NewReader(src))
	pos := 0

	for {
		tt := z.Next()
		rawLen := len(z.Raw())
		start := pos
		pos += rawLen

		switch tt {
		case html.ErrorToken:
			// EOF (or unrecoverable input): close anything still open
			for _, open := range stack[1:] {
				open.End = len(src)
			}
			return root

		case html.TextToken:
			text := string(z.Text())
			if strings.TrimSpace(text) == "" {
				continue
			}
			node := &Node{Type: TextNode, Data: text, Parent: top(), Start: start, End: pos}
			top().Children = append(top().Children, node)

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			node := &Node{
				Type:   ElementNode,
				Data:   tok.Data,
				Attrs:  tok.Attr,
				Parent: top(),
				Start:  start,
				End:    pos,
			}
			top().Children = append(top().Children, node)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, node)
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			// Find the matching open element; ignore stray end tags
			match := -1
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Data == tag {
					match = i
					break
				}
			}
			if match < 0 {
				continue
			}
			// Implicitly close anything opened after the match
			for i := len(stack) - 1; i > match; i-- {
				stack[i].End = start
			}
			stack[match].End = pos
			stack = stack[:match]

		case html.CommentToken, html.DoctypeToken:
			// Not part of the document model
		}
	}
}

// Text returns the whitespace-collapsed text content of the node's subtree
func (n *Node) Text() string {
	var parts []string
	n.Walk(func(d *Node) {
		if d.Type == TextNode {
			parts = append(parts, d.Data)
		}
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// TextSpan returns the byte span from the node's first text descendant to
// its last text descendant. ok is false when the subtree holds no text.
func (n *Node) TextSpan() (start, end int, ok bool) {
	first := n.FirstTextDescendant()
	if first == nil {
		return 0, 0, false
	}
	last := n.LastTextDescendant()
	return first.Start, last.End, true
}

// FirstTextDescendant returns the first text node in document order
func (n *Node) FirstTextDescendant() *Node {
	if n.Type == TextNode {
		return n
	}
	for _, c := range n.Children {
		if t := c.FirstTextDescendant(); t != nil {
			return t
		}
	}
	return nil
}

// LastTextDescendant returns the last text node in document order
func (n *Node) LastTextDescendant() *Node {
	if n.Type == TextNode {
		return n
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].LastTextDescendant(); t != nil {
			return t
		}
	}
	return nil
}

// Walk visits the node and every descendant in document order
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindAll returns every descendant (including n) matching the predicate
func (n *Node) FindAll(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(d *Node) {
		if pred(d) {
			out = append(out, d)
		}
	})
	return out
}

// FindFirst returns the first descendant (including n) matching the predicate
func (n *Node) FindFirst(pred func(*Node) bool) *Node {
	var found *Node
	var walk func(*Node) bool
	walk = func(d *Node) bool {
		if pred(d) {
			found = d
			return true
		}
		for _, c := range d.Children {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n)
	return found
}

// IsElement reports whether the node is an element with the given tag name
func (n *Node) IsElement(name string) bool {
	return n.Type == ElementNode && n.Data == name
}

// Attr returns the value of the named attribute, or ""
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAncestor reports whether any ancestor element has one of the given tag names
func (n *Node) HasAncestor(names ...string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, name := range names {
			if p.Data == name {
				return true
			}
		}
	}
	return false
}

// HasClass reports whether the node carries the given CSS class
func (n *Node) HasClass(class string) bool {
	if n.Type != ElementNode {
		return false
	}
	for _, c := range strings.Fields(n.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}
