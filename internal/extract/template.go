package extract

import (
	"strings"

	"github.com/okkonen/kinship/internal/dom"
	"github.com/okkonen/kinship/internal/parse"
)

// templateExtractor recognizes the fixed profile-page structure: a title
// block, a life-events list with Born/Baptized/Christened/Died/Deceased
// prefixes, a "Parents" section with an ordered list of exactly two
// entries, and a "Spouses and children" section with nested lists. It runs
// before the generic strategies and only fills fields that are still
// empty, so generic extraction remains the fallback for documents that do
// not match the template.
type templateExtractor struct{}

func newTemplateExtractor() *templateExtractor { return &templateExtractor{} }

func (e *templateExtractor) Name() string { return "profile-template" }

var lifeEventPrefixes = []string{"born", "baptized", "baptised", "christened", "died", "deceased"}

func (e *templateExtractor) Extract(doc *dom.Node, b *builder) {
	events := findLifeEventsList(doc)
	parentsList := findSectionList(doc, isParentsHeading)
	spousesList := findSectionList(doc, isSpousesHeading)
	if events == nil && parentsList == nil && spousesList == nil {
		return
	}

	e.extractTitle(doc, b)
	if events != nil {
		e.extractLifeEvents(events, b)
	}
	if parentsList != nil {
		e.extractParents(parentsList, b)
	}
	if spousesList != nil {
		e.extractSpouses(spousesList, b)
	}
}

func (e *templateExtractor) extractTitle(doc *dom.Node, b *builder) {
	title := doc.FindFirst(func(n *dom.Node) bool {
		return n.IsElement("h1") || n.IsElement("h2")
	})
	if title == nil {
		return
	}
	text := title.Text()
	if text == "" {
		return
	}
	var ctx *Span
	if start, end, ok := title.TextSpan(); ok {
		ctx = &Span{start, end}
		b.mark("name", spanEv(start, end))
	}

	pn := parse.ParseName(text)
	b.setGivenNames(pn.GivenNames, fragEv(strings.Join(pn.GivenNames, " "), ctx))
	b.setSurname(pn.Surname, fragEv(pn.Surname, ctx))
	b.setMaidenName(pn.MaidenName, fragEv(pn.MaidenName, ctx))
	for _, alias := range pn.Aliases {
		b.addAlias(alias, fragEv(alias, ctx))
	}
}

func (e *templateExtractor) extractLifeEvents(list *dom.Node, b *builder) {
	for _, li := range childElements(list, "li") {
		prefix, rest := splitEventPrefix(li.Text())
		if prefix == "" || rest == "" {
			continue
		}
		ev := nodeEvidence(li)
		switch prefix {
		case "born":
			b.setBirth(parseEventDate(rest), ev)
		case "baptized", "baptised", "christened":
			// A baptism date only approximates the birth
			frag := parseEventDate(rest)
			frag.Approx = true
			b.setBirth(frag, ev)
		case "died", "deceased":
			b.setDeath(parseEventDate(rest), ev)
		}
	}
}

func (e *templateExtractor) extractParents(list *dom.Node, b *builder) {
	entries := childElements(list, "li")
	if len(entries) != 2 {
		return
	}
	b.setFather(entries[0].Text(), nodeEvidence(entries[0]))
	b.setMother(entries[1].Text(), nodeEvidence(entries[1]))
}

func (e *templateExtractor) extractSpouses(list *dom.Node, b *builder) {
	for _, li := range childElements(list, "li") {
		if spouse := ownText(li); spouse != "" {
			b.addSpouse(spouse, fragEv(spouse, liSpan(li)))
		}
		for _, nested := range childElements(li, "ul", "ol") {
			for _, childLi := range childElements(nested, "li") {
				b.addChild(childLi.Text(), nodeEvidence(childLi))
			}
		}
	}
}

// findLifeEventsList returns the first list whose entries carry life-event prefixes
func findLifeEventsList(doc *dom.Node) *dom.Node {
	return doc.FindFirst(func(n *dom.Node) bool {
		if !n.IsElement("ul") && !n.IsElement("ol") {
			return false
		}
		for _, li := range childElements(n, "li") {
			if prefix, _ := splitEventPrefix(li.Text()); prefix != "" {
				return true
			}
		}
		return false
	})
}

// findSectionList locates a section heading and returns the list element
// that follows it
func findSectionList(doc *dom.Node, isHeading func(string) bool) *dom.Node {
	heading := doc.FindFirst(func(n *dom.Node) bool {
		switch n.Data {
		case "h2", "h3", "h4":
			return n.Type == dom.ElementNode && isHeading(n.Text())
		}
		return false
	})
	if heading == nil {
		return nil
	}
	for sib := nextElementSibling(heading); sib != nil; sib = nextElementSibling(sib) {
		if sib.IsElement("ul") || sib.IsElement("ol") {
			return sib
		}
		// Anything substantial before the list means the section has no list
		if sib.Text() != "" {
			return nil
		}
	}
	return nil
}

func isParentsHeading(text string) bool {
	return normalizeLabel(text) == "parents"
}

func isSpousesHeading(text string) bool {
	norm := normalizeLabel(text)
	return strings.Contains(norm, "spouses") && strings.Contains(norm, "children")
}

// splitEventPrefix splits "Born 3 Mar 1902 in Boston" into its life-event
// prefix and the remainder
func splitEventPrefix(text string) (prefix, rest string) {
	fields := strings.SplitN(strings.TrimSpace(text), " ", 2)
	if len(fields) == 0 {
		return "", ""
	}
	head := strings.ToLower(strings.Trim(fields[0], ":.,"))
	for _, p := range lifeEventPrefixes {
		if head == p {
			if len(fields) == 2 {
				return p, strings.TrimSpace(strings.TrimLeft(fields[1], ":. "))
			}
			return p, ""
		}
	}
	return "", ""
}

// ownText returns the node's text excluding any nested list content
func ownText(n *dom.Node) string {
	var parts []string
	var walk func(*dom.Node)
	walk = func(d *dom.Node) {
		if d != n && (d.IsElement("ul") || d.IsElement("ol")) {
			return
		}
		if d.Type == dom.TextNode {
			parts = append(parts, d.Data)
		}
		for _, c := range d.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// nodeEvidence prefers the node's exact text span as provenance
func nodeEvidence(n *dom.Node) evidence {
	if start, end, ok := n.TextSpan(); ok {
		return spanEv(start, end)
	}
	return fragEv(n.Text(), nil)
}

func liSpan(n *dom.Node) *Span {
	if start, end, ok := n.TextSpan(); ok {
		return &Span{start, end}
	}
	return nil
}
