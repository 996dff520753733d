package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okkonen/kinship/internal/dom"
	"github.com/okkonen/kinship/internal/model"
)

var (
	lifespanRe      = regexp.MustCompile(`^\s*(.+?)\s*\(\s*(\d{4})\s*[–—-]\s*(\d{4})\s*\)`)
	headingMaidenRe = regexp.MustCompile(`(?i)\s*\bn[ée]e\.?\s+(\S+)`)
)

// headingExtractor looks for the "Name (YYYY–YYYY)" pattern in headings
// and, failing those, the first paragraph. The first match wins.
type headingExtractor struct{}

func newHeadingExtractor() *headingExtractor { return &headingExtractor{} }

func (e *headingExtractor) Name() string { return "heading" }

func (e *headingExtractor) Extract(doc *dom.Node, b *builder) {
	candidates := doc.FindAll(func(n *dom.Node) bool {
		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return n.Type == dom.ElementNode
		}
		return false
	})
	if first := doc.FindFirst(func(n *dom.Node) bool { return n.IsElement("p") }); first != nil {
		candidates = append(candidates, first)
	}

	for _, node := range candidates {
		if e.extractFrom(node, b) {
			return
		}
	}
}

func (e *headingExtractor) extractFrom(node *dom.Node, b *builder) bool {
	m := lifespanRe.FindStringSubmatch(node.Text())
	if m == nil {
		return false
	}

	start, end, spanOK := node.TextSpan()
	var ctx *Span
	if spanOK {
		ctx = &Span{start, end}
	}

	hadGiven := len(b.rec.GivenNames) > 0
	hadSurname := b.rec.Surname != ""

	namePart := m[1]
	if nm := headingMaidenRe.FindStringSubmatch(namePart); nm != nil {
		b.setMaidenName(strings.Trim(nm[1], " .,"), fragEv(nm[1], ctx))
		namePart = headingMaidenRe.ReplaceAllString(namePart, " ")
	}

	tokens := strings.Fields(namePart)
	switch len(tokens) {
	case 0:
	case 1:
		b.setGivenNames(tokens, fragEv(tokens[0], ctx))
	default:
		b.setGivenNames(tokens[:len(tokens)-1], fragEv(strings.Join(tokens[:len(tokens)-1], " "), ctx))
		b.setSurname(tokens[len(tokens)-1], fragEv(tokens[len(tokens)-1], ctx))
	}

	birthYear, _ := strconv.Atoi(m[2])
	deathYear, _ := strconv.Atoi(m[3])
	b.setBirth(model.DateFragment{Raw: m[2], Year: birthYear}, fragEv(m[2], ctx))
	b.setDeath(model.DateFragment{Raw: m[3], Year: deathYear}, fragEv(m[3], ctx))

	// The full heading span anchors the name provenance, but only when
	// the heading is where the name actually came from. A record already
	// named by an earlier strategy must not pick up the marker that the
	// scorer reads as heading-derived.
	namedHere := (!hadGiven && len(b.rec.GivenNames) > 0) || (!hadSurname && b.rec.Surname != "")
	if spanOK && namedHere {
		b.mark("name", spanEv(start, end))
	}
	return true
}
