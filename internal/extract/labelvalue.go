package extract

import (
	"regexp"
	"strings"

	"github.com/okkonen/kinship/internal/dom"
	"github.com/okkonen/kinship/internal/parse"
)

// labelLineRe matches one "Label: value" segment per line. The label is
// kept short so prose containing a stray colon does not qualify.
var labelLineRe = regexp.MustCompile(`^\s*([^:]{1,60}?)\s*:\s*(.+?)\s*$`)

// labelValueExtractor is the generic fallback strategy: colon-delimited
// text runs, table rows and definition-list pairs, matched against the
// label synonym dictionary.
type labelValueExtractor struct {
	labels *labelMatcher
}

func newLabelValueExtractor(labels *labelMatcher) *labelValueExtractor {
	return &labelValueExtractor{labels: labels}
}

func (e *labelValueExtractor) Name() string { return "label-value" }

func (e *labelValueExtractor) Extract(doc *dom.Node, b *builder) {
	e.extractTextRuns(doc, b)
	e.extractTableRows(doc, b)
	e.extractDefinitionLists(doc, b)
}

// extractTextRuns scans every text node for "Label: value" lines
func (e *labelValueExtractor) extractTextRuns(doc *dom.Node, b *builder) {
	for _, tn := range doc.FindAll(func(n *dom.Node) bool {
		return n.Type == dom.TextNode && !n.HasAncestor("script", "style", "noscript", "iframe")
	}) {
		ctx := &Span{tn.Start, tn.End}
		for _, line := range strings.Split(tn.Data, "\n") {
			m := labelLineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			e.assign(b, m[1], m[2], ctx)
		}
	}
}

// extractTableRows reads table rows as label/value pairs: first cell is
// the label, the remaining cells joined form the value
func (e *labelValueExtractor) extractTableRows(doc *dom.Node, b *builder) {
	for _, tr := range doc.FindAll(func(n *dom.Node) bool { return n.IsElement("tr") }) {
		cells := childElements(tr, "td", "th")
		if len(cells) < 2 {
			continue
		}
		var values []string
		for _, c := range cells[1:] {
			if v := c.Text(); v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		e.assign(b, cells[0].Text(), strings.Join(values, " "), &Span{tr.Start, tr.End})
	}
}

// extractDefinitionLists pairs each <dt> with the <dd> elements that follow it
func (e *labelValueExtractor) extractDefinitionLists(doc *dom.Node, b *builder) {
	for _, dl := range doc.FindAll(func(n *dom.Node) bool { return n.IsElement("dl") }) {
		label := ""
		labelStart := dl.Start
		for _, child := range dl.Children {
			switch {
			case child.IsElement("dt"):
				label = child.Text()
				labelStart = child.Start
			case child.IsElement("dd") && label != "":
				e.assign(b, label, child.Text(), &Span{labelStart, child.End})
			}
		}
	}
}

// assign routes one label/value pair to the record via the synonym
// dictionary. ctx bounds the provenance search to the markup that
// produced the pair.
func (e *labelValueExtractor) assign(b *builder, label, value string, ctx *Span) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	cat, ok := e.labels.categoryFor(label)
	if !ok {
		return
	}
	ev := fragEv(value, ctx)

	switch cat {
	case catMaidenName:
		b.setMaidenName(value, ev)
	case catSurname:
		b.setSurname(value, ev)
	case catGivenNames:
		b.setGivenNames(strings.Fields(value), ev)
	case catFullName:
		pn := parse.ParseName(value)
		b.setGivenNames(pn.GivenNames, ev)
		b.setSurname(pn.Surname, ev)
		b.setMaidenName(pn.MaidenName, ev)
		for _, alias := range pn.Aliases {
			b.addAlias(alias, fragEv(alias, ctx))
		}
	case catSex:
		b.setSex(mapSex(value), ev)
	case catBirth:
		b.setBirth(parseEventDate(value), ev)
	case catDeath:
		b.setDeath(parseEventDate(value), ev)
	case catResidence:
		for _, entry := range splitList(value) {
			b.addResidence(parseResidence(entry), fragEv(entry, ctx))
		}
	case catFather:
		b.setFather(value, ev)
	case catMother:
		b.setMother(value, ev)
	case catSpouse:
		for _, entry := range splitList(value) {
			b.addSpouse(entry, fragEv(entry, ctx))
		}
	case catChild:
		for _, entry := range splitList(value) {
			b.addChild(entry, fragEv(entry, ctx))
		}
	case catSibling:
		for _, entry := range splitList(value) {
			b.addSibling(entry, fragEv(entry, ctx))
		}
	case catOccupation:
		b.setOccupation(value, ev)
	case catReligion:
		b.setReligion(value, ev)
	case catNotes:
		b.setNotes(value, ev)
	case catSource:
		for _, entry := range splitList(value) {
			b.addSource(entry, fragEv(entry, ctx))
		}
	}
}

// childElements returns the direct element children matching any of the
// given tag names
func childElements(n *dom.Node, names ...string) []*dom.Node {
	var out []*dom.Node
	for _, c := range n.Children {
		for _, name := range names {
			if c.IsElement(name) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
