package extract

import (
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// evidence tells the builder where a value came from: either an exact span
// from the document model, or a literal fragment plus an optional search
// window for the provenance resolver.
type evidence struct {
	span *Span  // exact source range, when known
	text string // literal fragment to locate otherwise
	ctx  *Span  // bounding window for the fragment search
}

func spanEv(start, end int) evidence         { return evidence{span: &Span{start, end}} }
func fragEv(text string, ctx *Span) evidence { return evidence{text: text, ctx: ctx} }

// builder gives extractors guarded write access to the record under
// construction: scalar fields obey first-writer-wins, list fields
// accumulate with exact-string de-duplication. Every successful write
// goes through the provenance resolver.
type builder struct {
	rec *model.Record
	res *Resolver
}

func newBuilder(rec *model.Record, html string) *builder {
	return &builder{rec: rec, res: NewResolver(html, rec)}
}

func (b *builder) mark(field string, ev evidence) {
	if ev.span != nil {
		b.res.Direct(field, ev.span.Start, ev.span.End)
		return
	}
	b.res.Locate(field, ev.text, ev.ctx)
}

func (b *builder) setGivenNames(names []string, ev evidence) {
	if len(b.rec.GivenNames) > 0 || len(names) == 0 {
		return
	}
	b.rec.GivenNames = names
	b.mark("givenNames", ev)
}

func (b *builder) setSurname(v string, ev evidence) {
	if b.rec.Surname != "" || v == "" {
		return
	}
	b.rec.Surname = v
	b.mark("surname", ev)
}

func (b *builder) setMaidenName(v string, ev evidence) {
	if b.rec.MaidenName != "" || v == "" {
		return
	}
	b.rec.MaidenName = v
	b.mark("maidenName", ev)
}

func (b *builder) setSex(v model.Sex, ev evidence) {
	if b.rec.Sex != "" || v == "" {
		return
	}
	b.rec.Sex = v
	b.mark("sex", ev)
}

func (b *builder) setBirth(frag model.DateFragment, ev evidence) {
	if b.rec.Birth != nil {
		return
	}
	f := frag
	b.rec.Birth = &f
	b.mark("birth", ev)
}

func (b *builder) setDeath(frag model.DateFragment, ev evidence) {
	if b.rec.Death != nil {
		return
	}
	f := frag
	b.rec.Death = &f
	b.mark("death", ev)
}

func (b *builder) setFather(v string, ev evidence) {
	if b.rec.Parents.Father != "" || v == "" {
		return
	}
	b.rec.Parents.Father = v
	b.mark("parents.father", ev)
}

func (b *builder) setMother(v string, ev evidence) {
	if b.rec.Parents.Mother != "" || v == "" {
		return
	}
	b.rec.Parents.Mother = v
	b.mark("parents.mother", ev)
}

func (b *builder) setOccupation(v string, ev evidence) {
	if b.rec.Occupation != "" || v == "" {
		return
	}
	b.rec.Occupation = v
	b.mark("occupation", ev)
}

func (b *builder) setReligion(v string, ev evidence) {
	if b.rec.Religion != "" || v == "" {
		return
	}
	b.rec.Religion = v
	b.mark("religion", ev)
}

func (b *builder) setNotes(v string, ev evidence) {
	if b.rec.Notes != "" || v == "" {
		return
	}
	b.rec.Notes = v
	b.mark("notes", ev)
}

func (b *builder) addAlias(v string, ev evidence) {
	b.addToList(&b.rec.Aliases, "aliases", v, ev)
}

func (b *builder) addSpouse(v string, ev evidence) {
	b.addToList(&b.rec.Spouses, "spouses", v, ev)
}

func (b *builder) addChild(v string, ev evidence) {
	b.addToList(&b.rec.Children, "children", v, ev)
}

func (b *builder) addSibling(v string, ev evidence) {
	b.addToList(&b.rec.Siblings, "siblings", v, ev)
}

func (b *builder) addSource(v string, ev evidence) {
	b.addToList(&b.rec.Sources, "sources", v, ev)
}

func (b *builder) addToList(list *[]string, field, v string, ev evidence) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	before := len(*list)
	*list = model.AddUnique(*list, v)
	if len(*list) > before {
		b.mark(field, ev)
	}
}

func (b *builder) addResidence(res model.Residence, ev evidence) {
	if res.Raw == "" && res.Place == "" && res.Year == 0 {
		return
	}
	for _, existing := range b.rec.Residences {
		if existing == res {
			return
		}
	}
	b.rec.Residences = append(b.rec.Residences, res)
	b.mark("residences", ev)
}
