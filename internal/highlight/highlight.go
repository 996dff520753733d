// Package highlight is the reference renderer glue for provenance spans:
// it wraps each span of the source HTML in a marker element carrying the
// field name, for visual cross-referencing. The core only guarantees the
// (field, start, end) triples; callers with their own renderers can ignore
// this package entirely.
package highlight

import (
	"html"
	"sort"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// Annotate wraps every provenance span of the record in
// <mark data-field="..."> markers. Spans are applied in document order;
// a span overlapping an already-annotated region is skipped, since nested
// markers would corrupt the source byte accounting the spans refer to.
func Annotate(src string, entries []model.ProvenanceEntry) string {
	spans := make([]model.ProvenanceEntry, 0, len(entries))
	for _, e := range entries {
		if e.Start < 0 || e.End > len(src) || e.Start >= e.End {
			continue
		}
		spans = append(spans, e)
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End > spans[j].End
	})

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos {
			continue
		}
		b.WriteString(src[pos:s.Start])
		b.WriteString(`<mark data-field="`)
		b.WriteString(html.EscapeString(s.Field))
		b.WriteString(`">`)
		b.WriteString(src[s.Start:s.End])
		b.WriteString(`</mark>`)
		pos = s.End
	}
	b.WriteString(src[pos:])
	return b.String()
}
