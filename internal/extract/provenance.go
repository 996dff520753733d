package extract

import (
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// Span is a half-open byte range into the source document
type Span struct {
	Start int
	End   int
}

// Resolver maps (field, evidence) pairs to validated byte ranges in the
// original HTML. Resolution failures are silent omissions, never errors:
// a field assignment must not fail because its provenance could not be
// pinned down.
type Resolver struct {
	html string
	rec  *model.Record
}

// NewResolver creates a resolver appending to the given record
func NewResolver(html string, rec *model.Record) *Resolver {
	return &Resolver{html: html, rec: rec}
}

// Direct records provenance for an exact range taken from the document
// model. The range is clamped; zero-length or inverted ranges are skipped.
func (r *Resolver) Direct(field string, start, end int) {
	start = clamp(start, 0, len(r.html))
	end = clamp(end, 0, len(r.html))
	if start >= end {
		return
	}
	r.rec.Provenance = append(r.rec.Provenance, model.ProvenanceEntry{
		Field: field,
		Text:  r.html[start:end],
		Start: start,
		End:   end,
	})
}

// Locate records provenance for a literal text fragment. When a context
// window is given the fragment is searched there first, to disambiguate
// repeated substrings; if the windowed search fails, the first
// document-wide occurrence is used. A fragment not found at all is skipped.
func (r *Resolver) Locate(field, fragment string, ctx *Span) {
	if fragment == "" {
		return
	}
	idx := -1
	if ctx != nil {
		cs := clamp(ctx.Start, 0, len(r.html))
		ce := clamp(ctx.End, 0, len(r.html))
		if cs < ce {
			if i := strings.Index(r.html[cs:ce], fragment); i >= 0 {
				idx = cs + i
			}
		}
	}
	if idx < 0 {
		idx = strings.Index(r.html, fragment)
	}
	if idx < 0 {
		return
	}
	r.Direct(field, idx, idx+len(fragment))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
