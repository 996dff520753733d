package extract

import (
	"time"

	"github.com/okkonen/kinship/internal/dom"
	"github.com/okkonen/kinship/internal/model"
)

// Extractor is one field-extraction strategy. Extractors run in a fixed
// order; each gets read access to the record-so-far through the builder's
// guarded setters and can only write fields that are still unset (list
// fields accumulate with de-duplication).
type Extractor interface {
	Name() string
	Extract(doc *dom.Node, b *builder)
}

// Runner executes the ordered extractor strategies over a document
type Runner struct {
	extractors []Extractor
}

// NewRunner builds the standard strategy order: the specialized profile
// template first, then the heading pattern, then generic label-value
// scanning as the fallback. Extra label synonyms from configuration are
// merged into the label dictionary.
func NewRunner(extra []model.LabelSynonym) *Runner {
	return &Runner{
		extractors: []Extractor{
			newTemplateExtractor(),
			newHeadingExtractor(),
			newLabelValueExtractor(newLabelMatcher(extra)),
		},
	}
}

// Extract turns an HTML document into a skeleton record. Extraction never
// fails: malformed or unrecognized markup leaves fields unset and the
// provenance list partial.
func (r *Runner) Extract(htmlSrc, sourceURL string) *model.Record {
	rec := &model.Record{
		SourceHTML:  htmlSrc,
		SourceURL:   sourceURL,
		ExtractedAt: time.Now().UTC(),
	}
	doc := dom.Parse(htmlSrc)
	b := newBuilder(rec, htmlSrc)
	for _, ex := range r.extractors {
		ex.Extract(doc, b)
	}
	return rec
}
