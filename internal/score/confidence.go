// Package score assigns per-field confidence values to extracted records.
// Scoring is a pure function over the record: it never raises, and fields
// that cannot be scored are simply absent from the result.
package score

import (
	"regexp"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// lifespanNameRe recognizes provenance text produced by the
// heading-with-lifespan pattern, the strongest name signal
var lifespanNameRe = regexp.MustCompile(`\(\s*\d{4}\s*[–—-]\s*\d{4}\s*\)`)

// Confidence computes the deterministic heuristic score table for a record
func Confidence(rec *model.Record) map[string]float64 {
	scores := make(map[string]float64)
	if rec == nil {
		return scores
	}

	fromHeading := false
	for _, p := range rec.Provenance {
		if p.Field == "name" && lifespanNameRe.MatchString(p.Text) {
			fromHeading = true
			break
		}
	}

	nameScore := func(field string) float64 {
		switch {
		case fromHeading:
			return 0.9
		case hasProvenance(rec, field):
			return 0.8
		default:
			return 0.6
		}
	}

	if len(rec.GivenNames) > 0 {
		scores["givenNames"] = nameScore("givenNames")
	}
	if rec.Surname != "" {
		scores["surname"] = nameScore("surname")
	}
	if rec.MaidenName != "" {
		scores["maidenName"] = maidenScore(rec)
	}

	if s, ok := dateScore(rec.Birth); ok {
		scores["birth.date"] = s
	}
	if s, ok := dateScore(rec.Death); ok {
		scores["death.date"] = s
	}

	if rec.Parents.Father != "" {
		scores["parents.father"] = parentScore(rec, "parents.father")
	}
	if rec.Parents.Mother != "" {
		scores["parents.mother"] = parentScore(rec, "parents.mother")
	}

	for field, s := range scores {
		scores[field] = clamp01(s)
	}
	return scores
}

// maidenScore prefers an explicit "née <value>" occurrence, penalizes the
// bracket-enclosed editorial-insertion convention, and defaults otherwise
func maidenScore(rec *model.Record) float64 {
	html := strings.ToLower(rec.SourceHTML)
	value := strings.ToLower(rec.MaidenName)
	if strings.Contains(html, "née "+value) || strings.Contains(html, "nee "+value) {
		return 0.95
	}
	if strings.Contains(html, "["+value+"]") {
		return 0.5
	}
	return 0.7
}

// dateScore grades by precision, reduced when marked approximate.
// ok is false when the fragment carries no date components.
func dateScore(d *model.DateFragment) (float64, bool) {
	if d == nil || !d.HasDate() {
		return 0, false
	}
	var s float64
	switch {
	case d.Day != 0:
		s = 0.95
	case d.Month != 0:
		s = 0.85
	default:
		s = 0.7
	}
	if d.Approx {
		s -= 0.1
	}
	return s, true
}

func parentScore(rec *model.Record, field string) float64 {
	if hasProvenance(rec, field) {
		return 0.9
	}
	return 0.6
}

func hasProvenance(rec *model.Record, field string) bool {
	for _, p := range rec.Provenance {
		if p.Field == field {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
