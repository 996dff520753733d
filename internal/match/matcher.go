// Package match ranks previously known individuals by similarity to a
// newly extracted record. Matching is pure and never raises: candidates
// with no usable similarity components are excluded rather than flagged.
package match

import (
	"sort"
	"strings"

	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/parse"
)

// Component weights of the similarity score
const (
	weightName      = 0.6
	weightBirthYear = 0.2
	weightDeathYear = 0.1
	weightParents   = 0.1
)

// Matcher computes match candidates under the configured thresholds
type Matcher struct {
	suggestionThreshold float64
	autoLinkThreshold   float64
	maxSuggestions      int
}

// NewMatcher creates a matcher; zero-valued policy fields fall back to the
// defaults (0.45 / 0.8 / 5).
func NewMatcher(cfg model.MatchConfig) *Matcher {
	m := &Matcher{
		suggestionThreshold: cfg.SuggestionThreshold,
		autoLinkThreshold:   cfg.AutoLinkThreshold,
		maxSuggestions:      cfg.MaxSuggestions,
	}
	if m.suggestionThreshold == 0 {
		m.suggestionThreshold = 0.45
	}
	if m.autoLinkThreshold == 0 {
		m.autoLinkThreshold = 0.8
	}
	if m.maxSuggestions == 0 {
		m.maxSuggestions = 5
	}
	return m
}

// Rank scores every individual in the snapshot against the record and
// returns candidates sorted by descending score. Candidates with zero
// usable components are excluded. The snapshot is never mutated, so
// concurrent ranking against the same snapshot is safe.
func (m *Matcher) Rank(rec *model.Record, snap *model.Snapshot) []model.MatchCandidate {
	if rec == nil || snap == nil {
		return nil
	}
	var out []model.MatchCandidate
	for i := range snap.Individuals {
		ind := &snap.Individuals[i]
		latest := snap.LatestRecordFor(ind.ID)
		score, usable := m.scoreCandidate(rec, ind, latest)
		if !usable {
			continue
		}
		cand := model.MatchCandidate{
			IndividualID: ind.ID,
			Name:         ind.Name,
			Score:        score,
		}
		if latest != nil {
			cand.LatestRecordID = latest.ID
		}
		out = append(out, cand)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].IndividualID < out[j].IndividualID
	})
	return out
}

// Suggest returns the ranked candidates at or above the suggestion
// threshold, capped at the configured maximum
func (m *Matcher) Suggest(rec *model.Record, snap *model.Snapshot) []model.MatchCandidate {
	ranked := m.Rank(rec, snap)
	var out []model.MatchCandidate
	for _, c := range ranked {
		if c.Score < m.suggestionThreshold {
			break
		}
		out = append(out, c)
		if len(out) == m.maxSuggestions {
			break
		}
	}
	return out
}

// AutoLinkEligible reports whether a score qualifies for automatic linking
// without human confirmation. The threshold itself is eligible.
func (m *Matcher) AutoLinkEligible(score float64) bool {
	return score >= m.autoLinkThreshold
}

// scoreCandidate computes the weighted average of the components that are
// present on both sides. usable is false when no component could be
// compared at all.
func (m *Matcher) scoreCandidate(rec *model.Record, ind *model.StoredIndividual, latest *model.StoredRecord) (score float64, usable bool) {
	var sum, weights float64

	newNames := nameTokens(rec)
	candNames := candidateNameTokens(ind)
	if len(newNames) > 0 && len(candNames) > 0 {
		sum += weightName * jaccard(newNames, candNames)
		weights += weightName
	}

	if s, ok := yearComponent(recYear(rec.Birth), candidateYear(ind, latest, birthOf)); ok {
		sum += weightBirthYear * s
		weights += weightBirthYear
	}
	if s, ok := yearComponent(recYear(rec.Death), candidateYear(ind, latest, deathOf)); ok {
		sum += weightDeathYear * s
		weights += weightDeathYear
	}

	if s, ok := parentComponent(rec, ind, latest); ok {
		sum += weightParents * s
		weights += weightParents
	}

	if weights == 0 {
		return 0, false
	}
	final := sum / weights
	if final < 0 {
		final = 0
	}
	if final > 1 {
		final = 1
	}
	return final, true
}

// nameTokens folds every name-carrying field of a record into a token set
func nameTokens(rec *model.Record) map[string]bool {
	parts := append([]string{}, rec.GivenNames...)
	parts = append(parts, rec.Surname, rec.MaidenName)
	parts = append(parts, rec.Aliases...)
	return parse.TokenSet(strings.Join(parts, " "))
}

// candidateNameTokens draws from the individual's profile plus its display
// name, so individuals with sparse profiles remain comparable
func candidateNameTokens(ind *model.StoredIndividual) map[string]bool {
	tokens := nameTokens(&ind.Profile)
	for tok := range parse.TokenSet(ind.Name) {
		tokens[tok] = true
	}
	return tokens
}

// jaccard is the intersection-over-union of two token sets
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if b[tok] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func recYear(d *model.DateFragment) int {
	if d == nil {
		return 0
	}
	return d.Year
}

func birthOf(r *model.Record) *model.DateFragment { return r.Birth }
func deathOf(r *model.Record) *model.DateFragment { return r.Death }

// candidateYear reads the event year from the individual's profile,
// falling back to its most recent linked record
func candidateYear(ind *model.StoredIndividual, latest *model.StoredRecord, event func(*model.Record) *model.DateFragment) int {
	if y := recYear(event(&ind.Profile)); y != 0 {
		return y
	}
	if latest != nil {
		return recYear(event(&latest.Record))
	}
	return 0
}

// yearComponent grades by absolute year distance; omitted when either side
// lacks a year
func yearComponent(a, b int) (float64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1.0, true
	case diff == 1:
		return 0.75, true
	case diff == 2:
		return 0.5, true
	case diff <= 5:
		return 0.25, true
	default:
		return 0, true
	}
}

// parentComponent averages the father and mother token-overlap scores,
// using the individual's profile parents with fallback to its latest
// linked record. Omitted entirely when neither parent is comparable.
func parentComponent(rec *model.Record, ind *model.StoredIndividual, latest *model.StoredRecord) (float64, bool) {
	candParents := ind.Profile.Parents
	if latest != nil {
		if candParents.Father == "" {
			candParents.Father = latest.Record.Parents.Father
		}
		if candParents.Mother == "" {
			candParents.Mother = latest.Record.Parents.Mother
		}
	}

	var sum float64
	count := 0
	if s, ok := nameOverlap(rec.Parents.Father, candParents.Father); ok {
		sum += s
		count++
	}
	if s, ok := nameOverlap(rec.Parents.Mother, candParents.Mother); ok {
		sum += s
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// nameOverlap is the single-name-vs-single-name token Jaccard score
func nameOverlap(a, b string) (float64, bool) {
	ta := parse.TokenSet(a)
	tb := parse.TokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0, false
	}
	return jaccard(ta, tb), true
}
