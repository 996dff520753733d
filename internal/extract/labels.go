package extract

import (
	"strings"
	"unicode"

	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/parse"
)

// labelCategory identifies which record field a "Label: value" pair feeds
type labelCategory string

const (
	catMaidenName labelCategory = "maidenName"
	catSurname    labelCategory = "surname"
	catGivenNames labelCategory = "givenNames"
	catFullName   labelCategory = "fullName"
	catSex        labelCategory = "sex"
	catBirth      labelCategory = "birth"
	catDeath      labelCategory = "death"
	catResidence  labelCategory = "residence"
	catFather     labelCategory = "father"
	catMother     labelCategory = "mother"
	catSpouse     labelCategory = "spouse"
	catChild      labelCategory = "child"
	catSibling    labelCategory = "sibling"
	catOccupation labelCategory = "occupation"
	catReligion   labelCategory = "religion"
	catNotes      labelCategory = "notes"
	catSource     labelCategory = "source"
)

// builtinLabels is the static synonym table. Order matters: the first
// category whose synonym is contained in the normalized label wins, so
// "maiden name" must be tried before "name" and "surname" before "name".
var builtinLabels = []struct {
	cat      labelCategory
	synonyms []string
}{
	{catMaidenName, []string{"maiden name", "maiden", "nee", "birth name"}},
	{catSurname, []string{"surname", "last name", "family name"}},
	{catGivenNames, []string{"given names", "given name", "first name", "forename", "christian name"}},
	{catFullName, []string{"full name", "name"}},
	{catSex, []string{"sex", "gender"}},
	{catBirth, []string{"date of birth", "born", "birth"}},
	{catDeath, []string{"date of death", "died", "death", "deceased", "passed away"}},
	{catResidence, []string{"residence", "resided", "lived in", "lives in", "address", "abode"}},
	{catFather, []string{"father"}},
	{catMother, []string{"mother"}},
	{catSpouse, []string{"spouse", "husband", "wife", "married"}},
	{catChild, []string{"children", "child", "issue", "offspring"}},
	{catSibling, []string{"siblings", "sibling", "brother", "sister"}},
	{catOccupation, []string{"occupation", "profession", "trade", "employment"}},
	{catReligion, []string{"religion", "denomination", "faith"}},
	{catNotes, []string{"notes", "note", "comments", "remarks"}},
	{catSource, []string{"sources", "source", "citation", "reference"}},
}

// extraCategories maps caller-supplied category names from configuration
// onto built-in categories
var extraCategories = map[string]labelCategory{
	"profession": catOccupation,
	"place":      catResidence,
}

type labelEntry struct {
	cat      labelCategory
	synonyms []string // Pre-normalized
}

// labelMatcher matches free-text labels against the synonym dictionary.
// Matching is accent- and case-insensitive substring containment after
// normalization.
type labelMatcher struct {
	entries []labelEntry
}

// newLabelMatcher builds the matcher from the built-in table, merged with
// caller-supplied extra synonyms. Extras for a known category are tried
// before the built-ins of that category's position is reached, by being
// folded into the same entry.
func newLabelMatcher(extra []model.LabelSynonym) *labelMatcher {
	byCat := make(map[labelCategory][]string)
	for _, syn := range extra {
		cat, ok := extraCategories[strings.ToLower(syn.Category)]
		if !ok {
			// Allow addressing built-in categories directly
			cat = labelCategory(syn.Category)
			if !knownCategory(cat) {
				continue
			}
		}
		phrases := append([]string{syn.Label}, syn.Aliases...)
		for _, p := range phrases {
			if n := normalizeLabel(p); n != "" {
				byCat[cat] = append(byCat[cat], n)
			}
		}
	}

	m := &labelMatcher{}
	for _, row := range builtinLabels {
		entry := labelEntry{cat: row.cat}
		entry.synonyms = append(entry.synonyms, byCat[row.cat]...)
		for _, s := range row.synonyms {
			entry.synonyms = append(entry.synonyms, normalizeLabel(s))
		}
		m.entries = append(m.entries, entry)
	}
	return m
}

func knownCategory(cat labelCategory) bool {
	for _, row := range builtinLabels {
		if row.cat == cat {
			return true
		}
	}
	return false
}

// categoryFor resolves a raw label to its field category
func (m *labelMatcher) categoryFor(label string) (labelCategory, bool) {
	norm := normalizeLabel(label)
	if norm == "" {
		return "", false
	}
	for _, entry := range m.entries {
		for _, syn := range entry.synonyms {
			if strings.Contains(norm, syn) {
				return entry.cat, true
			}
		}
	}
	return "", false
}

// normalizeLabel strips diacritics, lowercases and collapses runs of
// non-alphanumeric characters to single spaces
func normalizeLabel(s string) string {
	folded := parse.Fold(s)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

// mapSex resolves a sex/gender value to the M/F/U enum via keyword sets
func mapSex(value string) model.Sex {
	for _, tok := range parse.Tokens(value) {
		switch tok {
		case "m", "male", "man", "boy":
			return model.SexMale
		case "f", "female", "woman", "girl":
			return model.SexFemale
		}
	}
	return model.SexUnknown
}
