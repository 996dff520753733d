package match

import (
	"math"
	"testing"
	"time"

	"github.com/okkonen/kinship/internal/model"
)

func defaultMatcher() *Matcher {
	return NewMatcher(model.MatchConfig{})
}

func person(id, name string, birthYear int) model.StoredIndividual {
	ind := model.StoredIndividual{ID: id, Name: name}
	if birthYear != 0 {
		ind.Profile.Birth = &model.DateFragment{Year: birthYear}
	}
	return ind
}

func TestMatcher_PerfectMatch(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		Birth:      &model.DateFragment{Year: 1840},
	}
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{person("i1", "John Smith", 1840)}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 1 {
		t.Fatalf("Expected one candidate, got %d", len(got))
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("Expected perfect score 1.0, got %v", got[0].Score)
	}
}

func TestMatcher_BirthYearMonotonicity(t *testing.T) {
	// Identical names, birth-year distance 0 vs 5: the exact-year
	// candidate must score strictly higher
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		Birth:      &model.DateFragment{Year: 1840},
	}
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{
		person("far", "John Smith", 1845),
		person("exact", "John Smith", 1840),
	}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 2 {
		t.Fatalf("Expected two candidates, got %d", len(got))
	}
	if got[0].IndividualID != "exact" {
		t.Errorf("Expected exact-year candidate first, got %s", got[0].IndividualID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("Expected strict ordering, got %v vs %v", got[0].Score, got[1].Score)
	}
}

func TestMatcher_YearDistanceGrades(t *testing.T) {
	tests := []struct {
		a, b int
		want float64
		ok   bool
	}{
		{1840, 1840, 1.0, true},
		{1840, 1841, 0.75, true},
		{1840, 1842, 0.5, true},
		{1840, 1845, 0.25, true},
		{1840, 1846, 0, true},
		{0, 1840, 0, false},
		{1840, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := yearComponent(tt.a, tt.b)
		if ok != tt.ok || got != tt.want {
			t.Errorf("yearComponent(%d,%d) = %v,%v; want %v,%v", tt.a, tt.b, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatcher_ZeroComponentCandidateExcluded(t *testing.T) {
	rec := &model.Record{Birth: &model.DateFragment{Year: 1840}}
	// Candidate has a name but no years; the record has years but no
	// name, so no component is comparable
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{person("i1", "John Smith", 0)}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 0 {
		t.Errorf("Expected no candidates, got %v", got)
	}
}

func TestMatcher_DiacriticInsensitiveNames(t *testing.T) {
	rec := &model.Record{GivenNames: []string{"Renée"}, Surname: "Müller"}
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{person("i1", "Renee Muller", 0)}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 1 {
		t.Fatalf("Expected one candidate, got %d", len(got))
	}
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("Expected folded names to match perfectly, got %v", got[0].Score)
	}
}

func TestMatcher_CandidateYearFallsBackToLatestRecord(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		Birth:      &model.DateFragment{Year: 1840},
	}
	snap := &model.Snapshot{
		Individuals: []model.StoredIndividual{person("i1", "John Smith", 0)},
		Records: []model.StoredRecord{
			{
				ID:           "r-old",
				IndividualID: "i1",
				Record:       model.Record{Birth: &model.DateFragment{Year: 1843}},
				CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				ID:           "r-new",
				IndividualID: "i1",
				Record:       model.Record{Birth: &model.DateFragment{Year: 1840}},
				CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 1 {
		t.Fatalf("Expected one candidate, got %d", len(got))
	}
	// Name 1.0 and birth-year 1.0 from the most recent record
	if math.Abs(got[0].Score-1.0) > 1e-9 {
		t.Errorf("Expected fallback to the latest record's year, got %v", got[0].Score)
	}
	if got[0].LatestRecordID != "r-new" {
		t.Errorf("Expected latest record r-new, got %s", got[0].LatestRecordID)
	}
}

func TestMatcher_ParentComponent(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		Parents:    model.Parents{Father: "Thomas Smith", Mother: "Ruth Smith"},
	}
	with := person("with", "John Smith", 0)
	with.Profile.Parents = model.Parents{Father: "Thomas Smith", Mother: "Ruth Smith"}
	wrong := person("wrong", "John Smith", 0)
	wrong.Profile.Parents = model.Parents{Father: "Karl Berg", Mother: "Ida Berg"}
	without := person("without", "John Smith", 0)
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{wrong, without, with}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 3 {
		t.Fatalf("Expected three candidates, got %d", len(got))
	}
	if got[0].IndividualID != "with" {
		t.Errorf("Expected parent-matching candidate first, got %s", got[0].IndividualID)
	}
	// The parent-less candidate scores on name alone and outranks the
	// candidate whose parents contradict the record
	if got[1].IndividualID != "without" || math.Abs(got[1].Score-1.0) > 1e-9 {
		t.Errorf("Expected name-only candidate at 1.0, got %v", got[1])
	}
	if got[2].IndividualID != "wrong" || got[2].Score >= got[1].Score {
		t.Errorf("Expected contradicting parents to lower the score, got %v", got[2])
	}
}

func TestMatcher_SuggestThreshold(t *testing.T) {
	m := defaultMatcher()
	rec := &model.Record{
		GivenNames: []string{"Johan"},
		Surname:    "Lind",
	}
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{
		person("close", "Johan Lind", 0),          // Jaccard 1.0
		person("partial", "Johan Berg", 0),        // Jaccard 1/3
		person("unrelated", "Wilhelmina Kask", 0), // Jaccard 0
	}}

	got := m.Suggest(rec, snap)
	if len(got) != 1 || got[0].IndividualID != "close" {
		t.Errorf("Expected only the close candidate above 0.45, got %v", got)
	}
}

func TestMatcher_SuggestCap(t *testing.T) {
	m := defaultMatcher()
	rec := &model.Record{GivenNames: []string{"Johan"}, Surname: "Lind"}
	var inds []model.StoredIndividual
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		inds = append(inds, person(id, "Johan Lind", 0))
	}
	snap := &model.Snapshot{Individuals: inds}

	got := m.Suggest(rec, snap)
	if len(got) != 5 {
		t.Errorf("Expected suggestions capped at 5, got %d", len(got))
	}
}

func TestMatcher_TiesBreakByIndividualID(t *testing.T) {
	rec := &model.Record{GivenNames: []string{"Johan"}, Surname: "Lind"}
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{
		person("z", "Johan Lind", 0),
		person("a", "Johan Lind", 0),
	}}

	got := defaultMatcher().Rank(rec, snap)
	if len(got) != 2 || got[0].IndividualID != "a" || got[1].IndividualID != "z" {
		t.Errorf("Expected deterministic id ordering on ties, got %v", got)
	}
}

func TestMatcher_AutoLinkEligible(t *testing.T) {
	m := defaultMatcher()
	if !m.AutoLinkEligible(0.8) {
		t.Error("Expected score exactly 0.8 to be eligible")
	}
	if !m.AutoLinkEligible(0.95) {
		t.Error("Expected 0.95 to be eligible")
	}
	if m.AutoLinkEligible(0.79) {
		t.Error("Did not expect 0.79 to be eligible")
	}
}

func TestMatcher_ScoreBelowSuggestionExcluded(t *testing.T) {
	// 0.44 is below the 0.45 suggestion threshold
	m := defaultMatcher()
	rec := &model.Record{
		GivenNames: []string{"Johan", "Erik", "Gustav", "Axel"},
		Surname:    "Lind",
	}
	// 4 shared tokens of 10 union: jaccard = 0.4
	snap := &model.Snapshot{Individuals: []model.StoredIndividual{
		person("i1", "Johan Erik Gustav Axel Berg Holm Falk Strand Viik", 0),
	}}

	ranked := m.Rank(rec, snap)
	if len(ranked) != 1 {
		t.Fatalf("Expected one ranked candidate, got %d", len(ranked))
	}
	if ranked[0].Score >= 0.45 {
		t.Fatalf("Test setup expects a score just below 0.45, got %v", ranked[0].Score)
	}
	if got := m.Suggest(rec, snap); len(got) != 0 {
		t.Errorf("Expected no suggestions below the threshold, got %v", got)
	}
}

func TestMatcher_ScoreBounds(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		Birth:      &model.DateFragment{Year: 1840},
		Death:      &model.DateFragment{Year: 1900},
		Parents:    model.Parents{Father: "Thomas Smith"},
	}
	inds := []model.StoredIndividual{
		person("i1", "John Smith", 1840),
		person("i2", "Jane Doe", 1900),
		person("i3", "J Smith", 1841),
	}
	got := defaultMatcher().Rank(rec, &model.Snapshot{Individuals: inds})
	for _, c := range got {
		if c.Score < 0 || c.Score > 1 {
			t.Errorf("Score out of bounds for %s: %v", c.IndividualID, c.Score)
		}
	}
}

func TestMatcher_NilInputs(t *testing.T) {
	m := defaultMatcher()
	if got := m.Rank(nil, &model.Snapshot{}); got != nil {
		t.Errorf("Expected nil for nil record, got %v", got)
	}
	if got := m.Rank(&model.Record{}, nil); got != nil {
		t.Errorf("Expected nil for nil snapshot, got %v", got)
	}
}
