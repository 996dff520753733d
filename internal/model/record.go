package model

import "time"

// Sex is the recorded sex of an individual
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// DateFragment is a partially-known date. Only components that were
// explicitly stated in the source are set; zero means unknown.
type DateFragment struct {
	Raw    string `json:"raw,omitempty"`    // Original phrase as it appeared in the source
	Year   int    `json:"year,omitempty"`   // 4-digit year
	Month  int    `json:"month,omitempty"`  // 1-12
	Day    int    `json:"day,omitempty"`    // 1-31
	Approx bool   `json:"approx,omitempty"` // Qualified with abt/circa/before/after etc.
	Place  string `json:"place,omitempty"`  // Associated place, if stated alongside the date
}

// HasDate reports whether any date component is known
func (d DateFragment) HasDate() bool {
	return d.Year != 0 || d.Month != 0 || d.Day != 0
}

// Residence is a place of residence, optionally dated
type Residence struct {
	Raw   string `json:"raw,omitempty"`
	Year  int    `json:"year,omitempty"`
	Place string `json:"place,omitempty"`
}

// Parents holds the names of an individual's parents
type Parents struct {
	Father string `json:"father,omitempty"`
	Mother string `json:"mother,omitempty"`
}

// ProvenanceEntry links a field to the exact byte range of the source
// document that produced it. Invariant: SourceHTML[Start:End] == Text.
type ProvenanceEntry struct {
	Field string `json:"field"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Record is the canonical normalized output of extraction.
// A Record is created once per extraction call and is immutable afterwards.
type Record struct {
	// Identity
	GivenNames []string `json:"givenNames,omitempty"`
	Surname    string   `json:"surname,omitempty"`
	MaidenName string   `json:"maidenName,omitempty"`
	Aliases    []string `json:"aliases,omitempty"`
	Sex        Sex      `json:"sex,omitempty"`

	// Life events
	Birth *DateFragment `json:"birth,omitempty"`
	Death *DateFragment `json:"death,omitempty"`

	// Relationships
	Parents  Parents  `json:"parents,omitzero"`
	Spouses  []string `json:"spouses,omitempty"`
	Children []string `json:"children,omitempty"`
	Siblings []string `json:"siblings,omitempty"`

	// Context
	Residences []Residence `json:"residences,omitempty"`
	Occupation string      `json:"occupation,omitempty"`
	Religion   string      `json:"religion,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Sources    []string    `json:"sources,omitempty"`
	SourceURL  string      `json:"sourceUrl,omitempty"`

	// Lineage metadata
	SourceHTML  string    `json:"sourceHtml"`
	ExtractedAt time.Time `json:"extractedAt"`

	Provenance []ProvenanceEntry `json:"provenance,omitempty"`
}

// AddUnique appends v to list unless an exact-equal entry already exists
func AddUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
