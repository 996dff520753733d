package parse

import (
	"testing"

	"github.com/okkonen/kinship/internal/model"
)

func TestParseDateFragment_Formats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.DateFragment
	}{
		{"day month year", "17 Mar 1901", model.DateFragment{Raw: "17 Mar 1901", Year: 1901, Month: 3, Day: 17}},
		{"full month", "17 March 1901", model.DateFragment{Raw: "17 March 1901", Year: 1901, Month: 3, Day: 17}},
		{"month day year", "March 17, 1901", model.DateFragment{Raw: "March 17, 1901", Year: 1901, Month: 3, Day: 17}},
		{"ordinal day", "3rd June 1888", model.DateFragment{Raw: "3rd June 1888", Year: 1888, Month: 6, Day: 3}},
		{"month year", "June 1888", model.DateFragment{Raw: "June 1888", Year: 1888, Month: 6}},
		{"iso", "1901-03-17", model.DateFragment{Raw: "1901-03-17", Year: 1901, Month: 3, Day: 17}},
		{"numeric day first", "17/03/1901", model.DateFragment{Raw: "17/03/1901", Year: 1901, Month: 3, Day: 17}},
		{"numeric dotted", "17.03.1901", model.DateFragment{Raw: "17.03.1901", Year: 1901, Month: 3, Day: 17}},
		{"year only", "1901", model.DateFragment{Raw: "1901", Year: 1901}},
		{"abt year", "abt 1902", model.DateFragment{Raw: "abt 1902", Year: 1902, Approx: true}},
		{"about year", "about 1902", model.DateFragment{Raw: "about 1902", Year: 1902, Approx: true}},
		{"circa abbreviated", "c. 1840", model.DateFragment{Raw: "c. 1840", Year: 1840, Approx: true}},
		{"circa glued", "c1840", model.DateFragment{Raw: "c1840", Year: 1840, Approx: true}},
		{"tilde", "~1840", model.DateFragment{Raw: "~1840", Year: 1840, Approx: true}},
		{"quarter", "Q1 1887", model.DateFragment{Raw: "Q1 1887", Year: 1887, Month: 1, Approx: true}},
		{"fourth quarter", "Q4 1887", model.DateFragment{Raw: "Q4 1887", Year: 1887, Month: 10, Approx: true}},
		{"before", "before 1899", model.DateFragment{Raw: "before 1899", Year: 1899, Approx: true}},
		{"after", "after 1901", model.DateFragment{Raw: "after 1901", Year: 1901, Approx: true}},
		{"approx full date", "abt 17 Mar 1901", model.DateFragment{Raw: "abt 17 Mar 1901", Year: 1901, Month: 3, Day: 17, Approx: true}},
		{"unparseable with year", "sometime in 1873, spring", model.DateFragment{Raw: "sometime in 1873, spring", Year: 1873}},
		{"no date at all", "unknown", model.DateFragment{Raw: "unknown"}},
		{"empty", "", model.DateFragment{}},
		{"whitespace", "   ", model.DateFragment{Raw: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDateFragment(tt.in)
			if got != tt.want {
				t.Errorf("ParseDateFragment(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDateFragment_InvalidComponentsDegrade(t *testing.T) {
	// A nonsense month should not produce month/day components, but the
	// year is still salvaged
	got := ParseDateFragment("17 Smarch 1901")
	if got.Year != 1901 {
		t.Errorf("Expected year 1901, got %d", got.Year)
	}
	if got.Month != 0 || got.Day != 0 {
		t.Errorf("Expected no month/day for invalid month name, got month=%d day=%d", got.Month, got.Day)
	}
}

func TestParseDateFragment_PreservesRaw(t *testing.T) {
	raw := "  abt 1902  "
	got := ParseDateFragment(raw)
	if got.Raw != "abt 1902" {
		t.Errorf("Expected trimmed raw %q, got %q", "abt 1902", got.Raw)
	}
}
