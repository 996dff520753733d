// Package validate enforces the canonical record schema. Validation is the
// only raisable failure in the core: extraction itself is lenient, but a
// structurally invalid record is rejected here with a structured error
// listing each offending field path.
package validate

import (
	"fmt"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// FieldError describes one schema violation
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries every schema violation found in a record
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("record validation failed: %s: %s", e.Fields[0].Path, e.Fields[0].Message)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "record validation failed (%d problems):", len(e.Fields))
	for _, f := range e.Fields {
		fmt.Fprintf(&b, "\n  %s: %s", f.Path, f.Message)
	}
	return b.String()
}

// Validate checks a record against the canonical schema. It returns nil or
// a *ValidationError listing every violation.
func Validate(rec *model.Record) error {
	var errs []FieldError
	add := func(path, format string, args ...interface{}) {
		errs = append(errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if rec == nil {
		return &ValidationError{Fields: []FieldError{{Path: "record", Message: "record is nil"}}}
	}

	switch rec.Sex {
	case "", model.SexMale, model.SexFemale, model.SexUnknown:
	default:
		add("sex", "must be one of M, F, U; got %q", rec.Sex)
	}

	validateDate(rec.Birth, "birth", add)
	validateDate(rec.Death, "death", add)

	if rec.ExtractedAt.IsZero() {
		add("extractedAt", "must be set")
	}

	validateUnique(rec.Spouses, "spouses", add)
	validateUnique(rec.Children, "children", add)
	validateUnique(rec.Aliases, "aliases", add)
	validateUnique(rec.Sources, "sources", add)

	for i, res := range rec.Residences {
		if res.Year != 0 && (res.Year < 0 || res.Year > 9999) {
			add(fmt.Sprintf("residences[%d].year", i), "out of range: %d", res.Year)
		}
	}

	for i, p := range rec.Provenance {
		path := fmt.Sprintf("provenance[%d]", i)
		if p.Field == "" {
			add(path+".field", "must not be empty")
		}
		if p.Start < 0 || p.End > len(rec.SourceHTML) || p.Start >= p.End {
			add(path, "invalid range [%d,%d) for document of %d bytes", p.Start, p.End, len(rec.SourceHTML))
			continue
		}
		if rec.SourceHTML[p.Start:p.End] != p.Text {
			add(path+".text", "does not match sourceHtml[%d:%d]", p.Start, p.End)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateDate(d *model.DateFragment, path string, add func(string, string, ...interface{})) {
	if d == nil {
		return
	}
	if d.Year != 0 && (d.Year < 0 || d.Year > 9999) {
		add(path+".year", "out of range: %d", d.Year)
	}
	if d.Month != 0 && (d.Month < 1 || d.Month > 12) {
		add(path+".month", "must be 1-12; got %d", d.Month)
	}
	if d.Day != 0 && (d.Day < 1 || d.Day > 31) {
		add(path+".day", "must be 1-31; got %d", d.Day)
	}
}

func validateUnique(list []string, path string, add func(string, string, ...interface{})) {
	seen := make(map[string]bool, len(list))
	for i, v := range list {
		if seen[v] {
			add(fmt.Sprintf("%s[%d]", path, i), "duplicate entry %q", v)
		}
		seen[v] = true
	}
}
