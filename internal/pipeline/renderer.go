package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// Renderer writes extraction results as JSON and human summaries
type Renderer struct {
	pretty bool
}

// NewRenderer creates a renderer; pretty enables indented JSON
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// WriteJSON writes v to w, followed by a newline
func (r *Renderer) WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteJSONFile writes v to path, or to stdout when path is "" or "-"
func (r *Renderer) WriteJSONFile(path string, v interface{}) error {
	if path == "" || path == "-" {
		return r.WriteJSON(os.Stdout, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteJSON(f, v)
}

// Summary prints a short human-readable account of the record to w
func (r *Renderer) Summary(w io.Writer, rec *model.Record) {
	if rec == nil {
		return
	}
	name := strings.TrimSpace(strings.Join(rec.GivenNames, " ") + " " + rec.Surname)
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Extracted: %s", name)
	if rec.Birth != nil && rec.Birth.Year != 0 {
		fmt.Fprintf(w, " b.%d", rec.Birth.Year)
	}
	if rec.Death != nil && rec.Death.Year != 0 {
		fmt.Fprintf(w, " d.%d", rec.Death.Year)
	}
	fmt.Fprintf(w, " (%d provenance spans, %d spouses, %d children)\n",
		len(rec.Provenance), len(rec.Spouses), len(rec.Children))
}

// CandidateSummary prints ranked match candidates to w
func (r *Renderer) CandidateSummary(w io.Writer, candidates []model.MatchCandidate, autoLink float64) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "No match candidates above the suggestion threshold")
		return
	}
	for i, c := range candidates {
		marker := " "
		if c.Score >= autoLink {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d. %s (%s) score=%.3f\n", marker, i+1, c.Name, c.IndividualID, c.Score)
	}
}
