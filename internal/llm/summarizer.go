package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/okkonen/kinship/internal/model"
)

// Summarizer drafts research notes and verifies them against the record
type Summarizer struct {
	provider Provider
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer for the configured provider
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: provider, config: cfg}, nil
}

// Draft generates the research note for a record. Years appearing in the
// output that the record does not carry are flagged as warnings, since
// they can only have been invented.
func (s *Summarizer) Draft(ctx context.Context, rec *model.Record) (*model.ResearchNote, error) {
	resp, err := s.provider.Draft(ctx, DraftRequest{
		Record:    rec,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("draft note: %w", err)
	}

	note := &model.ResearchNote{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Text,
	}
	note.Warnings = verifyYears(resp.Text, rec)
	return note, nil
}

// BuildPrompt lists the record's facts as bullets and asks for a short
// note grounded in them alone
func BuildPrompt(rec *model.Record) string {
	var b strings.Builder
	b.WriteString("Draft a short genealogical research note (3-6 sentences, Markdown) from these extracted facts:\n\n")

	add := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}
	add("Given names", strings.Join(rec.GivenNames, " "))
	add("Surname", rec.Surname)
	add("Maiden name", rec.MaidenName)
	add("Aliases", strings.Join(rec.Aliases, ", "))
	add("Birth", dateLine(rec.Birth))
	add("Death", dateLine(rec.Death))
	add("Father", rec.Parents.Father)
	add("Mother", rec.Parents.Mother)
	add("Spouses", strings.Join(rec.Spouses, ", "))
	add("Children", strings.Join(rec.Children, ", "))
	add("Occupation", rec.Occupation)
	add("Religion", rec.Religion)
	add("Notes", rec.Notes)

	b.WriteString("\nUse only these facts. Mention gaps worth researching. Do not add any name, date or place not listed above.\n")
	return b.String()
}

func dateLine(d *model.DateFragment) string {
	if d == nil {
		return ""
	}
	parts := []string{}
	if d.Raw != "" {
		parts = append(parts, d.Raw)
	}
	if d.Place != "" {
		parts = append(parts, "in "+d.Place)
	}
	if d.Approx {
		parts = append(parts, "(approximate)")
	}
	return strings.Join(parts, " ")
}

var yearTokenRe = regexp.MustCompile(`\b\d{4}\b`)

// verifyYears flags years in the note that the record never mentions
func verifyYears(text string, rec *model.Record) []string {
	known := make(map[string]bool)
	for _, m := range yearTokenRe.FindAllString(rec.SourceHTML, -1) {
		known[m] = true
	}

	var warnings []string
	seen := make(map[string]bool)
	for _, m := range yearTokenRe.FindAllString(text, -1) {
		if !known[m] && !seen[m] {
			warnings = append(warnings, fmt.Sprintf("note mentions year %s absent from the source", m))
			seen[m] = true
		}
	}
	return warnings
}
