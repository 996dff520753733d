package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/okkonen/kinship/internal/model"
)

// stubProvider returns a canned draft
type stubProvider struct {
	text string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	return &DraftResponse{Text: p.text, Model: "stub-model"}, nil
}

func TestSummarizer_Draft(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"John"},
		Surname:    "Smith",
		SourceHTML: "<p>John Smith, born 1840, died 1900</p>",
	}
	s := &Summarizer{provider: &stubProvider{text: "John Smith was born in 1840 and died in 1900."}}

	note, err := s.Draft(context.Background(), rec)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !note.Enabled || note.Provider != "stub" || note.Model != "stub-model" {
		t.Errorf("Unexpected note metadata: %+v", note)
	}
	if len(note.Warnings) != 0 {
		t.Errorf("Expected no warnings for grounded years, got %v", note.Warnings)
	}
}

func TestSummarizer_FlagsInventedYears(t *testing.T) {
	rec := &model.Record{
		Surname:    "Smith",
		SourceHTML: "<p>John Smith, born 1840</p>",
	}
	s := &Summarizer{provider: &stubProvider{text: "Born 1840, emigrated in 1867 and again 1867."}}

	note, err := s.Draft(context.Background(), rec)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(note.Warnings) != 1 {
		t.Fatalf("Expected one deduplicated warning, got %v", note.Warnings)
	}
	if !strings.Contains(note.Warnings[0], "1867") {
		t.Errorf("Expected warning about 1867, got %q", note.Warnings[0])
	}
}

func TestBuildPrompt_OnlyRecordFacts(t *testing.T) {
	rec := &model.Record{
		GivenNames: []string{"Mary"},
		Surname:    "Brown",
		MaidenName: "Jones",
		Birth:      &model.DateFragment{Raw: "abt 1861", Approx: true, Place: "Leeds"},
		Parents:    model.Parents{Father: "Thomas Jones"},
	}
	prompt := BuildPrompt(rec)

	for _, want := range []string{"Mary", "Brown", "Jones", "abt 1861", "in Leeds", "(approximate)", "Thomas Jones"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(prompt, "Death:") {
		t.Error("Did not expect an empty death line")
	}
	if !strings.Contains(prompt, "Do not add any name, date or place not listed above") {
		t.Error("Expected the grounding instruction")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	if _, err := NewProvider(model.LLMConfig{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
