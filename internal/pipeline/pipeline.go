// Package pipeline orchestrates the full extraction flow: fetch (when the
// source is a URL), extract, validate, score and optionally draft a
// research note. The individual stages stay pure; everything stateful
// (HTTP, cache, LLM) lives here.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okkonen/kinship/internal/extract"
	"github.com/okkonen/kinship/internal/llm"
	"github.com/okkonen/kinship/internal/match"
	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/score"
	"github.com/okkonen/kinship/internal/validate"
)

// Pipeline wires the extraction stages together
type Pipeline struct {
	fetcher    *Fetcher
	runner     *extract.Runner
	matcher    *match.Matcher
	summarizer *llm.Summarizer // nil when disabled
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: research-note provider disabled: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		fetcher:    NewFetcher(cfg),
		runner:     extract.NewRunner(cfg.Extract.ExtraLabels),
		matcher:    match.NewMatcher(cfg.Match),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Matcher exposes the configured entity matcher
func (p *Pipeline) Matcher() *match.Matcher { return p.matcher }

// ExtractHTML extracts a record from an HTML document and validates it.
// The record is returned even when validation fails, so callers can
// inspect what was produced alongside the structured error.
func (p *Pipeline) ExtractHTML(htmlSrc, sourceURL string) (*model.Record, error) {
	rec := p.runner.Extract(htmlSrc, sourceURL)
	if err := validate.Validate(rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// ScanURL fetches a profile page and assembles the full report
func (p *Pipeline) ScanURL(ctx context.Context, url string) (*model.Report, error) {
	fetched, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	rec, err := p.ExtractHTML(fetched.HTML, fetched.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	report := &model.Report{
		SourceURL: fetched.FinalURL,
		FetchedAt: time.Now().UTC(),
		FetchMeta: fetched.Meta,
		Record:    rec,
		Scores:    score.Confidence(rec),
	}

	// The note is drafted AFTER scoring and never feeds back into it
	if p.summarizer != nil {
		note, err := p.summarizer.Draft(ctx, rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: research note generation failed: %v\n", err)
		} else {
			report.Note = note
		}
	}

	return report, nil
}
