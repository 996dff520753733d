package model

import "time"

// Report wraps a scan result: the extracted record plus fetch metadata,
// per-field confidence scores and the optional LLM research note.
type Report struct {
	SourceURL string    `json:"source_url,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	FetchMeta FetchMeta `json:"fetch_meta,omitzero"`

	Record *Record            `json:"record"`
	Scores map[string]float64 `json:"scores,omitempty"`

	Note *ResearchNote `json:"note,omitempty"` // Optional LLM note (separate, never affects extraction or scores)
}

// FetchMeta contains HTTP metadata from fetching the source page
type FetchMeta struct {
	StatusCode   int               `json:"status_code,omitempty"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	FromCache    bool              `json:"from_cache,omitempty"`
}

// ResearchNote contains an optional LLM-drafted note about a record.
// CRITICAL: this never affects extraction, confidence scores or matching.
type ResearchNote struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// LinkDecision is the outcome of one batch extract+match step
type LinkDecision struct {
	Input      string           `json:"input"`     // File path or URL the record came from
	RecordID   string           `json:"record_id"` // Minted id for the new record
	Record     *Record          `json:"record,omitempty"`
	Candidates []MatchCandidate `json:"candidates,omitempty"` // Suggestions at or above the suggestion threshold
	LinkedTo   string           `json:"linked_to,omitempty"`  // Individual id when auto-linked
	AutoLinked bool             `json:"auto_linked"`
	Error      string           `json:"error,omitempty"`
}
