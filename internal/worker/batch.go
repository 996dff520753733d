package worker

import (
	"context"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/okkonen/kinship/internal/match"
	"github.com/okkonen/kinship/internal/model"
)

// Extractor abstracts the pipeline stage batch jobs run documents through
type Extractor interface {
	ExtractHTML(htmlSrc, sourceURL string) (*model.Record, error)
}

// LinkJob extracts one document and matches it against the snapshot.
// Each job is one atomic extract+match+decide step.
type LinkJob struct {
	Input     string // File path, carried through for reporting
	HTML      string
	Extractor Extractor
	Matcher   *match.Matcher
	Snapshot  *model.Snapshot
}

// Execute runs the job
func (j *LinkJob) Execute(ctx context.Context) Result {
	decision := model.LinkDecision{
		Input:    j.Input,
		RecordID: uuid.NewString(),
	}

	rec, err := j.Extractor.ExtractHTML(j.HTML, "")
	if err != nil {
		decision.Error = err.Error()
		return &LinkResult{Decision: decision, Err: err}
	}
	decision.Record = rec

	decision.Candidates = j.Matcher.Suggest(rec, j.Snapshot)
	if len(decision.Candidates) > 0 {
		top := decision.Candidates[0]
		if j.Matcher.AutoLinkEligible(top.Score) {
			decision.LinkedTo = top.IndividualID
			decision.AutoLinked = true
		}
	}
	return &LinkResult{Decision: decision}
}

// LinkResult is the outcome of one link job
type LinkResult struct {
	Decision model.LinkDecision
	Err      error
}

// GetError returns the job's error, if any
func (r *LinkResult) GetError() error { return r.Err }

// BatchLinker runs extract+match+decide over many documents concurrently.
// The snapshot is shared read-only across jobs; a failed job yields a
// decision carrying its error and never blocks the others, so callers can
// detect and resume partial batches.
type BatchLinker struct {
	extractor   Extractor
	matcher     *match.Matcher
	snapshot    *model.Snapshot
	concurrency int
}

// NewBatchLinker creates a batch processor
func NewBatchLinker(extractor Extractor, matcher *match.Matcher, snapshot *model.Snapshot, concurrency int) *BatchLinker {
	return &BatchLinker{
		extractor:   extractor,
		matcher:     matcher,
		snapshot:    snapshot,
		concurrency: concurrency,
	}
}

// ProcessFiles extracts and matches each HTML file. Decisions come back
// sorted by input path so batch output is deterministic.
func (b *BatchLinker) ProcessFiles(ctx context.Context, paths []string) []model.LinkDecision {
	if len(paths) == 0 {
		return nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Drain results while submitting, otherwise a batch larger than the
	// pool's channel buffers would block Submit with nothing reading.
	collector := NewResultCollector()
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for r := range pool.Results() {
			collector.Add(r)
		}
	}()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			pool.Submit(&failedJob{input: path, err: err})
			continue
		}
		pool.Submit(&LinkJob{
			Input:     path,
			HTML:      string(data),
			Extractor: b.extractor,
			Matcher:   b.matcher,
			Snapshot:  b.snapshot,
		})
	}

	pool.Close()
	<-drained

	results := collector.Results()
	decisions := make([]model.LinkDecision, 0, len(results))
	for _, r := range results {
		if lr, ok := r.(*LinkResult); ok {
			decisions = append(decisions, lr.Decision)
		}
	}
	sort.Slice(decisions, func(i, j int) bool { return decisions[i].Input < decisions[j].Input })
	return decisions
}

// failedJob reports an input that could not be read
type failedJob struct {
	input string
	err   error
}

func (j *failedJob) Execute(ctx context.Context) Result {
	return &LinkResult{
		Decision: model.LinkDecision{Input: j.input, Error: j.err.Error()},
		Err:      j.err,
	}
}
