package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okkonen/kinship/internal/match"
	"github.com/okkonen/kinship/internal/pipeline"
	"github.com/okkonen/kinship/internal/worker"
)

var (
	batchPool    string
	batchOut     string
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Extract and link many HTML documents in parallel",
	Long: `Batch runs the full extract+match+link flow over many local HTML
documents concurrently:
- Extract a person record from each document
- Rank it against the tree snapshot
- Auto-link when the best candidate clears the auto-link threshold

A document that fails produces a decision carrying its error; it
never aborts the rest of the batch, so partial runs can be detected
and resumed from the output.

Example:
  kinship batch profiles/*.html --pool tree.json
  kinship batch profiles/*.html --pool tree.json --concurrency 8 --json decisions.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchPool, "pool", "", "tree snapshot JSON file (required)")
	batchCmd.Flags().StringVar(&batchOut, "json", "", "output JSON path for link decisions (default: stdout)")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: config batch_workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	_ = batchCmd.MarkFlagRequired("pool")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	snap, err := match.LoadSnapshot(batchPool)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if concurrency > 0 {
		cfg.Concurrency.BatchWorkers = concurrency
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Batch: %d documents, %d workers, pool of %d individuals\n",
			len(args), cfg.Concurrency.BatchWorkers, len(snap.Individuals))
	}

	p := pipeline.NewPipeline(cfg)
	linker := worker.NewBatchLinker(p, p.Matcher(), snap, cfg.Concurrency.BatchWorkers)

	decisions := linker.ProcessFiles(ctx, args)

	linked, suggested, failed := 0, 0, 0
	for _, d := range decisions {
		switch {
		case d.Error != "":
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", d.Input, d.Error)
		case d.AutoLinked:
			linked++
		case len(d.Candidates) > 0:
			suggested++
		}
	}

	fmt.Fprintf(os.Stderr, "Processed %d documents: %d auto-linked, %d with suggestions, %d failed\n",
		len(decisions), linked, suggested, failed)

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	return renderer.WriteJSONFile(batchOut, decisions)
}
