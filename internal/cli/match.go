package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okkonen/kinship/internal/match"
	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/pipeline"
)

var (
	poolPath string
	matchOut string
	rankAll  bool
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match [record.json]",
	Short: "Rank an extracted record against a tree snapshot",
	Long: `Match compares one extracted person record against a read-only
snapshot of an existing family tree and lists the closest candidate
individuals.

Only candidates at or above the suggestion threshold are returned,
capped at the configured maximum. Candidates at or above the
auto-link threshold are marked with '*'.

The record is read from the given file, or from stdin when no file
is given. The snapshot is a JSON file of the form
{"individuals": [...], "records": [...]}.

Example:
  kinship extract profile.html --compact | kinship match --pool tree.json
  kinship match record.json --pool tree.json --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringVar(&poolPath, "pool", "", "tree snapshot JSON file (required)")
	matchCmd.Flags().StringVar(&matchOut, "json", "", "output JSON path (default: stdout)")
	matchCmd.Flags().BoolVar(&rankAll, "all", false, "list every scored candidate, ignoring the suggestion threshold")
	_ = matchCmd.MarkFlagRequired("pool")
}

func runMatch(cmd *cobra.Command, args []string) error {
	rec, err := readRecord(args)
	if err != nil {
		return err
	}

	snap, err := match.LoadSnapshot(poolPath)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	matcher := match.NewMatcher(cfg.Match)

	var candidates []model.MatchCandidate
	if rankAll {
		candidates = matcher.Rank(rec, snap)
	} else {
		candidates = matcher.Suggest(rec, snap)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if verbose || matchOut != "" {
		renderer.CandidateSummary(os.Stderr, candidates, cfg.Match.AutoLinkThreshold)
	}
	return renderer.WriteJSONFile(matchOut, candidates)
}

// readRecord reads a record JSON document from the file argument or stdin
func readRecord(args []string) (*model.Record, error) {
	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	return &rec, nil
}
