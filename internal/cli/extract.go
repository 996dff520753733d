package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/okkonen/kinship/internal/highlight"
	"github.com/okkonen/kinship/internal/model"
	"github.com/okkonen/kinship/internal/pipeline"
	"github.com/okkonen/kinship/internal/score"
	"github.com/okkonen/kinship/internal/validate"
)

var (
	extractURL       string
	extractOut       string
	extractHighlight string
	withScores       bool
	compactJSON      bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract a person record from a local HTML document",
	Long: `Extract parses an HTML profile page and emits a structured person
record as JSON. The document is read from the given file, or from
stdin when no file is given.

Every populated field carries a provenance span pointing back into
the source HTML, and the record always validates byte-for-byte
against it.

Example:
  kinship extract profile.html
  cat profile.html | kinship extract --url https://example.org/person/42
  kinship extract profile.html --with-scores --highlight annotated.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractURL, "url", "", "source URL to record in the output")
	extractCmd.Flags().StringVar(&extractOut, "json", "", "output JSON path (default: stdout)")
	extractCmd.Flags().StringVar(&extractHighlight, "highlight", "", "write source HTML with extracted spans wrapped in <mark> tags")
	extractCmd.Flags().BoolVar(&withScores, "with-scores", false, "include per-field confidence scores")
	extractCmd.Flags().BoolVar(&compactJSON, "compact", false, "emit compact JSON instead of indented")
}

func runExtract(cmd *cobra.Command, args []string) error {
	htmlSrc, err := readInput(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	p := pipeline.NewPipeline(cfg)

	rec, err := p.ExtractHTML(htmlSrc, extractURL)

	// Validation problems go to stderr, but the record (when one was
	// produced) is still written so the caller can inspect it.
	var verr *validate.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Fields {
			fmt.Fprintf(os.Stderr, "invalid: %s: %s\n", fe.Path, fe.Message)
		}
	} else if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(!compactJSON)

	if withScores {
		out := struct {
			Record *model.Record      `json:"record"`
			Scores map[string]float64 `json:"scores"`
		}{Record: rec, Scores: score.Confidence(rec)}
		if werr := renderer.WriteJSONFile(extractOut, out); werr != nil {
			return werr
		}
	} else {
		if werr := renderer.WriteJSONFile(extractOut, rec); werr != nil {
			return werr
		}
	}

	if extractHighlight != "" {
		annotated := highlight.Annotate(htmlSrc, rec.Provenance)
		if werr := os.WriteFile(extractHighlight, []byte(annotated), 0644); werr != nil {
			return fmt.Errorf("write highlight: %w", werr)
		}
	}

	if verbose {
		renderer.Summary(os.Stderr, rec)
	}

	if verr != nil {
		return fmt.Errorf("record failed validation with %d error(s)", len(verr.Fields))
	}
	return nil
}

// readInput reads the HTML document from the file argument or stdin
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// loadConfig builds the effective configuration: defaults overlaid with
// whatever the config file provides
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	if viper.ConfigFileUsed() != "" {
		// Custom label synonyms are the main thing worth carrying
		// from the file; the rest is flag-driven per command
		if err := viper.UnmarshalKey("extract.extra_labels", &cfg.Extract.ExtraLabels); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring extract.extra_labels: %v\n", err)
		}
		if v := viper.GetFloat64("match.suggestion_threshold"); v > 0 {
			cfg.Match.SuggestionThreshold = v
		}
		if v := viper.GetFloat64("match.auto_link_threshold"); v > 0 {
			cfg.Match.AutoLinkThreshold = v
		}
		if v := viper.GetInt("match.max_suggestions"); v > 0 {
			cfg.Match.MaxSuggestions = v
		}
	}
	return cfg
}
