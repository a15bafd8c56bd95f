package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/diffscope/internal/config"
	"github.com/mvp-joe/diffscope/internal/diff"
	"github.com/mvp-joe/diffscope/internal/extract"
	"github.com/mvp-joe/diffscope/internal/parsers"
	"github.com/mvp-joe/diffscope/internal/tokens"
)

var (
	extractDiffPath string
	extractOldFile  string
	extractNewFile  string
	extractPathName string
	extractFormat   string
	extractModel    string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract review context blocks from a unified diff",
	Long: `Extract parses a unified diff (from a file, stdin, or an old/new file
pair), reconstructs the changed source, and selects the minimal enclosing
code blocks around every changed line, bounded by the configured size
ceilings and measured against the model token budget.

Examples:
  git diff | diffscope extract
  diffscope extract --diff changes.patch --format yaml
  diffscope extract --old api_v1.ts --new api_v2.ts --path src/api.ts`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractDiffPath, "diff", "", "unified diff file (default: stdin)")
	extractCmd.Flags().StringVar(&extractOldFile, "old", "", "old file for synthesizing a diff")
	extractCmd.Flags().StringVar(&extractNewFile, "new", "", "new file for synthesizing a diff")
	extractCmd.Flags().StringVar(&extractPathName, "path", "", "logical path for a synthesized diff (default: --new path)")
	extractCmd.Flags().StringVar(&extractFormat, "format", "json", "output format: json, yaml, or text")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "override the configured tokenizer model")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if extractModel != "" {
		cfg.Budget.Model = extractModel
	}

	fullDiff, err := readDiffInput()
	if err != nil {
		return err
	}

	extractor, err := extract.NewExtractor(optionsFromConfig(cfg), parsers.NewVueSplitter(), nil)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	sections := diff.SplitSections(fullDiff)
	results := make([]*extract.FileContext, 0, len(sections))

	var bar *progressbar.ProgressBar
	if len(sections) > 1 && !verbose {
		bar = progressbar.NewOptions(len(sections),
			progressbar.OptionSetDescription("Extracting context"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWriter(os.Stderr),
		)
	}

	ctx := context.Background()
	for _, section := range sections {
		oldPath, newPath := diff.SectionPaths(section)
		if newPath == "" {
			if bar != nil {
				bar.Add(1)
			}
			continue
		}

		fc, err := extractor.ExtractFile(ctx, diff.FileDiff{
			OldPath: oldPath,
			NewPath: newPath,
			Patch:   section,
		})
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", newPath, err)
		}
		results = append(results, fc)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		fmt.Fprintln(os.Stderr)
	}

	return writeResults(os.Stdout, results, extractFormat)
}

// readDiffInput resolves the diff source: an explicit file, a synthesized
// old/new pair, or stdin.
func readDiffInput() (string, error) {
	if extractOldFile != "" || extractNewFile != "" {
		if extractOldFile == "" || extractNewFile == "" {
			return "", fmt.Errorf("--old and --new must be used together")
		}
		oldContent, err := os.ReadFile(extractOldFile)
		if err != nil {
			return "", fmt.Errorf("failed to read old file: %w", err)
		}
		newContent, err := os.ReadFile(extractNewFile)
		if err != nil {
			return "", fmt.Errorf("failed to read new file: %w", err)
		}
		name := extractPathName
		if name == "" {
			name = extractNewFile
		}
		return diff.GenerateUnified(name, string(oldContent), string(newContent)), nil
	}

	if extractDiffPath != "" {
		data, err := os.ReadFile(extractDiffPath)
		if err != nil {
			return "", fmt.Errorf("failed to read diff file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read diff from stdin: %w", err)
	}
	return string(data), nil
}

// optionsFromConfig maps the loaded configuration onto extractor options.
func optionsFromConfig(cfg *config.Config) extract.Options {
	return extract.Options{
		Limits: extract.Limits{
			MaxBlockChars: cfg.Limits.MaxBlockChars,
			MaxBlockLines: cfg.Limits.MaxBlockLines,
			WindowRadius:  cfg.Limits.WindowRadius,
		},
		Budget: tokens.Budget{
			ModelTokenCeiling:    cfg.Budget.ModelTokenCeiling,
			ReservedOutputTokens: cfg.Budget.ReservedOutputTokens,
		},
		Model:          cfg.Budget.Model,
		MaxDepth:       cfg.Limits.MaxDepth,
		ParseTimeout:   time.Duration(cfg.Limits.ParseTimeoutMs) * time.Millisecond,
		Extensions:     cfg.Paths.Extensions,
		IgnorePatterns: cfg.Paths.Ignore,
	}
}

// writeResults renders extraction results in the requested format.
func writeResults(w io.Writer, results []*extract.FileContext, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(results)
	case "text":
		for _, fc := range results {
			if fc.Skipped {
				fmt.Fprintf(w, "## %s (skipped)\n\n", fc.NewPath)
				continue
			}
			fmt.Fprintf(w, "## %s (%d prompt tokens, %d available)\n\n",
				fc.NewPath, fc.PromptTokens, fc.AvailableTokens)
			fmt.Fprintln(w, fc.Prompt())
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, or text)", format)
	}
}
