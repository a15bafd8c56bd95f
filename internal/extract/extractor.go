// Package extract converts a single file's unified diff into a small set of
// self-contained, size-bounded code blocks: parse the diff with dual line
// numbering, reconstruct a best-effort source, find the minimal enclosing
// syntax blocks around the changed lines, and bound their size. Structural
// failures degrade to a textual fallback rather than failing the file.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/mvp-joe/diffscope/internal/diff"
	"github.com/mvp-joe/diffscope/internal/parsers"
	"github.com/mvp-joe/diffscope/internal/tokens"
)

// Extractor runs the diff-to-context pipeline for one file at a time. It is
// stateless across calls and safe for concurrent use; each extraction owns
// all of its intermediate state.
type Extractor struct {
	registry   *parsers.Registry
	splitter   parsers.ScriptSplitter
	limits     Limits
	budget     tokens.Budget
	model      string
	maxDepth   int
	timeout    time.Duration
	extensions map[string]bool
	ignore     []glob.Glob
	logger     *slog.Logger
}

// NewExtractor builds an extractor from options. The script splitter is an
// optional capability: pass nil when markup-embedded-script files should go
// straight to the textual fallback.
func NewExtractor(opts Options, splitter parsers.ScriptSplitter, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ignore := make([]glob.Glob, 0, len(opts.IgnorePatterns))
	for _, pattern := range opts.IgnorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		ignore = append(ignore, g)
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &Extractor{
		registry:   parsers.NewRegistry(),
		splitter:   splitter,
		limits:     opts.Limits,
		budget:     opts.Budget,
		model:      opts.Model,
		maxDepth:   opts.MaxDepth,
		timeout:    opts.ParseTimeout,
		extensions: extensions,
		ignore:     ignore,
		logger:     logger,
	}, nil
}

// ExtractFile runs the full pipeline for one changed file and returns its
// rendered context. Recoverable parse conditions never surface as errors;
// they degrade toward fewer or simpler blocks and leave a warning on the
// result.
func (e *Extractor) ExtractFile(ctx context.Context, fd diff.FileDiff) (*FileContext, error) {
	fc := &FileContext{
		ID:      uuid.NewString(),
		OldPath: fd.OldPath,
		NewPath: fd.NewPath,
	}

	if e.ignored(fd.NewPath) {
		fc.Skipped = true
		return fc, nil
	}

	parsed := diff.Parse(fd.Patch, fd.OldPath, fd.NewPath)
	fc.NumberedDiff = diff.RenderNumbered(parsed)

	changed := parsed.AddedLineNumbers()
	ext := strings.ToLower(filepath.Ext(fd.NewPath))

	switch {
	case len(changed) == 0:
		// Pure deletions and metadata-only patches yield no blocks.
	case e.structuralExt(ext):
		blocks, warnings, err := e.structural(ctx, parsed, changed, ext)
		fc.Warnings = append(fc.Warnings, warnings...)
		if err != nil || len(blocks) == 0 {
			if err != nil {
				e.logger.Warn("structural parse unavailable, using fallback",
					"file", fd.NewPath, "id", fc.ID, "reason", err)
			}
			blocks = nil
			if fb := fallbackBlock(parsed, e.limits); fb != nil {
				blocks = append(blocks, *fb)
			} else {
				e.logger.Warn("fallback block exceeded size ceilings, dropped",
					"file", fd.NewPath, "id", fc.ID)
			}
		}
		fc.Blocks = blocks
	default:
		// Unsupported extension: short-circuit to zero blocks. Explicitly
		// not a fallback case.
	}

	fc.PromptTokens = tokens.MeasurePrompt(e.model, fc.Prompt())
	fc.AvailableTokens = e.budget.Available(fc.PromptTokens)
	return fc, nil
}

// structuralExt reports whether the extension takes the structural path,
// honoring the configured extension allowlist when one is set.
func (e *Extractor) structuralExt(ext string) bool {
	if len(e.extensions) > 0 && !e.extensions[ext] {
		return false
	}
	return ext == ".vue" || e.registry.Supported(ext)
}

// structural runs reconstruction, parsing, block selection, and size
// governance. The returned error marks recoverable conditions that route to
// the fallback extractor.
func (e *Extractor) structural(ctx context.Context, parsed *diff.ParsedDiff, changed []int, ext string) ([]Block, []string, error) {
	recon, ok := diff.Reconstruct(parsed)
	if !ok {
		return nil, nil, parsers.ErrParseFailed
	}

	// Translate changed new-file lines into reconstruction coordinates;
	// lines absent from the reconstruction (blank additions) cannot be
	// covered structurally.
	var reconChanged []int
	for _, line := range changed {
		if rl := recon.ReconLineFor(line); rl > 0 {
			reconChanged = append(reconChanged, rl)
		}
	}
	if len(reconChanged) == 0 {
		return nil, nil, nil
	}

	var spans []SyntaxSpan
	var warnings []string
	var err error
	if ext == ".vue" {
		spans, warnings, err = e.collectScriptSpans(ctx, recon, reconChanged)
	} else {
		spans, warnings, err = e.collectFileSpans(ctx, recon, reconChanged, ext)
	}
	if err != nil {
		return nil, warnings, err
	}

	blocks := make([]Block, 0, len(spans))
	for _, span := range reduceMinimal(spans) {
		lines := recon.Slice(span.StartLine, span.EndLine)
		code, ws, we, truncated, windowed := governSpan(span, lines, e.limits)
		blocks = append(blocks, Block{
			Code:      code,
			StartLine: recon.NewLineAt(ws),
			EndLine:   recon.NewLineAt(we),
			Kind:      span.Kind,
			Name:      span.Name,
			Truncated: truncated,
			Windowed:  windowed,
		})
	}
	return blocks, warnings, nil
}

// collectFileSpans parses the whole reconstruction with the extension's
// grammar and collects changed-line spans.
func (e *Extractor) collectFileSpans(ctx context.Context, recon *diff.Reconstruction, reconChanged []int, ext string) ([]SyntaxSpan, []string, error) {
	result, err := e.registry.Parse(ctx, []byte(recon.Source), ext, e.timeout)
	if err != nil {
		return nil, nil, err
	}
	defer result.Close()

	lang, _ := e.registry.LanguageFor(ext)
	spans, depthExceeded := collectSpans(result, lang, reconChanged, e.maxDepth)

	var warnings []string
	if depthExceeded {
		warnings = append(warnings, fmt.Sprintf("traversal depth ceiling %d exceeded; partial block set", e.maxDepth))
		e.logger.Warn("traversal depth ceiling exceeded", "max_depth", e.maxDepth)
	}
	return spans, warnings, nil
}

// collectScriptSpans handles markup-embedded-script files: split out each
// script block, parse it with the script grammar, and re-base the spans onto
// the enclosing file's line numbers.
func (e *Extractor) collectScriptSpans(ctx context.Context, recon *diff.Reconstruction, reconChanged []int) ([]SyntaxSpan, []string, error) {
	if e.splitter == nil {
		return nil, nil, parsers.ErrNoScriptSplitter
	}

	scripts := e.splitter.Split(recon.Source)
	if len(scripts) == 0 {
		return nil, nil, parsers.ErrParseFailed
	}

	var spans []SyntaxSpan
	var warnings []string
	parsedAny := false

	for _, script := range scripts {
		offset := script.StartLine - 1
		localChanged := shiftLines(reconChanged, -offset)
		if len(localChanged) == 0 {
			continue
		}

		result, err := e.registry.Parse(ctx, []byte(script.Source), script.Ext, e.timeout)
		if err != nil {
			if errors.Is(err, parsers.ErrParseTimeout) {
				return nil, warnings, err
			}
			warnings = append(warnings, fmt.Sprintf("script block at line %d failed to parse", script.StartLine))
			continue
		}
		parsedAny = true

		lang, _ := e.registry.LanguageFor(script.Ext)
		blockSpans, depthExceeded := collectSpans(result, lang, localChanged, e.maxDepth)
		result.Close()
		if depthExceeded {
			warnings = append(warnings, fmt.Sprintf("traversal depth ceiling %d exceeded; partial block set", e.maxDepth))
		}

		for _, span := range blockSpans {
			span.StartLine += offset
			span.EndLine += offset
			span.Covered = shiftLines(span.Covered, offset)
			spans = append(spans, span)
		}
	}

	if !parsedAny {
		return nil, warnings, parsers.ErrParseFailed
	}
	return spans, warnings, nil
}

// shiftLines offsets sorted line numbers, dropping entries that fall below 1.
func shiftLines(lines []int, offset int) []int {
	out := make([]int, 0, len(lines))
	for _, n := range lines {
		if n+offset >= 1 {
			out = append(out, n+offset)
		}
	}
	return out
}

func (e *Extractor) ignored(path string) bool {
	for _, g := range e.ignore {
		if g.Match(path) {
			return true
		}
	}
	return false
}
