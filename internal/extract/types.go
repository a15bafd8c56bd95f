package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvp-joe/diffscope/internal/tokens"
)

// SyntaxSpan is a function/class/method-level node whose source-line span
// intersects at least one changed line. Covered is non-empty by
// construction; spans covering no changed line are discarded immediately.
// Line numbers are in the coordinate system of the parsed fragment; the
// extractor re-bases them onto new-file numbers when promoting to a Block.
type SyntaxSpan struct {
	StartLine int
	EndLine   int
	Kind      string
	Name      string
	Covered   []int
}

// size returns the span's line extent, the minimality sort key.
func (s SyntaxSpan) size() int {
	return s.EndLine - s.StartLine
}

// contains reports whether other lies fully within this span.
func (s SyntaxSpan) contains(other SyntaxSpan) bool {
	return s.StartLine <= other.StartLine && other.EndLine <= s.EndLine
}

// Block is a span promoted to output after minimality reduction and size
// governance. StartLine/EndLine are new-file line numbers. Truncated marks
// character-truncated blocks; Windowed marks line-windowed ones. The two are
// mutually exclusive.
type Block struct {
	Code      string `json:"code" yaml:"code"`
	StartLine int    `json:"start_line" yaml:"start_line"`
	EndLine   int    `json:"end_line" yaml:"end_line"`
	Kind      string `json:"kind" yaml:"kind"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Truncated bool   `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Windowed  bool   `json:"windowed,omitempty" yaml:"windowed,omitempty"`
}

// FileContext is the per-file output handed to the AI invocation layer: the
// numbered diff, the extracted blocks, and the measured token cost. The
// caller decides whether to proceed, skip, or split further.
type FileContext struct {
	ID              string   `json:"id" yaml:"id"`
	OldPath         string   `json:"old_path" yaml:"old_path"`
	NewPath         string   `json:"new_path" yaml:"new_path"`
	NumberedDiff    string   `json:"numbered_diff" yaml:"numbered_diff"`
	Blocks          []Block  `json:"blocks" yaml:"blocks"`
	PromptTokens    int      `json:"prompt_tokens" yaml:"prompt_tokens"`
	AvailableTokens int      `json:"available_tokens" yaml:"available_tokens"`
	Warnings        []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Skipped         bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Prompt renders the text that would be sent to the model: the numbered diff
// followed by each extracted block with a location header.
func (fc *FileContext) Prompt() string {
	var b strings.Builder
	b.WriteString(fc.NumberedDiff)
	for _, blk := range fc.Blocks {
		fmt.Fprintf(&b, "\n--- %s %s (%s:%d-%d) ---\n", blk.Kind, blk.Name, fc.NewPath, blk.StartLine, blk.EndLine)
		b.WriteString(blk.Code)
		b.WriteString("\n")
	}
	return b.String()
}

// Limits holds the per-block size ceilings and the window radius used when a
// block exceeds the line ceiling.
type Limits struct {
	MaxBlockChars int
	MaxBlockLines int
	WindowRadius  int
}

// Options configures an Extractor. Every numeric ceiling is externally
// configurable; see internal/config for the file/env surface.
type Options struct {
	Limits         Limits
	Budget         tokens.Budget
	Model          string
	MaxDepth       int
	ParseTimeout   time.Duration
	Extensions     []string
	IgnorePatterns []string
}
