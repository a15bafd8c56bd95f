package extract

import (
	"strings"

	"github.com/mvp-joe/diffscope/internal/diff"
)

// fallbackBlock produces the single textual block used when structural
// parsing is unavailable, fails, or yields no spans: the contiguous range of
// added lines verbatim. A fallback block exceeding either ceiling is dropped
// entirely rather than truncated, since there is no structural anchor to
// truncate around. Returns nil when no block is produced.
func fallbackBlock(parsed *diff.ParsedDiff, lim Limits) *Block {
	var contents []string
	first, last := 0, 0
	for _, line := range parsed.Lines {
		if line.Kind != diff.Added {
			continue
		}
		if first == 0 {
			first = line.NewLineNo
		}
		last = line.NewLineNo
		contents = append(contents, line.Content)
	}
	if len(contents) == 0 {
		return nil
	}

	code := strings.Join(contents, "\n")
	if lim.MaxBlockChars > 0 && len(code) > lim.MaxBlockChars {
		return nil
	}
	if lim.MaxBlockLines > 0 && len(contents) > lim.MaxBlockLines {
		return nil
	}

	return &Block{
		Code:      code,
		StartLine: first,
		EndLine:   last,
		Kind:      "fallback",
	}
}
