package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/diffscope/internal/diff"
)

// Test Plan for the textual fallback block:
// - Added lines become a single block spanning first to last added line
// - Context-only diffs produce no fallback block
// - A fallback block over either ceiling is dropped, never truncated

func TestFallbackBlock_AddedRange(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,3 +1,5 @@\n context one\n+added two\n context three\n+added four\n context five\n"
	parsed := diff.Parse(patch, "a.txt", "a.txt")

	block := fallbackBlock(parsed, Limits{MaxBlockChars: 8000, MaxBlockLines: 150})
	require.NotNil(t, block)
	assert.Equal(t, "fallback", block.Kind)
	assert.Equal(t, "added two\nadded four", block.Code)
	assert.Equal(t, 2, block.StartLine)
	assert.Equal(t, 4, block.EndLine)
}

func TestFallbackBlock_NoAddedLines(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,2 +1,1 @@\n keep\n-gone\n"
	parsed := diff.Parse(patch, "a.txt", "a.txt")

	assert.Nil(t, fallbackBlock(parsed, Limits{MaxBlockChars: 8000, MaxBlockLines: 150}))
}

func TestFallbackBlock_DroppedOverCharCeiling(t *testing.T) {
	t.Parallel()

	patch := "@@ -0,0 +1,1 @@\n+" + strings.Repeat("x", 200) + "\n"
	parsed := diff.Parse(patch, "a.txt", "a.txt")

	assert.Nil(t, fallbackBlock(parsed, Limits{MaxBlockChars: 100, MaxBlockLines: 150}))
}

func TestFallbackBlock_DroppedOverLineCeiling(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("@@ -0,0 +1,20 @@\n")
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "+line %d\n", i)
	}
	parsed := diff.Parse(b.String(), "a.txt", "a.txt")

	assert.Nil(t, fallbackBlock(parsed, Limits{MaxBlockChars: 8000, MaxBlockLines: 10}))
}
