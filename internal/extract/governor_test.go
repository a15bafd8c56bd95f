package extract

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for block size governance:
// - Under both ceilings the block is emitted verbatim
// - Over the character ceiling the code is hard-truncated with a marker
// - Over the line ceiling a fixed-radius window around the changed lines
//   is emitted with ellipsis markers on the cut sides
// - Windowed output never exceeds the line ceiling, even when the changed
//   lines sit far apart within the span
// - Character truncation never splits a multibyte rune at the ceiling
// - Character truncation wins over line windowing when both ceilings trip
// - Windows clip to the span bounds instead of running past them

func spanLines(span SyntaxSpan) []string {
	lines := make([]string, 0, span.EndLine-span.StartLine+1)
	for i := span.StartLine; i <= span.EndLine; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	return lines
}

func TestGovernSpan_Verbatim(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 10, EndLine: 14, Covered: []int{12}}
	lines := spanLines(span)

	code, start, end, truncated, windowed := governSpan(span, lines, Limits{
		MaxBlockChars: 8000,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.Equal(t, strings.Join(lines, "\n"), code)
	assert.Equal(t, 10, start)
	assert.Equal(t, 14, end)
	assert.False(t, truncated)
	assert.False(t, windowed)
}

func TestGovernSpan_CharTruncation(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 1, Covered: []int{1}}
	lines := []string{strings.Repeat("x", 500)}

	code, _, _, truncated, windowed := governSpan(span, lines, Limits{
		MaxBlockChars: 100,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.True(t, truncated)
	assert.False(t, windowed)
	assert.True(t, strings.HasPrefix(code, strings.Repeat("x", 100)))
	assert.Contains(t, code, "[truncated: 100 of 500 chars]")
}

func TestGovernSpan_LineWindow(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 300, Covered: []int{150}}
	lines := spanLines(span)

	code, start, end, truncated, windowed := governSpan(span, lines, Limits{
		MaxBlockChars: 1 << 20,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.False(t, truncated)
	assert.True(t, windowed)
	assert.Equal(t, 142, start)
	assert.Equal(t, 158, end)

	emitted := strings.Split(code, "\n")
	require.Len(t, emitted, 19) // 17 window lines plus a marker on each side
	assert.Equal(t, ellipsisMarker, emitted[0])
	assert.Equal(t, "line 142", emitted[1])
	assert.Equal(t, "line 158", emitted[17])
	assert.Equal(t, ellipsisMarker, emitted[18])
}

func TestGovernSpan_DistantChangesRespectLineCeiling(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 300, Covered: []int{10, 290}}
	lines := spanLines(span)
	lim := Limits{MaxBlockChars: 1 << 20, MaxBlockLines: 150, WindowRadius: 8}

	code, start, end, truncated, windowed := governSpan(span, lines, lim)

	assert.False(t, truncated)
	assert.True(t, windowed)
	assert.LessOrEqual(t, end-start+1, lim.MaxBlockLines)

	// One window cannot reach both changed lines, so it anchors on the
	// first one.
	assert.Equal(t, 2, start)
	assert.Equal(t, 18, end)

	emitted := strings.Split(code, "\n")
	require.Len(t, emitted, 19)
	assert.Equal(t, ellipsisMarker, emitted[0])
	assert.Equal(t, "line 2", emitted[1])
	assert.Equal(t, "line 18", emitted[17])
	assert.Equal(t, ellipsisMarker, emitted[18])
}

func TestGovernSpan_WindowNeverExceedsCeiling(t *testing.T) {
	t.Parallel()

	// A radius wider than the ceiling still clamps the window.
	span := SyntaxSpan{StartLine: 1, EndLine: 500, Covered: []int{250}}
	lines := spanLines(span)
	lim := Limits{MaxBlockChars: 1 << 20, MaxBlockLines: 20, WindowRadius: 100}

	_, start, end, _, windowed := governSpan(span, lines, lim)

	assert.True(t, windowed)
	assert.LessOrEqual(t, end-start+1, lim.MaxBlockLines)
	assert.GreaterOrEqual(t, start, span.StartLine)
	assert.LessOrEqual(t, end, span.EndLine)
}

func TestGovernSpan_CharTruncationRuneBoundary(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 1, Covered: []int{1}}
	// Two-byte runes; an odd byte ceiling lands mid-rune.
	lines := []string{strings.Repeat("é", 100)}

	code, _, _, truncated, _ := governSpan(span, lines, Limits{
		MaxBlockChars: 101,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.True(t, truncated)
	assert.True(t, utf8.ValidString(code))
	assert.Contains(t, code, "[truncated: 100 of 200 chars]")
}

func TestGovernSpan_WindowClipsToSpan(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 200, Covered: []int{2}}
	lines := spanLines(span)

	code, start, end, _, windowed := governSpan(span, lines, Limits{
		MaxBlockChars: 1 << 20,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.True(t, windowed)
	assert.Equal(t, 1, start)
	assert.Equal(t, 10, end)
	assert.False(t, strings.HasPrefix(code, ellipsisMarker), "no leading marker at the span start")
	assert.True(t, strings.HasSuffix(code, ellipsisMarker))
}

func TestGovernSpan_CharTruncationWinsOverWindow(t *testing.T) {
	t.Parallel()

	span := SyntaxSpan{StartLine: 1, EndLine: 300, Covered: []int{150}}
	lines := spanLines(span)

	code, _, _, truncated, windowed := governSpan(span, lines, Limits{
		MaxBlockChars: 50,
		MaxBlockLines: 150,
		WindowRadius:  8,
	})

	assert.True(t, truncated)
	assert.False(t, windowed)
	assert.NotContains(t, code, ellipsisMarker)
}
