package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for rendering:
// - Numbered rendering shows prefix, line number, and content per record
// - Hunk headers render verbatim with no number column
// - Range extraction honors the radius and clips to available lines
// - Removed lines stay attached to their kept neighbors

func TestRenderNumbered(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,2 +1,2 @@\n keep\n-old\n+new"
	rendered := RenderNumbered(Parse(patch, "a.ts", "a.ts"))

	lines := strings.Split(strings.TrimRight(rendered, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "@@ -1,2 +1,2 @@", lines[0])
	assert.Equal(t, "     1  keep", lines[1])
	assert.Equal(t, "-    1  old", lines[2])
	assert.Equal(t, "+    2  new", lines[3])
}

func TestLinesInRange_Radius(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,6 +1,6 @@\n l1\n l2\n l3\n l4\n l5\n l6"
	parsed := Parse(patch, "a.ts", "a.ts")

	got := LinesInRange(parsed, 3, 3, 1)
	require.Len(t, got, 3)
	assert.Equal(t, "l2", got[0].Content)
	assert.Equal(t, "l4", got[2].Content)
}

func TestLinesInRange_ClipsToAvailable(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,2 +1,2 @@\n l1\n l2"
	parsed := Parse(patch, "a.ts", "a.ts")

	got := LinesInRange(parsed, 1, 99, 5)
	require.Len(t, got, 2)
}

func TestLinesInRange_KeepsAttachedRemovals(t *testing.T) {
	t.Parallel()

	patch := "@@ -1,3 +1,3 @@\n l1\n-dropped\n+replaced\n l3"
	parsed := Parse(patch, "a.ts", "a.ts")

	got := LinesInRange(parsed, 1, 3, 0)
	require.Len(t, got, 4)
	assert.Equal(t, Removed, got[1].Kind)
	assert.Equal(t, "dropped", got[1].Content)
}
