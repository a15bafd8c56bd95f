package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the single-file-component splitter:
// - Extract script content with correct starting line numbers
// - Map the lang attribute to a parser extension
// - Handle multiple script sections (setup + options API)
// - Return nothing for markup without script sections

func TestVueSplitter_SingleScript(t *testing.T) {
	t.Parallel()

	source := "<template>\n  <div/>\n</template>\n<script lang=\"ts\">\nexport default {};\n</script>\n"
	blocks := NewVueSplitter().Split(source)

	require.Len(t, blocks, 1)
	assert.Equal(t, ".ts", blocks[0].Ext)
	assert.Equal(t, 4, blocks[0].StartLine)
	assert.Contains(t, blocks[0].Source, "export default {};")
}

func TestVueSplitter_DefaultLang(t *testing.T) {
	t.Parallel()

	source := "<script>\nconst x = 1;\n</script>\n"
	blocks := NewVueSplitter().Split(source)

	require.Len(t, blocks, 1)
	assert.Equal(t, ".js", blocks[0].Ext)
	assert.Equal(t, 1, blocks[0].StartLine)
}

func TestVueSplitter_MultipleScripts(t *testing.T) {
	t.Parallel()

	source := "<script setup lang=\"ts\">\nconst a = 1;\n</script>\n<template><div/></template>\n<script lang=\"ts\">\nexport default {};\n</script>\n"
	blocks := NewVueSplitter().Split(source)

	require.Len(t, blocks, 2)
	assert.Equal(t, 1, blocks[0].StartLine)
	assert.Equal(t, 5, blocks[1].StartLine)
	assert.Contains(t, blocks[0].Source, "const a = 1;")
	assert.Contains(t, blocks[1].Source, "export default {};")
}

func TestVueSplitter_NoScript(t *testing.T) {
	t.Parallel()

	blocks := NewVueSplitter().Split("<template>\n  <div/>\n</template>\n")
	assert.Empty(t, blocks)
}
