package parsers

import (
	"regexp"
	"strings"
)

// ScriptBlock is one script section lifted out of a markup-embedded-script
// file. StartLine is the 1-based line of the enclosing file where the script
// content begins, so spans found inside the block can be re-based onto
// whole-file line numbers.
type ScriptBlock struct {
	Source    string
	StartLine int
	Ext       string
}

// ScriptSplitter extracts script sections from a markup file such as a Vue
// single-file component. It is an optional capability injected at
// construction time; callers treat its absence as a hard parse failure and
// route the file to the textual fallback.
type ScriptSplitter interface {
	Split(source string) []ScriptBlock
}

// vueSplitter extracts <script> sections from single-file components. Good
// enough for context extraction; it does not validate the surrounding
// template markup.
type vueSplitter struct{}

// NewVueSplitter returns the default single-file-component script splitter.
func NewVueSplitter() ScriptSplitter {
	return vueSplitter{}
}

var (
	scriptOpenPattern  = regexp.MustCompile(`(?i)<script([^>]*)>`)
	scriptClosePattern = regexp.MustCompile(`(?i)</script>`)
	scriptLangPattern  = regexp.MustCompile(`(?i)lang\s*=\s*["']?(\w+)["']?`)
)

// Split returns every <script>…</script> section with its line offset and
// the extension implied by the lang attribute (default .js).
func (vueSplitter) Split(source string) []ScriptBlock {
	var blocks []ScriptBlock
	rest := source
	consumed := 0

	for {
		open := scriptOpenPattern.FindStringSubmatchIndex(rest)
		if open == nil {
			break
		}
		contentStart := open[1]
		attrs := rest[open[2]:open[3]]

		closeRel := scriptClosePattern.FindStringIndex(rest[contentStart:])
		if closeRel == nil {
			break
		}
		content := rest[contentStart : contentStart+closeRel[0]]

		// Script content starts on the line after the opening tag when the
		// tag is followed by a newline; the line count below handles both.
		startLine := strings.Count(source[:consumed+contentStart], "\n") + 1

		blocks = append(blocks, ScriptBlock{
			Source:    content,
			StartLine: startLine,
			Ext:       scriptExt(attrs),
		})

		advance := contentStart + closeRel[1]
		consumed += advance
		rest = rest[advance:]
	}

	return blocks
}

func scriptExt(attrs string) string {
	m := scriptLangPattern.FindStringSubmatch(attrs)
	if m == nil {
		return ".js"
	}
	switch strings.ToLower(m[1]) {
	case "ts", "typescript":
		return ".ts"
	case "tsx":
		return ".tsx"
	case "jsx":
		return ".jsx"
	default:
		return ".js"
	}
}
