package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single line of a unified diff.
type LineKind string

const (
	// Added lines exist only in the new file.
	Added LineKind = "added"
	// Removed lines exist only in the old file.
	Removed LineKind = "removed"
	// Context lines exist in both files.
	Context LineKind = "context"
)

// Line is one record of a parsed unified diff. Added lines carry only a
// new-file line number, removed lines only an old-file line number, and
// context lines carry both. A zero line number means "no such side".
type Line struct {
	Content    string   `json:"content" yaml:"content"`
	Kind       LineKind `json:"kind" yaml:"kind"`
	OldLineNo  int      `json:"old_line,omitempty" yaml:"old_line,omitempty"`
	NewLineNo  int      `json:"new_line,omitempty" yaml:"new_line,omitempty"`
	HunkHeader bool     `json:"hunk_header,omitempty" yaml:"hunk_header,omitempty"`
}

// FileDiff is one changed file as delivered by the Git integration layer.
type FileDiff struct {
	OldPath string `json:"old_path" yaml:"old_path"`
	NewPath string `json:"new_path" yaml:"new_path"`
	Patch   string `json:"patch" yaml:"patch"`
}

// ParsedDiff is the ordered line-record view of a single file's patch.
type ParsedDiff struct {
	OldPath string
	NewPath string
	Lines   []Line
}

// hunkHeaderPattern matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
var hunkHeaderPattern = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse turns a unified-diff patch into an ordered list of line records with
// running old/new line numbers. Hunk headers are themselves emitted as
// context records anchored at the hunk's new start line, so the record count
// exceeds the patch's content line count by one per hunk. Malformed input is
// tolerated: lines that fit no known shape are preserved as context records
// with a best-effort line number so no content is silently dropped. Declared
// hunk counts are not validated against the actual line counts.
func Parse(patch, oldPath, newPath string) *ParsedDiff {
	parsed := &ParsedDiff{
		OldPath: oldPath,
		NewPath: newPath,
	}

	oldLine := 0
	newLine := 0

	for _, raw := range strings.Split(patch, "\n") {
		if m := hunkHeaderPattern.FindStringSubmatch(raw); m != nil {
			oldLine = atoiDefault(m[1], 0)
			newLine = atoiDefault(m[3], 0)
			// The header stays in the stream as a context record anchored to
			// the new start line, so it survives later filtering.
			parsed.Lines = append(parsed.Lines, Line{
				Content:    raw,
				Kind:       Context,
				NewLineNo:  newLine,
				HunkHeader: true,
			})
			continue
		}

		switch {
		case strings.HasPrefix(raw, "+++"), strings.HasPrefix(raw, "---"):
			// File header lines consume neither counter.
			parsed.Lines = append(parsed.Lines, Line{
				Content:   raw,
				Kind:      Context,
				NewLineNo: newLine,
			})
		case strings.HasPrefix(raw, "+"):
			parsed.Lines = append(parsed.Lines, Line{
				Content:   raw[1:],
				Kind:      Added,
				NewLineNo: newLine,
			})
			newLine++
		case strings.HasPrefix(raw, "-"):
			parsed.Lines = append(parsed.Lines, Line{
				Content:   raw[1:],
				Kind:      Removed,
				OldLineNo: oldLine,
			})
			oldLine++
		case strings.HasPrefix(raw, " "), raw == "":
			content := raw
			if content != "" {
				content = content[1:]
			}
			parsed.Lines = append(parsed.Lines, Line{
				Content:   content,
				Kind:      Context,
				OldLineNo: oldLine,
				NewLineNo: newLine,
			})
			oldLine++
			newLine++
		default:
			// Mis-tagged header fragment or similar; keep it with a
			// best-effort line number and do not consume the counters.
			parsed.Lines = append(parsed.Lines, Line{
				Content:   raw,
				Kind:      Context,
				NewLineNo: newLine,
			})
		}
	}

	return parsed
}

// AddedLineNumbers returns the sorted new-file line numbers of all added
// lines. This is the "changed line" set the block selector works from.
func (d *ParsedDiff) AddedLineNumbers() []int {
	var nums []int
	for _, line := range d.Lines {
		if line.Kind == Added {
			nums = append(nums, line.NewLineNo)
		}
	}
	return nums
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
