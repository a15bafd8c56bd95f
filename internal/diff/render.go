package diff

import (
	"fmt"
	"strings"
)

// RenderNumbered reconstitutes a readable "prefix line-number content" view of
// the parsed diff for prompt assembly. Hunk headers and file headers are
// rendered verbatim without a number column.
func RenderNumbered(d *ParsedDiff) string {
	var b strings.Builder
	for _, line := range d.Lines {
		if line.HunkHeader || isFileHeader(line) {
			b.WriteString(line.Content)
			b.WriteString("\n")
			continue
		}

		switch line.Kind {
		case Added:
			fmt.Fprintf(&b, "+ %4d  %s\n", line.NewLineNo, line.Content)
		case Removed:
			fmt.Fprintf(&b, "- %4d  %s\n", line.OldLineNo, line.Content)
		default:
			fmt.Fprintf(&b, "  %4d  %s\n", line.NewLineNo, line.Content)
		}
	}
	return b.String()
}

// LinesInRange returns the diff lines overlapping the [start,end] new-file
// line window, widened by radius context lines on each side and clipped to
// the available lines. Removed lines have no new-file number; they are kept
// when the preceding line was kept so deletions stay attached to their
// surroundings.
func LinesInRange(d *ParsedDiff, start, end, radius int) []Line {
	lo := start - radius
	hi := end + radius
	if lo < 1 {
		lo = 1
	}

	var out []Line
	prevKept := false
	for _, line := range d.Lines {
		if line.HunkHeader || isFileHeader(line) {
			prevKept = false
			continue
		}
		keep := false
		switch line.Kind {
		case Removed:
			keep = prevKept
		default:
			keep = line.NewLineNo >= lo && line.NewLineNo <= hi
		}
		if keep {
			out = append(out, line)
		}
		prevKept = keep
	}
	return out
}

func isFileHeader(line Line) bool {
	return line.Kind == Context &&
		(strings.HasPrefix(line.Content, "---") || strings.HasPrefix(line.Content, "+++"))
}
