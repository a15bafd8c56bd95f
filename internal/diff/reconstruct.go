package diff

import "strings"

// Reconstruction is a best-effort flat source text assembled from a parsed
// diff, suitable only as parser input. It interleaves context and added lines
// and omits removed lines, hunk headers, file headers, and blank lines, so
// its own line numbering differs from the new file's. NewLineFor maps each
// reconstructed line (1-based index-1) back to its new-file line number.
type Reconstruction struct {
	Source     string
	NewLineFor []int
}

// Reconstruct derives parser input from the diff's context and added lines.
// Returns ok=false when nothing remains, signaling the caller to skip
// structural analysis for this file.
func Reconstruct(d *ParsedDiff) (*Reconstruction, bool) {
	var lines []string
	var mapping []int

	for _, line := range d.Lines {
		if line.Kind == Removed || line.HunkHeader || isFileHeader(line) {
			continue
		}
		if strings.TrimSpace(line.Content) == "" {
			continue
		}
		lines = append(lines, line.Content)
		mapping = append(mapping, line.NewLineNo)
	}

	if len(lines) == 0 {
		return nil, false
	}

	return &Reconstruction{
		Source:     strings.Join(lines, "\n"),
		NewLineFor: mapping,
	}, true
}

// NewLineAt translates a 1-based reconstructed line number to a new-file line
// number. Returns 0 for out-of-range input.
func (r *Reconstruction) NewLineAt(reconLine int) int {
	if reconLine < 1 || reconLine > len(r.NewLineFor) {
		return 0
	}
	return r.NewLineFor[reconLine-1]
}

// ReconLineFor translates a new-file line number to its 1-based reconstructed
// line number, or 0 when the line is not present in the reconstruction
// (removed, blank, or outside every hunk).
func (r *Reconstruction) ReconLineFor(newLine int) int {
	for i, n := range r.NewLineFor {
		if n == newLine {
			return i + 1
		}
	}
	return 0
}

// LineCount returns the number of reconstructed lines.
func (r *Reconstruction) LineCount() int {
	return len(r.NewLineFor)
}

// Slice returns reconstructed lines start..end (1-based, inclusive), clipped.
func (r *Reconstruction) Slice(start, end int) []string {
	lines := strings.Split(r.Source, "\n")
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return nil
	}
	return lines[start-1 : end]
}
