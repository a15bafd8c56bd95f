package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// GenerateUnified creates a unified diff from old/new file content. Output
// format matches git diff so the rest of the pipeline sees the same shape it
// would receive from a hosting API.
func GenerateUnified(filename, oldContent, newContent string) string {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "a/" + filename,
		ToFile:   "b/" + filename,
		Context:  3,
	}
	result, _ := difflib.GetUnifiedDiffString(ud)
	return result
}

// SplitSections splits a multi-file unified diff into per-file sections,
// using "diff --git" boundaries and falling back to "--- " file headers for
// diffs produced without git metadata.
func SplitSections(full string) []string {
	if strings.Contains(full, "diff --git") {
		return splitOn(full, "diff --git")
	}
	return splitOn(full, "--- ")
}

func splitOn(full, marker string) []string {
	parts := strings.Split(full, marker)
	sections := make([]string, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if i > 0 {
			part = marker + part
		}
		sections = append(sections, part)
	}
	return sections
}

// SectionPaths extracts the old/new file paths from a single file section's
// "---"/"+++" headers, stripping the conventional a/ and b/ prefixes.
// Missing headers yield empty strings; /dev/null stays as-is so callers can
// recognize creations and deletions.
func SectionPaths(section string) (oldPath, newPath string) {
	for _, line := range strings.Split(section, "\n") {
		switch {
		case strings.HasPrefix(line, "--- "):
			oldPath = stripPathPrefix(strings.TrimSpace(line[4:]), "a/")
		case strings.HasPrefix(line, "+++ "):
			newPath = stripPathPrefix(strings.TrimSpace(line[4:]), "b/")
		case strings.HasPrefix(line, "@@"):
			return oldPath, newPath
		}
	}
	return oldPath, newPath
}

func stripPathPrefix(path, prefix string) string {
	if path == "/dev/null" {
		return path
	}
	return strings.TrimPrefix(path, prefix)
}
