package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Truncation markers left in governed block code. Machine-readable so the
// downstream result parser can recognize cut content.
const ellipsisMarker = "/* ... */"

// governSpan renders a selected span's source slice under the size ceilings.
// Outcomes in priority order: character truncation (protects against
// enormous single-line constructs such as minified code), line windowing
// around the changed lines (protects against long-but-normal functions), or
// verbatim emission. Character truncation and line windowing are mutually
// exclusive per block. Returned window bounds are in the span's own
// coordinate system.
func governSpan(span SyntaxSpan, lines []string, lim Limits) (code string, windowStart, windowEnd int, truncated, windowed bool) {
	windowStart, windowEnd = span.StartLine, span.EndLine
	code = strings.Join(lines, "\n")

	if lim.MaxBlockChars > 0 && len(code) > lim.MaxBlockChars {
		original := len(code)
		cut := lim.MaxBlockChars
		for cut > 0 && !utf8.RuneStart(code[cut]) {
			cut--
		}
		code = code[:cut] +
			fmt.Sprintf("\n[truncated: %d of %d chars]", cut, original)
		return code, windowStart, windowEnd, true, false
	}

	if lim.MaxBlockLines > 0 && len(lines) > lim.MaxBlockLines {
		windowStart, windowEnd = changeWindow(span, lim.WindowRadius, lim.MaxBlockLines)
		offset := span.StartLine
		slice := lines[windowStart-offset : windowEnd-offset+1]

		var b strings.Builder
		if windowStart > span.StartLine {
			b.WriteString(ellipsisMarker + "\n")
		}
		b.WriteString(strings.Join(slice, "\n"))
		if windowEnd < span.EndLine {
			b.WriteString("\n" + ellipsisMarker)
		}
		return b.String(), windowStart, windowEnd, false, true
	}

	return code, windowStart, windowEnd, false, false
}

// changeWindow computes a fixed-radius window spanning the min/max changed
// line within the span, clipped to the span's own bounds and capped at
// maxLines. Changed lines too far apart for one compliant window re-anchor
// on the first changed line; the emitted window never exceeds maxLines.
func changeWindow(span SyntaxSpan, radius, maxLines int) (start, end int) {
	minChanged := span.Covered[0]
	maxChanged := span.Covered[len(span.Covered)-1]

	start = minChanged - radius
	if start < span.StartLine {
		start = span.StartLine
	}
	end = maxChanged + radius
	if end > span.EndLine {
		end = span.EndLine
	}
	if end-start+1 <= maxLines {
		return start, end
	}

	end = minChanged + radius
	if end > span.EndLine {
		end = span.EndLine
	}
	if end-start+1 > maxLines {
		end = start + maxLines - 1
	}
	return start, end
}
