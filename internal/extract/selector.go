package extract

import (
	"sort"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/diffscope/internal/parsers"
)

// workItem is one entry of the explicit traversal stack. Carrying the depth
// and class context on the stack keeps depth limiting first-class instead of
// relying on recursion and exception-style unwinding.
type workItem struct {
	node        *sitter.Node
	depth       int
	insideClass bool
}

// collectSpans walks the tree with an explicit stack, collecting every
// block-level node whose line span intersects at least one changed line.
// Changed line numbers must be sorted and in the same coordinate system as
// the tree. When any item exceeds maxDepth the traversal aborts, keeping the
// spans already collected; the second return value reports that abort so the
// caller can surface a warning.
func collectSpans(result *parsers.Result, lang *parsers.Language, changed []int, maxDepth int) ([]SyntaxSpan, bool) {
	root := result.Root()
	if root == nil {
		return nil, false
	}

	var spans []SyntaxSpan
	stack := []workItem{{node: root, depth: 0}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.depth > maxDepth {
			return spans, true
		}

		inside := item.insideClass
		if kind, ok := lang.BlockKind(item.node.Kind()); ok {
			start := parsers.NodeStartLine(item.node)
			end := parsers.NodeEndLine(item.node)
			if covered := coveredLines(changed, start, end); len(covered) > 0 {
				if kind == parsers.KindFunction && inside {
					kind = parsers.KindMethod
				}
				spans = append(spans, SyntaxSpan{
					StartLine: start,
					EndLine:   end,
					Kind:      kind,
					Name:      parsers.NodeName(item.node, result.Source),
					Covered:   covered,
				})
			}
			if kind == parsers.KindClass {
				inside = true
			}
		}

		// Push children in reverse so they pop in source order, keeping the
		// traversal deterministic for a fixed input.
		for i := int(item.node.ChildCount()) - 1; i >= 0; i-- {
			child := item.node.Child(uint(i))
			if child == nil {
				continue
			}
			stack = append(stack, workItem{
				node:        child,
				depth:       item.depth + 1,
				insideClass: inside,
			})
		}
	}

	return spans, false
}

// coveredLines returns the subset of the sorted changed lines falling inside
// [start,end].
func coveredLines(changed []int, start, end int) []int {
	lo := sort.SearchInts(changed, start)
	hi := sort.SearchInts(changed, end+1)
	if lo >= hi {
		return nil
	}
	out := make([]int, hi-lo)
	copy(out, changed[lo:hi])
	return out
}

// reduceMinimal reduces collected spans to the minimal non-overlapping
// covering set: spans are considered smallest first (ties broken by start
// line, then traversal order) and accepted only when they cover a changed
// line no accepted span covers yet and are not contained in an accepted
// span. This prefers an inner method over its enclosing class and the
// smallest function over an ancestor function. The tie-break is an explicit
// rule, not a traversal artifact.
func reduceMinimal(spans []SyntaxSpan) []SyntaxSpan {
	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := spans[order[a]], spans[order[b]]
		if sa.size() != sb.size() {
			return sa.size() < sb.size()
		}
		if sa.StartLine != sb.StartLine {
			return sa.StartLine < sb.StartLine
		}
		return order[a] < order[b]
	})

	covered := make(map[int]bool)
	var accepted []SyntaxSpan

	for _, idx := range order {
		span := spans[idx]

		coversNew := false
		for _, line := range span.Covered {
			if !covered[line] {
				coversNew = true
				break
			}
		}
		if !coversNew {
			continue
		}

		contained := false
		for _, a := range accepted {
			if a.contains(span) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}

		for _, line := range span.Covered {
			covered[line] = true
		}
		accepted = append(accepted, span)
	}

	sort.SliceStable(accepted, func(a, b int) bool {
		return accepted[a].StartLine < accepted[b].StartLine
	})
	return accepted
}
