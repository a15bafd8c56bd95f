package parsers

import (
	"context"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// parseWithGrammar runs one tree-sitter parse attempt under a wall-clock
// budget. Tree-sitter cannot be preempted mid-parse, so the budget is a
// best-effort guard: on timeout the caller proceeds immediately and the
// abandoned parse is closed in the background once it completes.
func parseWithGrammar(ctx context.Context, grammar *sitter.Language, source []byte, timeout time.Duration) (*sitter.Tree, error) {
	done := make(chan *sitter.Tree, 1)
	go func() {
		parser := sitter.NewParser()
		defer parser.Close()
		parser.SetLanguage(grammar)
		done <- parser.Parse(source, nil)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case tree := <-done:
		return tree, nil
	case <-timer.C:
		go discardLateTree(done)
		return nil, ErrParseTimeout
	case <-ctx.Done():
		go discardLateTree(done)
		return nil, ctx.Err()
	}
}

func discardLateTree(done chan *sitter.Tree) {
	if tree := <-done; tree != nil {
		tree.Close()
	}
}

// usableTree reports whether a parse attempt produced a tree worth walking.
// Intra-file ERROR nodes are tolerated; only a nil tree or a root that is
// itself an error counts as failure.
func usableTree(tree *sitter.Tree) bool {
	if tree == nil {
		return false
	}
	root := tree.RootNode()
	return root != nil && root.Kind() != "ERROR"
}

// nodeText extracts the text content of a tree-sitter node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// NodeStartLine returns a node's 1-based start line.
func NodeStartLine(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// NodeEndLine returns a node's 1-based end line.
func NodeEndLine(node *sitter.Node) int {
	return int(node.EndPosition().Row) + 1
}

// NodeName resolves a display name for a block-level node: the explicit
// "name" field if present, else the enclosing variable-declarator name (for
// function expressions assigned to a variable), else the property key of an
// enclosing pair, else "anonymous".
func NodeName(node *sitter.Node, source []byte) string {
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		return nodeText(nameNode, source)
	}

	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind() {
		case "variable_declarator", "assignment_expression", "assignment":
			if left := parent.ChildByFieldName("name"); left != nil {
				return nodeText(left, source)
			}
			if left := parent.ChildByFieldName("left"); left != nil {
				return nodeText(left, source)
			}
		case "pair", "property", "field_definition", "public_field_definition":
			if key := parent.ChildByFieldName("key"); key != nil {
				return nodeText(key, source)
			}
		case "statement_block", "block", "program", "module", "class_body":
			// Left the expression context without finding a binding.
			return "anonymous"
		}
	}
	return "anonymous"
}
