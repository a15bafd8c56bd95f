package parsers

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parse failure taxonomy. All of these are recoverable: the caller routes
// them to the textual fallback extractor rather than failing the file.
var (
	// ErrParseFailed means no usable tree could be produced, even after the
	// reduced-capability retry.
	ErrParseFailed = errors.New("structural parse failed")

	// ErrParseTimeout means parsing exceeded its wall-clock budget.
	ErrParseTimeout = errors.New("structural parse timed out")

	// ErrNoScriptSplitter means a markup-embedded-script file was seen but no
	// script splitter was injected at construction time.
	ErrNoScriptSplitter = errors.New("script splitter unavailable")
)

// BlockKind classifies a syntax node that can serve as an extracted block.
const (
	KindFunction = "function"
	KindClass    = "class"
	KindMethod   = "method"
)

// Result is a successfully parsed source fragment. The tree may contain
// intra-file ERROR nodes; a partial tree is preferred over a hard failure.
// Callers must Close the result to release the underlying tree.
type Result struct {
	Language string
	Source   []byte
	tree     *sitter.Tree
}

// Root returns the root node of the parsed tree.
func (r *Result) Root() *sitter.Node {
	return r.tree.RootNode()
}

// Close releases the underlying tree-sitter tree.
func (r *Result) Close() {
	if r.tree != nil {
		r.tree.Close()
		r.tree = nil
	}
}

// Language describes how one grammar family is parsed and which of its node
// kinds form extractable blocks.
type Language struct {
	name    string
	primary *sitter.Language
	// lenient is the reduced-capability grammar tried once after a primary
	// failure. Nil when the language has no meaningful second attempt.
	lenient    *sitter.Language
	blockKinds map[string]string
}

// Name returns the language identifier (e.g. "typescript").
func (l *Language) Name() string {
	return l.name
}

// BlockKind reports whether the given tree-sitter node kind is a block-level
// construct, and if so whether it is a function, class, or method.
func (l *Language) BlockKind(nodeKind string) (string, bool) {
	kind, ok := l.blockKinds[nodeKind]
	return kind, ok
}
