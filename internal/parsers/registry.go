package parsers

import (
	"context"
	"strings"
	"time"
)

// Registry routes file extensions to their grammar and owns the parse
// contract: first attempt with the extension's full grammar, one retry with
// the reduced-capability grammar, wall-clock timeout on both. Extensions
// outside the registry are not a fallback case; callers short-circuit them
// to zero blocks before invoking Parse.
type Registry struct {
	languages map[string]*Language
}

// NewRegistry creates a registry covering the supported grammar set.
func NewRegistry() *Registry {
	ts := newTypeScriptLanguage()
	tsx := newTSXLanguage()
	py := newPythonLanguage()
	rs := newRustLanguage()
	cl := newCLanguage()
	jv := newJavaLanguage()
	ph := newPHPLanguage()
	rb := newRubyLanguage()

	return &Registry{
		languages: map[string]*Language{
			".ts":   ts,
			".tsx":  tsx,
			".js":   tsx,
			".jsx":  tsx,
			".mjs":  tsx,
			".cjs":  tsx,
			".py":   py,
			".rs":   rs,
			".c":    cl,
			".h":    cl,
			".java": jv,
			".php":  ph,
			".rb":   rb,
		},
	}
}

// Supported reports whether the extension has a structural parser.
func (r *Registry) Supported(ext string) bool {
	_, ok := r.languages[strings.ToLower(ext)]
	return ok
}

// LanguageFor returns the language entry for an extension.
func (r *Registry) LanguageFor(ext string) (*Language, bool) {
	lang, ok := r.languages[strings.ToLower(ext)]
	return lang, ok
}

// Parse parses a source fragment for the given extension. The fragment need
// not be syntactically complete: tree-sitter recovers around local errors
// and a partial tree is preferred over failure. Returns ErrParseTimeout when
// the wall-clock budget elapses and ErrParseFailed when neither grammar
// attempt yields a usable tree.
func (r *Registry) Parse(ctx context.Context, source []byte, ext string, timeout time.Duration) (*Result, error) {
	lang, ok := r.LanguageFor(ext)
	if !ok {
		return nil, ErrParseFailed
	}

	tree, err := parseWithGrammar(ctx, lang.primary, source, timeout)
	if err == nil && usableTree(tree) {
		return &Result{Language: lang.name, Source: source, tree: tree}, nil
	}
	if tree != nil {
		tree.Close()
	}
	if err == ErrParseTimeout || ctx.Err() != nil {
		// A fragment that blew the budget once will blow it again; do not
		// retry with the lenient grammar.
		if err == nil {
			err = ctx.Err()
		}
		return nil, err
	}

	if lang.lenient == nil {
		return nil, ErrParseFailed
	}

	tree, err = parseWithGrammar(ctx, lang.lenient, source, timeout)
	if err == nil && usableTree(tree) {
		return &Result{Language: lang.name, Source: source, tree: tree}, nil
	}
	if tree != nil {
		tree.Close()
	}
	if err == ErrParseTimeout {
		return nil, err
	}
	return nil, ErrParseFailed
}
