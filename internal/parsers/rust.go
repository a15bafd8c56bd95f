package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

// newRustLanguage builds the Rust language entry. Impl and trait blocks play
// the class role; functions inside them are reclassified as methods by the
// selector.
func newRustLanguage() *Language {
	return &Language{
		name:    "rust",
		primary: sitter.NewLanguage(rust.Language()),
		blockKinds: map[string]string{
			"function_item":      KindFunction,
			"impl_item":          KindClass,
			"trait_item":         KindClass,
			"closure_expression": KindFunction,
		},
	}
}
