package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// newRubyLanguage builds the Ruby language entry.
func newRubyLanguage() *Language {
	return &Language{
		name:    "ruby",
		primary: sitter.NewLanguage(ruby.Language()),
		blockKinds: map[string]string{
			"method":           KindMethod,
			"singleton_method": KindMethod,
			"class":            KindClass,
			"module":           KindClass,
			"lambda":           KindFunction,
		},
	}
}
