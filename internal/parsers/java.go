package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// newJavaLanguage builds the Java language entry.
func newJavaLanguage() *Language {
	return &Language{
		name:    "java",
		primary: sitter.NewLanguage(java.Language()),
		blockKinds: map[string]string{
			"method_declaration":      KindMethod,
			"constructor_declaration": KindMethod,
			"class_declaration":       KindClass,
			"interface_declaration":   KindClass,
			"enum_declaration":        KindClass,
			"record_declaration":      KindClass,
			"lambda_expression":       KindFunction,
		},
	}
}
