package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"
)

// newPHPLanguage builds the PHP language entry.
func newPHPLanguage() *Language {
	return &Language{
		name:    "php",
		primary: sitter.NewLanguage(php.LanguagePHP()),
		blockKinds: map[string]string{
			"function_definition":                    KindFunction,
			"method_declaration":                     KindMethod,
			"class_declaration":                      KindClass,
			"interface_declaration":                  KindClass,
			"trait_declaration":                      KindClass,
			"anonymous_function_creation_expression": KindFunction,
			"arrow_function":                         KindFunction,
		},
	}
}
