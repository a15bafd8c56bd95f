package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// newPythonLanguage builds the Python language entry. Function definitions
// nested inside a class are reclassified as methods by the selector.
func newPythonLanguage() *Language {
	return &Language{
		name:    "python",
		primary: sitter.NewLanguage(python.Language()),
		blockKinds: map[string]string{
			"function_definition": KindFunction,
			"class_definition":    KindClass,
			"lambda":              KindFunction,
		},
	}
}
