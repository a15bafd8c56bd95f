package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// newCLanguage builds the C language entry. The C grammar parses headers and
// most C-flavored sources; there is no reduced-capability retry.
func newCLanguage() *Language {
	return &Language{
		name:    "c",
		primary: sitter.NewLanguage(c.Language()),
		blockKinds: map[string]string{
			"function_definition": KindFunction,
		},
	}
}
