package parsers

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// newTypeScriptLanguage builds the TypeScript language entry. The first parse
// attempt uses the plain TypeScript grammar; the reduced-capability retry
// uses the TSX grammar, which accepts the JSX-flavored superset.
func newTypeScriptLanguage() *Language {
	return &Language{
		name:       "typescript",
		primary:    sitter.NewLanguage(typescript.LanguageTypescript()),
		lenient:    sitter.NewLanguage(typescript.LanguageTSX()),
		blockKinds: typeScriptBlockKinds(),
	}
}

// newTSXLanguage builds the TSX language entry, used for .tsx files and as
// the first attempt for JavaScript-family files (the TSX grammar parses JS
// and JSX directly). The retry drops JSX syntax.
func newTSXLanguage() *Language {
	return &Language{
		name:       "tsx",
		primary:    sitter.NewLanguage(typescript.LanguageTSX()),
		lenient:    sitter.NewLanguage(typescript.LanguageTypescript()),
		blockKinds: typeScriptBlockKinds(),
	}
}

func typeScriptBlockKinds() map[string]string {
	return map[string]string{
		"function_declaration":           KindFunction,
		"generator_function_declaration": KindFunction,
		"function_expression":            KindFunction,
		"generator_function":             KindFunction,
		"arrow_function":                 KindFunction,
		"method_definition":              KindMethod,
		"class_declaration":              KindClass,
		"class":                          KindClass,
		"abstract_class_declaration":     KindClass,
	}
}
