package parser

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_swift "github.com/alex-pinkus/tree-sitter-swift/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languageEntry pairs a language name with the function that lazily loads
// its grammar and hands back the query string used to extract symbols.
type languageEntry struct {
	name string
	init func() (*tree_sitter.Language, string, error)
}

// supportedLanguages lists the closed set of languages this build ships
// grammars for — the extension table in internal/config/languages.go maps
// file extensions onto these same names.
var supportedLanguages = []languageEntry{
	{"go", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_go.Language()), queryGo, nil
	}},
	{"javascript", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language()), queryJavaScript, nil
	}},
	{"typescript", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), queryTypeScript, nil
	}},
	{"python", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_python.Language()), queryPython, nil
	}},
	{"rust", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_rust.Language()), queryRust, nil
	}},
	{"java", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_java.Language()), queryJava, nil
	}},
	{"cpp", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language()), queryCpp, nil
	}},
	{"c", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_c.Language()), queryC, nil
	}},
	{"csharp", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language()), queryCSharp, nil
	}},
	{"php", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()), queryPHP, nil
	}},
	{"ruby", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_ruby.Language()), queryRuby, nil
	}},
	{"swift", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_swift.Language()), querySwift, nil
	}},
	{"kotlin", func() (*tree_sitter.Language, string, error) {
		return tree_sitter.NewLanguage(tree_sitter_kotlin.Language()), queryKotlin, nil
	}},
}
