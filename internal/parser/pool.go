// Package parser wraps go-tree-sitter with per-language parser and query
// pools, grounded on the teacher's internal/parser (standardbeagle/lci):
// the same lazy, mutex-guarded setup-per-extension pattern, trimmed to the
// languages this project supports and generalized to return a raw
// *tree_sitter.Tree plus the language's compiled query rather than
// extracting symbols inline — extraction is internal/extractor's job here.
package parser

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// languageSetup binds one language's tree-sitter Language and the query
// used by the extractor to pull symbol captures out of a parsed tree; the
// language's Parser is kept separately in Pool.parsers.
type languageSetup struct {
	language *tree_sitter.Language
	query    *tree_sitter.Query
}

// Pool lazily initializes one parser+query pair per language and reuses
// them across Parse calls. A single *tree_sitter.Parser is not safe for
// concurrent use, so Pool runs every parse under its mutex, which
// serializes parses across all languages — the same discipline the
// teacher's parserMutex enforces around its parsers map.
type Pool struct {
	mu       sync.Mutex
	setups   map[string]*languageSetup // language name -> setup
	initFns  map[string]func() (*tree_sitter.Language, string, error)
	inited   map[string]bool
	parsers  map[string]*tree_sitter.Parser // one reusable *Parser per language
}

// NewPool builds a pool with every supported language registered for lazy
// initialization; none of the cgo-backed grammars are loaded until first
// use.
func NewPool() *Pool {
	p := &Pool{
		setups:  make(map[string]*languageSetup),
		initFns: make(map[string]func() (*tree_sitter.Language, string, error)),
		inited:  make(map[string]bool),
		parsers: make(map[string]*tree_sitter.Parser),
	}
	for _, lang := range supportedLanguages {
		p.initFns[lang.name] = lang.init
	}
	return p
}

// Parse parses content as the given language, returning the tree and the
// query to run captures against. Callers must call tree.Close() when done.
func (p *Pool) Parse(language string, content []byte) (*tree_sitter.Tree, *tree_sitter.Query, error) {
	setup, parser, err := p.languageFor(language)
	if err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	tree := parser.Parse(content, nil)
	p.mu.Unlock()

	if tree == nil {
		return nil, nil, cgerrors.New(cgerrors.ParseFailure, "parse", nil)
	}
	return tree, setup.query, nil
}

// languageFor returns the (lazily initialized) setup and a dedicated
// parser instance for language.
func (p *Pool) languageFor(language string) (*languageSetup, *tree_sitter.Parser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.inited[language] {
		initFn, ok := p.initFns[language]
		if !ok {
			return nil, nil, cgerrors.New(cgerrors.LanguageUnsupported, "parse", nil)
		}
		lang, queryStr, err := initFn()
		if err != nil {
			return nil, nil, cgerrors.New(cgerrors.LanguageUnsupported, "parse", err)
		}
		query, queryErr := tree_sitter.NewQuery(lang, queryStr)
		// tree-sitter's Go binding has returned a typed-nil error in past
		// releases even on success; treat a non-nil query as the source of
		// truth the way the teacher does.
		if query == nil {
			return nil, nil, cgerrors.New(cgerrors.LanguageUnsupported, "parse", queryErr)
		}
		p.setups[language] = &languageSetup{language: lang, query: query}

		parser := tree_sitter.NewParser()
		if err := parser.SetLanguage(lang); err != nil {
			return nil, nil, cgerrors.New(cgerrors.LanguageUnsupported, "parse", err)
		}
		p.parsers[language] = parser
		p.inited[language] = true
	}

	return p.setups[language], p.parsers[language], nil
}

// SupportedLanguages lists every language name the pool can initialize.
func SupportedLanguages() []string {
	names := make([]string, len(supportedLanguages))
	for i, l := range supportedLanguages {
		names[i] = l.name
	}
	return names
}
