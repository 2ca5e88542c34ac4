// Package lang provides the per-language symbol analyzers: a registry mapping
// file extensions to analyzers, a stateful line classifier, and a generic
// rule-table interpreter that turns cleaned lines into symbol records.
package lang

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/mpeel/codeatlas/internal/model"
)

// ImportRule extracts one import target from a cleaned line.
type ImportRule struct {
	Pattern   *regexp.Regexp
	Transform func(string) string // optional post-processing of the capture
}

// ImportBlock describes a multi-line import group (Go's `import ( ... )`).
type ImportBlock struct {
	Open  *regexp.Regexp
	Close string
	Entry *regexp.Regexp
}

// Rule recognizes one declaration shape. Rules are tried in table order and
// the first pattern match wins the line, so specific shapes (sealed class,
// data class, a framework base class) must be listed before their generic
// supertype shape.
type Rule struct {
	Kind    model.Kind
	Pattern *regexp.Regexp

	// TopLevelOnly restricts the rule to lines with zero leading indentation
	// on the raw, unstripped line. Used for module-scope const/var shapes.
	TopLevelOnly bool

	// Exclude rejects the captured name after the shape matched. The line is
	// still consumed: a rejected candidate does not fall through to later
	// rules.
	Exclude map[string]struct{}

	// Discard consumes the line without emitting a symbol (e.g. Dart default
	// constructors, which would otherwise be misread as functions).
	Discard bool

	// Make overrides symbol construction from the submatches. Returning
	// ok=false rejects the candidate. When nil, the symbol name is the first
	// capture group and the kind is Rule.Kind.
	Make func(fs *FileState, m []string) (name string, kind model.Kind, ok bool)

	// MakeKinds declares every kind Make may return when it is not just
	// Rule.Kind. Registration validates them against the analyzer's kind set
	// the same way it validates Kind.
	MakeKinds []model.Kind
}

// FileState is per-file scratch shared by rule callbacks within one file.
type FileState struct {
	// TypeNames collects declared type names; Java uses it to suppress
	// constructors, which would otherwise match the method shape.
	TypeNames map[string]struct{}

	// PendingWrapper is set by Swift's @propertyWrapper marker and applies to
	// the next type declaration.
	PendingWrapper bool
}

// Analyzer is one language's configuration: lexical syntax, the ordered rule
// table, and import/export extraction.
type Analyzer struct {
	Name       string // language tag reported in the file table
	Extensions []string
	Syntax     Syntax
	Kinds      []model.Kind // closed set of kinds this analyzer may emit

	Imports     []ImportRule
	ImportGroup *ImportBlock
	Exports     []*regexp.Regexp

	Rules []Rule

	// AfterLine runs once per cleaned line after rule matching; matched is
	// nil when no rule claimed the line. Swift uses it to expire the
	// @propertyWrapper marker.
	AfterLine func(fs *FileState, stripped string, matched *Rule)

	// Analyze overrides the line-based engine entirely. Python sets this to
	// a tree-sitter walk; it must honor the same FileTable contract.
	Analyze func(path string, source []byte) model.FileTable
}

// Analyzers maps language names to their configuration.
// Populated by init() functions in the per-language files.
var Analyzers = map[string]*Analyzer{}

var extensionMap map[string]*Analyzer
var extensionOnce sync.Once

// register validates an analyzer and adds it to the registry. A rule whose
// kind is not declared by the analyzer is a programming error.
func register(a *Analyzer) {
	declared := make(map[model.Kind]struct{}, len(a.Kinds))
	for _, k := range a.Kinds {
		declared[k] = struct{}{}
	}
	for _, r := range a.Rules {
		if r.Discard {
			continue
		}
		kinds := r.MakeKinds
		if len(kinds) == 0 {
			kinds = []model.Kind{r.Kind}
		}
		for _, k := range kinds {
			if _, ok := declared[k]; !ok {
				panic(fmt.Sprintf("lang: %s rule emits undeclared kind %q", a.Name, k))
			}
		}
	}
	Analyzers[a.Name] = a
}

func getExtensionMap() map[string]*Analyzer {
	extensionOnce.Do(func() {
		extensionMap = make(map[string]*Analyzer)
		for _, a := range Analyzers {
			for _, ext := range a.Extensions {
				extensionMap[ext] = a
			}
		}
	})
	return extensionMap
}

// ForExtension returns the analyzer for a file extension, or nil if the
// extension is unsupported. ".dart" resolves to the plain Dart analyzer; the
// aggregator overrides that with the Flutter analyzer when the project's
// pubspec declares a Flutter SDK dependency.
func ForExtension(ext string) *Analyzer {
	return getExtensionMap()[ext]
}

// Supported reports whether any analyzer claims the extension.
func Supported(ext string) bool {
	return getExtensionMap()[ext] != nil
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
