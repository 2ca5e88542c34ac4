package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

// Kinds specific to Java.
const (
	KindRecord     model.Kind = "record"
	KindAnnotation model.Kind = "annotation"
)

// javaMods matches any run of declaration modifiers in any order.
const javaMods = `(?:(?:public|private|protected|static|final|abstract|synchronized|native|strictfp|default|sealed|non-sealed|transient|volatile)\s+)*`

var javaKeywords = set("if", "for", "while", "switch", "catch", "synchronized", "return", "throw", "new", "try", "else")

func init() {
	register(&Analyzer{
		Name:       "java",
		Extensions: []string{".java"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			TripleQuotes:      []string{`"""`},
			Quotes:            `"'`,
		},
		Kinds: []model.Kind{
			model.KindClass, model.KindInterface, model.KindEnum,
			KindRecord, KindAnnotation, model.KindConst, model.KindMethod,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^import\s+(?:static\s+)?([^;]+);`)},
		},
		Rules: []Rule{
			{
				Kind:    model.KindClass,
				Pattern: regexp.MustCompile(`^` + javaMods + `class\s+(\w+)`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					// Remember the type name so its constructors are not
					// reported again as methods.
					fs.TypeNames[m[1]] = struct{}{}
					return m[1], model.KindClass, true
				},
			},
			{Kind: model.KindInterface, Pattern: regexp.MustCompile(`^` + javaMods + `interface\s+(\w+)`)},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^` + javaMods + `enum\s+(\w+)`)},
			{
				Kind:    KindRecord,
				Pattern: regexp.MustCompile(`^` + javaMods + `record\s+(\w+)`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					fs.TypeNames[m[1]] = struct{}{}
					return m[1], KindRecord, true
				},
			},
			{Kind: KindAnnotation, Pattern: regexp.MustCompile(`^` + javaMods + `@interface\s+(\w+)`)},
			{Kind: model.KindConst, Pattern: regexp.MustCompile(`^` + javaMods + `[\w<>\[\]]+\s+([A-Z][A-Z0-9_]*)\s*=`)},
			{
				Kind:    model.KindMethod,
				Pattern: regexp.MustCompile(`^(?:@\w+\s+)*` + javaMods + `(?:<[^>]+>\s+)?[\w<>\[\],.\s]+\s+(\w+)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\s*[{;]`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					name := m[1]
					if _, kw := javaKeywords[name]; kw {
						return "", "", false
					}
					if _, ctor := fs.TypeNames[name]; ctor {
						return "", "", false
					}
					return name, model.KindMethod, true
				},
			},
		},
	})
}
