package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

func init() {
	register(&Analyzer{
		Name:       "go",
		Extensions: []string{".go"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			// Raw string literals span lines like a multi-line string.
			TripleQuotes: []string{"`"},
			Quotes:       `"'`,
		},
		Kinds: []model.Kind{
			model.KindFunction, model.KindStruct, model.KindInterface,
			model.KindType, model.KindConst,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^import\s+(?:\w+\s+|\.\s+)?"([^"]+)"`)},
		},
		ImportGroup: &ImportBlock{
			Open:  regexp.MustCompile(`^import\s*\($`),
			Close: ")",
			Entry: regexp.MustCompile(`"([^"]+)"`),
		},
		Rules: []Rule{
			{Kind: model.KindFunction, Pattern: regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?(\w+)`)},
			{Kind: model.KindStruct, Pattern: regexp.MustCompile(`^type\s+(\w+).*\s+struct\s*\{`)},
			{Kind: model.KindInterface, Pattern: regexp.MustCompile(`^type\s+(\w+).*\s+interface\s*\{`)},
			{Kind: model.KindType, Pattern: regexp.MustCompile(`^type\s+(\w+)\s+=?\s*(?:\w+|\[|func|chan|map)`)},
			{Kind: model.KindConst, Pattern: regexp.MustCompile(`^(?:const|var)\s+(\w+)\s+`)},
		},
	})
}
