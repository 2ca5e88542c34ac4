package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

func init() {
	register(&Analyzer{
		Name:       "php",
		Extensions: []string{".php"},
		Syntax: Syntax{
			LineComments:      []string{"//", "#"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			Quotes:            `"'`,
		},
		Kinds: []model.Kind{
			model.KindClass, model.KindInterface, model.KindTrait,
			model.KindEnum, model.KindFunction, model.KindConst,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^use\s+([\w\\]+)`)},
			{Pattern: regexp.MustCompile(`^require(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`)},
			{Pattern: regexp.MustCompile(`^include(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`)},
		},
		Rules: []Rule{
			{Kind: model.KindClass, Pattern: regexp.MustCompile(`^(?:abstract\s+|final\s+|readonly\s+)*class\s+(\w+)`)},
			{Kind: model.KindInterface, Pattern: regexp.MustCompile(`^interface\s+(\w+)`)},
			{Kind: model.KindTrait, Pattern: regexp.MustCompile(`^trait\s+(\w+)`)},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^enum\s+(\w+)`)},
			{Kind: model.KindConst, Pattern: regexp.MustCompile(`^const\s+([A-Z_][A-Z0-9_]*)\s*=`)},
			{
				Kind:    model.KindFunction,
				Pattern: regexp.MustCompile(`^(?:(?:public|private|protected|static|final|abstract)\s+)*function\s+&?(\w+)\s*\(`),
			},
		},
	})
}
