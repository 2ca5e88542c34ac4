package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

func init() {
	register(&Analyzer{
		Name:       "typescript",
		Extensions: []string{".ts", ".tsx"},
		Syntax:     jsSyntax,
		Kinds: []model.Kind{
			model.KindClass, model.KindFunction, model.KindInterface,
			model.KindType, model.KindEnum,
		},
		Imports: jsImports,
		Exports: jsExports,
		Rules: []Rule{
			jsClassRule,
			jsFunctionRule,
			jsArrowRule,
			{Kind: model.KindInterface, Pattern: regexp.MustCompile(`(?:export\s+)?interface\s+(\w+)`)},
			{Kind: model.KindType, Pattern: regexp.MustCompile(`(?:export\s+)?type\s+(\w+)\s*=`)},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`(?:export\s+)?(?:const\s+)?enum\s+(\w+)`)},
			jsMethodRule,
		},
	})
}
