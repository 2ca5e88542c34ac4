package lang

import (
	"regexp"
	"strings"

	"github.com/mpeel/codeatlas/internal/model"
)

func init() {
	register(&Analyzer{
		Name:       "rust",
		Extensions: []string{".rs"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			Quotes:            `"`,
		},
		Kinds: []model.Kind{
			model.KindFunction, model.KindStruct, model.KindEnum,
			model.KindTrait, model.KindClass,
		},
		Imports: []ImportRule{
			// `use a::b::c;` records the crate-level segment.
			{
				Pattern: regexp.MustCompile(`^use\s+([^;]+);`),
				Transform: func(s string) string {
					return strings.TrimSpace(strings.SplitN(s, "::", 2)[0])
				},
			},
		},
		Rules: []Rule{
			{Kind: model.KindFunction, Pattern: regexp.MustCompile(`^(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`)},
			{Kind: model.KindStruct, Pattern: regexp.MustCompile(`^(?:pub\s+)?struct\s+(\w+)`)},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^(?:pub\s+)?enum\s+(\w+)`)},
			{Kind: model.KindTrait, Pattern: regexp.MustCompile(`^(?:pub\s+)?trait\s+(\w+)`)},
			{
				Kind:    model.KindClass,
				Pattern: regexp.MustCompile(`^impl(?:\s*<[^>]+>)?\s+(\w+)`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					return "impl " + m[1], model.KindClass, true
				},
			},
		},
	})
}
