package lang

import (
	"regexp"
	"strings"

	"github.com/mpeel/codeatlas/internal/model"
)

// KindNamespace is specific to C++.
const KindNamespace model.Kind = "namespace"

var cppStmtKeywords = set("if", "while", "for", "switch", "return", "else")

func init() {
	register(&Analyzer{
		Name:       "cpp",
		Extensions: []string{".c", ".cpp", ".h", ".hpp", ".cc", ".cxx", ".hxx", ".hh"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			Quotes:            `"'`,
		},
		Kinds: []model.Kind{
			model.KindClass, model.KindStruct, model.KindEnum,
			KindNamespace, model.KindType, model.KindFunction,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^#include\s+["<]([^">]+)[">]`)},
		},
		Rules: []Rule{
			{
				Kind:      model.KindClass,
				Pattern:   regexp.MustCompile(`^(?:template\s*<[^>]*>\s*)?(class|struct)\s+(\w+)`),
				MakeKinds: []model.Kind{model.KindClass, model.KindStruct},
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					if m[1] == "struct" {
						return m[2], model.KindStruct, true
					}
					return m[2], model.KindClass, true
				},
			},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^enum\s+(?:class\s+)?(\w+)`)},
			{Kind: KindNamespace, Pattern: regexp.MustCompile(`^namespace\s+(\w+)`)},
			{Kind: model.KindType, Pattern: regexp.MustCompile(`^typedef\s+.*\s+(\w+)\s*;`)},
			{Kind: model.KindType, Pattern: regexp.MustCompile(`^using\s+(\w+)\s*=`)},
			{
				// Loose "return-type name(" shape. RE2 has no lookahead, so
				// statement keywords are filtered in the callback instead.
				Kind:    model.KindFunction,
				Pattern: regexp.MustCompile(`^((?:[\w:<>*&]+\s+)+)(\w+)\s*\(`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					first := strings.Fields(m[1])[0]
					if _, kw := cppStmtKeywords[first]; kw {
						return "", "", false
					}
					name := m[2]
					switch name {
					case "main", "if", "while", "for", "switch":
						return "", "", false
					}
					return name, model.KindFunction, true
				},
			},
		},
	})
}
