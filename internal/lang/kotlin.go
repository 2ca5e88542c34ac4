package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

// Kinds specific to Kotlin.
const (
	KindDataClass       model.Kind = "data_class"
	KindSealedClass     model.Kind = "sealed_class"
	KindSealedInterface model.Kind = "sealed_interface"
	KindValueClass      model.Kind = "value_class"
	KindFunInterface    model.Kind = "fun_interface"
	KindObject          model.Kind = "object"
	KindCompanion       model.Kind = "companion"
	KindProperty        model.Kind = "property"
)

// kotlinMods deliberately omits `fun` and `enum`, which have dedicated rules.
const kotlinMods = `(?:(?:public|private|protected|internal|open|final|abstract|sealed|override|lateinit|const|data|inline|noinline|crossinline|suspend|infix|operator|tailrec|external|inner|value|annotation|actual|expect)\s+)*`

func init() {
	register(&Analyzer{
		Name:       "kotlin",
		Extensions: []string{".kt"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			TripleQuotes:      []string{`"""`},
			Quotes:            `"'`,
		},
		Kinds: []model.Kind{
			KindAnnotation, model.KindEnum, KindDataClass, KindSealedClass,
			KindSealedInterface, KindValueClass, KindFunInterface,
			model.KindClass, model.KindInterface, KindCompanion, KindObject,
			KindTypealias, model.KindConst, model.KindFunction, KindProperty,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^import\s+([^\s]+)`)},
		},
		Rules: []Rule{
			// Qualified class shapes must precede the generic class rule or
			// they would be shadowed by it.
			{Kind: KindAnnotation, Pattern: regexp.MustCompile(`^` + kotlinMods + `annotation\s+class\s+(\w+)`)},
			{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^` + kotlinMods + `enum\s+class\s+(\w+)`)},
			{Kind: KindDataClass, Pattern: regexp.MustCompile(`^` + kotlinMods + `data\s+class\s+(\w+)`)},
			{Kind: KindSealedClass, Pattern: regexp.MustCompile(`^` + kotlinMods + `sealed\s+class\s+(\w+)`)},
			{Kind: KindSealedInterface, Pattern: regexp.MustCompile(`^` + kotlinMods + `sealed\s+interface\s+(\w+)`)},
			{Kind: KindValueClass, Pattern: regexp.MustCompile(`^` + kotlinMods + `value\s+class\s+(\w+)`)},
			{Kind: KindFunInterface, Pattern: regexp.MustCompile(`^` + kotlinMods + `fun\s+interface\s+(\w+)`)},
			{Kind: model.KindClass, Pattern: regexp.MustCompile(`^` + kotlinMods + `class\s+(\w+)`)},
			{Kind: model.KindInterface, Pattern: regexp.MustCompile(`^` + kotlinMods + `interface\s+(\w+)`)},
			{
				Kind:    KindCompanion,
				Pattern: regexp.MustCompile(`^companion\s+object(?:\s+(\w+))?`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					if m[1] == "" {
						return "Companion", KindCompanion, true
					}
					return m[1], KindCompanion, true
				},
			},
			{Kind: KindObject, Pattern: regexp.MustCompile(`^` + kotlinMods + `object\s+(\w+)`)},
			{Kind: KindTypealias, Pattern: regexp.MustCompile(`^` + kotlinMods + `typealias\s+(\w+)`)},
			{Kind: model.KindConst, Pattern: regexp.MustCompile(`^` + kotlinMods + `const\s+val\s+(\w+)`)},
			{
				Kind:    model.KindFunction,
				Pattern: regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s+)*` + kotlinMods + `fun\s+(?:<[^>]+>\s+)?(?:[\w<>,\s]+\.)?(\w+)\s*(?:<[^>]+>)?\s*\(`),
				Exclude: set("if", "for", "while", "when", "catch", "return", "throw", "try", "else"),
			},
			{
				Kind:         KindProperty,
				TopLevelOnly: true,
				Pattern:      regexp.MustCompile(`^(?:@\w+(?:\([^)]*\))?\s+)*` + kotlinMods + `(?:val|var)\s+(?:<[^>]+>\s+)?(\w+)\s*(?::\s*[^=]+)?(?:\s*=|\s*$|\s*by\s+)`),
			},
		},
	})
}
