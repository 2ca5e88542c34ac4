package lang

import (
	"regexp"
	"strings"

	"github.com/mpeel/codeatlas/internal/model"
)

// Kinds specific to Swift.
const (
	KindProtocol        model.Kind = "protocol"
	KindExtension       model.Kind = "extension"
	KindActor           model.Kind = "actor"
	KindTypealias       model.Kind = "typealias"
	KindPropertyWrapper model.Kind = "property_wrapper"
)

const swiftMods = `(?:(?:public|private|fileprivate|internal|open|final|static|class|override|mutating|nonmutating|required|convenience|lazy|weak|unowned|@\w+)\s+)*`

// swiftTypeRule builds a rule for a Swift type keyword; when a
// @propertyWrapper attribute preceded the declaration, wrapperKind replaces
// the normal kind.
func swiftTypeRule(keyword string, kind, wrapperKind model.Kind) Rule {
	pattern := regexp.MustCompile(`^` + swiftMods + keyword + `\s+(\w+)`)
	return Rule{
		Kind:      kind,
		Pattern:   pattern,
		MakeKinds: []model.Kind{kind, wrapperKind},
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			if fs.PendingWrapper {
				fs.PendingWrapper = false
				return m[1], wrapperKind, true
			}
			return m[1], kind, true
		},
	}
}

func swiftPlainRule(kind model.Kind, pattern string, name func(m []string) string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Kind:    kind,
		Pattern: re,
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			fs.PendingWrapper = false
			return name(m), kind, true
		},
	}
}

func init() {
	register(&Analyzer{
		Name:       "swift",
		Extensions: []string{".swift"},
		Syntax: Syntax{
			LineComments:      []string{"//"},
			BlockCommentOpen:  "/*",
			BlockCommentClose: "*/",
			TripleQuotes:      []string{`"""`},
			Quotes:            `"`,
		},
		Kinds: []model.Kind{
			model.KindClass, model.KindStruct, model.KindEnum, KindProtocol,
			KindExtension, KindActor, KindTypealias, model.KindFunction,
			KindPropertyWrapper,
		},
		Imports: []ImportRule{
			{Pattern: regexp.MustCompile(`^import\s+(\w+)`)},
		},
		Rules: []Rule{
			{
				Kind:    KindPropertyWrapper,
				Pattern: regexp.MustCompile(`^@propertyWrapper$`),
				Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
					fs.PendingWrapper = true
					return "", "", false
				},
			},
			swiftTypeRule("class", model.KindClass, KindPropertyWrapper),
			swiftTypeRule("struct", model.KindStruct, KindPropertyWrapper),
			swiftPlainRule(model.KindEnum, `^`+swiftMods+`enum\s+(\w+)`, firstGroup),
			swiftPlainRule(KindProtocol, `^`+swiftMods+`protocol\s+(\w+)`, firstGroup),
			swiftPlainRule(KindExtension, `^`+swiftMods+`extension\s+(\w+)`, func(m []string) string {
				return "extension " + m[1]
			}),
			swiftPlainRule(KindActor, `^`+swiftMods+`actor\s+(\w+)`, firstGroup),
			swiftPlainRule(KindTypealias, `^`+swiftMods+`typealias\s+(\w+)\s*=`, firstGroup),
			swiftPlainRule(model.KindFunction, `^`+swiftMods+`init\s*[?(]`, func([]string) string {
				return "init"
			}),
			swiftPlainRule(model.KindFunction, `^`+swiftMods+`func\s+(\w+)`, firstGroup),
		},
		AfterLine: func(fs *FileState, stripped string, matched *Rule) {
			// The wrapper attribute only survives attribute lines between it
			// and the type it decorates.
			if matched == nil && fs.PendingWrapper && !strings.HasPrefix(stripped, "@") {
				fs.PendingWrapper = false
			}
		},
	})
}

func firstGroup(m []string) string { return m[1] }
