package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

// Kinds specific to Dart.
const (
	KindAbstractClass  model.Kind = "abstract_class"
	KindBaseClass      model.Kind = "base_class"
	KindFinalClass     model.Kind = "final_class"
	KindInterfaceClass model.Kind = "interface_class"
	KindMixinClass     model.Kind = "mixin_class"
	KindMixin          model.Kind = "mixin"
	KindExtensionType  model.Kind = "extension_type"
	KindTypedef        model.Kind = "typedef"
	KindFactory        model.Kind = "factory"
	KindConstructor    model.Kind = "constructor"
	KindGetter         model.Kind = "getter"
	KindSetter         model.Kind = "setter"
	KindFinal          model.Kind = "final"
)

const dartMods = `(?:(?:abstract|base|final|interface|sealed|mixin|late|required|covariant|static|const|external|factory)\s+)*`

var dartSyntax = Syntax{
	LineComments:      []string{"//"},
	BlockCommentOpen:  "/*",
	BlockCommentClose: "*/",
	TripleQuotes:      []string{`"""`, `'''`},
	Quotes:            `"'`,
}

// dartExcludedNames rejects keywords and modifiers that the loose callable
// shapes would otherwise report as functions (e.g. `const Result()`).
var dartExcludedNames = set(
	"if", "for", "while", "switch", "catch", "return", "throw", "try", "else", "main",
	"const", "final", "var", "late", "static", "abstract", "base", "sealed",
	"interface", "mixin", "required", "covariant", "external", "factory",
	"class", "enum", "extension", "typedef", "import", "export", "part", "library",
)

// dartExcludedReturns rejects keywords captured in return-type position.
var dartExcludedReturns = set(
	"return", "if", "for", "while", "switch", "catch", "throw", "try", "else",
	"const", "final", "var", "late", "new", "this", "super", "await", "yield",
	"class", "enum", "extension", "typedef", "import", "export", "library", "part",
	"abstract", "base", "sealed", "interface", "mixin", "extends", "implements", "with",
)

var dartImports = []ImportRule{
	{Pattern: regexp.MustCompile(`^import\s+['"]([^'"]+)['"]`)},
}

// dartDirectiveRules consume export/part/library directives so the callable
// shapes below cannot misread them.
var dartDirectiveRules = []Rule{
	{Discard: true, Pattern: regexp.MustCompile(`^export\s+['"][^'"]+['"]`)},
	{Discard: true, Pattern: regexp.MustCompile(`^part\s+of\s+`)},
	{Discard: true, Pattern: regexp.MustCompile(`^part\s+['"][^'"]+['"]`)},
	{Discard: true, Pattern: regexp.MustCompile(`^library\s+\w+(?:\.\w+)*`)},
}

// dartMemberRules covers everything below the class level; the Dart and
// Flutter analyzers share them.
var dartMemberRules = []Rule{
	{Kind: KindMixin, Pattern: regexp.MustCompile(`^` + dartMods + `mixin\s+(\w+)(?:\s+on\s+|\s*\{)`)},
	{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^enum\s+(\w+)`)},
	{
		Kind:    KindExtension,
		Pattern: regexp.MustCompile(`^extension\s+(\w+)?(?:<[^>]+>)?\s+on\s+(\w+)`),
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			if m[1] != "" {
				return m[1], KindExtension, true
			}
			return "on " + m[2], KindExtension, true
		},
	},
	{Kind: KindTypedef, Pattern: regexp.MustCompile(`^typedef\s+(\w+)`)},
	{
		Kind:    KindFactory,
		Pattern: regexp.MustCompile(`^factory\s+(\w+)\s*(?:\.\s*(\w+))?\s*\(`),
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			if m[2] != "" {
				return m[1] + "." + m[2], KindFactory, true
			}
			return m[1] + ".factory", KindFactory, true
		},
	},
	{
		Kind:    KindConstructor,
		Pattern: regexp.MustCompile(`^(?:const\s+|factory\s+)?(\w+)\s*\.\s*(\w+)\s*\(`),
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			return m[1] + "." + m[2], KindConstructor, true
		},
	},
	// Default constructors carry no information of their own but must be
	// consumed before the function shapes misread them.
	{Discard: true, Pattern: regexp.MustCompile(`^(?:const\s+|external\s+)?(\w+)\s*\([^)]*\)\s*(?::|;|\{)`)},
	{Kind: KindGetter, Pattern: regexp.MustCompile(`^` + dartMods + `(?:\w+(?:<[^>]+>)?\??)\s+get\s+(\w+)`)},
	{Kind: KindSetter, Pattern: regexp.MustCompile(`^` + dartMods + `set\s+(\w+)\s*\(`)},
	{
		Kind:    model.KindFunction,
		Pattern: regexp.MustCompile(`^` + dartMods + `void\s+(\w+)\s*(?:<[^>]+>)?\s*\(`),
		Exclude: dartExcludedNames,
	},
	{
		Kind:    model.KindFunction,
		Pattern: regexp.MustCompile(`^` + dartMods + `((?:Future<[^>]+>|Stream<[^>]+>|FutureOr<[^>]+>|\w+(?:<[^>]+>)?)\??)\s+(\w+)\s*(?:<[^>]+>)?\s*\(`),
		Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
			if _, bad := dartExcludedReturns[m[1]]; bad {
				return "", "", false
			}
			if _, bad := dartExcludedNames[m[2]]; bad {
				return "", "", false
			}
			return m[2], model.KindFunction, true
		},
	},
	{Kind: model.KindConst, TopLevelOnly: true, Pattern: regexp.MustCompile(`^const\s+(?:\w+(?:<[^>]+>)?\s+)?(\w+)\s*=`)},
	{Kind: KindFinal, TopLevelOnly: true, Pattern: regexp.MustCompile(`^final\s+(?:\w+(?:<[^>]+>)?\s+)?(\w+)\s*=`)},
}

func dartKinds() []model.Kind {
	return []model.Kind{
		model.KindClass, KindAbstractClass, KindBaseClass, KindFinalClass,
		KindInterfaceClass, KindSealedClass, KindMixinClass, KindMixin,
		model.KindEnum, KindExtension, KindExtensionType, KindTypedef,
		KindFactory, KindConstructor, KindGetter, KindSetter,
		model.KindFunction, model.KindConst, KindFinal,
	}
}

func init() {
	rules := append([]Rule{}, dartDirectiveRules...)
	rules = append(rules,
		// Extension types and qualified class shapes come before the plain
		// class rule, which would otherwise shadow them (its modifier prefix
		// also matches theirs).
		Rule{Kind: KindExtensionType, Pattern: regexp.MustCompile(`^` + dartMods + `extension\s+type\s+(\w+)`)},
		Rule{Kind: KindMixinClass, Pattern: regexp.MustCompile(`^mixin\s+class\s+(\w+)`)},
		Rule{Kind: KindSealedClass, Pattern: regexp.MustCompile(`^sealed\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: KindInterfaceClass, Pattern: regexp.MustCompile(`^interface\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: KindFinalClass, Pattern: regexp.MustCompile(`^final\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: KindBaseClass, Pattern: regexp.MustCompile(`^base\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: KindAbstractClass, Pattern: regexp.MustCompile(`^abstract\s+` + dartMods + `class\s+(\w+)`)},
		Rule{Kind: model.KindClass, Pattern: regexp.MustCompile(`^` + dartMods + `class\s+(\w+)`)},
	)
	rules = append(rules, dartMemberRules...)

	register(&Analyzer{
		Name:       "dart",
		Extensions: []string{".dart"},
		Syntax:     dartSyntax,
		Kinds:      dartKinds(),
		Imports:    dartImports,
		Rules:      rules,
	})
}
