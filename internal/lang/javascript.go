package lang

import (
	"regexp"

	"github.com/mpeel/codeatlas/internal/model"
)

// jsSyntax is shared by the JavaScript and TypeScript analyzers. Template
// literals are treated as multi-line strings.
var jsSyntax = Syntax{
	LineComments:      []string{"//"},
	BlockCommentOpen:  "/*",
	BlockCommentClose: "*/",
	TripleQuotes:      []string{"`"},
	Quotes:            `"'`,
}

var jsImports = []ImportRule{
	{Pattern: regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`)},
	{Pattern: regexp.MustCompile(`import\s+['"]([^'"]+)['"]`)},
	{Pattern: regexp.MustCompile(`require\s*\(\s*['"]([^'"]+)['"]\s*\)`)},
}

var jsExports = []*regexp.Regexp{
	regexp.MustCompile(`export\s+(?:default\s+)?(?:class|function|const|let|var)\s+(\w+)`),
	regexp.MustCompile(`export\s*\{\s*([^}]+)\s*\}`),
}

var (
	jsClassRule = Rule{
		Kind:    model.KindClass,
		Pattern: regexp.MustCompile(`(?:export\s+)?(?:default\s+)?class\s+(\w+)`),
	}
	jsFunctionRule = Rule{
		Kind:    model.KindFunction,
		Pattern: regexp.MustCompile(`(?:export\s+)?(?:async\s+)?function\s+(\w+)`),
	}
	jsArrowRule = Rule{
		Kind:    model.KindFunction,
		Pattern: regexp.MustCompile(`(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\([^)]*\)\s*=>`),
	}
	// Class methods surface as plain callables; control-flow keywords and
	// anonymous `function(` match the same shape and are rejected by name.
	jsMethodRule = Rule{
		Kind:    model.KindFunction,
		Pattern: regexp.MustCompile(`^(?:(?:public|protected|private|static|abstract|async)\s+)*(\w+)\s*\(`),
		Exclude: set("if", "for", "while", "switch", "catch", "super", "function"),
	}
)

func init() {
	register(&Analyzer{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx"},
		Syntax:     jsSyntax,
		Kinds:      []model.Kind{model.KindClass, model.KindFunction},
		Imports:    jsImports,
		Exports:    jsExports,
		Rules: []Rule{
			jsClassRule,
			jsFunctionRule,
			jsArrowRule,
			jsMethodRule,
		},
	})
}
