package lang

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpeel/codeatlas/internal/model"
)

func TestRegisterRejectsUndeclaredRuleKind(t *testing.T) {
	t.Parallel()
	assert.PanicsWithValue(t, `lang: bogus-plain rule emits undeclared kind "enum"`, func() {
		register(&Analyzer{
			Name:  "bogus-plain",
			Kinds: []model.Kind{model.KindClass},
			Rules: []Rule{
				{Kind: model.KindEnum, Pattern: regexp.MustCompile(`^enum\s+(\w+)`)},
			},
		})
	})
}

func TestRegisterRejectsUndeclaredMakeKind(t *testing.T) {
	t.Parallel()
	assert.PanicsWithValue(t, `lang: bogus-make rule emits undeclared kind "struct"`, func() {
		register(&Analyzer{
			Name:  "bogus-make",
			Kinds: []model.Kind{model.KindClass},
			Rules: []Rule{
				{
					Kind:      model.KindClass,
					Pattern:   regexp.MustCompile(`^(class|struct)\s+(\w+)`),
					MakeKinds: []model.Kind{model.KindClass, model.KindStruct},
					Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
						if m[1] == "struct" {
							return m[2], model.KindStruct, true
						}
						return m[2], model.KindClass, true
					},
				},
			},
		})
	})
}

func TestRegisterValidatesMakeRuleKindFallback(t *testing.T) {
	t.Parallel()
	// A Make rule without MakeKinds is held to its Kind, so an undeclared
	// Kind cannot slip through behind the callback.
	assert.Panics(t, func() {
		register(&Analyzer{
			Name:  "bogus-fallback",
			Kinds: []model.Kind{model.KindClass},
			Rules: []Rule{
				{
					Kind:    model.KindTrait,
					Pattern: regexp.MustCompile(`^trait\s+(\w+)`),
					Make: func(fs *FileState, m []string) (string, model.Kind, bool) {
						return m[1], model.KindTrait, true
					},
				},
			},
		})
	})
}

// Not parallel: a successful register mutates the shared registry.
func TestRegisterSkipsDiscardRules(t *testing.T) {
	assert.NotPanics(t, func() {
		register(&Analyzer{
			Name:  "discard-only",
			Kinds: nil,
			Rules: []Rule{
				{Discard: true, Pattern: regexp.MustCompile(`^ignore`)},
			},
		})
	})
	delete(Analyzers, "discard-only")
}
