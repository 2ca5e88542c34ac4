package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpeel/codeatlas/internal/model"
)

func TestDetectCyclesTriangle(t *testing.T) {
	t.Parallel()
	internal := map[string][]string{
		"a.py": {"b"},
		"b.py": {"c"},
		"c.py": {"a"},
	}

	cycles, res := DetectCycles(internal)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.py", "b.py", "c.py", "a.py"}, cycles[0])
	assert.Equal(t, 3, res.Resolved)
	assert.Zero(t, res.Unresolved)
}

func TestDetectCyclesPair(t *testing.T) {
	t.Parallel()
	internal := map[string][]string{
		"a.py": {"b"},
		"b.py": {"a"},
	}

	cycles, _ := DetectCycles(internal)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.py", "b.py", "a.py"}, cycles[0])
}

func TestDetectCyclesEmpty(t *testing.T) {
	t.Parallel()
	cycles, res := DetectCycles(nil)
	assert.Empty(t, cycles)
	assert.Zero(t, res.Resolved)
}

func TestDetectCyclesDiamondIsNotACycle(t *testing.T) {
	t.Parallel()
	// a -> b -> d, a -> c -> d: convergent but acyclic.
	internal := map[string][]string{
		"a.py": {"b", "c"},
		"b.py": {"d"},
		"c.py": {"d"},
		"d.py": {"missing"},
	}

	cycles, res := DetectCycles(internal)

	assert.Empty(t, cycles)
	assert.Equal(t, 4, res.Resolved)
	assert.Equal(t, 1, res.Unresolved)
	assert.Equal(t, []string{"missing"}, res.Dropped)
}

func TestDetectCyclesSelfImport(t *testing.T) {
	t.Parallel()
	internal := map[string][]string{
		"a.py": {"a"},
	}

	cycles, _ := DetectCycles(internal)

	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"a.py", "a.py"}, cycles[0])
}

func TestDetectCyclesReportsNodeSetOnce(t *testing.T) {
	t.Parallel()
	// Two files importing each other under both names still yields one
	// cycle over the pair.
	internal := map[string][]string{
		"pkg/util.py":    {".helpers"},
		"pkg/helpers.py": {".util"},
	}

	cycles, _ := DetectCycles(internal)

	require.Len(t, cycles, 1)
	assert.Len(t, cycles[0], 3)
}

func TestDetectCyclesRelativeImportResolution(t *testing.T) {
	t.Parallel()
	internal := map[string][]string{
		"src/a.ts": {"./b"},
		"src/b.ts": {"./a"},
	}

	cycles, res := DetectCycles(internal)

	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, cycles[0][:2])
	assert.Equal(t, 2, res.Resolved)
}

func TestInternalImportsClassification(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "utils.py"), []byte("x = 1\n"), 0o644))

	files := []model.FileTable{
		{
			Path: "app.py",
			Imports: []string{
				"./sibling",     // relative
				"myproject.core", // project-name prefix
				"utils",          // resolvable on disk
				"requests",       // external
				"@scope/pkg",     // scoped, external
				"some/path",      // path-shaped, external
			},
		},
	}

	internal := InternalImports("myproject", root, files)

	require.Contains(t, internal, "app.py")
	assert.Equal(t, []string{"./sibling", "myproject.core", "utils"}, internal["app.py"])
}

func TestInternalImportsEmptyWhenNoneMatch(t *testing.T) {
	t.Parallel()
	files := []model.FileTable{
		{Path: "app.py", Imports: []string{"requests", "numpy"}},
	}

	internal := InternalImports("myproject", t.TempDir(), files)

	assert.Empty(t, internal)
}
