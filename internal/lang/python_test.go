package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpeel/codeatlas/internal/model"
)

func TestPythonSymbols(t *testing.T) {
	t.Parallel()
	src := `import os
from collections import OrderedDict

CONSTANT = 1

@dataclass
class Point:
    """A 2D point."""

    def distance(self, other):
        """Euclidean distance."""
        return 0

def main(argv):
    pass
`
	ft := analyze(t, "python", "point.py", src)

	assert.Equal(t, "python", ft.Language)
	assert.Equal(t, []string{"collections", "os"}, ft.Imports)

	require.Len(t, ft.Symbols, 3)

	point := ft.Symbols[0]
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, model.KindClass, point.Kind)
	assert.Equal(t, 7, point.Line)
	assert.GreaterOrEqual(t, point.EndLine, 12)
	assert.Equal(t, []string{"dataclass"}, point.Annotations)
	assert.Equal(t, "A 2D point.", point.Doc)

	distance := ft.Symbols[1]
	assert.Equal(t, "distance", distance.Name)
	assert.Equal(t, model.KindMethod, distance.Kind)
	assert.Equal(t, 10, distance.Line)
	assert.Equal(t, []string{"other"}, distance.Parameters, "self is skipped")
	assert.Equal(t, "Euclidean distance.", distance.Doc)

	main := ft.Symbols[2]
	assert.Equal(t, "main", main.Name)
	assert.Equal(t, model.KindFunction, main.Kind)
	assert.Equal(t, []string{"argv"}, main.Parameters)
}

func TestPythonDeferredImportsCollected(t *testing.T) {
	t.Parallel()
	src := `import os

def build():
    import helpers
    from pkg.models import Thing
    return Thing()

class Repo:
    def load(self):
        if True:
            import sqlite3
        return None
`
	ft := analyze(t, "python", "deferred.py", src)

	assert.Equal(t, []string{"helpers", "os", "pkg.models", "sqlite3"}, ft.Imports)
	// Function bodies contribute imports only; locals never become symbols.
	assert.Equal(t, []string{"build", "Repo", "load"}, symbolNames(ft))
}

func TestPythonParameterCap(t *testing.T) {
	t.Parallel()
	src := "def wide(a, b, c, d, e, f, g, h, i, j, k, l):\n    pass\n"
	ft := analyze(t, "python", "wide.py", src)

	require.Len(t, ft.Symbols, 1)
	assert.Len(t, ft.Symbols[0].Parameters, maxParams)
	assert.Equal(t, "a", ft.Symbols[0].Parameters[0])
}

func TestPythonDocSummaryTruncation(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("x", maxDocLen+50)
	src := "def f():\n    \"\"\"" + long + "\"\"\"\n    pass\n"
	ft := analyze(t, "python", "doc.py", src)

	require.Len(t, ft.Symbols, 1)
	assert.Len(t, ft.Symbols[0].Doc, maxDocLen)
}

func TestPythonNestedFunctionsNotCollected(t *testing.T) {
	t.Parallel()
	src := `def outer():
    def inner():
        pass
    return inner
`
	ft := analyze(t, "python", "nested.py", src)

	require.Len(t, ft.Symbols, 1)
	assert.Equal(t, "outer", ft.Symbols[0].Name)
}

func TestPythonDecoratorWithArguments(t *testing.T) {
	t.Parallel()
	src := `@app.route("/users", methods=["GET"])
def list_users():
    pass
`
	ft := analyze(t, "python", "routes.py", src)

	require.Len(t, ft.Symbols, 1)
	assert.Equal(t, []string{"app.route"}, ft.Symbols[0].Annotations)
}
