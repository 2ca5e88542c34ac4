package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSyntax() Syntax {
	return Syntax{
		LineComments:      []string{"//"},
		BlockCommentOpen:  "/*",
		BlockCommentClose: "*/",
		TripleQuotes:      []string{`"""`},
		Quotes:            `"'`,
	}
}

func TestClassifyKeepsStringLiteralsIntact(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	for _, line := range []string{
		`url = "http://x"`,
		`s = "// not a comment"`,
		`s = "/* also not */"`,
		`s = "quote \" inside"`,
	} {
		cleaned, st := sx.Classify(line, ScanState{})
		assert.Equal(t, line, cleaned)
		assert.Equal(t, ScanState{}, st)
	}
}

func TestClassifyLineComment(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	cleaned, st := sx.Classify(`x = 1 // trailing`, ScanState{})
	assert.Equal(t, "x = 1 ", cleaned)
	assert.Equal(t, ScanState{}, st)
}

func TestClassifyBlockCommentSpanningLines(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	cleaned, st := sx.Classify("a /* start", ScanState{})
	assert.Equal(t, "a ", cleaned)
	require.True(t, st.InBlockComment)

	cleaned, st = sx.Classify("class Hidden {", st)
	assert.Empty(t, cleaned)
	require.True(t, st.InBlockComment)

	cleaned, st = sx.Classify("end */ b", st)
	assert.Equal(t, " b", cleaned)
	assert.False(t, st.InBlockComment)
}

func TestClassifyInlineBlockComment(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	cleaned, st := sx.Classify("a /* x */ b", ScanState{})
	assert.Equal(t, "a  b", cleaned)
	assert.Equal(t, ScanState{}, st)
}

func TestClassifyTripleQuoteSameLine(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	cleaned, st := sx.Classify(`doc = """hi there"""`, ScanState{})
	assert.Equal(t, `doc = ""`, cleaned)
	assert.Equal(t, ScanState{}, st)
}

func TestClassifyMultilineString(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	cleaned, st := sx.Classify(`x = """start`, ScanState{})
	assert.Equal(t, "x = ", cleaned)
	require.Equal(t, `"""`, st.StringDelim)

	cleaned, st = sx.Classify("still // inside", st)
	assert.Empty(t, cleaned)
	require.Equal(t, `"""`, st.StringDelim)

	cleaned, st = sx.Classify(`end""" + 1`, st)
	assert.Equal(t, " + 1", cleaned)
	assert.Equal(t, ScanState{}, st)
}

func TestClassifyCommentMarkerInsideStringNoTransition(t *testing.T) {
	t.Parallel()
	sx := testSyntax()

	// A block-comment opener inside a string must not open a comment.
	cleaned, st := sx.Classify(`s = "/*"; y = 2`, ScanState{})
	assert.Equal(t, `s = "/*"; y = 2`, cleaned)
	assert.Equal(t, ScanState{}, st)
}
