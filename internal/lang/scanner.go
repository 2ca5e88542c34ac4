package lang

import "strings"

// Syntax describes the lexical surface of a language as far as the line
// classifier needs it: comment markers and string delimiters.
type Syntax struct {
	LineComments      []string // markers that truncate the rest of a line, e.g. "//", "#"
	BlockCommentOpen  string   // "" when the language has no block comments
	BlockCommentClose string
	TripleQuotes      []string // multi-line string delimiters, e.g. `"""`, "'''"
	Quotes            string   // single-line string quote characters
}

// ScanState is the carry-over state between physical lines. The zero value
// means "in code". It is passed and returned by value so a single line can be
// classified in isolation during tests.
type ScanState struct {
	InBlockComment bool
	StringDelim    string // non-empty while inside a multi-line string
}

// Classify returns the code-only portion of one physical line and the state
// to carry into the next line. Comment text is removed; single-line string
// literals are kept intact in the output, but markers inside them never
// trigger a transition. String masking is applied before comment detection:
// reordering those checks corrupts lines like `url = "http://x"`.
func (sx *Syntax) Classify(line string, st ScanState) (string, ScanState) {
	var out strings.Builder
	rest := line

	for {
		switch {
		case st.StringDelim != "":
			idx := strings.Index(rest, st.StringDelim)
			if idx < 0 {
				return out.String(), st
			}
			rest = rest[idx+len(st.StringDelim):]
			st.StringDelim = ""

		case st.InBlockComment:
			idx := strings.Index(rest, sx.BlockCommentClose)
			if idx < 0 {
				return out.String(), st
			}
			rest = rest[idx+len(sx.BlockCommentClose):]
			st.InBlockComment = false

		default:
			var consumed int
			consumed, st = sx.scanCode(rest, st, &out)
			if consumed < len(rest) && (st.InBlockComment || st.StringDelim != "") {
				rest = rest[consumed:]
				continue
			}
			return out.String(), st
		}
	}
}

// scanCode walks a code-mode segment left to right. It returns the number of
// bytes consumed and the updated state; it stops early when a block comment
// or multi-line string opens and does not close on this line.
func (sx *Syntax) scanCode(s string, st ScanState, out *strings.Builder) (int, ScanState) {
	var quote byte // active single-line string quote, 0 when outside a string
	i := 0

	for i < len(s) {
		c := s[i]

		if quote != 0 {
			if c == '\\' && i+1 < len(s) {
				out.WriteByte(c)
				out.WriteByte(s[i+1])
				i += 2
				continue
			}
			if c == quote {
				quote = 0
			}
			out.WriteByte(c)
			i++
			continue
		}

		// Triple quotes are checked before single quotes so `"""` opens a
		// multi-line string rather than three empty ones.
		if tq := prefixOf(s[i:], sx.TripleQuotes); tq != "" {
			end := strings.Index(s[i+len(tq):], tq)
			if end < 0 {
				st.StringDelim = tq
				return i + len(tq), st
			}
			// Opened and closed on the same line: keep an empty literal as a
			// placeholder so surrounding code stays parseable.
			out.WriteByte(tq[0])
			out.WriteByte(tq[0])
			i += len(tq) + end + len(tq)
			continue
		}

		if marker := prefixOf(s[i:], sx.LineComments); marker != "" {
			return len(s), st
		}

		if sx.BlockCommentOpen != "" && strings.HasPrefix(s[i:], sx.BlockCommentOpen) {
			st.InBlockComment = true
			return i + len(sx.BlockCommentOpen), st
		}

		if strings.IndexByte(sx.Quotes, c) >= 0 {
			quote = c
		}
		out.WriteByte(c)
		i++
	}

	return len(s), st
}

func prefixOf(s string, candidates []string) string {
	for _, c := range candidates {
		if strings.HasPrefix(s, c) {
			return c
		}
	}
	return ""
}
