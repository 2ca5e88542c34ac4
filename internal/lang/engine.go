package lang

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mpeel/codeatlas/internal/model"
)

// AnalyzeFile produces the symbol table for one file. path is the
// repo-relative path recorded in the result; it is never read from disk here.
// Undecodable content yields an empty table with zero lines rather than an
// error: a single bad file must not abort the run.
func (a *Analyzer) AnalyzeFile(path string, source []byte) model.FileTable {
	if bytes.IndexByte(source, 0) >= 0 {
		return model.FileTable{Path: path, Language: a.Name}
	}
	if !utf8.Valid(source) {
		source = bytes.ToValidUTF8(source, []byte("�"))
	}

	if a.Analyze != nil {
		return a.Analyze(path, source)
	}
	return a.analyzeLines(path, source)
}

func (a *Analyzer) analyzeLines(path string, source []byte) model.FileTable {
	lines := splitLines(string(source))

	ft := model.FileTable{
		Path:     path,
		Language: a.Name,
		Lines:    len(lines),
	}

	importSet := make(map[string]struct{})
	exportSet := make(map[string]struct{})
	fs := &FileState{TypeNames: make(map[string]struct{})}

	var st ScanState
	inGroup := false

	for i, raw := range lines {
		var cleaned string
		cleaned, st = a.Syntax.Classify(raw, st)

		stripped := strings.TrimSpace(cleaned)
		if stripped == "" {
			continue
		}

		// Multi-line import group (Go). Inside the group every line is an
		// entry until the closer; nothing else can match there.
		if inGroup {
			if strings.HasPrefix(stripped, a.ImportGroup.Close) {
				inGroup = false
				continue
			}
			if m := a.ImportGroup.Entry.FindStringSubmatch(stripped); m != nil {
				importSet[m[1]] = struct{}{}
			}
			continue
		}
		if a.ImportGroup != nil && a.ImportGroup.Open.MatchString(stripped) {
			inGroup = true
			continue
		}

		// Imports and declarations are independent passes over the same
		// cleaned line: an import match does not suppress declaration rules.
		// Every import rule runs over the whole line, so a line carrying two
		// require() calls records both targets.
		for _, ir := range a.Imports {
			for _, m := range ir.Pattern.FindAllStringSubmatch(stripped, -1) {
				target := strings.TrimSpace(m[1])
				if ir.Transform != nil {
					target = ir.Transform(target)
				}
				if target != "" {
					importSet[target] = struct{}{}
				}
			}
		}

		for _, ep := range a.Exports {
			if m := ep.FindStringSubmatch(stripped); m != nil && len(m) > 1 && m[1] != "" {
				exportSet[strings.TrimSpace(m[1])] = struct{}{}
			}
		}

		matched := a.matchRules(fs, raw, stripped, i+1, &ft)

		if a.AfterLine != nil {
			a.AfterLine(fs, stripped, matched)
		}
	}

	ft.Imports = sortedSlice(importSet)
	ft.Exports = sortedSlice(exportSet)
	return ft
}

// matchRules runs the declaration rule table against one cleaned line. The
// first pattern match claims the line, even when the candidate is then
// rejected by an exclusion set; at most one symbol is emitted per line.
func (a *Analyzer) matchRules(fs *FileState, raw, stripped string, lineNo int, ft *model.FileTable) *Rule {
	indented := len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t')

	for idx := range a.Rules {
		r := &a.Rules[idx]
		if r.TopLevelOnly && indented {
			continue
		}
		m := r.Pattern.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		if r.Discard {
			return r
		}

		name := ""
		kind := r.Kind
		if r.Make != nil {
			var ok bool
			name, kind, ok = r.Make(fs, m)
			if !ok {
				return r
			}
		} else {
			name = m[1]
			if _, excluded := r.Exclude[name]; excluded {
				return r
			}
		}
		if name == "" {
			return r
		}

		ft.Symbols = append(ft.Symbols, model.Symbol{
			Name: name,
			Kind: kind,
			Line: lineNo,
		})
		return r
	}
	return nil
}

// splitLines splits on newlines without producing a trailing empty line for
// newline-terminated files, matching physical line counts.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func sortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
