// Package report renders a ProjectAnalysis into its output formats: a dense
// Markdown digest and indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mpeel/codeatlas/internal/model"
)

// symbolPrefix maps common kinds to their one-letter tag; other kinds fall
// back to their upper-cased first letter.
var symbolPrefix = map[model.Kind]string{
	model.KindClass:     "C",
	model.KindFunction:  "F",
	model.KindMethod:    "M",
	model.KindInterface: "I",
	model.KindTrait:     "T",
}

// dependencyGroups orders the known dependency categories in the report.
var dependencyGroups = []string{"production", "development"}

// Markdown renders the analysis as a compact Markdown document: project
// header, directory list, dependencies, entry points, then one section per
// analyzed file with one line per symbol.
func Markdown(a *model.ProjectAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project: %s\n", a.Name)
	fmt.Fprintf(&b, "Root: %s\n", a.Path)
	fmt.Fprintf(&b, "Type: %s | PackageManager: %s\n", a.Type, orNA(a.PackageManager))
	fmt.Fprintf(&b, "Stats: %d files, %d lines, %d directories\n", a.TotalFiles, a.TotalLines, a.TotalDirs)
	if len(a.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(a.Languages, ", "))
	}
	if len(a.Frameworks) > 0 {
		fmt.Fprintf(&b, "Frameworks: %s\n", strings.Join(a.Frameworks, ", "))
	}
	b.WriteString("\n")

	if len(a.Directories) > 0 {
		b.WriteString("## Directory Structure\n")
		dirs := append([]string{}, a.Directories...)
		sort.Strings(dirs)
		for _, d := range dirs {
			fmt.Fprintf(&b, "- %s/\n", d)
		}
		b.WriteString("\n")
	}

	if len(a.ExternalDependencies) > 0 {
		b.WriteString("## Dependencies\n")
		for _, group := range depGroupOrder(a.ExternalDependencies) {
			deps := a.ExternalDependencies[group]
			if len(deps) == 0 {
				continue
			}
			fmt.Fprintf(&b, "### %s\n", capitalize(group))
			parts := make([]string, 0, len(deps))
			for _, d := range deps {
				if d.Version != "" {
					parts = append(parts, fmt.Sprintf("%s (%s)", d.Name, d.Version))
				} else {
					parts = append(parts, d.Name)
				}
			}
			b.WriteString(strings.Join(parts, ", ") + "\n")
		}
		b.WriteString("\n")
	}

	if len(a.EntryPoints) > 0 {
		b.WriteString("## Entry Points\n")
		for _, ep := range a.EntryPoints {
			fmt.Fprintf(&b, "- %s: %s\n", ep.Path, ep.Description)
		}
		b.WriteString("\n")
	}

	if len(a.Files) > 0 {
		b.WriteString("## Code Symbols\n")
		files := append([]model.FileTable{}, a.Files...)
		sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
		for _, f := range files {
			fmt.Fprintf(&b, "### %s (%s)\n", f.Path, f.Language)
			if len(f.Symbols) == 0 {
				b.WriteString("  (No symbols found)\n")
			}
			for _, s := range f.Symbols {
				b.WriteString(symbolLine(s))
			}
			b.WriteString("\n")
		}
	}

	if len(a.Cycles) > 0 {
		b.WriteString("## Circular Dependencies\n")
		for _, cycle := range a.Cycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " -> "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// symbolLine renders one symbol as "- [C] Name(params) @dec L10\n".
func symbolLine(s model.Symbol) string {
	prefix, ok := symbolPrefix[s.Kind]
	if !ok {
		prefix = "?"
		if s.Kind != "" {
			prefix = strings.ToUpper(string(s.Kind[0]))
		}
	}

	params := ""
	if len(s.Parameters) > 0 {
		params = "(" + strings.Join(s.Parameters, ", ") + ")"
	} else if s.Kind == model.KindFunction || s.Kind == model.KindMethod {
		params = "()"
	}

	dec := ""
	if len(s.Annotations) > 0 {
		dec = " @" + strings.Join(s.Annotations, ", @")
	}

	return fmt.Sprintf("- [%s] %s%s%s L%d\n", prefix, s.Name, params, dec, s.Line)
}

// JSON renders the analysis as indented JSON.
func JSON(a *model.ProjectAnalysis) ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding analysis: %w", err)
	}
	return append(data, '\n'), nil
}

// depGroupOrder lists the known groups first, then any others sorted.
func depGroupOrder(deps map[string][]model.DependencyRef) []string {
	var out []string
	known := make(map[string]struct{})
	for _, g := range dependencyGroups {
		known[g] = struct{}{}
		if _, ok := deps[g]; ok {
			out = append(out, g)
		}
	}
	var rest []string
	for g := range deps {
		if _, ok := known[g]; !ok {
			rest = append(rest, g)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
