package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/mpeel/codeatlas/internal/model"
)

const (
	// maxParams bounds the parameter names kept per callable.
	maxParams = 10
	// maxDocLen bounds the doc summary length in bytes.
	maxDocLen = 200
)

// Python is the one language analyzed through a real syntax tree instead of
// the line engine, which buys exact end lines, decorators, parameter lists,
// and doc summaries.
func init() {
	register(&Analyzer{
		Name:       "python",
		Extensions: []string{".py"},
		Kinds:      []model.Kind{model.KindClass, model.KindFunction, model.KindMethod},
		Analyze:    analyzePython,
	})
}

func analyzePython(path string, source []byte) model.FileTable {
	ft := model.FileTable{
		Path:     path,
		Language: "python",
		Lines:    len(splitLines(string(source))),
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return ft
	}
	defer tree.Close()

	importSet := make(map[string]struct{})
	pythonCollect(tree.RootNode(), source, &ft, importSet, false)
	ft.Imports = sortedSlice(importSet)
	return ft
}

// pythonCollect walks the statements of a module or class body. Function
// bodies contribute imports only: locals are not declarations of the file,
// but a deferred import still creates a dependency edge.
func pythonCollect(node *sitter.Node, source []byte, ft *model.FileTable, imports map[string]struct{}, inClass bool) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "import_statement":
			pythonImportTargets(child, source, imports)
		case "import_from_statement":
			pythonFromImport(child, source, imports)
		case "decorated_definition":
			var annotations []string
			for j := 0; j < int(child.NamedChildCount()); j++ {
				d := child.NamedChild(j)
				if d.Type() == "decorator" {
					if name := pythonDecoratorName(d, source); name != "" {
						annotations = append(annotations, name)
					}
				}
			}
			if def := child.ChildByFieldName("definition"); def != nil {
				pythonDefinition(def, source, ft, imports, inClass, annotations)
			}
		case "class_definition", "function_definition":
			pythonDefinition(child, source, ft, imports, inClass, nil)
		}
	}
}

func pythonDefinition(def *sitter.Node, source []byte, ft *model.FileTable, imports map[string]struct{}, inClass bool, annotations []string) {
	name := fieldText(def, "name", source)
	if name == "" {
		return
	}

	sym := model.Symbol{
		Name:        name,
		Line:        int(def.StartPoint().Row) + 1,
		EndLine:     int(def.EndPoint().Row) + 1,
		Annotations: annotations,
	}
	body := def.ChildByFieldName("body")
	if body != nil {
		sym.Doc = pythonDocSummary(body, source)
	}

	switch def.Type() {
	case "class_definition":
		sym.Kind = model.KindClass
		ft.Symbols = append(ft.Symbols, sym)
		if body != nil {
			pythonCollect(body, source, ft, imports, true)
		}
	case "function_definition":
		sym.Kind = model.KindFunction
		if inClass {
			sym.Kind = model.KindMethod
		}
		sym.Parameters = pythonParams(def, source)
		ft.Symbols = append(ft.Symbols, sym)
		if body != nil {
			pythonBodyImports(body, source, imports)
		}
	}
}

// pythonBodyImports collects import statements anywhere inside a function
// body, including nested definitions. Nothing else is recorded from there.
func pythonBodyImports(node *sitter.Node, source []byte, imports map[string]struct{}) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		c := node.NamedChild(i)
		switch c.Type() {
		case "import_statement":
			pythonImportTargets(c, source, imports)
		case "import_from_statement":
			pythonFromImport(c, source, imports)
		default:
			pythonBodyImports(c, source, imports)
		}
	}
}

// pythonParams returns up to maxParams parameter names, skipping the
// receiver-like first parameter (self/cls).
func pythonParams(def *sitter.Node, source []byte) []string {
	params := def.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var out []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		var name string
		switch p.Type() {
		case "identifier":
			name = nodeText(p, source)
		case "typed_parameter":
			if id := p.NamedChild(0); id != nil && id.Type() == "identifier" {
				name = nodeText(id, source)
			}
		case "default_parameter", "typed_default_parameter":
			name = fieldText(p, "name", source)
		case "list_splat_pattern", "dictionary_splat_pattern":
			name = nodeText(p, source)
		}
		if name == "" {
			continue
		}
		if i == 0 && (name == "self" || name == "cls") {
			continue
		}
		out = append(out, name)
		if len(out) == maxParams {
			break
		}
	}
	return out
}

// pythonDocSummary returns the first line of a leading docstring, truncated
// to maxDocLen, or "".
func pythonDocSummary(body *sitter.Node, source []byte) string {
	first := body.NamedChild(0)
	if first == nil || first.Type() != "expression_statement" {
		return ""
	}
	str := first.NamedChild(0)
	if str == nil || str.Type() != "string" {
		return ""
	}

	text := strings.TrimLeft(nodeText(str, source), "rRbBuUfF")
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if strings.HasPrefix(text, q) {
			text = strings.TrimPrefix(text, q)
			text = strings.TrimSuffix(text, q)
			break
		}
	}
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if len(text) > maxDocLen {
		text = text[:maxDocLen]
	}
	return text
}

// pythonDecoratorName extracts the dotted name of a decorator, dropping the
// leading @ and any call arguments.
func pythonDecoratorName(d *sitter.Node, source []byte) string {
	text := strings.TrimPrefix(strings.TrimSpace(nodeText(d, source)), "@")
	if i := strings.IndexByte(text, '('); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func pythonFromImport(stmt *sitter.Node, source []byte, imports map[string]struct{}) {
	if m := stmt.ChildByFieldName("module_name"); m != nil {
		if t := nodeText(m, source); t != "" {
			imports[t] = struct{}{}
		}
	}
}

func pythonImportTargets(stmt *sitter.Node, source []byte, imports map[string]struct{}) {
	for i := 0; i < int(stmt.NamedChildCount()); i++ {
		c := stmt.NamedChild(i)
		switch c.Type() {
		case "dotted_name":
			imports[nodeText(c, source)] = struct{}{}
		case "aliased_import":
			if n := c.ChildByFieldName("name"); n != nil {
				imports[nodeText(n, source)] = struct{}{}
			}
		}
	}
}

func nodeText(n *sitter.Node, source []byte) string {
	return string(source[n.StartByte():n.EndByte()])
}

func fieldText(n *sitter.Node, field string, source []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return nodeText(c, source)
}
