// Package graph classifies internal imports, builds the file-level dependency
// graph, and detects import cycles. Everything here is best-effort: imports
// that cannot be mapped to a file are reported as unresolved, never guessed.
package graph

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	dgraph "github.com/dominikbraun/graph"

	"github.com/mpeel/codeatlas/internal/model"
)

// InternalImports classifies each file's imports and returns, per file path,
// the imports believed to target another file of the same project. An import
// is internal when it is relative, carries the project name as a prefix, or
// names a module that exists on disk under the root.
func InternalImports(projectName, root string, files []model.FileTable) map[string][]string {
	out := make(map[string][]string)
	for _, f := range files {
		var internal []string
		for _, imp := range f.Imports {
			if isInternal(projectName, root, imp) {
				internal = append(internal, imp)
			}
		}
		if len(internal) > 0 {
			out[f.Path] = internal
		}
	}
	return out
}

func isInternal(projectName, root, imp string) bool {
	if strings.HasPrefix(imp, ".") || strings.HasPrefix(imp, projectName) {
		return true
	}
	// A bare module name may still be a sibling file. Scoped packages and
	// path-shaped imports are assumed external.
	if strings.HasPrefix(imp, "@") || strings.Contains(imp, "/") {
		return false
	}
	candidates := []string{
		filepath.Join(root, imp+".py"),
		filepath.Join(root, imp, "__init__.py"),
		filepath.Join(root, "src", imp+".py"),
		filepath.Join(root, "src", imp, "__init__.py"),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return true
		}
	}
	return false
}

// DetectCycles finds import cycles in the internal-import map. Each cycle is
// a file-path sequence whose last element repeats the first; two cycles over
// the same node set are reported once. The resolution stats say how many
// internal imports mapped to a known file and which did not.
func DetectCycles(internal map[string][]string) ([][]string, model.Resolution) {
	var res model.Resolution
	if len(internal) == 0 {
		return nil, res
	}

	moduleToFile := moduleIndex(internal)

	g := dgraph.New(dgraph.StringHash, dgraph.Directed())
	for _, path := range sortedKeys(internal) {
		_ = g.AddVertex(path)
		for _, imp := range internal[path] {
			target, ok := moduleToFile[importModule(imp)]
			if !ok {
				res.Unresolved++
				res.Dropped = append(res.Dropped, imp)
				continue
			}
			res.Resolved++
			_ = g.AddVertex(target)
			_ = g.AddEdge(path, target)
		}
	}
	sort.Strings(res.Dropped)

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, res
	}

	d := &cycleDetector{
		adjacency: adjacency,
		visited:   make(map[string]struct{}),
		onStack:   make(map[string]struct{}),
		seen:      make(map[string]struct{}),
	}
	for _, node := range sortedKeys(adjacency) {
		if _, ok := d.visited[node]; !ok {
			d.dfs(node)
		}
	}
	return d.cycles, res
}

// moduleIndex maps the module names a file can be imported under to its path:
// the file stem, and for Python packages the parent directory name. Paths are
// indexed in sorted order, so a contested name deterministically belongs to
// the last path.
func moduleIndex(internal map[string][]string) map[string]string {
	index := make(map[string]string)
	for _, path := range sortedKeys(internal) {
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		if ext == ".py" {
			if stem != "__init__" {
				index[stem] = path
			}
			if dir := filepath.Base(filepath.Dir(path)); dir != "." {
				index[dir] = path
			}
			continue
		}
		index[stem] = path
	}
	return index
}

// importModule reduces an import target to a bare module name: relative
// markers stripped, then the last path segment, then the last dotted segment.
func importModule(imp string) string {
	name := strings.TrimLeft(imp, ".")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type cycleDetector struct {
	adjacency map[string]map[string]dgraph.Edge[string]
	visited   map[string]struct{}
	onStack   map[string]struct{}
	path      []string
	cycles    [][]string
	seen      map[string]struct{} // normalized node sets of reported cycles
}

func (d *cycleDetector) dfs(node string) {
	d.visited[node] = struct{}{}
	d.onStack[node] = struct{}{}
	d.path = append(d.path, node)

	for _, neighbor := range sortedKeys(d.adjacency[node]) {
		if _, ok := d.visited[neighbor]; !ok {
			d.dfs(neighbor)
			continue
		}
		if _, ok := d.onStack[neighbor]; !ok {
			// Visited but off the stack: a converging (diamond) edge, not a
			// cycle.
			continue
		}
		start := 0
		for i, p := range d.path {
			if p == neighbor {
				start = i
				break
			}
		}
		cycle := append(append([]string{}, d.path[start:]...), neighbor)
		key := cycleKey(cycle)
		if _, dup := d.seen[key]; !dup {
			d.seen[key] = struct{}{}
			d.cycles = append(d.cycles, cycle)
		}
	}

	d.path = d.path[:len(d.path)-1]
	delete(d.onStack, node)
}

// cycleKey normalizes a cycle to its sorted node set, ignoring the repeated
// closing element and the rotation.
func cycleKey(cycle []string) string {
	nodes := append([]string{}, cycle[:len(cycle)-1]...)
	sort.Strings(nodes)
	return strings.Join(nodes, "\x00")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
