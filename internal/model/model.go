// Package model defines the core data structures for codeatlas.
package model

// Kind is the syntactic kind of a declared symbol. Every language analyzer
// declares the fixed set of kinds it emits; the engine refuses rules whose
// kind is not in that set, so no free-form string can leak through.
type Kind string

// Kinds shared by several languages. Framework- or language-specific kinds
// (sealed_class, stateless_widget, ...) are declared next to the rule table
// that emits them.
const (
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindInterface Kind = "interface"
	KindEnum      Kind = "enum"
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindConst     Kind = "const"
	KindType      Kind = "type"
	KindTrait     Kind = "trait"
)

// Symbol is one declaration found in a source file.
type Symbol struct {
	Name        string   `json:"name"`
	Kind        Kind     `json:"kind"`
	Line        int      `json:"line"`
	EndLine     int      `json:"end_line,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Parameters  []string `json:"parameters,omitempty"`
	Doc         string   `json:"doc,omitempty"`
}

// FileTable is the symbol table for a single analyzed file. Symbols are in
// source order; Imports and Exports are deduplicated and sorted.
type FileTable struct {
	Path     string   `json:"path"`
	Language string   `json:"language"`
	Lines    int      `json:"lines"`
	Symbols  []Symbol `json:"symbols,omitempty"`
	Imports  []string `json:"imports,omitempty"`
	Exports  []string `json:"exports,omitempty"`
}

// EntryPoint is a detected program entry point.
type EntryPoint struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// DependencyRef is one declared external dependency.
type DependencyRef struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// Resolution reports how well internal imports could be mapped onto files.
// The mapping is heuristic name matching, not a module resolver, so callers
// can use these counts to judge coverage.
type Resolution struct {
	Resolved   int      `json:"resolved"`
	Unresolved int      `json:"unresolved"`
	Dropped    []string `json:"dropped,omitempty"` // import targets no file could be found for
}

// ProjectAnalysis is the aggregate result of one full analysis run. It is
// built by a single sequential pass of the aggregator and read-only afterward.
type ProjectAnalysis struct {
	Name           string `json:"name"`
	Path           string `json:"path"`
	Type           string `json:"type"`
	PackageManager string `json:"package_manager,omitempty"`

	Languages  []string `json:"languages,omitempty"`
	Frameworks []string `json:"frameworks,omitempty"`

	TotalFiles       int            `json:"total_files"`
	TotalDirs        int            `json:"total_dirs"`
	TotalLines       int            `json:"total_lines"`
	FilesByExtension map[string]int `json:"files_by_extension,omitempty"`
	LinesByExtension map[string]int `json:"lines_by_extension,omitempty"`

	Directories []string     `json:"directories,omitempty"`
	EntryPoints []EntryPoint `json:"entry_points,omitempty"`
	ConfigFiles []string     `json:"config_files,omitempty"`

	Files []FileTable `json:"files,omitempty"`

	ExternalDependencies map[string][]DependencyRef `json:"external_dependencies,omitempty"`
	InternalImports      map[string][]string        `json:"internal_imports,omitempty"`
	Cycles               [][]string                 `json:"circular_dependencies,omitempty"`
	Resolution           Resolution                 `json:"import_resolution"`

	AnalyzedAt string `json:"analyzed_at"`
}
