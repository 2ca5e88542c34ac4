// Package manifest reads project manifest files: project type, package
// manager, frameworks, external dependencies, and entry points.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/mpeel/codeatlas/internal/model"
)

// configFiles maps a manifest file to the project type it implies. Checked in
// order; the first hit sets the type.
var configFiles = []struct {
	Name string
	Type string
}{
	{"package.json", "Node.js"},
	{"pyproject.toml", "Python"},
	{"setup.py", "Python"},
	{"requirements.txt", "Python"},
	{"Cargo.toml", "Rust"},
	{"go.mod", "Go"},
	{"pom.xml", "Java (Maven)"},
	{"build.gradle", "Java (Gradle)"},
	{"Gemfile", "Ruby"},
	{"composer.json", "PHP"},
	{"pubspec.yaml", "Dart/Flutter"},
	{"Package.swift", "Swift"},
}

// frameworkPatterns maps a framework tag to the package names that imply it.
var frameworkPatterns = []struct {
	Framework string
	Packages  []string
}{
	{"react", []string{"react", "react-dom"}},
	{"vue", []string{"vue"}},
	{"angular", []string{"@angular/core"}},
	{"next.js", []string{"next"}},
	{"nuxt", []string{"nuxt"}},
	{"express", []string{"express"}},
	{"fastapi", []string{"fastapi"}},
	{"django", []string{"django"}},
	{"flask", []string{"flask"}},
	{"spring", []string{"spring-boot"}},
	{"rails", []string{"rails"}},
	{"laravel", []string{"laravel/framework"}},
}

// extensionLanguages maps file extensions to display language names for the
// histogram-based language inference.
var extensionLanguages = map[string]string{
	".py": "Python", ".js": "JavaScript", ".ts": "TypeScript",
	".jsx": "JavaScript (React)", ".tsx": "TypeScript (React)",
	".java": "Java", ".go": "Go", ".rs": "Rust",
	".rb": "Ruby", ".php": "PHP", ".swift": "Swift",
	".kt": "Kotlin", ".cs": "C#", ".cpp": "C++", ".c": "C",
	".dart": "Dart",
	".hpp": "C++", ".cxx": "C++", ".hxx": "C++", ".cc": "C++", ".hh": "C++",
}

// Detection is everything learned from the manifest files at a project root.
type Detection struct {
	Name           string // package name when a manifest declares one
	Type           string
	PackageManager string
	ConfigFiles    []string
	Frameworks     []string
	Dependencies   map[string][]model.DependencyRef // "production" / "development"
}

// Detect reads the manifest files present at root. Malformed manifests are
// skipped; whatever was detected before the failure is kept.
func Detect(root string) *Detection {
	d := &Detection{Type: "Unknown"}

	for _, cf := range configFiles {
		if _, err := os.Stat(filepath.Join(root, cf.Name)); err == nil {
			d.ConfigFiles = append(d.ConfigFiles, cf.Name)
			if d.Type == "Unknown" {
				d.Type = cf.Type
			}
		}
	}

	d.readPackageJSON(root)
	d.readRequirements(root)
	d.readPyproject(root)
	d.readCargo(root)
	d.readPubspec(root)
	return d
}

type packageJSON struct {
	Name            string            `json:"name"`
	Main            string            `json:"main"`
	Bin             json.RawMessage   `json:"bin"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (d *Detection) readPackageJSON(root string) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}

	if pkg.Name != "" {
		d.Name = pkg.Name
	}
	d.PackageManager = "npm/yarn"

	prod := depRefs(pkg.Dependencies)
	for _, ref := range prod {
		for _, fp := range frameworkPatterns {
			for _, p := range fp.Packages {
				if ref.Name == p && !contains(d.Frameworks, fp.Framework) {
					d.Frameworks = append(d.Frameworks, fp.Framework)
				}
			}
		}
	}

	d.setDeps("production", prod)
	d.setDeps("development", depRefs(pkg.DevDependencies))
}

var requirementName = regexp.MustCompile(`^[a-zA-Z0-9_-]+`)

func (d *Detection) readRequirements(root string) {
	data, err := os.ReadFile(filepath.Join(root, "requirements.txt"))
	if err != nil {
		return
	}
	d.PackageManager = "pip"

	var deps []model.DependencyRef
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if name := requirementName.FindString(line); name != "" {
			deps = append(deps, model.DependencyRef{Name: name, Version: line})
		}
	}
	d.setDeps("production", deps)
}

type pyprojectTOML struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

func (d *Detection) readPyproject(root string) {
	path := filepath.Join(root, "pyproject.toml")
	if _, err := os.Stat(path); err != nil {
		return
	}
	d.PackageManager = "poetry/pip"

	var pp pyprojectTOML
	if _, err := toml.DecodeFile(path, &pp); err != nil {
		return
	}
	if pp.Project.Name != "" {
		d.Name = pp.Project.Name
	}
	var deps []model.DependencyRef
	for _, spec := range pp.Project.Dependencies {
		if name := requirementName.FindString(spec); name != "" {
			deps = append(deps, model.DependencyRef{Name: name, Version: spec})
		}
	}
	if len(deps) > 0 {
		d.setDeps("production", deps)
	}
}

type cargoTOML struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies map[string]toml.Primitive `toml:"dependencies"`
}

func (d *Detection) readCargo(root string) {
	path := filepath.Join(root, "Cargo.toml")
	if _, err := os.Stat(path); err != nil {
		return
	}

	var cargo cargoTOML
	md, err := toml.DecodeFile(path, &cargo)
	if err != nil {
		return
	}
	d.PackageManager = "cargo"
	if cargo.Package.Name != "" {
		d.Name = cargo.Package.Name
	}

	var deps []model.DependencyRef
	for name, prim := range cargo.Dependencies {
		ref := model.DependencyRef{Name: name}
		var version string
		if err := md.PrimitiveDecode(prim, &version); err == nil {
			ref.Version = version
		} else {
			// Table form: { version = "1.0", features = [...] }
			var table struct {
				Version string `toml:"version"`
			}
			if err := md.PrimitiveDecode(prim, &table); err == nil {
				ref.Version = table.Version
			}
		}
		deps = append(deps, ref)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	if len(deps) > 0 {
		d.setDeps("production", deps)
	}
}

type pubspecYAML struct {
	Name         string               `yaml:"name"`
	Dependencies map[string]yaml.Node `yaml:"dependencies"`
}

func (d *Detection) readPubspec(root string) {
	data, err := os.ReadFile(filepath.Join(root, "pubspec.yaml"))
	if err != nil {
		return
	}
	var ps pubspecYAML
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return
	}
	d.PackageManager = "pub"
	if ps.Name != "" {
		d.Name = ps.Name
	}

	var deps []model.DependencyRef
	for name, node := range ps.Dependencies {
		ref := model.DependencyRef{Name: name}
		if node.Kind == yaml.ScalarNode {
			ref.Version = node.Value
		}
		deps = append(deps, ref)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	if len(deps) > 0 {
		d.setDeps("production", deps)
	}
	if flutterSDKDependency(ps.Dependencies) && !contains(d.Frameworks, "flutter") {
		d.Frameworks = append(d.Frameworks, "flutter")
	}
}

// IsFlutterProject reports whether the pubspec at root declares a dependency
// on the Flutter SDK. It decides which analyzer owns .dart files.
func IsFlutterProject(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "pubspec.yaml"))
	if err != nil {
		return false
	}
	var ps pubspecYAML
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return false
	}
	return flutterSDKDependency(ps.Dependencies)
}

func flutterSDKDependency(deps map[string]yaml.Node) bool {
	node, ok := deps["flutter"]
	if !ok {
		return false
	}
	var sdk struct {
		SDK string `yaml:"sdk"`
	}
	if err := node.Decode(&sdk); err != nil {
		return false
	}
	return sdk.SDK == "flutter"
}

// commonEntryPoints is checked in order against the project root.
var commonEntryPoints = []model.EntryPoint{
	{Path: "src/index.ts", Description: "Main entry (TypeScript)"},
	{Path: "src/index.js", Description: "Main entry (JavaScript)"},
	{Path: "src/main.ts", Description: "Main entry (TypeScript)"},
	{Path: "src/main.js", Description: "Main entry (JavaScript)"},
	{Path: "index.ts", Description: "Root entry (TypeScript)"},
	{Path: "index.js", Description: "Root entry (JavaScript)"},
	{Path: "main.py", Description: "Main entry (Python)"},
	{Path: "app.py", Description: "App entry (Python)"},
	{Path: "src/main.py", Description: "Main entry (Python)"},
	{Path: "src/app.py", Description: "App entry (Python)"},
	{Path: "cmd/main.go", Description: "Main entry (Go)"},
	{Path: "main.go", Description: "Main entry (Go)"},
	{Path: "src/main.rs", Description: "Main entry (Rust)"},
	{Path: "src/lib.rs", Description: "Library entry (Rust)"},
}

// EntryPoints returns the recognizable program entry points at root: the
// well-known per-language paths plus whatever package.json declares.
func EntryPoints(root string) []model.EntryPoint {
	var out []model.EntryPoint
	for _, ep := range commonEntryPoints {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(ep.Path))); err == nil {
			out = append(out, ep)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return out
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return out
	}
	if pkg.Main != "" {
		out = append(out, model.EntryPoint{Path: pkg.Main, Description: "Package main"})
	}
	if len(pkg.Bin) > 0 {
		var binPath string
		if err := json.Unmarshal(pkg.Bin, &binPath); err == nil {
			out = append(out, model.EntryPoint{Path: binPath, Description: "CLI binary"})
		} else {
			var bins map[string]string
			if err := json.Unmarshal(pkg.Bin, &bins); err == nil {
				names := make([]string, 0, len(bins))
				for name := range bins {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					out = append(out, model.EntryPoint{Path: bins[name], Description: "CLI: " + name})
				}
			}
		}
	}
	return out
}

// InferLanguages derives the language list from the extension histogram,
// most frequent first. Ties break by extension for stable output.
func InferLanguages(filesByExtension map[string]int) []string {
	type extCount struct {
		ext   string
		count int
	}
	counts := make([]extCount, 0, len(filesByExtension))
	for ext, n := range filesByExtension {
		if n > 0 {
			counts = append(counts, extCount{ext, n})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].ext < counts[j].ext
	})

	var langs []string
	for _, c := range counts {
		if name, ok := extensionLanguages[c.ext]; ok && !contains(langs, name) {
			langs = append(langs, name)
		}
	}
	return langs
}

func depRefs(m map[string]string) []model.DependencyRef {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	refs := make([]model.DependencyRef, 0, len(names))
	for _, name := range names {
		refs = append(refs, model.DependencyRef{Name: name, Version: m[name]})
	}
	return refs
}

func (d *Detection) setDeps(group string, deps []model.DependencyRef) {
	if len(deps) == 0 {
		return
	}
	if d.Dependencies == nil {
		d.Dependencies = make(map[string][]model.DependencyRef)
	}
	d.Dependencies[group] = deps
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
