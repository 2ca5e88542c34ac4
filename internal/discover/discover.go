// Package discover walks a project tree: the bounded structure scan that
// counts files and lines, and the candidate-root walk that feeds the symbol
// analyzers.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/mpeel/codeatlas/internal/lang"
)

// skipDirs are never descended into during any walk.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"__pycache__":  {},
	".git":         {},
	".svn":         {},
	".hg":          {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"out":          {},
	".next":        {},
	".nuxt":        {},
	"vendor":       {},
	"venv":         {},
	".venv":        {},
	"env":          {},
	".env":         {},
	"coverage":     {},
	".nyc_output":  {},
	".pytest_cache": {},
	".idea":        {},
	".vscode":      {},
	".vs":          {},
	".cursor":      {},
	"Pods":         {},
	"DerivedData":  {},
}

// ignoreGlobs filter out generated and binary artifacts by file name.
var ignoreGlobs = compileGlobs(
	"*.min.js", "*.min.css", "*.map", "*.lock",
	"*.pyc", "*.pyo", "*.class", "*.o", "*.so",
	".DS_Store", "Thumbs.db",
)

// codeExtensions are the extensions whose lines count toward the line totals.
var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
	".java": {}, ".go": {}, ".rs": {}, ".rb": {}, ".php": {},
	".swift": {}, ".kt": {}, ".dart": {}, ".c": {}, ".cpp": {}, ".h": {},
	".cs": {}, ".hpp": {}, ".cxx": {}, ".hxx": {}, ".cc": {}, ".hh": {},
}

// candidateRoots are searched in order during the symbol walk. "." comes
// last so files under the named roots keep their walk position.
var candidateRoots = []string{"src", "lib", "app", "pkg", "internal", "."}

func compileGlobs(patterns ...string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, glob.MustCompile(p))
	}
	return out
}

func ignoredFile(name string) bool {
	for _, g := range ignoreGlobs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// Options bounds a structure scan.
type Options struct {
	MaxDepth        int                 // directory levels below the root
	MaxCountedFiles int                 // line counting stops past this many files
	Extensions      map[string]struct{} // allow-list; nil means all
}

// Structure is the result of the structure scan.
type Structure struct {
	Directories      []string
	TotalDirs        int
	TotalFiles       int
	TotalLines       int
	FilesByExtension map[string]int
	LinesByExtension map[string]int
}

// ScanStructure walks the tree breadth-bounded by opts.MaxDepth, counting
// files per extension and lines for code files. Unreadable directories are
// skipped, never fatal.
func ScanStructure(root string, opts Options) *Structure {
	st := &Structure{
		FilesByExtension: make(map[string]int),
		LinesByExtension: make(map[string]int),
	}
	gi := loadGitignore(root)
	scanDir(root, root, 0, opts, gi, st)
	return st
}

func scanDir(root, dir string, depth int, opts Options, gi *ignore.GitIgnore, st *Structure) {
	if depth > opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	// Directories first, then case-insensitive name order, so the directory
	// list and counting order are stable across runs.
	sort.Slice(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(dir, name)
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}

		if e.IsDir() {
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				continue
			}
			if gi != nil && gi.MatchesPath(rel) {
				continue
			}
			st.TotalDirs++
			st.Directories = append(st.Directories, filepath.ToSlash(rel))
			scanDir(root, path, depth+1, opts, gi, st)
			continue
		}

		if ignoredFile(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if strings.HasPrefix(name, ".") && ext != ".env" && ext != ".gitignore" {
			continue
		}
		if gi != nil && gi.MatchesPath(rel) {
			continue
		}
		if ext == "" {
			ext = ".no_extension"
		}
		if opts.Extensions != nil {
			if _, ok := opts.Extensions[ext]; !ok {
				continue
			}
		}

		st.TotalFiles++
		st.FilesByExtension[ext]++

		if _, code := codeExtensions[ext]; code && st.TotalFiles <= opts.MaxCountedFiles {
			if n, ok := countLines(path); ok {
				st.TotalLines += n
				st.LinesByExtension[ext] += n
			}
		}
	}
}

func countLines(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	if len(data) == 0 {
		return 0, true
	}
	n := strings.Count(string(data), "\n")
	if data[len(data)-1] != '\n' {
		n++
	}
	return n, true
}

// FileEntry is one eligible source file found by the symbol walk.
type FileEntry struct {
	Path string // relative to the project root, slash-separated
	Ext  string // lowercase extension
}

// CandidateFiles walks the candidate roots in order and returns every file a
// language analyzer claims, deduplicated (the "." root revisits the named
// ones) and in deterministic walk order. The caller applies the analyzed-file
// cap: eligibility is decided here, productivity there.
func CandidateFiles(root string, extensions map[string]struct{}) []FileEntry {
	seen := make(map[string]struct{})
	var out []FileEntry

	for _, cr := range candidateRoots {
		base := root
		if cr != "." {
			base = filepath.Join(root, cr)
		}
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}

		filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if _, skip := skipDirs[d.Name()]; skip {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&os.ModeSymlink != 0 {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if _, dup := seen[rel]; dup {
				return nil
			}

			ext := strings.ToLower(filepath.Ext(d.Name()))
			if !lang.Supported(ext) {
				return nil
			}
			if extensions != nil {
				if _, ok := extensions[ext]; !ok {
					return nil
				}
			}

			seen[rel] = struct{}{}
			out = append(out, FileEntry{Path: rel, Ext: ext})
			return nil
		})
	}
	return out
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
