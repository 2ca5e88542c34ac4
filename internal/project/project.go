// Package project runs the full analysis pipeline over one project root:
// structure scan, manifest detection, symbol extraction, internal-import
// resolution, and cycle detection, in that order.
package project

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mpeel/codeatlas/internal/discover"
	"github.com/mpeel/codeatlas/internal/graph"
	"github.com/mpeel/codeatlas/internal/lang"
	"github.com/mpeel/codeatlas/internal/manifest"
	"github.com/mpeel/codeatlas/internal/model"
)

// Limits are the resource bounds of one analysis run. They are policy, not
// correctness: raising them changes cost and coverage, never the meaning of
// the result.
type Limits struct {
	// MaxDepth bounds the structure scan below the root.
	MaxDepth int

	// MaxCountedFiles stops line counting after this many files; the file
	// totals keep growing.
	MaxCountedFiles int

	// MaxSymbolFiles caps the analyzed-file list, in walk order.
	MaxSymbolFiles int

	// Extensions restricts both scans to an allow-list (".py" form, lowercase).
	// Empty means all.
	Extensions []string
}

// DefaultLimits returns the standard bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:        10,
		MaxCountedFiles: 1000,
		MaxSymbolFiles:  200,
	}
}

// Analyzer runs the pipeline. One Analyzer analyzes one root once.
type Analyzer struct {
	root    string
	limits  Limits
	log     *slog.Logger
	flutter bool

	detection *manifest.Detection
	result    *model.ProjectAnalysis
}

// New validates the root path and prepares an analyzer. A missing or
// non-directory root is the one fatal error of the pipeline.
func New(root string, limits Limits, log *slog.Logger) (*Analyzer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", abs)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Analyzer{
		root:    abs,
		limits:  limits,
		log:     log,
		flutter: manifest.IsFlutterProject(abs),
		result: &model.ProjectAnalysis{
			Name:       filepath.Base(abs),
			Path:       abs,
			Type:       "Unknown",
			AnalyzedAt: time.Now().Format(time.RFC3339),
		},
	}, nil
}

// Analyze runs all phases in order. Each phase completes before the next
// starts; the result is read-only afterward.
func (a *Analyzer) Analyze() (*model.ProjectAnalysis, error) {
	a.log.Info("analyzing project", "path", a.root)

	a.log.Info("scanning structure")
	a.scanStructure()

	a.log.Info("detecting project type")
	a.detectType()

	a.log.Info("reading dependencies")
	a.analyzeDependencies()

	a.log.Info("finding entry points")
	a.findEntryPoints()

	a.log.Info("analyzing symbols")
	a.analyzeSymbols()

	a.log.Info("resolving internal imports")
	a.resolveInternalImports()

	a.log.Info("detecting cycles")
	a.detectCycles()

	a.log.Info("analysis complete",
		"files", a.result.TotalFiles,
		"analyzed", len(a.result.Files),
		"cycles", len(a.result.Cycles))
	return a.result, nil
}

func (a *Analyzer) extensionSet() map[string]struct{} {
	if len(a.limits.Extensions) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(a.limits.Extensions))
	for _, e := range a.limits.Extensions {
		e = strings.ToLower(e)
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = struct{}{}
	}
	return set
}

func (a *Analyzer) scanStructure() {
	st := discover.ScanStructure(a.root, discover.Options{
		MaxDepth:        a.limits.MaxDepth,
		MaxCountedFiles: a.limits.MaxCountedFiles,
		Extensions:      a.extensionSet(),
	})
	a.result.Directories = st.Directories
	a.result.TotalDirs = st.TotalDirs
	a.result.TotalFiles = st.TotalFiles
	a.result.TotalLines = st.TotalLines
	a.result.FilesByExtension = st.FilesByExtension
	a.result.LinesByExtension = st.LinesByExtension
}

func (a *Analyzer) detectType() {
	a.detection = manifest.Detect(a.root)
	a.result.ConfigFiles = a.detection.ConfigFiles
	a.result.Type = a.detection.Type
	a.result.Languages = manifest.InferLanguages(a.result.FilesByExtension)
}

func (a *Analyzer) analyzeDependencies() {
	if a.detection.Name != "" {
		a.result.Name = a.detection.Name
	}
	a.result.PackageManager = a.detection.PackageManager
	a.result.Frameworks = a.detection.Frameworks
	a.result.ExternalDependencies = a.detection.Dependencies
}

func (a *Analyzer) findEntryPoints() {
	a.result.EntryPoints = manifest.EntryPoints(a.root)
}

// analyzeSymbols walks the candidate roots and runs the per-language analyzers
// concurrently, in chunks so work stops soon after the analyzed-file cap is
// reached. Files yielding neither symbols nor imports do not enter the list
// and do not count toward the cap.
func (a *Analyzer) analyzeSymbols() {
	candidates := discover.CandidateFiles(a.root, a.extensionSet())
	if len(candidates) == 0 {
		return
	}

	dart := lang.Analyzers["dart"]
	if a.flutter {
		dart = lang.Analyzers["flutter"]
	}

	const chunkSize = 64
	for start := 0; start < len(candidates); start += chunkSize {
		if len(a.result.Files) >= a.limits.MaxSymbolFiles {
			break
		}
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}

		for _, ft := range a.analyzeChunk(candidates[start:end], dart) {
			if len(ft.Symbols) == 0 && len(ft.Imports) == 0 {
				continue
			}
			a.result.Files = append(a.result.Files, ft)
			if len(a.result.Files) >= a.limits.MaxSymbolFiles {
				break
			}
		}
	}
}

// analyzeChunk fans a slice of files out to a worker pool and merges the
// results back in input order, so concurrency never reorders the file list.
func (a *Analyzer) analyzeChunk(entries []discover.FileEntry, dart *lang.Analyzer) []model.FileTable {
	type result struct {
		index int
		table model.FileTable
		ok    bool
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(entries) {
		numWorkers = len(entries)
	}

	work := make(chan int, len(entries))
	results := make(chan result, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				entry := entries[idx]

				analyzer := lang.ForExtension(entry.Ext)
				if entry.Ext == ".dart" {
					analyzer = dart
				}
				if analyzer == nil {
					continue
				}

				source, err := os.ReadFile(filepath.Join(a.root, filepath.FromSlash(entry.Path)))
				if err != nil {
					a.log.Warn("skipping unreadable file", "path", entry.Path, "err", err)
					continue
				}
				results <- result{
					index: idx,
					table: analyzer.AnalyzeFile(entry.Path, source),
					ok:    true,
				}
			}
		}()
	}

	for i := range entries {
		work <- i
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	indexed := make([]model.FileTable, len(entries))
	valid := make([]bool, len(entries))
	for r := range results {
		indexed[r.index] = r.table
		valid[r.index] = r.ok
	}

	out := make([]model.FileTable, 0, len(entries))
	for i, ok := range valid {
		if ok {
			out = append(out, indexed[i])
		}
	}
	return out
}

func (a *Analyzer) resolveInternalImports() {
	a.result.InternalImports = graph.InternalImports(a.result.Name, a.root, a.result.Files)
}

func (a *Analyzer) detectCycles() {
	a.result.Cycles, a.result.Resolution = graph.DetectCycles(a.result.InternalImports)
}
