package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func defaultOptions() Options {
	return Options{MaxDepth: 10, MaxCountedFiles: 1000}
}

func TestScanStructureCounts(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "src/app.py", "a = 1\nb = 2\n")
	writeFile(t, root, "src/util.py", "c = 3\n")
	writeFile(t, root, "README.md", "# hi\n")

	st := ScanStructure(root, defaultOptions())

	assert.Equal(t, []string{"src"}, st.Directories)
	assert.Equal(t, 1, st.TotalDirs)
	assert.Equal(t, 3, st.TotalFiles)
	assert.Equal(t, 3, st.TotalLines)
	assert.Equal(t, 2, st.FilesByExtension[".py"])
	assert.Equal(t, 1, st.FilesByExtension[".md"])
	assert.Equal(t, 3, st.LinesByExtension[".py"])
	assert.Zero(t, st.LinesByExtension[".md"], "non-code extensions are not line counted")
}

func TestScanStructureSkipsIgnoredDirs(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/index.js", "x\n")
	writeFile(t, root, ".hidden/secret.py", "x\n")
	writeFile(t, root, "src/ok.py", "x\n")

	st := ScanStructure(root, defaultOptions())

	assert.Equal(t, []string{"src"}, st.Directories)
	assert.Equal(t, 1, st.TotalFiles)
}

func TestScanStructureSkipsIgnoredPatterns(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "bundle.min.js", "x\n")
	writeFile(t, root, "app.js", "x\n")

	st := ScanStructure(root, defaultOptions())

	assert.Equal(t, 1, st.TotalFiles)
	assert.Equal(t, 1, st.FilesByExtension[".js"])
}

func TestScanStructureDepthBound(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "a/b/c/deep.py", "x\n")

	st := ScanStructure(root, Options{MaxDepth: 1, MaxCountedFiles: 1000})

	// Depth 0 lists "a", depth 1 lists "a/b"; nothing below is entered.
	assert.Equal(t, []string{"a", "a/b"}, st.Directories)
	assert.Zero(t, st.TotalFiles)
}

func TestScanStructureExtensionAllowList(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "a.py", "x\n")
	writeFile(t, root, "b.js", "x\n")

	st := ScanStructure(root, Options{
		MaxDepth:        10,
		MaxCountedFiles: 1000,
		Extensions:      map[string]struct{}{".py": {}},
	})

	assert.Equal(t, 1, st.TotalFiles)
	assert.Equal(t, 1, st.FilesByExtension[".py"])
	assert.Zero(t, st.FilesByExtension[".js"])
}

func TestScanStructureHonorsGitignore(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated.py\n")
	writeFile(t, root, "generated.py", "x\n")
	writeFile(t, root, "kept.py", "x\n")

	st := ScanStructure(root, defaultOptions())

	// .gitignore itself is counted (hidden-file exception), generated.py is not.
	assert.Equal(t, 2, st.TotalFiles)
	assert.Equal(t, 1, st.FilesByExtension[".py"])
}

func TestCandidateFilesOrderAndDedup(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "src/a.py", "x\n")
	writeFile(t, root, "src/b.py", "x\n")
	writeFile(t, root, "top.py", "x\n")
	writeFile(t, root, "notes.txt", "x\n")
	writeFile(t, root, "node_modules/dep.py", "x\n")

	entries := CandidateFiles(root, nil)

	var paths []string
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	// The src root is walked before ".", and its files are not revisited.
	assert.Equal(t, []string{"src/a.py", "src/b.py", "top.py"}, paths)
}

func TestCandidateFilesExtensionFilter(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "a.py", "x\n")
	writeFile(t, root, "b.js", "x\n")

	entries := CandidateFiles(root, map[string]struct{}{".js": {}})

	require.Len(t, entries, 1)
	assert.Equal(t, "b.js", entries[0].Path)
	assert.Equal(t, ".js", entries[0].Ext)
}
