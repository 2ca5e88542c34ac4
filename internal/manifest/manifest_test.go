package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpeel/codeatlas/internal/model"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestDetectPackageJSON(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
  "name": "shop",
  "dependencies": {"react": "^18.0.0", "express": "^4.18.0"},
  "devDependencies": {"jest": "^29.0.0"}
}`)

	d := Detect(root)

	assert.Equal(t, "shop", d.Name)
	assert.Equal(t, "Node.js", d.Type)
	assert.Equal(t, "npm/yarn", d.PackageManager)
	assert.Equal(t, []string{"package.json"}, d.ConfigFiles)
	assert.Equal(t, []string{"express", "react"}, d.Frameworks)

	assert.Equal(t, []model.DependencyRef{
		{Name: "express", Version: "^4.18.0"},
		{Name: "react", Version: "^18.0.0"},
	}, d.Dependencies["production"])
	assert.Equal(t, []model.DependencyRef{
		{Name: "jest", Version: "^29.0.0"},
	}, d.Dependencies["development"])
}

func TestDetectFirstConfigFileWinsType(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "mixed"}`)
	writeFile(t, root, "requirements.txt", "flask\n")

	d := Detect(root)

	assert.Equal(t, "Node.js", d.Type)
	assert.Equal(t, []string{"package.json", "requirements.txt"}, d.ConfigFiles)
}

func TestDetectRequirements(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", `# deps
requests>=2.28
flask==2.3.0

numpy
`)

	d := Detect(root)

	assert.Equal(t, "Python", d.Type)
	assert.Equal(t, "pip", d.PackageManager)
	assert.Equal(t, []model.DependencyRef{
		{Name: "requests", Version: "requests>=2.28"},
		{Name: "flask", Version: "flask==2.3.0"},
		{Name: "numpy", Version: "numpy"},
	}, d.Dependencies["production"])
}

func TestDetectCargoVersionForms(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", `[package]
name = "mycrate"

[dependencies]
serde = { version = "1.0", features = ["derive"] }
anyhow = "1.0.70"
`)

	d := Detect(root)

	assert.Equal(t, "mycrate", d.Name)
	assert.Equal(t, "Rust", d.Type)
	assert.Equal(t, "cargo", d.PackageManager)
	assert.Equal(t, []model.DependencyRef{
		{Name: "anyhow", Version: "1.0.70"},
		{Name: "serde", Version: "1.0"},
	}, d.Dependencies["production"])
}

func TestDetectPubspecFlutter(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "pubspec.yaml", `name: myapp
dependencies:
  flutter:
    sdk: flutter
  http: ^1.1.0
`)

	d := Detect(root)

	assert.Equal(t, "myapp", d.Name)
	assert.Equal(t, "Dart/Flutter", d.Type)
	assert.Equal(t, "pub", d.PackageManager)
	assert.Contains(t, d.Frameworks, "flutter")
	assert.Equal(t, []model.DependencyRef{
		{Name: "flutter"},
		{Name: "http", Version: "^1.1.0"},
	}, d.Dependencies["production"])

	assert.True(t, IsFlutterProject(root))
}

func TestIsFlutterProjectPlainDart(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "pubspec.yaml", `name: tool
dependencies:
  args: ^2.4.0
`)

	assert.False(t, IsFlutterProject(root))

	d := Detect(root)
	assert.NotContains(t, d.Frameworks, "flutter")
}

func TestIsFlutterProjectMissingPubspec(t *testing.T) {
	t.Parallel()
	assert.False(t, IsFlutterProject(t.TempDir()))
}

func TestDetectMalformedManifestKeepsPartialResult(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "package.json", `{not json`)

	d := Detect(root)

	assert.Equal(t, "Node.js", d.Type)
	assert.Equal(t, []string{"package.json"}, d.ConfigFiles)
	assert.Empty(t, d.Name)
}

func TestEntryPoints(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	writeFile(t, root, filepath.Join("src", "index.ts"), "export {};\n")
	writeFile(t, root, "main.py", "pass\n")
	writeFile(t, root, "package.json", `{
  "main": "dist/server.js",
  "bin": {"webctl": "bin/webctl.js", "admin": "bin/admin.js"}
}`)

	eps := EntryPoints(root)

	require.Len(t, eps, 5)
	assert.Equal(t, model.EntryPoint{Path: "src/index.ts", Description: "Main entry (TypeScript)"}, eps[0])
	assert.Equal(t, model.EntryPoint{Path: "main.py", Description: "Main entry (Python)"}, eps[1])
	assert.Equal(t, model.EntryPoint{Path: "dist/server.js", Description: "Package main"}, eps[2])
	// bin names sorted.
	assert.Equal(t, model.EntryPoint{Path: "bin/admin.js", Description: "CLI: admin"}, eps[3])
	assert.Equal(t, model.EntryPoint{Path: "bin/webctl.js", Description: "CLI: webctl"}, eps[4])
}

func TestEntryPointsBinString(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"bin": "cli.js"}`)

	eps := EntryPoints(root)

	require.Len(t, eps, 1)
	assert.Equal(t, model.EntryPoint{Path: "cli.js", Description: "CLI binary"}, eps[0])
}

func TestInferLanguages(t *testing.T) {
	t.Parallel()
	langs := InferLanguages(map[string]int{
		".py":  5,
		".ts":  3,
		".js":  3,
		".cc":  1,
		".cpp": 1,
		".md":  9,
	})

	// Count descending, extension ascending on ties; unknown extensions are
	// dropped and duplicate language names collapse.
	assert.Equal(t, []string{"Python", "JavaScript", "TypeScript", "C++"}, langs)
}
