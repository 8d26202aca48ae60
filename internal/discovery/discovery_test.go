package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/standardbeagle/codehealth/internal/config"
	"github.com/standardbeagle/codehealth/internal/types"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.Default()
	cfg.ConfigDir = dir
	cfg.ScannedRoots = []string{"."}
	return cfg
}

func TestRunDiscoversAndTagsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "backend/main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, dir, "frontend/App.tsx", "export const App = () => <div />\n")
	writeFile(t, dir, "frontend/App.css", ".app { color: red; }\n")

	d := New(testConfig(dir))
	registry, err := d.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(registry.Files) != 3 {
		t.Fatalf("expected 3 discovered files, got %d: %v", len(registry.Files), registry.Paths())
	}

	rec, ok := registry.Files["backend/main.go"]
	if !ok {
		t.Fatalf("expected backend/main.go in registry, got %v", registry.Paths())
	}
	if rec.Platform != types.PlatformBackend {
		t.Errorf("expected backend platform, got %s", rec.Platform)
	}
	if rec.Driver != types.DriverStructural {
		t.Errorf("expected structural driver, got %s", rec.Driver)
	}
}

func TestRunSkipsIgnoredFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "legacy/old.go", "// @efficiency-role: ignored\npackage legacy\n")

	d := New(testConfig(dir))
	registry, err := d.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(registry.Files) != 0 {
		t.Fatalf("expected ignored file to be excluded, got %v", registry.Paths())
	}
}

func TestRunSkipsExcludedFolders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "node_modules/pkg/index.ts", "export const x = 1\n")
	writeFile(t, dir, "src/app.go", "package src\n")

	cfg := testConfig(dir)
	d := New(cfg)
	registry, err := d.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(registry.Files) != 1 {
		t.Fatalf("expected node_modules to be excluded, got %v", registry.Paths())
	}
}

func TestRunBuildsStemIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/widget.go", "package a\n")
	writeFile(t, dir, "b/widget.ts", "export const x = 1\n")

	d := New(testConfig(dir))
	registry, err := d.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	paths := registry.Stems["widget"]
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths under stem 'widget', got %v", paths)
	}
}
