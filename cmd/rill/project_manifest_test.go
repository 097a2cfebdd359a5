package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "rill.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "demo"

[diagnose]
batches = "out/batches"
jobs = 4
`)
	cfg, err := loadProjectConfig(path)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Errorf("name = %q, want demo", cfg.Package.Name)
	}
	if cfg.Diagnose.Batches != "out/batches" {
		t.Errorf("batches = %q", cfg.Diagnose.Batches)
	}
	if cfg.Diagnose.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", cfg.Diagnose.Jobs)
	}
}

func TestLoadProjectConfigRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing package", "[diagnose]\nbatches = \"out\"\n"},
		{"missing package name", "[package]\n[diagnose]\nbatches = \"out\"\n"},
		{"missing diagnose", "[package]\nname = \"demo\"\n"},
		{"missing batches", "[package]\nname = \"demo\"\n[diagnose]\njobs = 2\n"},
		{"empty batches", "[package]\nname = \"demo\"\n[diagnose]\nbatches = \"  \"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			if _, err := loadProjectConfig(path); err == nil {
				t.Error("expected error for incomplete manifest")
			}
		})
	}
}

func TestFindRillTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n[diagnose]\nbatches = \"out\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, ok, err := findRillToml(nested)
	if err != nil {
		t.Fatalf("findRillToml: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(found) != root {
		t.Errorf("found %q, want manifest in %q", found, root)
	}
}

func TestCollectBatchFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.rlb", "a.rlb", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := collectBatchFiles(dir)
	if err != nil {
		t.Fatalf("collectBatchFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want 2 entries", files)
	}
	if filepath.Base(files[0]) != "a.rlb" || filepath.Base(files[1]) != "b.rlb" {
		t.Errorf("files not sorted: %v", files)
	}

	single := filepath.Join(dir, "a.rlb")
	files, err = collectBatchFiles(single)
	if err != nil || len(files) != 1 || files[0] != single {
		t.Errorf("single file = %v, %v", files, err)
	}

	if _, err := collectBatchFiles(filepath.Join(dir, "notes.txt")); err == nil {
		t.Error("non-batch file accepted")
	}
	empty := t.TempDir()
	if _, err := collectBatchFiles(empty); err == nil {
		t.Error("empty directory accepted")
	}
}
