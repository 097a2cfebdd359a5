package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noRillTomlMessage = "no rill.toml found\nplease specify the batch path explicitly, e.g.:\n  rill diag path/to/batches"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package  packageConfig  `toml:"package"`
	Diagnose diagnoseConfig `toml:"diagnose"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type diagnoseConfig struct {
	// Batches is the directory (relative to the manifest) that holds
	// the solver's .rlb output.
	Batches string `toml:"batches"`
	Jobs    int    `toml:"jobs"`
}

func findRillToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "rill.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findRillToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("diagnose") {
		return projectConfig{}, fmt.Errorf("%s: missing [diagnose]", path)
	}
	if !meta.IsDefined("diagnose", "batches") || strings.TrimSpace(cfg.Diagnose.Batches) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [diagnose].batches", path)
	}
	return cfg, nil
}

// resolveManifestBatchDir maps [diagnose].batches onto the filesystem.
func resolveManifestBatchDir(manifest *projectManifest) (string, error) {
	if manifest == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	rel := strings.TrimSpace(manifest.Config.Diagnose.Batches)
	dir := filepath.Join(manifest.Root, filepath.FromSlash(rel))
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [diagnose].batches path does not exist: %s", manifest.Path, dir)
		}
		return "", fmt.Errorf("%s: failed to stat [diagnose].batches: %w", manifest.Path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: [diagnose].batches must be a directory", manifest.Path)
	}
	return dir, nil
}
