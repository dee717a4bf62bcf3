package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("maxStackDepth: 64\nstdlib: false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	configPath = path
	cfg = defaultEngineConfig()
	defer func() { configPath = ""; cfg = defaultEngineConfig() }()

	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.MaxStackDepth != 64 || cfg.Stdlib != false {
		t.Fatalf("got %+v, want MaxStackDepth=64 Stdlib=false", cfg)
	}
}

func TestLoadConfigMissingDefaultFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	configPath = ""
	cfg = defaultEngineConfig()
	if err := loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != defaultEngineConfig() {
		t.Fatalf("got %+v, want unchanged defaults", cfg)
	}
}

func TestLoadConfigExplicitMissingPathIsAnError(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "nope.yaml")
	defer func() { configPath = "" }()
	if err := loadConfig(); err == nil {
		t.Fatal("expected an error for a missing explicit --config path")
	}
}
