package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Tool.Command != "git-truck" {
		t.Errorf("Tool.Command = %s, want git-truck", cfg.Tool.Command)
	}
	if cfg.Tool.TimeoutMinutes != 10 {
		t.Errorf("Tool.TimeoutMinutes = %d, want 10", cfg.Tool.TimeoutMinutes)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("Analysis.Workers = %d, want 4", cfg.Analysis.Workers)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true by default")
	}
	if cfg.Cache.TTL != 24 {
		t.Errorf("Cache.TTL = %d, want 24", cfg.Cache.TTL)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %s, want text", cfg.Output.Format)
	}
	if !cfg.Output.Color {
		t.Error("Output.Color should be true by default")
	}
	if cfg.Server.Addr != ":8710" {
		t.Errorf("Server.Addr = %s, want :8710", cfg.Server.Addr)
	}
}

func TestLoadTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "camion.toml")

	content := `
[tool]
command = "truck-cli"
args = ["--json"]
timeout_minutes = 3

[clone]
depth = 1

[cache]
enabled = false

[output]
format = "json"
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Tool.Command != "truck-cli" {
		t.Errorf("Tool.Command = %s, want truck-cli", cfg.Tool.Command)
	}
	if len(cfg.Tool.Args) != 1 || cfg.Tool.Args[0] != "--json" {
		t.Errorf("Tool.Args = %v, want [--json]", cfg.Tool.Args)
	}
	if cfg.Tool.TimeoutMinutes != 3 {
		t.Errorf("Tool.TimeoutMinutes = %d, want 3", cfg.Tool.TimeoutMinutes)
	}
	if cfg.Clone.Depth != 1 {
		t.Errorf("Clone.Depth = %d, want 1", cfg.Clone.Depth)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be false")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Addr != ":8710" {
		t.Errorf("Server.Addr = %s, want default :8710", cfg.Server.Addr)
	}
}

func TestLoadYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "camion.yaml")

	content := `
server:
  addr: ":9000"
analysis:
  workers: 8
`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %s, want :9000", cfg.Server.Addr)
	}
	if cfg.Analysis.Workers != 8 {
		t.Errorf("Analysis.Workers = %d, want 8", cfg.Analysis.Workers)
	}
}

func TestLoadJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "camion.json")

	content := `{"output": {"format": "toon", "color": false}}`

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Output.Format != "toon" {
		t.Errorf("Output.Format = %s, want toon", cfg.Output.Format)
	}
	if cfg.Output.Color {
		t.Error("Output.Color should be false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("Load() should error for a missing file")
	}
}

func TestLoadOrDefaultWithoutFile(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	cfg := LoadOrDefault()
	if cfg.Tool.Command != "git-truck" {
		t.Errorf("Tool.Command = %s, want default git-truck", cfg.Tool.Command)
	}
}

func TestLoadOrDefaultFindsFile(t *testing.T) {
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(origDir)

	content := "[output]\nformat = \"markdown\"\n"
	if err := os.WriteFile(filepath.Join(dir, "camion.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadOrDefault()
	if cfg.Output.Format != "markdown" {
		t.Errorf("Output.Format = %s, want markdown", cfg.Output.Format)
	}
}
