package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test import defaults
	if cfg.Import.Scale != 0.01 {
		t.Errorf("expected scale 0.01, got %f", cfg.Import.Scale)
	}
	if cfg.Import.FlipWinding {
		t.Error("expected flip_winding to be false by default")
	}
	if cfg.Import.FailFast {
		t.Error("expected fail_fast to be false by default")
	}
	if cfg.Import.Workers != 0 {
		t.Errorf("expected workers 0, got %d", cfg.Import.Workers)
	}

	// Test cache defaults
	if cfg.Cache.Entries != 64 {
		t.Errorf("expected cache entries 64, got %d", cfg.Cache.Entries)
	}

	// Test server defaults
	if cfg.Server.Addr != "127.0.0.1:8035" {
		t.Errorf("expected addr 127.0.0.1:8035, got %s", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadMB != 256 {
		t.Errorf("expected max upload 256, got %d", cfg.Server.MaxUploadMB)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
import:
  scale: 1.0
  flip_winding: true
  fail_fast: true
  workers: 8

cache:
  entries: 16

server:
  addr: "0.0.0.0:9000"
  max_upload_mb: 64

logging:
  level: "debug"
  log_file: "uefkit.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Import.Scale != 1.0 {
		t.Errorf("expected scale 1.0, got %f", cfg.Import.Scale)
	}
	if !cfg.Import.FlipWinding {
		t.Error("expected flip_winding to be true")
	}
	if !cfg.Import.FailFast {
		t.Error("expected fail_fast to be true")
	}
	if cfg.Import.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Import.Workers)
	}

	if cfg.Cache.Entries != 16 {
		t.Errorf("expected cache entries 16, got %d", cfg.Cache.Entries)
	}

	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("expected addr 0.0.0.0:9000, got %s", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadMB != 64 {
		t.Errorf("expected max upload 64, got %d", cfg.Server.MaxUploadMB)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "uefkit.log" {
		t.Errorf("expected log file 'uefkit.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	// A file that sets only one field keeps defaults for the rest.
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := "import:\n  scale: 2.5\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Import.Scale != 2.5 {
		t.Errorf("expected scale 2.5 from file, got %f", cfg.Import.Scale)
	}
	if cfg.Cache.Entries != 64 {
		t.Errorf("expected default cache entries 64, got %d", cfg.Cache.Entries)
	}
	if cfg.Server.Addr != "127.0.0.1:8035" {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
import:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom.yaml")

	yamlContent := "server:\n  addr: \"127.0.0.1:7777\"\n"
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7777" {
		t.Errorf("expected addr from explicit path, got %s", cfg.Server.Addr)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for missing explicit config path, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// Point the config dir lookup somewhere empty too
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create uefkit.yaml in current directory
	configPath := filepath.Join(tmpDir, "uefkit.yaml")
	if err := os.WriteFile(configPath, []byte("import:\n  scale: 1.0\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find uefkit.yaml in current directory")
	}
}

func TestSaveTo(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "config.yaml")

	cfg := Default()
	cfg.Import.Scale = 0.5
	cfg.Logging.Level = "warn"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	if !strings.Contains(string(data), "scale: 0.5") {
		t.Errorf("saved config missing scale, got:\n%s", data)
	}
	if !strings.Contains(string(data), "level: warn") {
		t.Errorf("saved config missing log level, got:\n%s", data)
	}

	// Round-trip through Load
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Import.Scale != 0.5 {
		t.Errorf("expected reloaded scale 0.5, got %f", loaded.Import.Scale)
	}
	if loaded.Logging.Level != "warn" {
		t.Errorf("expected reloaded level 'warn', got %s", loaded.Logging.Level)
	}
}
