package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rulegraph.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
rules_file: out/rules.json
ontology_file: building.yaml
graph_file: out/graph.dot
graph_info_file: out/graph_info.json
output_dir: out
targets:
  - T_rule42_0
  - A_rule7_1
model:
  name: gemini-2.5-pro
  base_url: https://example.invalid/v1
  api_key_env: RULEGRAPH_API_KEY
  chunk_size: 30
  slice_size: 20
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("Expected output_dir out, got %q", cfg.OutputDir)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[0] != "T_rule42_0" {
		t.Errorf("Targets wrong: %v", cfg.Targets)
	}
	if cfg.Model.ChunkSize != 30 || cfg.Model.Name != "gemini-2.5-pro" {
		t.Errorf("Model config wrong: %+v", cfg.Model)
	}
}

func TestLoad_MissingOutputDir(t *testing.T) {
	path := writeConfig(t, "rules_file: rules.json\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Expected validation error for missing output_dir")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected error for missing config file")
	}
}

func TestAPIKey_FromEnvironment(t *testing.T) {
	cfg := &Config{Model: ModelConfig{APIKeyEnv: "RULEGRAPH_TEST_KEY"}}
	t.Setenv("RULEGRAPH_TEST_KEY", "secret")

	if got := cfg.APIKey(); got != "secret" {
		t.Errorf("Expected key from environment, got %q", got)
	}

	empty := &Config{}
	if got := empty.APIKey(); got != "" {
		t.Errorf("Expected empty key without env name, got %q", got)
	}
}
