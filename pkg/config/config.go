// Package config loads the analyzer's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelConfig configures the generative extraction stages.
type ModelConfig struct {
	// Name of the model, e.g. "gemini-2.5-pro".
	Name string `yaml:"name"`
	// BaseURL of the OpenAI-compatible endpoint.
	BaseURL string `yaml:"base_url"`
	// APIKeyEnv names the environment variable holding the API key; keys
	// never live in the config file itself.
	APIKeyEnv string `yaml:"api_key_env"`
	// ChunkSize is the number of rule text lines per extraction request.
	ChunkSize int `yaml:"chunk_size"`
	// SliceSize is the number of rule records per channel-inference request.
	SliceSize int `yaml:"slice_size"`
}

// Config is the top-level analyzer configuration.
type Config struct {
	// RulesFile is the structured rule batch (JSON).
	RulesFile string `yaml:"rules_file"`
	// OntologyFile is the building spatial ontology (YAML).
	OntologyFile string `yaml:"ontology_file"`
	// GraphFile is where the DOT interaction graph is written and read.
	GraphFile string `yaml:"graph_file"`
	// GraphInfoFile is where the typed graph JSON document lands.
	GraphInfoFile string `yaml:"graph_info_file"`
	// OutputDir receives score reports and path forest renderings.
	OutputDir string `yaml:"output_dir"`
	// Targets are the node ids to analyze when none is given on the
	// command line.
	Targets []string `yaml:"targets"`
	// Model configures the extraction stages.
	Model ModelConfig `yaml:"model"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every invocation needs.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("config: output_dir is required")
	}
	if c.Model.ChunkSize < 0 || c.Model.SliceSize < 0 {
		return fmt.Errorf("config: chunk and slice sizes must be non-negative")
	}
	return nil
}

// APIKey resolves the model API key from the environment.
func (c *Config) APIKey() string {
	if c.Model.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Model.APIKeyEnv)
}
