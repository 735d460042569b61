package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calista-labs/rulegraph/pkg/extract"
	"github.com/calista-labs/rulegraph/pkg/logging"
)

var (
	extractPromptFile  string
	extractRuleFile    string
	extractDevicesFile string
	inferPromptFile    string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured rules from raw rule text",
	Long: `Send chunks of raw rule text to the configured model and merge the
returned rule records into a validated batch, written to the rules
file named in the config.

Examples:
  rulegraph extract --prompt prompts/extract.txt --rules raw_rules.txt --devices devices.json`,
	RunE: runExtract,
}

var inferCmd = &cobra.Command{
	Use:   "infer-channels",
	Short: "Infer implicit channels for an extracted rule batch",
	RunE:  runInferChannels,
}

func init() {
	extractCmd.Flags().StringVar(&extractPromptFile, "prompt", "", "extraction prompt template file")
	extractCmd.Flags().StringVar(&extractRuleFile, "rules", "", "raw rule text file")
	extractCmd.Flags().StringVar(&extractDevicesFile, "devices", "", "device inventory JSON file")
	inferCmd.Flags().StringVar(&inferPromptFile, "prompt", "", "channel inference prompt template file")
	rootCmd.AddCommand(extractCmd, inferCmd)
}

func newExtractor() *extract.Extractor {
	client := extract.NewOpenAIClient(cfg.APIKey(), cfg.Model.BaseURL, cfg.Model.Name)
	return &extract.Extractor{
		Client:    client,
		ChunkSize: cfg.Model.ChunkSize,
		OnChunk: func(outcome string) {
			reg.ExtractionChunksTotal.WithLabelValues(outcome).Inc()
		},
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	prompt, err := os.ReadFile(extractPromptFile)
	if err != nil {
		return fmt.Errorf("read prompt: %w", err)
	}
	ruleText, err := os.ReadFile(extractRuleFile)
	if err != nil {
		return fmt.Errorf("read rules: %w", err)
	}
	devices, err := os.ReadFile(extractDevicesFile)
	if err != nil {
		return fmt.Errorf("read devices: %w", err)
	}
	ontology := ""
	if cfg.OntologyFile != "" {
		data, err := os.ReadFile(cfg.OntologyFile)
		if err != nil {
			return fmt.Errorf("read ontology: %w", err)
		}
		ontology = string(data)
	}

	ext := newExtractor()
	rs, err := ext.ExtractRules(cmd.Context(), string(prompt), string(ruleText), string(devices), ontology)
	if err != nil {
		return err
	}
	logger.Info("rules extracted", logging.Stage("extract"), logging.Count(len(rs)))

	out, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.RulesFile), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cfg.RulesFile, out, 0o644)
}

func runInferChannels(cmd *cobra.Command, args []string) error {
	prompt, err := os.ReadFile(inferPromptFile)
	if err != nil {
		return fmt.Errorf("read prompt: %w", err)
	}
	rs, err := loadRules()
	if err != nil {
		return err
	}

	ext := newExtractor()
	enriched, err := ext.InferChannels(cmd.Context(), string(prompt), rs, cfg.Model.SliceSize)
	if err != nil {
		return err
	}
	logger.Info("channels inferred", logging.Stage("infer"), logging.Count(len(enriched)))

	out, err := json.MarshalIndent(enriched, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(cfg.RulesFile, out, 0o644)
}
