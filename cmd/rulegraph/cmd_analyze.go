package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/calista-labs/rulegraph/pkg/logging"
	"github.com/calista-labs/rulegraph/pkg/pipeline"
	"github.com/calista-labs/rulegraph/pkg/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [TARGET...]",
	Short: "Enumerate and score attack paths to one or more targets",
	Long: `Load the typed graph document, enumerate every causal path ending at
each target, and write a score report (CSV) plus a rendered path
forest per target into the output directory.

Targets given on the command line override the targets list in the
config file.

Examples:
  rulegraph analyze T_rule42_0
  rulegraph analyze A_rule7_1 T_rule42_0`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	targets := args
	if len(targets) == 0 {
		targets = cfg.Targets
	}
	if len(targets) == 0 {
		return fmt.Errorf("no targets: pass them as arguments or set targets in the config")
	}

	data, err := report.ReadDocument(cfg.GraphInfoFile)
	if err != nil {
		return fmt.Errorf("read graph info: %w", err)
	}
	g, err := report.LoadGraphInfo(data)
	if err != nil {
		return err
	}

	analyzer := pipeline.NewAnalyzer(g,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(reg))

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	timer := logging.StartTimer(logger, "analyze run finished",
		logging.Count(len(targets)))
	for _, target := range targets {
		res, err := analyzer.Analyze(cmd.Context(), target)
		if err != nil {
			timer.EndError(err)
			return err
		}
		if err := writeResult(res); err != nil {
			timer.EndError(err)
			return err
		}
	}
	timer.End()
	return nil
}

func writeResult(res *pipeline.Result) error {
	scores := make([]report.PathScore, 0, len(res.Paths))
	for _, p := range res.Paths {
		scores = append(scores, report.PathScore{
			Path:    p.Sequence.String(),
			Metrics: p.Metrics,
		})
	}

	csvPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("scores_%s.csv", res.Target))
	f, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := report.WriteScoresCSV(f, scores); err != nil {
		return err
	}

	treePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("trees_%s.txt", res.Target))
	rendered := report.RenderTrees(res.Trees, res.Target)
	return os.WriteFile(treePath, []byte(rendered), 0o644)
}
