package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calista-labs/rulegraph/pkg/logging"
	"github.com/calista-labs/rulegraph/pkg/rules"
	"github.com/calista-labs/rulegraph/pkg/spatial"
)

var interactionsCmd = &cobra.Command{
	Use:   "interactions",
	Short: "Discover cross-rule interactions and filter them spatially",
	Long: `Match every action endpoint against every trigger endpoint sharing the
same implicit channel, then judge physical-channel interactions
against the building ontology and prune the spatially impossible
ones.`,
	RunE: runInteractions,
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Summarize implicit channel usage across the rule batch",
	RunE:  runCount,
}

func init() {
	rootCmd.AddCommand(interactionsCmd, countCmd)
}

func loadRules() ([]rules.Rule, error) {
	data, err := os.ReadFile(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	rs, err := rules.Load(data)
	if err != nil {
		return nil, err
	}
	reg.RulesValidated.Add(float64(len(rs)))
	return rs, nil
}

func runInteractions(cmd *cobra.Command, args []string) error {
	rs, err := loadRules()
	if err != nil {
		return err
	}
	interactions := rules.DiscoverInteractions(rs)
	logger.Info("interactions discovered",
		logging.Stage("discover"), logging.Count(len(interactions)))

	if cfg.OntologyFile == "" {
		for _, it := range interactions {
			fmt.Printf("%s -> %s via %s\n",
				it.Actions.RuleID, it.Triggers.RuleID, it.Actions.ImplicitChannel)
		}
		return nil
	}

	data, err := os.ReadFile(cfg.OntologyFile)
	if err != nil {
		return fmt.Errorf("read ontology: %w", err)
	}
	ont, err := spatial.LoadOntology(data)
	if err != nil {
		return err
	}
	result := ont.FilterInteractions(interactions)
	reg.InteractionsTotal.WithLabelValues("plausible").Add(float64(len(result.Plausible)))
	reg.InteractionsTotal.WithLabelValues("pruned").Add(float64(len(result.Pruned)))
	logger.Info("interactions filtered",
		logging.Stage("filter"),
		logging.Int("plausible", len(result.Plausible)),
		logging.Int("pruned", len(result.Pruned)),
		logging.Int("skipped", result.Skipped))

	for _, j := range result.Plausible {
		fmt.Printf("KEEP  %s -> %s via %s (%s)\n",
			j.Interaction.Actions.RuleID, j.Interaction.Triggers.RuleID,
			j.Interaction.Actions.ImplicitChannel, j.Reason)
	}
	for _, j := range result.Pruned {
		fmt.Printf("PRUNE %s -> %s via %s (%s)\n",
			j.Interaction.Actions.RuleID, j.Interaction.Triggers.RuleID,
			j.Interaction.Actions.ImplicitChannel, j.Reason)
	}
	return nil
}

func runCount(cmd *cobra.Command, args []string) error {
	rs, err := loadRules()
	if err != nil {
		return err
	}
	counts := rules.CountChannels(rs)
	fmt.Print(counts.Report())
	return nil
}
