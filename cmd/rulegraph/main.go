package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calista-labs/rulegraph/pkg/config"
	"github.com/calista-labs/rulegraph/pkg/logging"
	"github.com/calista-labs/rulegraph/pkg/metrics"
)

var (
	cfgPath string
	cfg     *config.Config
	logger  logging.Logger
	reg     *metrics.Registry
)

var rootCmd = &cobra.Command{
	Use:   "rulegraph",
	Short: "Analyze causal attack paths in automation-rule interaction graphs",
	Long: `rulegraph turns a batch of smart-building automation rules into an
interaction graph and enumerates the causal paths an attacker could
ride to reach a chosen target node, scoring each path by cost,
stealth, length, and criticality.

Typical flow:
  rulegraph extract      - pull structured rules out of raw rule text
  rulegraph interactions - discover and filter cross-rule interactions
  rulegraph graph        - emit the DOT interaction graph
  rulegraph analyze T_1  - enumerate and score paths to a target`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "rulegraph.yaml", "path to the analyzer config file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger = logging.Default()
		reg = metrics.NewRegistry()
		return nil
	}
}
