package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calista-labs/rulegraph/pkg/dot"
	"github.com/calista-labs/rulegraph/pkg/graph"
	"github.com/calista-labs/rulegraph/pkg/logging"
	"github.com/calista-labs/rulegraph/pkg/report"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Emit the DOT interaction graph for the rule batch",
	RunE:  runGraph,
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse the DOT graph into a typed, centrality-annotated document",
	Long: `Parse the DOT interaction graph, classify every edge, compute
betweenness centrality, and write the resulting graph document as
JSON to the graph info file named in the config.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(graphCmd, parseCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	rs, err := loadRules()
	if err != nil {
		return err
	}
	out := dot.Write(rs)
	if err := os.WriteFile(cfg.GraphFile, []byte(out), 0o644); err != nil {
		return err
	}
	logger.Info("graph written", logging.Stage("graph"),
		logging.String("file", cfg.GraphFile))
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(cfg.GraphFile)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}
	nodes, edges, err := dot.Parse(string(data))
	if err != nil {
		return err
	}
	g := graph.Build(nodes, edges)
	reg.GraphNodes.Set(float64(g.NodeCount()))
	reg.GraphEdges.Set(float64(g.EdgeCount()))
	logger.Info("graph parsed", logging.Stage("parse"),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()))

	doc, err := report.MarshalGraphInfo(g)
	if err != nil {
		return err
	}
	return report.WriteDocument(cfg.GraphInfoFile, doc)
}
