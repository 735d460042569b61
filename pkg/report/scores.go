package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/calista-labs/rulegraph/pkg/score"
)

// PathScore pairs one independent path's rendered representation with its
// metrics.
type PathScore struct {
	Path    string
	Metrics score.Metrics
}

// scoreHeader is the column set of the per-path score report.
var scoreHeader = []string{"Path", "Total Cost", "Average Stealth", "Path Length", "Path Criticality"}

// WriteScoresCSV writes one row per path. Absent stealth and criticality
// render as empty cells, never as zeros.
func WriteScoresCSV(w io.Writer, results []PathScore) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(scoreHeader); err != nil {
		return fmt.Errorf("write score header: %w", err)
	}
	for _, r := range results {
		row := []string{
			r.Path,
			strconv.FormatFloat(r.Metrics.Cost, 'f', -1, 64),
			formatOptional(r.Metrics.Stealth),
			strconv.Itoa(r.Metrics.Length),
			formatOptional(r.Metrics.Criticality),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write score row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderScoreTable renders the same rows as an aligned text table for
// terminal output.
func RenderScoreTable(results []PathScore) string {
	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(scoreHeader, "\t"))
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			r.Path,
			strconv.FormatFloat(r.Metrics.Cost, 'f', -1, 64),
			formatOptional(r.Metrics.Stealth),
			r.Metrics.Length,
			formatOptional(r.Metrics.Criticality))
	}
	tw.Flush()
	return b.String()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
