// Package dot reads and writes the diagram description format the pipeline
// exchanges graphs in. Node identity encodes node kind through fixed prefixes
// (CH_, T_, A_, LOGIC_) and channel labels carry a [Physical] or [System]
// tag; the parser resolves both into explicit types exactly once, at parse
// time.
package dot

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/calista-labs/rulegraph/pkg/graph"
)

var (
	channelPattern = regexp.MustCompile(`^(CH_[A-Za-z0-9_]+)\s*\[label="([^"]+)"`)
	actionPattern  = regexp.MustCompile(`^(A_[A-Za-z0-9_]+)\s*\[label="([^"]+)"`)
	triggerPattern = regexp.MustCompile(`^(T_[A-Za-z0-9_]+)\s*\[label="([^"]+)"`)
	logicPattern   = regexp.MustCompile(`^(LOGIC_[A-Za-z0-9_]+)\s*\[label="?([^"\] ]+)"?`)
	edgePattern    = regexp.MustCompile(`^\s*([A-Za-z0-9_]+)\s*->\s*([A-Za-z0-9_]+)`)
)

// Parse extracts node and edge declarations from DOT text. Lines that carry
// neither a recognised node prefix nor an edge arrow (graph headers,
// attribute lines, closing braces) are skipped; a line that announces itself
// as a node or edge but fails its shape is a parse error, fatal to graph
// construction.
func Parse(input string) ([]graph.NodeDecl, []graph.EdgeDecl, error) {
	var nodes []graph.NodeDecl
	var edges []graph.EdgeDecl

	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, "->") {
			m := edgePattern.FindStringSubmatch(line)
			if m == nil {
				return nil, nil, &graph.BuildError{Op: "ParseEdge", Entity: "line", ID: line, Cause: graph.ErrParse}
			}
			edges = append(edges, graph.EdgeDecl{Source: m[1], Target: m[2]})
			continue
		}

		decl, recognised, err := parseNodeLine(line)
		if err != nil {
			return nil, nil, err
		}
		if recognised {
			nodes = append(nodes, decl)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &graph.BuildError{Op: "Parse", Entity: "input", Cause: err}
	}

	return nodes, edges, nil
}

func parseNodeLine(line string) (graph.NodeDecl, bool, error) {
	switch {
	case strings.HasPrefix(line, "CH_"):
		m := channelPattern.FindStringSubmatch(line)
		if m == nil {
			return graph.NodeDecl{}, false, parseErr("ParseNode", line)
		}
		return graph.NodeDecl{ID: m[1], Label: m[2], Type: channelType(m[2])}, true, nil

	case strings.HasPrefix(line, "A_"):
		m := actionPattern.FindStringSubmatch(line)
		if m == nil {
			return graph.NodeDecl{}, false, parseErr("ParseNode", line)
		}
		return graph.NodeDecl{ID: m[1], Label: m[2], Type: graph.TypeAction}, true, nil

	case strings.HasPrefix(line, "T_"):
		m := triggerPattern.FindStringSubmatch(line)
		if m == nil {
			return graph.NodeDecl{}, false, parseErr("ParseNode", line)
		}
		return graph.NodeDecl{ID: m[1], Label: m[2], Type: graph.TypeTrigger}, true, nil

	case strings.HasPrefix(line, "LOGIC_"):
		m := logicPattern.FindStringSubmatch(line)
		if m == nil {
			return graph.NodeDecl{}, false, parseErr("ParseNode", line)
		}
		return graph.NodeDecl{ID: m[1], Label: m[2], Type: logicType(m[1])}, true, nil
	}

	return graph.NodeDecl{}, false, nil
}

func parseErr(op, line string) error {
	return &graph.BuildError{Op: op, Entity: "line", ID: line, Cause: graph.ErrParse}
}

// channelType resolves the channel medium from the label tag.
func channelType(label string) graph.NodeType {
	switch {
	case strings.Contains(label, "[Physical]"):
		return graph.TypePhysicalChannel
	case strings.Contains(label, "[System]"):
		return graph.TypeSystemChannel
	default:
		return graph.TypeGenericChannel
	}
}

// logicType resolves the operator from the logic node's id.
func logicType(id string) graph.NodeType {
	switch {
	case strings.Contains(id, "AND"):
		return graph.TypeAndGate
	case strings.Contains(id, "OR"):
		return graph.TypeOrGate
	default:
		return graph.TypeLogic
	}
}
