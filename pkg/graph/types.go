package graph

// NodeType classifies a node once at construction time. Downstream code
// branches on the type, never on the shape of the node's identifier.
type NodeType int

const (
	// TypeTrigger is a rule trigger condition.
	TypeTrigger NodeType = iota
	// TypeAction is a rule action.
	TypeAction
	// TypeAndGate joins multiple inputs that must all be present.
	TypeAndGate
	// TypeOrGate joins alternative inputs.
	TypeOrGate
	// TypeLogic is a logic node with an unrecognised operator.
	TypeLogic
	// TypePhysicalChannel is an implicit channel through the physical
	// environment (temperature, sound, smoke, ...).
	TypePhysicalChannel
	// TypeSystemChannel is an implicit channel through a shared platform
	// state variable.
	TypeSystemChannel
	// TypeGenericChannel is a channel whose medium could not be classified.
	TypeGenericChannel
)

// String returns the wire name used in graph info JSON documents.
func (t NodeType) String() string {
	switch t {
	case TypeTrigger:
		return "trigger"
	case TypeAction:
		return "action"
	case TypeAndGate:
		return "AND"
	case TypeOrGate:
		return "OR"
	case TypeLogic:
		return "logic"
	case TypePhysicalChannel:
		return "physical_channel"
	case TypeSystemChannel:
		return "system_channel"
	case TypeGenericChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// IsLogic reports whether the node is a logic placeholder (AND, OR, or an
// unrecognised logic operator). Logic placeholders never carry cost on their
// outgoing edges' lookup and are discounted from path lengths.
func (t NodeType) IsLogic() bool {
	return t == TypeAndGate || t == TypeOrGate || t == TypeLogic
}

// IsChannel reports whether the node is any of the three channel types.
func (t NodeType) IsChannel() bool {
	return t == TypePhysicalChannel || t == TypeSystemChannel || t == TypeGenericChannel
}

// EdgeType classifies how two rules are connected.
type EdgeType int

const (
	// EdgeExplicit is a declared rule-internal connection.
	EdgeExplicit EdgeType = iota
	// EdgePhysicalImplicit runs through a physical channel.
	EdgePhysicalImplicit
	// EdgeSystemImplicit runs through a system channel.
	EdgeSystemImplicit
)

// String returns the wire name used in graph info JSON documents.
func (t EdgeType) String() string {
	switch t {
	case EdgePhysicalImplicit:
		return "physical_implicit"
	case EdgeSystemImplicit:
		return "system_implicit"
	default:
		return "explicit"
	}
}

// Node is a typed node in the rule interaction graph. Targets and Sources are
// derived from the edge set during construction; Centrality is filled in by
// the betweenness pass and stays 0 for AND gates and channels.
type Node struct {
	ID         string
	Label      string
	Type       NodeType
	Targets    []string
	Sources    []string
	Centrality float64
}

// Edge is a directed connection between two nodes. Cost and Stealth are nil
// when the adversarial model assigns no value to the edge; nil is never
// folded into sums or means.
type Edge struct {
	Source  string
	Target  string
	Type    EdgeType
	Cost    *float64
	Stealth *float64
}

// NodeDecl is a parsed node declaration, before typing and adjacency.
type NodeDecl struct {
	ID    string
	Label string
	Type  NodeType
}

// EdgeDecl is a parsed edge declaration.
type EdgeDecl struct {
	Source string
	Target string
}
