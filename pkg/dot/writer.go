package dot

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/calista-labs/rulegraph/pkg/rules"
)

// channelMedium classifies a channel name by scanning every mention of it
// across the rule batch; a physical or system mention wins over generic.
func channelMedium(rs []rules.Rule, name string) string {
	medium := "Unknown"
	note := func(refs []rules.ChannelRef) {
		for _, ref := range refs {
			if ref.Name != name {
				continue
			}
			switch ref.Kind {
			case rules.ChannelPhysical:
				medium = "Physical"
			case rules.ChannelSystem:
				medium = "System"
			}
		}
	}
	for _, rule := range rs {
		for _, block := range rule.Triggers {
			for _, cond := range block.Conditions {
				note(cond.Channels())
			}
		}
		for _, action := range rule.Actions {
			note(action.Channels())
		}
	}
	return medium
}

// sanitizeID makes a name safe as a DOT identifier.
func sanitizeID(name string) string {
	return strings.NewReplacer(":", "_", ".", "_").Replace(name)
}

func channelNodeID(name string) string {
	return "CH_" + sanitizeID(name)
}

// Write renders a rule batch as the interaction digraph: one node per
// implicit channel, per trigger condition, and per action, logic diamonds
// between multi-condition triggers and their actions, and edges through the
// channels that couple rules. The output parses back through Parse.
func Write(rs []rules.Rule) string {
	var b strings.Builder
	b.WriteString("digraph SmartBuildingRules {\n")
	b.WriteString("\trankdir=LR\n")
	b.WriteString("\tsplines=spline\n")
	b.WriteString("\tnodesep=0.7\n")
	b.WriteString("\tranksep=1.5\n")

	// Channel nodes first so every edge endpoint is declared before use.
	channels := map[string]bool{}
	collect := func(refs []rules.ChannelRef) {
		for _, ref := range refs {
			channels[ref.Name] = true
		}
	}
	for _, rule := range rs {
		for _, block := range rule.Triggers {
			for _, cond := range block.Conditions {
				collect(cond.Channels())
			}
		}
		for _, action := range rule.Actions {
			collect(action.Channels())
		}
	}

	names := maps.Keys(channels)
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&b, "\t%s [label=\"%s [%s]\" shape=ellipse style=filled fillcolor=\"#FFC0CB\"]\n",
			channelNodeID(name), name, channelMedium(rs, name))
	}

	for _, rule := range rs {
		ruleID := sanitizeID(rule.RuleID)

		var actionIDs []string
		for idx, action := range rule.Actions {
			actionID := fmt.Sprintf("A_%s_%d", ruleID, idx)
			label := fmt.Sprintf("Action_%s:%s.%s(%s)", ruleID, action.DeviceName, action.Command, formatValue(action.Value))
			fmt.Fprintf(&b, "\t%s [label=\"%s\" shape=box style=\"filled,rounded\" fillcolor=\"#FFFACD\"]\n", actionID, label)
			actionIDs = append(actionIDs, actionID)

			for _, ref := range action.Channels() {
				fmt.Fprintf(&b, "\t%s -> %s\n", actionID, channelNodeID(ref.Name))
			}
		}

		for blockIdx, block := range rule.Triggers {
			var conditionIDs []string
			for condIdx, cond := range block.Conditions {
				condID := fmt.Sprintf("T_%s_%d", ruleID, condIdx)
				label := fmt.Sprintf("Trigger_(%s):%s.%s%s%s", ruleID, cond.DeviceName, cond.Attribute, cond.Operator, formatValue(cond.Value))
				fmt.Fprintf(&b, "\t%s [label=\"%s\" shape=box style=\"filled,rounded\" fillcolor=\"#E0FFFF\"]\n", condID, label)
				conditionIDs = append(conditionIDs, condID)

				for _, ref := range cond.Channels() {
					fmt.Fprintf(&b, "\t%s -> %s\n", channelNodeID(ref.Name), condID)
				}
			}
			if len(conditionIDs) == 0 {
				continue
			}

			// A single condition drives the actions directly. Several
			// conditions join through the declared operator's diamond, or
			// through an implicit AND when no operator was declared.
			operator := strings.ToUpper(block.LogicalOperator)
			var source string
			switch {
			case len(conditionIDs) == 1:
				source = conditionIDs[0]
			case operator == "AND" || operator == "OR":
				source = fmt.Sprintf("LOGIC_%s_%s", ruleID, operator)
				fmt.Fprintf(&b, "\t%s [label=%s shape=diamond style=filled fillcolor=\"#D3D3D3\"]\n", source, operator)
				for _, condID := range conditionIDs {
					fmt.Fprintf(&b, "\t%s -> %s\n", condID, source)
				}
			default:
				source = fmt.Sprintf("LOGIC_%s_AND_%d", ruleID, blockIdx)
				fmt.Fprintf(&b, "\t%s [label=AND shape=diamond style=filled fillcolor=\"#E8E8E8\"]\n", source)
				for _, condID := range conditionIDs {
					fmt.Fprintf(&b, "\t%s -> %s\n", condID, source)
				}
			}

			for _, actionID := range actionIDs {
				fmt.Fprintf(&b, "\t%s -> %s\n", source, actionID)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
