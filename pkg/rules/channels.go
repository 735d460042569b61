package rules

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ChannelCounts tallies implicit channel mentions across a rule batch,
// split by where they appear and by medium.
type ChannelCounts struct {
	System           map[string]int
	Physical         map[string]int
	TriggersSystem   map[string]int
	TriggersPhysical map[string]int
	ActionsSystem    map[string]int
	ActionsPhysical  map[string]int
}

// CountChannels walks all trigger conditions and actions and counts every
// physical and system channel mention.
func CountChannels(rs []Rule) ChannelCounts {
	c := ChannelCounts{
		System:           map[string]int{},
		Physical:         map[string]int{},
		TriggersSystem:   map[string]int{},
		TriggersPhysical: map[string]int{},
		ActionsSystem:    map[string]int{},
		ActionsPhysical:  map[string]int{},
	}

	tally := func(refs []ChannelRef, system, physical map[string]int) {
		for _, ref := range refs {
			switch ref.Kind {
			case ChannelSystem:
				system[ref.Name]++
				c.System[ref.Name]++
			case ChannelPhysical:
				physical[ref.Name]++
				c.Physical[ref.Name]++
			}
		}
	}

	for _, rule := range rs {
		for _, block := range rule.Triggers {
			for _, cond := range block.Conditions {
				tally(cond.Channels(), c.TriggersSystem, c.TriggersPhysical)
			}
		}
		for _, action := range rule.Actions {
			tally(action.Channels(), c.ActionsSystem, c.ActionsPhysical)
		}
	}

	return c
}

// Report renders the counts as the plain-text summary written next to the
// extraction output.
func (c ChannelCounts) Report() string {
	var b strings.Builder
	section := func(title string, counts map[string]int) {
		fmt.Fprintf(&b, "%s:\n", title)
		keys := maps.Keys(counts)
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %d\n", k, counts[k])
		}
		b.WriteString("\n")
	}

	section("all system_channel counts", c.System)
	section("all physical_channel counts", c.Physical)
	section("triggers of system_channel counts", c.TriggersSystem)
	section("triggers of physical_channel counts", c.TriggersPhysical)
	section("actions of system_channel counts", c.ActionsSystem)
	section("actions of physical_channel counts", c.ActionsPhysical)

	return strings.TrimRight(b.String(), "\n") + "\n"
}
