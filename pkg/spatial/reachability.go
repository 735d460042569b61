package spatial

import (
	"fmt"

	"github.com/calista-labs/rulegraph/pkg/rules"
)

// Channel is a physical channel candidate between two locations.
type Channel struct {
	SourceLocation string
	TargetLocation string
	Type           string
}

// Verdict records whether a channel is physically plausible and which rule
// decided it.
type Verdict struct {
	Reachable bool
	Reason    string
}

// Reachable applies the reachability rules in fixed priority order:
//
//	R1 intra-space: same location is always reachable.
//	R2 HVAC-mediated: air-borne channel types reach any space served by a
//	   common air handling unit, regardless of floor.
//	R3 adjacency: adjacency-borne channel types cross between physically
//	   adjacent spaces on the same floor.
//	R4 otherwise the locations are spatially separated.
//
// A location missing from the ontology is reported as unreachable with a
// distinct reason, not as an error.
func (o *Ontology) Reachable(ch Channel) Verdict {
	if _, ok := o.SpaceFloors[ch.SourceLocation]; !ok {
		return Verdict{false, "Rule Error: Source device location unknown in ontology."}
	}
	if _, ok := o.SpaceFloors[ch.TargetLocation]; !ok {
		return Verdict{false, "Rule Error: Target device location unknown in ontology."}
	}

	if ch.SourceLocation == ch.TargetLocation {
		return Verdict{true, "Rule R1 (Intra-Space): Devices are in the same location."}
	}

	if o.hvacMediated(ch.Type) {
		for ahu, zone := range o.HVACServiceZones {
			if containsString(zone, ch.SourceLocation) && containsString(zone, ch.TargetLocation) {
				return Verdict{true, fmt.Sprintf("Rule R2 (HVAC-Mediated): Locations are connected by the same AHU (%s).", ahu)}
			}
		}
	}

	if o.SpaceFloors[ch.SourceLocation] == o.SpaceFloors[ch.TargetLocation] && o.adjacencyMediated(ch.Type) {
		if containsString(o.SpaceAdjacencies[ch.SourceLocation], ch.TargetLocation) {
			return Verdict{true, "Rule R3 (Adjacency): Locations are physically adjacent on the same floor."}
		}
	}

	return Verdict{false, "Rule R4 (Spatially Separated): No plausible physical path found."}
}

// FilterResult partitions the physical-channel interactions of a batch into
// plausible and pruned, with the deciding reason per interaction.
type FilterResult struct {
	Plausible []JudgedInteraction
	Pruned    []JudgedInteraction
	Skipped   int // interactions that were not physical channels
}

// JudgedInteraction pairs an interaction with its reachability verdict.
type JudgedInteraction struct {
	Interaction rules.Interaction
	Reason      string
}

// FilterInteractions judges every physical-channel interaction of the batch
// against the ontology. System and generic channels are not spatial and pass
// through untouched (counted as skipped).
func (o *Ontology) FilterInteractions(interactions []rules.Interaction) FilterResult {
	var result FilterResult
	for _, in := range interactions {
		if in.Actions.ChannelType != rules.ChannelPhysical {
			result.Skipped++
			continue
		}
		verdict := o.Reachable(Channel{
			SourceLocation: in.Actions.DeviceLocation,
			TargetLocation: in.Triggers.DeviceLocation,
			Type:           in.Actions.ImplicitChannel,
		})
		judged := JudgedInteraction{Interaction: in, Reason: verdict.Reason}
		if verdict.Reachable {
			result.Plausible = append(result.Plausible, judged)
		} else {
			result.Pruned = append(result.Pruned, judged)
		}
	}
	return result
}
