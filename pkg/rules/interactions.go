package rules

// Endpoint is one side of a discovered interaction: the rule and device that
// writes to (actions) or reads from (triggers) an implicit channel.
type Endpoint struct {
	ImplicitChannel string `json:"implicit_channel"`
	ChannelType     string `json:"channel_type"`
	RuleID          string `json:"rule_id"`
	DeviceName      string `json:"device_name"`
	DeviceLocation  string `json:"device_location"`
}

// Interaction is a candidate causal link between two rules: an action of one
// rule feeds an implicit channel that a trigger of another rule observes.
type Interaction struct {
	Actions  Endpoint `json:"actions"`
	Triggers Endpoint `json:"triggers"`
}

// DiscoverInteractions matches action channels against trigger channels
// across all rule pairs. A match requires the same channel name and the same
// channel kind (physical stays physical, system stays system), and the two
// rules must differ; a rule triggering itself through its own action is not
// an interaction. Generic channel mentions carry no medium and are skipped.
func DiscoverInteractions(rs []Rule) []Interaction {
	type triggerEntry struct {
		Endpoint
	}

	var triggerIndex []triggerEntry
	for _, rule := range rs {
		for _, block := range rule.Triggers {
			for _, cond := range block.Conditions {
				for _, ref := range cond.Channels() {
					if ref.Kind == ChannelGeneric {
						continue
					}
					triggerIndex = append(triggerIndex, triggerEntry{Endpoint{
						ImplicitChannel: ref.Name,
						ChannelType:     ref.Kind,
						RuleID:          rule.RuleID,
						DeviceName:      cond.DeviceName,
						DeviceLocation:  rule.Context.Location(cond.DeviceName),
					}})
				}
			}
		}
	}

	var interactions []Interaction
	for _, rule := range rs {
		for _, action := range rule.Actions {
			for _, ref := range action.Channels() {
				if ref.Kind == ChannelGeneric {
					continue
				}
				for _, trig := range triggerIndex {
					if trig.ImplicitChannel != ref.Name || trig.ChannelType != ref.Kind || trig.RuleID == rule.RuleID {
						continue
					}
					interactions = append(interactions, Interaction{
						Actions: Endpoint{
							ImplicitChannel: ref.Name,
							ChannelType:     ref.Kind,
							RuleID:          rule.RuleID,
							DeviceName:      action.DeviceName,
							DeviceLocation:  rule.Context.Location(action.DeviceName),
						},
						Triggers: trig.Endpoint,
					})
				}
			}
		}
	}

	return interactions
}
