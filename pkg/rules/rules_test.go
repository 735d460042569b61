package rules

import (
	"strings"
	"testing"
)

// twoRuleBatch builds a heater rule whose physical temperature channel feeds
// a thermostat rule's trigger.
func twoRuleBatch(t *testing.T) []Rule {
	t.Helper()

	return []Rule{
		{
			RuleID: "rule1",
			Triggers: TriggerBlocks{{
				Conditions: []Condition{{
					DeviceName: "motion_sensor",
					Attribute:  "motion",
					Operator:   "==",
					Value:      "active",
				}},
			}},
			Actions: []Action{{
				DeviceName:              "heater",
				Command:                 "on",
				ImplicitPhysicalChannel: "temperature",
			}},
			Context: Context{DeviceLocations: []DeviceLocation{
				{DeviceName: "heater", Location: "living_room"},
			}},
		},
		{
			RuleID: "rule2",
			Triggers: TriggerBlocks{{
				Conditions: []Condition{{
					DeviceName:              "thermostat",
					Attribute:               "temperature",
					Operator:                ">",
					Value:                   25,
					ImplicitPhysicalChannel: "temperature",
				}},
			}},
			Actions: []Action{{
				DeviceName: "window",
				Command:    "open",
			}},
			Context: Context{DeviceLocations: []DeviceLocation{
				{DeviceName: "thermostat", Location: "living_room"},
			}},
		},
	}
}

func TestValidate_AcceptsWellFormedBatch(t *testing.T) {
	if err := Validate(twoRuleBatch(t)); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidate_RejectsMissingRuleID(t *testing.T) {
	rs := twoRuleBatch(t)
	rs[0].RuleID = ""

	err := Validate(rs)
	if err == nil {
		t.Fatal("Expected validation error for missing rule_id")
	}
	if !strings.Contains(err.Error(), "rule 0") {
		t.Errorf("Expected error to name the failing record, got %v", err)
	}
}

func TestValidate_RejectsEmptyTriggers(t *testing.T) {
	rs := twoRuleBatch(t)
	rs[1].Triggers = nil

	if err := Validate(rs); err == nil {
		t.Fatal("Expected validation error for empty triggers")
	}
}

func TestValidate_RejectsBadLogicalOperator(t *testing.T) {
	rs := twoRuleBatch(t)
	rs[0].Triggers[0].LogicalOperator = "XOR"

	if err := Validate(rs); err == nil {
		t.Fatal("Expected validation error for unsupported logical operator")
	}
}

func TestLoad_SingleTriggerObject(t *testing.T) {
	// The extraction stage sometimes emits a bare trigger object instead of
	// a one-element array.
	data := []byte(`[{
		"rule_id": "r1",
		"triggers": {"conditions": [{"device_name": "sensor"}]},
		"actions": []
	}]`)

	rs, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rs) != 1 || len(rs[0].Triggers) != 1 {
		t.Fatalf("Expected 1 rule with 1 trigger block, got %+v", rs)
	}
}

func TestDiscoverInteractions_MatchesChannelAcrossRules(t *testing.T) {
	got := DiscoverInteractions(twoRuleBatch(t))

	if len(got) != 1 {
		t.Fatalf("Expected 1 interaction, got %d", len(got))
	}
	it := got[0]
	if it.Actions.RuleID != "rule1" || it.Triggers.RuleID != "rule2" {
		t.Errorf("Expected rule1 -> rule2, got %s -> %s",
			it.Actions.RuleID, it.Triggers.RuleID)
	}
	if it.Actions.ImplicitChannel != "temperature" {
		t.Errorf("Expected channel temperature, got %s", it.Actions.ImplicitChannel)
	}
	if it.Actions.ChannelType != ChannelPhysical {
		t.Errorf("Expected physical channel type, got %s", it.Actions.ChannelType)
	}
	if it.Actions.DeviceLocation != "living_room" || it.Triggers.DeviceLocation != "living_room" {
		t.Errorf("Expected both endpoints located, got %q / %q",
			it.Actions.DeviceLocation, it.Triggers.DeviceLocation)
	}
}

func TestDiscoverInteractions_SameRuleExcluded(t *testing.T) {
	rs := []Rule{{
		RuleID: "loop",
		Triggers: TriggerBlocks{{
			Conditions: []Condition{{
				DeviceName:              "sensor",
				ImplicitPhysicalChannel: "sound",
			}},
		}},
		Actions: []Action{{
			DeviceName:              "speaker",
			ImplicitPhysicalChannel: "sound",
		}},
	}}

	if got := DiscoverInteractions(rs); len(got) != 0 {
		t.Errorf("A rule must not interact with itself, got %d interactions", len(got))
	}
}

func TestDiscoverInteractions_KindMustMatch(t *testing.T) {
	rs := twoRuleBatch(t)
	// Flip the trigger side to a system channel of the same name.
	rs[1].Triggers[0].Conditions[0].ImplicitPhysicalChannel = ""
	rs[1].Triggers[0].Conditions[0].ImplicitSystemChannel = "temperature"

	if got := DiscoverInteractions(rs); len(got) != 0 {
		t.Errorf("Physical action must not match system trigger, got %d interactions", len(got))
	}
}

func TestDiscoverInteractions_GenericChannelSkipped(t *testing.T) {
	rs := twoRuleBatch(t)
	rs[0].Actions[0].ImplicitPhysicalChannel = ""
	rs[0].Actions[0].ImplicitChannel = "temperature"
	rs[1].Triggers[0].Conditions[0].ImplicitPhysicalChannel = ""
	rs[1].Triggers[0].Conditions[0].ImplicitChannel = "temperature"

	if got := DiscoverInteractions(rs); len(got) != 0 {
		t.Errorf("Generic channels carry no medium and must not match, got %d", len(got))
	}
}

func TestCountChannels_SplitsByKindAndSide(t *testing.T) {
	counts := CountChannels(twoRuleBatch(t))

	if counts.ActionsPhysical["temperature"] != 1 {
		t.Errorf("Expected 1 physical action mention of temperature, got %d",
			counts.ActionsPhysical["temperature"])
	}
	if counts.TriggersPhysical["temperature"] != 1 {
		t.Errorf("Expected 1 physical trigger mention of temperature, got %d",
			counts.TriggersPhysical["temperature"])
	}
	if counts.Physical["temperature"] != 2 {
		t.Errorf("Expected 2 total physical mentions of temperature, got %d",
			counts.Physical["temperature"])
	}
	report := counts.Report()
	if !strings.Contains(report, "temperature") {
		t.Errorf("Expected report to mention temperature:\n%s", report)
	}
}
