// Package rules defines the structured automation-rule records produced by
// the semantic extraction stage, validates them, and derives cross-rule
// interactions from the implicit channels they mention.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Channel kinds as they appear in rule records.
const (
	ChannelGeneric  = "implicit_channel"
	ChannelPhysical = "implicit_physical_channel"
	ChannelSystem   = "implicit_system_channel"
)

// ChannelRef is one implicit channel mention, tagged with its kind key.
type ChannelRef struct {
	Name string
	Kind string
}

// Condition is one trigger condition of a rule.
type Condition struct {
	DeviceName              string `json:"device_name" validate:"required"`
	Attribute               string `json:"attribute"`
	Operator                string `json:"operator"`
	Value                   any    `json:"value"`
	ImplicitChannel         string `json:"implicit_channel,omitempty"`
	ImplicitPhysicalChannel string `json:"implicit_physical_channel,omitempty"`
	ImplicitSystemChannel   string `json:"implicit_system_channel,omitempty"`
}

// Channels returns the condition's implicit channel mentions.
func (c Condition) Channels() []ChannelRef {
	return channelRefs(c.ImplicitChannel, c.ImplicitPhysicalChannel, c.ImplicitSystemChannel)
}

// Action is one action of a rule.
type Action struct {
	DeviceName              string `json:"device_name" validate:"required"`
	Command                 string `json:"command"`
	Value                   any    `json:"value"`
	ImplicitChannel         string `json:"implicit_channel,omitempty"`
	ImplicitPhysicalChannel string `json:"implicit_physical_channel,omitempty"`
	ImplicitSystemChannel   string `json:"implicit_system_channel,omitempty"`
}

// Channels returns the action's implicit channel mentions.
func (a Action) Channels() []ChannelRef {
	return channelRefs(a.ImplicitChannel, a.ImplicitPhysicalChannel, a.ImplicitSystemChannel)
}

func channelRefs(generic, physical, system string) []ChannelRef {
	var refs []ChannelRef
	if generic != "" {
		refs = append(refs, ChannelRef{Name: generic, Kind: ChannelGeneric})
	}
	if physical != "" {
		refs = append(refs, ChannelRef{Name: physical, Kind: ChannelPhysical})
	}
	if system != "" {
		refs = append(refs, ChannelRef{Name: system, Kind: ChannelSystem})
	}
	return refs
}

// TriggerBlock groups the conditions of one trigger clause with the operator
// joining them.
type TriggerBlock struct {
	LogicalOperator string      `json:"logical_operator,omitempty" validate:"omitempty,oneof=AND OR and or"`
	Conditions      []Condition `json:"conditions" validate:"required,min=1,dive"`
}

// TriggerBlocks accepts both record shapes the extraction stage emits: a
// single trigger object or a list of trigger blocks.
type TriggerBlocks []TriggerBlock

// UnmarshalJSON implements json.Unmarshaler.
func (t *TriggerBlocks) UnmarshalJSON(data []byte) error {
	var many []TriggerBlock
	if err := json.Unmarshal(data, &many); err == nil {
		*t = many
		return nil
	}
	var one TriggerBlock
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("triggers: expected object or array: %w", err)
	}
	*t = TriggerBlocks{one}
	return nil
}

// DeviceLocation places a device in a building space.
type DeviceLocation struct {
	DeviceName string `json:"device_name" validate:"required"`
	Location   string `json:"location" validate:"required"`
}

// Context carries the spatial information attached to a rule.
type Context struct {
	DeviceLocations []DeviceLocation `json:"device_locations" validate:"dive"`
}

// Location resolves a device name to its declared location, or "".
func (c Context) Location(deviceName string) string {
	for _, dl := range c.DeviceLocations {
		if dl.DeviceName == deviceName {
			return dl.Location
		}
	}
	return ""
}

// Rule is one extracted automation rule.
type Rule struct {
	RuleID   string        `json:"rule_id" validate:"required"`
	Triggers TriggerBlocks `json:"triggers" validate:"required,min=1,dive"`
	Actions  []Action      `json:"actions" validate:"dive"`
	Context  Context       `json:"context"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a batch of rule records before they enter the pipeline.
// The first invalid record stops validation; extraction output is either
// usable as a whole or re-generated.
func Validate(rs []Rule) error {
	for i := range rs {
		if err := validate.Struct(&rs[i]); err != nil {
			return fmt.Errorf("rule %d (%s): %w", i, rs[i].RuleID, err)
		}
	}
	return nil
}

// Load decodes and validates a JSON rule batch.
func Load(data []byte) ([]Rule, error) {
	var rs []Rule
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if err := Validate(rs); err != nil {
		return nil, err
	}
	return rs, nil
}
