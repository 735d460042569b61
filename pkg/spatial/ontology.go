// Package spatial prunes implausible physical channels: an interaction
// carried by the physical environment only survives when the building
// ontology offers a plausible physical path between the two device
// locations.
package spatial

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Ontology is the static spatial model of one building: where devices sit,
// which floor each space is on, which spaces share air handling, and which
// spaces are physically adjacent.
type Ontology struct {
	// DeviceLocations maps a device name to the space it sits in.
	DeviceLocations map[string]string `yaml:"device_locations"`
	// SpaceFloors maps a space to its floor number.
	SpaceFloors map[string]int `yaml:"space_floors"`
	// HVACServiceZones maps an air handling unit to the spaces it serves.
	HVACServiceZones map[string][]string `yaml:"hvac_service_zones"`
	// SpaceAdjacencies lists the spaces physically adjacent to each space.
	SpaceAdjacencies map[string][]string `yaml:"space_adjacencies"`
	// HVACMediatedChannels are channel types that travel through shared air
	// handling (temperature, co2, humidity, smoke).
	HVACMediatedChannels []string `yaml:"hvac_mediated_channels"`
	// AdjacencyMediatedChannels are channel types that cross between
	// adjacent spaces (sound).
	AdjacencyMediatedChannels []string `yaml:"adjacency_mediated_channels"`
}

// LoadOntology decodes a YAML ontology document.
func LoadOntology(data []byte) (*Ontology, error) {
	var o Ontology
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode ontology: %w", err)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (o *Ontology) validate() error {
	if len(o.SpaceFloors) == 0 {
		return fmt.Errorf("ontology: space_floors is empty")
	}
	for device, space := range o.DeviceLocations {
		if _, ok := o.SpaceFloors[space]; !ok {
			return fmt.Errorf("ontology: device %q placed in unknown space %q", device, space)
		}
	}
	return nil
}

func (o *Ontology) hvacMediated(channel string) bool {
	return containsString(o.HVACMediatedChannels, channel)
}

func (o *Ontology) adjacencyMediated(channel string) bool {
	return containsString(o.AdjacencyMediatedChannels, channel)
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
