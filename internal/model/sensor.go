// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines SensorDefinition, a typed data source bound to exactly one
// command of the same deployment.
//
// Why an index instead of a pointer?
//
// A sensor does not own its command. Holding the command's position in the
// deployment's command sequence (plus its id for diagnostics) keeps the sensor
// a plain value: a deployment can be copied or shared between goroutines
// without any pointer aliasing between sensors and commands.
package model

import "strings"

// Property keys produced for sensors.
const (
	StatePrefix = "state-"
	RangeMinKey = "range-min"
	RangeMaxKey = "range-max"
)

// SensorDefinition is an immutable sensor bound to one command.
type SensorDefinition struct {
	id           int
	name         string
	sensorType   string
	commandID    int
	commandIndex int
	properties   Properties
}

// NewSensorDefinition creates a sensor definition. commandIndex is the
// position of the referenced command in the owning deployment's command list.
func NewSensorDefinition(id int, name, sensorType string, commandID, commandIndex int, properties Properties) SensorDefinition {
	return SensorDefinition{
		id:           id,
		name:         name,
		sensorType:   sensorType,
		commandID:    commandID,
		commandIndex: commandIndex,
		properties:   properties,
	}
}

// ID returns the sensor identifier.
func (s SensorDefinition) ID() int { return s.id }

// Name returns the sensor name.
func (s SensorDefinition) Name() string { return s.name }

// Type returns the lower-case sensor type, e.g. "range" or "switch".
func (s SensorDefinition) Type() string { return s.sensorType }

// CommandID returns the id of the referenced command.
func (s SensorDefinition) CommandID() int { return s.commandID }

// CommandIndex returns the position of the referenced command in the owning
// deployment's command list.
func (s SensorDefinition) CommandIndex() int { return s.commandIndex }

// Properties returns the sensor properties in declaration order.
func (s SensorDefinition) Properties() Properties { return s.properties }

// States returns the state labels (the "state-<name>" properties) keyed by
// state name, in declaration order.
func (s SensorDefinition) States() []Property {
	var out []Property
	for k, v := range s.properties.All() {
		if name, ok := strings.CutPrefix(k, StatePrefix); ok {
			out = append(out, Property{Key: name, Value: v})
		}
	}
	return out
}

// Range returns the declared range bounds. Each bound is reported only if
// present.
func (s SensorDefinition) Range() (lo string, hasLo bool, hi string, hasHi bool) {
	lo, hasLo = s.properties.Get(RangeMinKey)
	hi, hasHi = s.properties.Get(RangeMaxKey)
	return lo, hasLo, hi, hasHi
}
