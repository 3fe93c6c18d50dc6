// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines DeploymentDefinition, the root aggregate of a controller
// deployment.
//
// A DeploymentDefinition is produced in a single build pass and is read-only
// from then on. Every accessor returns a copy, so the value can be shared
// freely between concurrent readers without locking.
package model

import (
	"fmt"
	"maps"
	"slices"
)

// DeploymentDefinition owns the ordered command and sensor definitions and the
// configuration of one controller deployment.
type DeploymentDefinition struct {
	commands []CommandDefinition
	sensors  []SensorDefinition
	config   map[string]string
	byID     map[int]int
}

// NewDeploymentDefinition assembles a deployment. It verifies that every
// sensor points at the command it names, so a deployment with dangling
// references can never be constructed.
func NewDeploymentDefinition(commands []CommandDefinition, sensors []SensorDefinition, config map[string]string) (*DeploymentDefinition, error) {
	byID := make(map[int]int, len(commands))
	for i, c := range commands {
		if prev, dup := byID[c.id]; dup {
			return nil, fmt.Errorf("command id %d defined at positions %d and %d", c.id, prev, i)
		}
		byID[c.id] = i
	}

	for _, s := range sensors {
		idx, ok := byID[s.commandID]
		if !ok || idx != s.commandIndex {
			return nil, fmt.Errorf("sensor %d/%s references command %d which is not part of the deployment", s.id, s.name, s.commandID)
		}
	}

	if config == nil {
		config = map[string]string{}
	}

	return &DeploymentDefinition{
		commands: slices.Clone(commands),
		sensors:  slices.Clone(sensors),
		config:   maps.Clone(config),
		byID:     byID,
	}, nil
}

// Commands returns the command definitions in document order.
func (d *DeploymentDefinition) Commands() []CommandDefinition { return slices.Clone(d.commands) }

// Sensors returns the sensor definitions in document order.
func (d *DeploymentDefinition) Sensors() []SensorDefinition { return slices.Clone(d.sensors) }

// Config returns a copy of the configuration map.
func (d *DeploymentDefinition) Config() map[string]string { return maps.Clone(d.config) }

// ConfigValue returns a single configuration value.
func (d *DeploymentDefinition) ConfigValue(name string) (string, bool) {
	v, ok := d.config[name]
	return v, ok
}

// Command looks up a command definition by id.
func (d *DeploymentDefinition) Command(id int) (CommandDefinition, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return CommandDefinition{}, false
	}
	return d.commands[idx], true
}

// CommandOf returns the command a sensor of this deployment is bound to.
func (d *DeploymentDefinition) CommandOf(s SensorDefinition) CommandDefinition {
	return d.commands[s.commandIndex]
}

// Sensor looks up a sensor definition by id. With duplicate sensor ids the
// first one in document order wins.
func (d *DeploymentDefinition) Sensor(id int) (SensorDefinition, bool) {
	for _, s := range d.sensors {
		if s.id == id {
			return s, true
		}
	}
	return SensorDefinition{}, false
}
