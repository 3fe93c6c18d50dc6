// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines CommandDefinition, the protocol-typed unit of control a
// controller exposes. A runtime instantiates one protocol handler per command
// definition; sensors read their values through a command.
package model

// CommandDefinition is an immutable, protocol-typed command.
type CommandDefinition struct {
	id           int
	protocolType string
	properties   Properties
}

// NewCommandDefinition creates a command definition.
func NewCommandDefinition(id int, protocolType string, properties Properties) CommandDefinition {
	return CommandDefinition{id: id, protocolType: protocolType, properties: properties}
}

// ID returns the command identifier, unique within a deployment.
func (c CommandDefinition) ID() int { return c.id }

// ProtocolType identifies the transport/protocol the command is executed with.
func (c CommandDefinition) ProtocolType() string { return c.protocolType }

// Properties returns the protocol-specific properties in declaration order.
func (c CommandDefinition) Properties() Properties { return c.properties }
