// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a controller deployment: the
// strongly-typed, in-memory result of building a deployment document.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - DeploymentDefinition: The root aggregate. It owns the ordered commands,
//     the ordered sensors and the flat configuration map of one controller.
//
//   - CommandDefinition: A protocol-typed unit of control (e.g. a KNX group
//     write) with ordered string properties.
//
//   - SensorDefinition: A typed data source bound to exactly one command of the
//     same deployment, with state labels and/or a numeric range encoded as
//     properties.
//
//   - Properties: An insertion-ordered string map with last-write-wins
//     semantics.
//
// Why a separate model package?
//
// The model is format-agnostic and carries no trace of the document it was
// built from. Construction goes through the builder package, which performs
// structural and referential validation; the constructors in this package only
// guard the invariants a DeploymentDefinition must always satisfy (unique
// command ids, resolvable sensor references). All values are immutable once
// constructed, which is what lets a running controller share one deployment
// across goroutines while a replacement is being built.
package model
