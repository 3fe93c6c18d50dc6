// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Properties, the insertion-ordered string map attached to
// command and sensor definitions.
//
// Why ordered?
//
// Protocol handlers that consume command properties frequently depend on the
// order in which they were declared (e.g. address parts, state labels listed
// from lowest to highest). A plain Go map would lose that order, so Properties
// records keys in first-insertion order while keeping O(1) lookups.
package model

import (
	"iter"
	"maps"
	"slices"
)

// Property is a single key/value entry of a Properties map.
type Property struct {
	Key   string
	Value string
}

// Properties is an insertion-ordered mapping of string keys to string values.
//
// Setting a key that already exists replaces its value but keeps the key at
// its original position (last write wins). The zero value is an empty map.
// Once handed out by a definition, a Properties value is never modified.
type Properties struct {
	keys   []string
	values map[string]string
}

// NewProperties builds a Properties map from entries, applied in order.
func NewProperties(entries ...Property) Properties {
	var p Properties
	for _, e := range entries {
		p.set(e.Key, e.Value)
	}
	return p
}

// PropertiesBuilder accumulates entries for a Properties map.
type PropertiesBuilder struct {
	p Properties
}

// Set records key=value, overwriting any earlier value for key.
func (b *PropertiesBuilder) Set(key, value string) {
	b.p.set(key, value)
}

// Build returns the accumulated map. The builder must not be used afterwards.
func (b *PropertiesBuilder) Build() Properties {
	p := b.p
	b.p = Properties{}
	return p
}

func (p *Properties) set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of entries.
func (p Properties) Len() int { return len(p.keys) }

// Keys returns the keys in insertion order.
func (p Properties) Keys() []string { return slices.Clone(p.keys) }

// All iterates over the entries in insertion order.
func (p Properties) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range p.keys {
			if !yield(k, p.values[k]) {
				return
			}
		}
	}
}

// Entries returns the entries in insertion order.
func (p Properties) Entries() []Property {
	out := make([]Property, 0, len(p.keys))
	for k, v := range p.All() {
		out = append(out, Property{Key: k, Value: v})
	}
	return out
}

// Map returns an unordered copy of the entries.
func (p Properties) Map() map[string]string {
	if p.values == nil {
		return map[string]string{}
	}
	return maps.Clone(p.values)
}
