package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties_OrderAndLastWriteWins(t *testing.T) {
	var b PropertiesBuilder
	b.Set("b", "1")
	b.Set("a", "2")
	b.Set("b", "3")
	p := b.Build()

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"b", "a"}, p.Keys(), "a re-set key keeps its first position")
	v, ok := p.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, []Property{{Key: "b", Value: "3"}, {Key: "a", Value: "2"}}, p.Entries())
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, p.Map())
}

func TestProperties_ZeroValue(t *testing.T) {
	var p Properties
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Keys())
	assert.Empty(t, p.Entries())
	assert.NotNil(t, p.Map())
	_, ok := p.Get("x")
	assert.False(t, ok)
}

func TestProperties_AllStopsEarly(t *testing.T) {
	p := NewProperties(Property{"a", "1"}, Property{"b", "2"}, Property{"c", "3"})
	var seen []string
	for k := range p.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestSensorDefinition_StatesAndRange(t *testing.T) {
	props := NewProperties(
		Property{StatePrefix + "on", "Open"},
		Property{RangeMinKey, "0"},
		Property{StatePrefix + "off", "Closed"},
	)
	s := NewSensorDefinition(10, "Door", "switch", 1, 0, props)

	assert.Equal(t, []Property{{"on", "Open"}, {"off", "Closed"}}, s.States())
	lo, hasLo, _, hasHi := s.Range()
	assert.True(t, hasLo)
	assert.Equal(t, "0", lo)
	assert.False(t, hasHi)
}

func TestNewDeploymentDefinition(t *testing.T) {
	cmds := []CommandDefinition{
		NewCommandDefinition(1, "knx", Properties{}),
		NewCommandDefinition(2, "http", Properties{}),
	}

	t.Run("valid", func(t *testing.T) {
		sensors := []SensorDefinition{NewSensorDefinition(10, "Temp", "range", 2, 1, Properties{})}
		d, err := NewDeploymentDefinition(cmds, sensors, map[string]string{"timeout": "30"})
		require.NoError(t, err)

		assert.Len(t, d.Commands(), 2)
		assert.Equal(t, 2, d.CommandOf(d.Sensors()[0]).ID())
		c, ok := d.Command(1)
		require.True(t, ok)
		assert.Equal(t, "knx", c.ProtocolType())
		_, ok = d.Command(3)
		assert.False(t, ok)
		s, ok := d.Sensor(10)
		require.True(t, ok)
		assert.Equal(t, "Temp", s.Name())
		v, ok := d.ConfigValue("timeout")
		require.True(t, ok)
		assert.Equal(t, "30", v)
	})

	t.Run("accessors return copies", func(t *testing.T) {
		d, err := NewDeploymentDefinition(cmds, nil, map[string]string{"a": "1"})
		require.NoError(t, err)

		d.Commands()[0] = NewCommandDefinition(99, "x", Properties{})
		d.Config()["a"] = "changed"

		assert.Equal(t, 1, d.Commands()[0].ID())
		assert.Equal(t, "1", d.Config()["a"])
	})

	t.Run("duplicate command ids", func(t *testing.T) {
		dup := append(cmds, NewCommandDefinition(1, "zwave", Properties{}))
		_, err := NewDeploymentDefinition(dup, nil, nil)
		require.Error(t, err)
	})

	t.Run("dangling sensor", func(t *testing.T) {
		sensors := []SensorDefinition{NewSensorDefinition(10, "Temp", "range", 7, 0, Properties{})}
		_, err := NewDeploymentDefinition(cmds, sensors, nil)
		require.Error(t, err)
	})

	t.Run("mismatched index", func(t *testing.T) {
		sensors := []SensorDefinition{NewSensorDefinition(10, "Temp", "range", 1, 1, Properties{})}
		_, err := NewDeploymentDefinition(cmds, sensors, nil)
		require.Error(t, err)
	})
}
