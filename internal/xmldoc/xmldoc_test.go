package xmldoc

import (
	"testing"

	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<openremote xmlns="http://www.openremote.org" xmlns:x="urn:other">
  <commands>
    <command id="1" protocol="knx">
      <property name="group" value="1/1/1"/>
      <x:property name="hidden" value="nope"/>
    </command>
  </commands>
  <x:sensors/>
  <sensors/>
  <config>
    <property name="timeout" value="30"/>
  </config>
</openremote>`

func TestParse_NamespaceQualifiedLookups(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)
	assert.Equal(t, Namespace, doc.Namespace())

	root := doc.Root()
	assert.Equal(t, "openremote", root.Name())
	assert.Len(t, root.Children(element.Any), 3, "the foreign-namespace sensors element must be invisible")

	commands, ok := root.FirstChild("commands")
	require.True(t, ok)
	cmds := commands.Children(element.Any)
	require.Len(t, cmds, 1)

	id, ok := cmds[0].Attribute("id")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	props := cmds[0].Children("property")
	require.Len(t, props, 1)
	name, _ := props[0].Attribute("name")
	assert.Equal(t, "group", name)

	_, ok = root.Attribute("xmlns")
	assert.False(t, ok, "namespace declarations are not attributes")
}

func TestParse_RejectsForeignRoot(t *testing.T) {
	_, err := ParseString(`<openremote xmlns="urn:wrong"><commands/></openremote>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urn:wrong")
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"unclosed": `<openremote xmlns="http://www.openremote.org"><commands>`,
		"empty":    ``,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseString(src)
			require.Error(t, err)
		})
	}
}

func TestClone_IsDeepCopy(t *testing.T) {
	doc, err := ParseString(sample)
	require.NoError(t, err)

	clone := doc.Clone().(*Document)
	require.Equal(t, doc, clone)

	clone.root.kids = nil
	assert.NotEmpty(t, doc.root.kids)
}
