package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/ctrldeploy/internal/ctxlog"
	"github.com/specialistvlad/ctrldeploy/internal/element"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const xmlDoc = `<openremote xmlns="http://www.openremote.org">
  <commands><command id="1" protocol="knx"/></commands>
  <sensors/>
  <config/>
</openremote>`

const hclDoc = `
commands {
  command {
    id       = 1
    protocol = var.protocol
  }
}
sensors {}
config {}
`

const yamlDoc = `
commands:
  command:
    id: 1
    protocol: knx
sensors: {}
config: {}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func protocolOf(t *testing.T, doc element.Document) string {
	t.Helper()
	cmds, ok := doc.Root().FirstChild("commands")
	require.True(t, ok)
	cmd, ok := cmds.FirstChild("command")
	require.True(t, ok)
	p, _ := cmd.Attribute("protocol")
	return p
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	dir := t.TempDir()

	testCases := []struct {
		name    string
		file    string
		content string
	}{
		{"xml", "a.xml", xmlDoc},
		{"hcl", "a.hcl", hclDoc},
		{"yaml", "a.yaml", yamlDoc},
		{"yml upper case", "b.YML", yamlDoc},
	}

	l := NewLoader(map[string]string{"protocol": "knx"})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			path := writeFile(t, dir, tc.file, tc.content)

			// --- Act ---
			doc, err := l.Load(ctx, path)

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, "knx", protocolOf(t, doc))
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())

	t.Run("single controller file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "controller.yaml", yamlDoc)
		writeFile(t, dir, "notes.txt", "ignored")

		doc, err := NewLoader(nil).Load(ctx, dir)

		require.NoError(t, err)
		assert.Equal(t, "knx", protocolOf(t, doc))
	})

	t.Run("no controller file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "other.xml", xmlDoc)

		_, err := NewLoader(nil).Load(ctx, dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no controller document found")
	})

	t.Run("ambiguous", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "controller.xml", xmlDoc)
		writeFile(t, dir, "controller.yaml", yamlDoc)

		_, err := NewLoader(nil).Load(ctx, dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous deployment")
	})
}

func TestLoad_Errors(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	dir := t.TempDir()

	_, err := NewLoader(nil).Load(ctx, filepath.Join(dir, "missing.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoader(nil).Load(ctx, writeFile(t, dir, "c.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported deployment file")

	_, err = NewLoader(nil).Load(ctx, writeFile(t, dir, "broken.xml", "<openremote"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading ")
}
