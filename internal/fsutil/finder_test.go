package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByBaseName(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"controller.xml", "controller.YAML", "controller.txt", "other.xml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "controller.hcl"), 0o755))

	files, err := FindFilesByBaseName(dir, "controller", ".xml", ".yaml", ".hcl")

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "controller.YAML"),
		filepath.Join(dir, "controller.xml"),
	}, files)
}

func TestFindFilesByBaseName_MissingDir(t *testing.T) {
	_, err := FindFilesByBaseName(filepath.Join(t.TempDir(), "nope"), "controller", ".xml")
	require.Error(t, err)
}
