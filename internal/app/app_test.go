package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/ctrldeploy/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const controllerXML = `<?xml version="1.0" encoding="UTF-8"?>
<openremote xmlns="http://www.openremote.org">
  <commands>
    <command id="1" protocol="%PROTOCOL%">
      <property name="Group" value="1/1/1"/>
    </command>
  </commands>
  <sensors>
    <sensor id="10" name="Temp" type="range">
      <include type="command" ref="1"/>
      <min value="0"/>
      <max value="40"/>
    </sensor>
  </sensors>
  <config>
    <property name="controller.name" value="living room"/>
    <property name="dangling"/>
  </config>
</openremote>`

func writeController(t *testing.T, dir, protocol string) string {
	t.Helper()
	path := filepath.Join(dir, "controller.xml")
	content := strings.ReplaceAll(controllerXML, "%PROTOCOL%", protocol)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{DeploymentPath: "x.xml"})
	require.NoError(t, err)
	assert.Equal(t, snapshot.FormatText, cfg.Output)

	_, err = NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{DeploymentPath: "x.xml", Output: "toml"})
	require.Error(t, err)

	_, err = NewConfig(Config{DeploymentPath: "x.xml", HTTPPort: 70000})
	require.Error(t, err)
}

func TestRun_PrintsDeployment(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeController(t, dir, "knx")
	cfg, err := NewConfig(Config{DeploymentPath: dir, Output: snapshot.FormatJSON})
	require.NoError(t, err)
	testApp, out, logs := SetupAppTest(t, cfg)

	// --- Act ---
	err = testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)

	var got snapshot.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out.String()), &got))
	require.Len(t, got.Commands, 1)
	assert.Equal(t, "knx", got.Commands[0].Protocol)
	assert.Equal(t, []snapshot.Property{{Key: "Group", Value: "1/1/1"}}, got.Commands[0].Properties)
	require.Len(t, got.Sensors, 1)
	assert.Equal(t, 1, got.Sensors[0].Command)
	assert.Equal(t, map[string]string{"controller.name": "living room"}, got.Config)

	assert.Contains(t, logs.String(), "Config entry skipped.")
	assert.NotNil(t, testApp.Store().Current())
}

func TestRun_LoadFailure(t *testing.T) {
	cfg, err := NewConfig(Config{DeploymentPath: filepath.Join(t.TempDir(), "missing.xml")})
	require.NoError(t, err)
	testApp, out, _ := SetupAppTest(t, cfg)

	err = testApp.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load deployment")
	assert.Empty(t, out.String())
	assert.Nil(t, testApp.Store().Current())
}

func TestHTTP_DeploymentAndReload(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	path := writeController(t, dir, "knx")
	cfg, err := NewConfig(Config{DeploymentPath: path})
	require.NoError(t, err)
	testApp, _, _ := SetupAppTest(t, cfg)
	ctx := testApp.context(context.Background())
	srv := httptest.NewServer(testApp.handler(ctx))
	t.Cleanup(srv.Close)

	// Nothing published yet.
	resp, err := http.Get(srv.URL + "/deployment")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	_, err = testApp.reload(ctx)
	require.NoError(t, err)
	first := testApp.Store().Current()

	// --- Act & Assert: GET /deployment ---
	resp, err = http.Get(srv.URL + "/deployment")
	require.NoError(t, err)
	var got snapshot.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, first.ID.String(), resp.Header.Get("X-Revision"))
	assert.Equal(t, "knx", got.Commands[0].Protocol)

	// --- Act & Assert: POST /reload with a broken document ---
	require.NoError(t, os.WriteFile(path, []byte(`<openremote xmlns="http://www.openremote.org"><commands/></openremote>`), 0o600))
	resp, err = http.Post(srv.URL+"/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Same(t, first, testApp.Store().Current())

	// --- Act & Assert: POST /reload with a fixed document ---
	writeController(t, dir, "zwave")
	resp, err = http.Post(srv.URL+"/reload", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	current := testApp.Store().Current()
	assert.NotEqual(t, first.ID, current.ID)
	assert.Equal(t, current.ID.String(), resp.Header.Get("X-Revision"))
	c, ok := current.Deployment.Command(1)
	require.True(t, ok)
	assert.Equal(t, "zwave", c.ProtocolType())
}

func TestHTTP_Health(t *testing.T) {
	cfg, err := NewConfig(Config{DeploymentPath: "unused.xml"})
	require.NoError(t, err)
	testApp, _, logs := SetupAppTest(t, cfg)
	srv := httptest.NewServer(testApp.handler(context.Background()))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, logs.String(), "Health check endpoint hit.")

	resp, err = http.Get(srv.URL + "/reload")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
