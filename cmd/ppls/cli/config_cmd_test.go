package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faucetdb/ppls/internal/config"
)

func TestConfigInit(t *testing.T) {
	a := newTestApp(t)

	out, _, err := execute(a, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Created config at "+testConfigPath+"\n", out)

	data, err := config.NewStore(a.fs, testConfigPath).Load()
	require.NoError(t, err)
	assert.Equal(t, "yyyy-MM-dd", data["dateFormat"])

	_, _, err = execute(a, "config", "init")
	assert.EqualError(t, err, "config already exists at "+testConfigPath+", use --force to overwrite")

	out, _, err = execute(a, "config", "init", "--force", "--json")
	require.NoError(t, err)
	var res configInitResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, configInitResult{Overwritten: true, Path: testConfigPath}, res)
}

func TestConfigSetGetListRemove(t *testing.T) {
	a := newTestApp(t)

	out, _, err := execute(a, "config", "list")
	require.NoError(t, err)
	assert.Equal(t, "No config values set.\n", out)

	out, _, err = execute(a, "config", "set", "hostname", `"https://paperless.example.com"`)
	require.NoError(t, err)
	assert.Equal(t, "Set hostname\n", out)

	_, _, err = execute(a, "config", "set", "headers", `{"X-Api-Key": "k"}`)
	require.NoError(t, err)

	out, _, err = execute(a, "config", "get", "hostname")
	require.NoError(t, err)
	assert.Equal(t, "https://paperless.example.com\n", out)

	out, _, err = execute(a, "config", "get", "headers")
	require.NoError(t, err)
	assert.Equal(t, `{"X-Api-Key":"k"}`+"\n", out)

	out, _, err = execute(a, "config", "get", "token", "--json")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)

	out, _, err = execute(a, "config", "get", "token")
	require.NoError(t, err)
	assert.Equal(t, "Config key token not set.\n", out)

	out, _, err = execute(a, "config", "list")
	require.NoError(t, err)
	assert.Equal(t, ""+
		" headers  {\"X-Api-Key\":\"k\"}\n"+
		"hostname  https://paperless.example.com\n", out)

	out, _, err = execute(a, "config", "list", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "headers={\"X-Api-Key\":\"k\"}\nhostname=https://paperless.example.com\n", out)

	out, _, err = execute(a, "config", "remove", "headers")
	require.NoError(t, err)
	assert.Equal(t, "Removed headers\n", out)

	out, _, err = execute(a, "config", "remove", "headers")
	require.NoError(t, err)
	assert.Equal(t, "Config key headers not set.\n", out)

	out, _, err = execute(a, "config", "list", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hostname": "https://paperless.example.com"}`, out)
}

func TestConfigSet_HeadersMustBeObject(t *testing.T) {
	a := newTestApp(t)

	out, errOut, err := execute(a, "config", "set", "headers", "X-Api-Key=k")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `config key "headers" must be a JSON object`)

	exists, err := config.NewStore(a.fs, testConfigPath).Exists()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConfigSet_InvalidJSON(t *testing.T) {
	_, _, err := execute(newTestApp(t), "config", "set", "headers", "{nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON value")
}
