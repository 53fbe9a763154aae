package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpitch/greenpitch/internal/config"
)

func TestVersionCommand(t *testing.T) {
	t.Cleanup(func() { versionFormat = "text" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--format", "json"})
	require.NoError(t, rootCmd.Execute())

	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, version, info["version"])
	assert.NotEmpty(t, info["go_version"])

	rootCmd.SetArgs([]string{"version", "--format", "yaml"})
	assert.Error(t, rootCmd.Execute())
}

func TestBindFlagsOnlyOverridesChangedFlags(t *testing.T) {
	require.NoError(t, serveCmd.Flags().Set("port", "9090"))
	t.Cleanup(func() {
		serveCmd.Flags().Lookup("port").Changed = false
		_ = serveCmd.Flags().Set("port", "8080")
		serveCmd.Flags().Lookup("port").Changed = false
	})

	v := viper.New()
	config.SetDefaults(v)
	v.Set("storage.kind", "memory")
	require.NoError(t, bindFlags(v, serveCmd))

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level, "unchanged flags keep the configured value")
}
