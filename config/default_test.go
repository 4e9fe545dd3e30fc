package config

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"skirmish/testutil/testfs"

	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigFile(t *testing.T) {
	generatedCfg := GenerateDefaultConfigFile()
	cfg, err := ReadConfig(bytes.NewReader(generatedCfg))
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)
}

func TestReadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad toml", "log_level = "},
		{"health too high", strings.Replace(string(GenerateDefaultConfigFile()), "default_health = 5", "default_health = 300", 1)},
		{"no workers", strings.Replace(string(GenerateDefaultConfigFile()), "workers = 4", "workers = 0", 1)},
		{"zero width", strings.Replace(string(GenerateDefaultConfigFile()), "column_width = 15", "column_width = 0", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadConfig(strings.NewReader(tt.in))
			require.Error(t, err)
		})
	}
}

func TestInitHomeDir(t *testing.T) {
	dir, done := testfs.NewTempDir(t)
	defer done()

	home := filepath.Join(dir, "home")
	exists, err := HomeDirExists(home)
	require.NoError(t, err)
	require.False(t, exists)
	require.Error(t, EnsureHomeDir(home))

	require.NoError(t, InitHomeDir(home))
	require.NoError(t, EnsureHomeDir(home))

	cfg, err := ReadConfigFile(home)
	require.NoError(t, err)
	require.EqualValues(t, DefaultConfig, *cfg)

	for _, p := range []string{ExpandSessionsPath(home, cfg), ExpandDBPath(home, cfg)} {
		exists, err := HomeDirExists(p)
		require.NoError(t, err)
		require.True(t, exists, p)
	}

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "file"), nil, 0600))
	_, err = HomeDirExists(filepath.Join(dir, "file"))
	require.Error(t, err)
}

func TestExpandPaths(t *testing.T) {
	cfg := DefaultConfig
	require.Equal(t, filepath.Join("/home", "sessions"), ExpandSessionsPath("/home", &cfg))
	cfg.Index.Dir = "/var/lib/skirmish"
	require.Equal(t, "/var/lib/skirmish", ExpandDBPath("/home", &cfg))
}
