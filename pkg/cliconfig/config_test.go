package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
api_url = "https://yomu.example.com/"
speed = 1.5
repeat = "ALL"
player = ["afplay"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://yomu.example.com", cfg.APIURL)
	assert.Equal(t, 1.5, cfg.Speed)
	assert.Equal(t, "all", cfg.Repeat)
	assert.Equal(t, []string{"afplay"}, cfg.Player)
	assert.Equal(t, Default().Voice, cfg.Voice)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", `speed = [`},
		{"bad url", `api_url = "ftp://host"`},
		{"speed too high", `speed = 9.0`},
		{"unknown repeat", `repeat = "forever"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, _, _, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "yomu", "config.toml"), path)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Voice = "ja-JP-Wavenet-A"
	cfg.Speed = 0.75

	require.NoError(t, Save(path, cfg))

	loaded, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, cfg, *loaded)
}
