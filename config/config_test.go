package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    Config
		expected Config
	}{
		{
			name:  "Empty config",
			input: Config{},
			expected: Config{
				KeysDir: "keys",
				Server:  ServerConfig{Listen: "0.0.0.0:8010", GinMode: "release"},
				Log:     LogConfig{Level: "info", MaxSize: 100, MaxBackups: 5, MaxAge: 28},
			},
		},
		{
			name: "Custom values are kept",
			input: Config{
				KeysDir: "/var/lib/mint",
				Server:  ServerConfig{Listen: ":9000", GinMode: "debug"},
				Replay:  ReplayConfig{Path: "/var/lib/mint/replay"},
				Log:     LogConfig{Level: "debug", Path: "mint.log", MaxSize: 1},
			},
			expected: Config{
				KeysDir: "/var/lib/mint",
				Server:  ServerConfig{Listen: ":9000", GinMode: "debug"},
				Replay:  ReplayConfig{Path: "/var/lib/mint/replay"},
				Log:     LogConfig{Level: "debug", Path: "mint.log", MaxSize: 1, MaxBackups: 5, MaxAge: 28},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.input.WithDefaults())
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keysDir: build
server:
  listen: 127.0.0.1:8080
replay:
  path: replay-db
log:
  level: warn
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "build", cfg.KeysDir)
	require.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
	require.Equal(t, "release", cfg.Server.GinMode)
	require.Equal(t, "replay-db", cfg.Replay.Path)
	level, err := cfg.Log.ParseLevel()
	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, level)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Config{}.WithDefaults(), *cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"bad-yaml":  "keysDir: [",
		"bad-mode":  "server:\n  ginMode: turbo\n",
		"bad-level": "log:\n  level: loud\n",
	} {
		path := filepath.Join(dir, name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := Load(path)
		require.Error(t, err, name)
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestCreateLoggerRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mint.log")
	logger, closer, err := LogConfig{Path: path}.WithDefaults().CreateLogger()
	require.NoError(t, err)
	logger.Info().Msg("hello")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"message":"hello"`)
}
