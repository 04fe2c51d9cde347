package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.NotEmpty(t, cfg.DataDir)
	require.Positive(t, cfg.BlockSize)
	require.Positive(t, cfg.BufferSize)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlContent := `
dataDir: /var/lib/quilldb
blockSize: 4096
bufferSize: 16
logFile: engine.log
logLevel: debug
network:
  enabled: false
  address: "127.0.0.1:5555"
metrics:
  enabled: false
  address: "127.0.0.1:5556"
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "/var/lib/quilldb", cfg.DataDir)
	require.Equal(t, 4096, cfg.BlockSize)
	require.Equal(t, 16, cfg.BufferSize)
	require.False(t, cfg.Network.Enabled)
	require.Equal(t, "127.0.0.1:5556", cfg.Metrics.Address)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/to/config.yaml")
	require.Error(t, err)
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("logLevel: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, Default().DataDir, cfg.DataDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Default(), false},
		{"empty data dir", Config{DataDir: "", BlockSize: 400, BufferSize: 8}, true},
		{"zero block size", Config{DataDir: "data", BlockSize: 0, BufferSize: 8}, true},
		{"negative buffer size", Config{DataDir: "data", BlockSize: 400, BufferSize: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
