package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/dubyc/internal/diagnostics"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("header: generated\n"), "dubyc.yaml")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 2, cfg.Indent)
	assert.Equal(t, "generated", cfg.Header)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"level", "log_level: loud", "log_level must be"},
		{"color", "color: sometimes", "color must be"},
		{"indent", "indent: 12", "indent must be between"},
		{"syntax", "indent: [", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "dubyc.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			list := diagnostics.Collect(err)
			require.Len(t, list, 1)
			assert.Equal(t, diagnostics.ErrC001, list[0].Code)
		})
	}
}

func TestFindConfig_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, AltConfigFileName), []byte("indent: 4\n"), 0o644))

	path, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, AltConfigFileName), path)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Indent)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DUBYC_OUTPUT_DIR": "out",
		"DUBYC_LOG_LEVEL":  "debug",
		"DUBYC_INDENT":     "4",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Indent)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	env["DUBYC_INDENT"] = "wide"
	assert.Error(t, Default().ApplyEnv(lookup))
}

func TestLoad_EnvFileNextToConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("output_dir: gen\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, EnvFileName), []byte("DUBYC_HEADER=from env\n"), 0o644))
	t.Setenv("DUBYC_HEADER", "")
	os.Unsetenv("DUBYC_HEADER")

	cfg, err := Load(root, "")
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, "from env", cfg.Header)
}

func TestTrimSourceExt(t *testing.T) {
	assert.Equal(t, "demo/hello", TrimSourceExt("demo/hello.duby"))
	assert.Equal(t, "demo/hello", TrimSourceExt("demo/hello.duby.yaml"))
	assert.Equal(t, "demo/hello", TrimSourceExt("demo/hello.YML"))
	assert.Equal(t, "demo/hello.txt", TrimSourceExt("demo/hello.txt"))
	assert.True(t, HasSourceExt("x.rb"))
	assert.False(t, HasSourceExt("x"))
}
