package langserver_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bau-lang/bauscope/pkg/langserver"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func TestLoadConfig(t *testing.T) {
	t.Run("test_valid_config", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "bauscope.yaml", []byte(
			"enabled: true\npath: /usr/local/bin/bau-ls\nargs: [--stdio]\n",
		), 0o644))

		cfg, err := langserver.LoadConfig(fs, "bauscope.yaml")
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "/usr/local/bin/bau-ls", cfg.Path)
		assert.Equal(t, []string{"--stdio"}, cfg.Args)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("test_missing_file", func(t *testing.T) {
		_, err := langserver.LoadConfig(afero.NewMemMapFs(), "nope.yaml")
		require.Error(t, err, "a missing config file should be reported")
	})

	t.Run("test_malformed_yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("enabled: [oops"), 0o644))

		_, err := langserver.LoadConfig(fs, "bad.yaml")
		require.Error(t, err, "malformed YAML should be reported")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("test_disabled", func(t *testing.T) {
		cfg := &langserver.Config{Enabled: false, Path: "/usr/bin/bau-ls"}
		require.ErrorIs(t, cfg.Validate(), langserver.ErrServerDisabled)
	})

	t.Run("test_enabled_without_path", func(t *testing.T) {
		cfg := &langserver.Config{Enabled: true}
		require.ErrorIs(t, cfg.Validate(), langserver.ErrNoServerPath)
	})
}

func TestSpawn(t *testing.T) {
	ctx := testContext(t)

	t.Run("test_disabled_config_refuses_to_spawn", func(t *testing.T) {
		cfg := &langserver.Config{Enabled: false, Path: "cat"}
		err := langserver.Spawn(ctx, cfg, strings.NewReader(""), os.Stdout, os.Stderr)
		require.ErrorIs(t, err, langserver.ErrServerDisabled)
	})

	t.Run("test_stdio_is_proxied", func(t *testing.T) {
		catPath, err := exec.LookPath("cat")
		if err != nil {
			t.Skip("cat not available")
		}

		var out bytes.Buffer
		cfg := &langserver.Config{Enabled: true, Path: catPath}
		err = langserver.Spawn(ctx, cfg, strings.NewReader("initialize\n"), &out, os.Stderr)
		require.NoError(t, err)
		assert.Equal(t, "initialize\n", out.String(), "stdin should flow through to stdout")
	})

	t.Run("test_missing_executable", func(t *testing.T) {
		cfg := &langserver.Config{Enabled: true, Path: "/nonexistent/bau-ls"}
		err := langserver.Spawn(ctx, cfg, strings.NewReader(""), os.Stdout, os.Stderr)
		require.Error(t, err, "a missing server binary should be reported")
	})
}
