package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/rechthoek/app"
	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { app.SetLogger(nil) })

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	for _, sc := range scene.List() {
		assert.Contains(t, out, sc.Name)
		assert.Contains(t, out, sc.Title)
	}
}

func TestConfigDefaults(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DefaultConfig(), &cfg)
}

func TestConfigFileAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tps: 30\nseed: 5\n"), 0o644))

	out, err := execute(t, "config", "--config", path, "--seed", "9")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 30, cfg.TPS)
	assert.Equal(t, uint64(9), cfg.Seed, "flag overrides the file")
}

func TestConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tps: 0\n"), 0o644))

	_, err := execute(t, "config", "--config", path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestUnknownScene(t *testing.T) {
	_, err := execute(t, "bench", "volcano", "--ticks", "1")
	assert.ErrorIs(t, err, scene.ErrUnknown)

	_, err = execute(t, "run", "volcano")
	assert.ErrorIs(t, err, scene.ErrUnknown)
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench", "emitters", "--ticks", "20", "--seed", "4", "--log-level", "off")
	require.NoError(t, err)
	assert.Contains(t, out, "# Benchmark: emitters")
	assert.Contains(t, out, "- **Seed:** 4")
	assert.Contains(t, out, "- **Ticks:** 20")
}

func TestBadLogLevel(t *testing.T) {
	_, err := execute(t, "list", "--log-level", "loud")
	assert.Error(t, err)
}
