package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/rechthoek/config"
	"github.com/plus3/rechthoek/particle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 60, cfg.TPS)
	assert.Equal(t, 100, cfg.Bouncing.Count)
	require.Len(t, cfg.Emitters, 3)
	assert.Equal(t, config.Emitter{Kind: particle.KindExplosion, X: 400, Y: 300, Max: 30, Rate: 5}, cfg.Emitters[1])
	assert.Equal(t, config.Cloud{Initial: 20, Min: 5, Max: 40}, cfg.Cloud)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rechthoek.yaml")
	data := `
tps: 30
seed: 7
audio:
  volume: 0.25
emitters:
  - kind: rain
    x: 100
    y: 50
    max: 10
    rate: 2
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.TPS)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 0.25, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Enabled, "unset fields keep their defaults")
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, []config.Emitter{{Kind: particle.KindRain, X: 100, Y: 50, Max: 10, Rate: 2}}, cfg.Emitters)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emitters:\n  - kind: lava\n"), 0644))
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "lava")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	cfg.Cloud.Initial = 12
	require.NoError(t, config.Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: fountain")
	assert.Contains(t, string(data), "sample_rate: 44100")

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Width = 0
	cfg.TPS = 0
	cfg.Audio.Volume = 2
	cfg.Emitters[0].Kind = particle.KindFire
	cfg.Emitters[2].Rate = 0
	cfg.Cloud.Initial = 50

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)

	for _, want := range []string{"window size", "tps 0", "audio volume", "emitters[0]: kind fire", "emitters[2]: rate", "cloud initial 50"} {
		assert.ErrorContains(t, err, want)
	}

	unwrapped, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, unwrapped.Unwrap(), 6)
}

func TestValidateMutedAudioSkipsSampleRate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Audio.SampleRate = 0
	assert.Error(t, cfg.Validate())

	cfg.Audio.Enabled = false
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsCloudEmitter(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Emitters = append(cfg.Emitters, config.Emitter{Kind: particle.KindCloud, X: 1, Y: 1, Max: 5, Rate: 2})

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorContains(t, err, "emitters[3]: kind cloud cannot be emitted")

	cfg.Emitters[3].Kind = particle.KindRain
	assert.NoError(t, cfg.Validate())
}
