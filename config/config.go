// Package config holds the settings shared by every scene. Files are
// YAML laid over DefaultConfig, so a file only names what it changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/plus3/rechthoek/emitter"
	"github.com/plus3/rechthoek/particle"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultTPS        = 60
	DefaultVolume     = 0.6
	DefaultSampleRate = 44100
	DefaultBouncing   = 100
	DefaultCloud      = 20
	MinCloud          = 5
	MaxCloud          = 40
)

// ErrInvalid is wrapped by every problem Validate reports.
var ErrInvalid = errors.New("invalid config")

// Config is the whole run configuration as read from YAML.
type Config struct {
	Window   Window    `yaml:"window"`
	TPS      int       `yaml:"tps"`
	Seed     uint64    `yaml:"seed"`
	Debug    bool      `yaml:"debug"`
	Audio    Audio     `yaml:"audio"`
	Bouncing Bouncing  `yaml:"bouncing"`
	Emitters []Emitter `yaml:"emitters"`
	Cloud    Cloud     `yaml:"cloud"`
}

// Window is the window size in pixels. Scenes are laid out for it.
type Window struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Resizable bool `yaml:"resizable"`
}

// Audio controls sound effects. Volume is linear, 0 to 1.
type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// Bouncing sets the rect count of the bouncing scene.
type Bouncing struct {
	Count int `yaml:"count"`
}

// Emitter is one fixed emitter of the emitters scene.
type Emitter struct {
	Kind particle.Kind `yaml:"kind"`
	X    float64       `yaml:"x"`
	Y    float64       `yaml:"y"`
	Max  int           `yaml:"max"`
	Rate int           `yaml:"rate"`
}

// Cloud bounds the cursor cloud's puff count.
type Cloud struct {
	Initial int `yaml:"initial"`
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
}

// DefaultConfig matches the built-in demos: an 800x600 window at 60 TPS
// with sound on.
func DefaultConfig() *Config {
	return &Config{
		Window: Window{Width: DefaultWidth, Height: DefaultHeight},
		TPS:    DefaultTPS,
		Audio: Audio{
			Enabled:    true,
			Volume:     DefaultVolume,
			SampleRate: DefaultSampleRate,
		},
		Bouncing: Bouncing{Count: DefaultBouncing},
		Emitters: []Emitter{
			{Kind: particle.KindFountain, X: 200, Y: 550, Max: 50, Rate: 3},
			{Kind: particle.KindExplosion, X: 400, Y: 300, Max: 30, Rate: 5},
			{Kind: particle.KindSmoke, X: 600, Y: 100, Max: 40, Rate: 4},
		},
		Cloud: Cloud{Initial: DefaultCloud, Min: MinCloud, Max: MaxCloud},
	}
}

// Load reads path over the defaults. A list in the file replaces the
// default list rather than extending it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		bad("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.TPS < 1 || c.TPS > 240 {
		bad("tps %d outside 1..240", c.TPS)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio volume %g outside 0..1", c.Audio.Volume)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		bad("audio sample_rate %d must be positive", c.Audio.SampleRate)
	}
	if c.Bouncing.Count < 0 {
		bad("bouncing count %d is negative", c.Bouncing.Count)
	}
	for i, e := range c.Emitters {
		if !slices.Contains(emitter.Streamed, e.Kind) {
			bad("emitters[%d]: kind %s cannot be emitted", i, e.Kind)
		}
		if e.Max <= 0 {
			bad("emitters[%d]: max %d must be positive", i, e.Max)
		}
		if e.Rate <= 0 {
			bad("emitters[%d]: rate %d must be positive", i, e.Rate)
		}
	}
	if c.Cloud.Min < 1 || c.Cloud.Min > c.Cloud.Max {
		bad("cloud bounds %d..%d", c.Cloud.Min, c.Cloud.Max)
	} else if c.Cloud.Initial < c.Cloud.Min || c.Cloud.Initial > c.Cloud.Max {
		bad("cloud initial %d outside %d..%d", c.Cloud.Initial, c.Cloud.Min, c.Cloud.Max)
	}

	return errors.Join(errs...)
}
