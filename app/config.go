package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML strings such as "16ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler for Duration.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config describes a headless or windowed run. The demos load it with
// LoadConfig and let flags override individual fields.
type Config struct {
	Width  uint32  `yaml:"width"`
	Height uint32  `yaml:"height"`
	Scale  float32 `yaml:"scale"`

	// Frames limits the run; zero runs until stopped.
	Frames int `yaml:"frames"`
	// FixedStep replaces wall time in Game.Update when non-zero.
	FixedStep Duration `yaml:"fixed_step"`
	// Retries is the acquire retry budget per frame.
	Retries int `yaml:"retries"`

	// Output is the directory headless runs write frames to.
	Output string `yaml:"output"`
	// Every writes every n-th frame; zero writes none.
	Every int  `yaml:"every"`
	Perf  bool `yaml:"perf"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		Scale:     1,
		Frames:    60,
		FixedStep: Duration(time.Second / 60),
		Retries:   3,
		Output:    "out",
		Every:     10,
	}
}

// LoadConfig reads a YAML config. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // caller-provided config path
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the config describes a drawable surface.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("config: size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale %v must be positive", c.Scale)
	}
	if c.Frames < 0 || c.Retries < 0 || c.Every < 0 {
		return fmt.Errorf("config: frames, retries and every must not be negative")
	}
	return nil
}

// Options converts the config to Run options.
func (c Config) Options() []Option {
	opts := []Option{
		WithMaxFrames(c.Frames),
		WithAcquireRetries(c.Retries),
		WithFixedStep(c.FixedStep.Duration()),
		WithScale(c.Scale),
	}
	if c.Perf {
		opts = append(opts, WithPerf())
	}
	return opts
}
