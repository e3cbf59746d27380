// Package config resolves the output stream settings for the beep command
// from defaults, BEEP_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalid is returned when a resolved setting is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Default stream settings
const (
	DefaultSampleRate = 48000
	DefaultChannels   = 2
	DefaultBufferMs   = 50
	DefaultLogLevel   = "info"

	minSampleRate = 8000
	maxSampleRate = 384000
	maxChannels   = 256
	maxBufferMs   = 2000
)

// Config holds the stream and backend settings. Tone parameters are not
// part of it; they come only from the command line.
type Config struct {
	SampleRate int    `mapstructure:"sample_rate"`
	Channels   int    `mapstructure:"channels"`
	BufferMs   int    `mapstructure:"buffer_ms"`
	LogLevel   string `mapstructure:"log_level"`
	Output     string `mapstructure:"output"` // WAV path; empty plays on the speaker
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"sample-rate": "sample_rate",
	"channels":    "channels",
	"buffer-ms":   "buffer_ms",
	"log-level":   "log_level",
	"output":      "output",
}

// Load resolves the configuration. Flags that were set on fs take precedence
// over BEEP_* environment variables, which take precedence over defaults.
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("sample_rate", DefaultSampleRate)
	v.SetDefault("channels", DefaultChannels)
	v.SetDefault("buffer_ms", DefaultBufferMs)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("output", "")

	// Environment variables: BEEP_SAMPLE_RATE, BEEP_CHANNELS, ...
	v.SetEnvPrefix("BEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting against its supported range.
func (c *Config) Validate() error {
	if c.SampleRate < minSampleRate || c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate %d Hz (want %d-%d)", ErrInvalid, c.SampleRate, minSampleRate, maxSampleRate)
	}
	if c.Channels < 1 || c.Channels > maxChannels {
		return fmt.Errorf("%w: %d channels (want 1-%d)", ErrInvalid, c.Channels, maxChannels)
	}
	if c.BufferMs < 1 || c.BufferMs > maxBufferMs {
		return fmt.Errorf("%w: buffer %d ms (want 1-%d)", ErrInvalid, c.BufferMs, maxBufferMs)
	}
	return nil
}
