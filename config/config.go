// Package config loads engine settings from a TOML file layered over
// defaults. Every knob has a working default so a zero-config run behaves
// sensibly in development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full runtime configuration.
type Config struct {
	Database Database `toml:"database"`
	Policy   Policy   `toml:"policy"`
	AI       AI       `toml:"ai"`
	PII      PII      `toml:"pii"`
	Letters  Letters  `toml:"letters"`
	Metrics  Metrics  `toml:"metrics"`
}

type Database struct {
	URL string `toml:"url"`
}

// Policy carries the workflow timing rules.
type Policy struct {
	// FollowUpDays is the statutory investigation window granted to a
	// bureau before an unanswered dispute escalates.
	FollowUpDays int `toml:"follow_up_days"`
	// CompletionDays sizes the estimated end date stamped on new workflows.
	CompletionDays int `toml:"completion_days"`
	// SweepInterval is how often the follow-up sweeper runs.
	SweepInterval duration `toml:"sweep_interval"`
}

type AI struct {
	Enabled bool     `toml:"enabled"`
	Timeout duration `toml:"timeout"`
}

type PII struct {
	Passphrase string `toml:"passphrase"`
	Salt       string `toml:"salt"`
}

type Letters struct {
	// DefaultMethod is the transport used when a dispatch does not name one.
	DefaultMethod string `toml:"default_method"`
}

type Metrics struct {
	Addr string `toml:"addr"`
}

// duration lets TOML carry values like "5s" or "1h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

func (d duration) Std() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Database: Database{URL: os.Getenv("DATABASE_URL")},
		Policy: Policy{
			FollowUpDays:   30,
			CompletionDays: 120,
			SweepInterval:  duration(time.Hour),
		},
		AI: AI{
			Enabled: false,
			Timeout: duration(5 * time.Second),
		},
		PII: PII{
			Salt: "creditflow-pii-v1",
		},
		Letters: Letters{DefaultMethod: "postal"},
		Metrics: Metrics{Addr: ":9090"},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.validate()
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: load %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Policy.FollowUpDays <= 0 {
		return fmt.Errorf("config: policy.follow_up_days must be positive")
	}
	if c.Policy.CompletionDays < c.Policy.FollowUpDays {
		return fmt.Errorf("config: policy.completion_days must cover at least one follow-up window")
	}
	if c.AI.Timeout.Std() <= 0 {
		return fmt.Errorf("config: ai.timeout must be positive")
	}
	switch c.Letters.DefaultMethod {
	case "electronic", "postal", "fax":
	default:
		return fmt.Errorf("config: letters.default_method %q unsupported", c.Letters.DefaultMethod)
	}
	return nil
}

// FollowUpWindow is Policy.FollowUpDays as a duration.
func (p Policy) FollowUpWindow() time.Duration {
	return time.Duration(p.FollowUpDays) * 24 * time.Hour
}

// CompletionWindow is Policy.CompletionDays as a duration.
func (p Policy) CompletionWindow() time.Duration {
	return time.Duration(p.CompletionDays) * 24 * time.Hour
}
