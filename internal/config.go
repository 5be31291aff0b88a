package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/pkg/dtc"
	"github.com/starford/raido/pkg/dtc/dtchttp"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Enforcement levels for inbound Data-Tracker-Chain headers.
const (
	EnforcementNone = "none"
	EnforcementLow  = "low"
	EnforcementHigh = "high"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Tracker TrackerConfig     `yaml:"tracker"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Tracker.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// TrackerConfig holds the proof-of-work parameters and actor identity for
// this deployment. Difficulty must match whatever upstream and downstream
// actors mine with; it is agreed out of band and never travels in tokens.
type TrackerConfig struct {
	ActorID     string `yaml:"actor_id"`
	Difficulty  uint   `yaml:"difficulty"`
	MaxAttempts uint64 `yaml:"max_attempts"`
	Workers     int    `yaml:"workers"`
	Enforcement string `yaml:"enforcement"`
}

// Validate validates the tracker configuration.
func (c *TrackerConfig) Validate() error {
	if c.Enforcement == "" {
		c.Enforcement = EnforcementHigh
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.ActorID, validation.Required),
		validation.Field(&c.Difficulty, validation.Min(uint(1)), validation.Max(uint(64))),
		validation.Field(&c.Workers, validation.Min(0), validation.Max(256)),
		validation.Field(&c.Enforcement, validation.Required,
			validation.In(EnforcementNone, EnforcementLow, EnforcementHigh)),
	)
}

// PoW returns the proof-of-work parameters for mining and verification.
func (c *TrackerConfig) PoW() dtc.PoW {
	return dtc.PoW{
		Difficulty:  c.Difficulty,
		MaxAttempts: c.MaxAttempts,
		Workers:     c.Workers,
	}
}

// EnforcementLevel maps the configured enforcement mode onto the middleware
// validation level.
func (c *TrackerConfig) EnforcementLevel() dtchttp.ValidationLevel {
	switch c.Enforcement {
	case EnforcementNone:
		return dtchttp.ValidationNone
	case EnforcementLow:
		return dtchttp.ValidationLow
	default:
		return dtchttp.ValidationHigh
	}
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Tracker: TrackerConfig{
			ActorID:     "raido~demo~service",
			Difficulty:  dtc.DefaultDifficulty,
			Workers:     1,
			Enforcement: EnforcementHigh,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
