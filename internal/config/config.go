package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/chess-clock/internal/cycle"
	"github.com/oshokin/chess-clock/internal/domain/match"
	"github.com/oshokin/chess-clock/internal/expiry"
	"github.com/oshokin/chess-clock/internal/input"
	"github.com/oshokin/chess-clock/internal/logger"
)

// Config holds the settings of the chess clock simulator.
type Config struct {
	// InitialSeconds is the time budget of each side.
	InitialSeconds int `yaml:"initial_seconds" env:"INITIAL_SECONDS"`
	// CyclePeriod is the time between two loop cycles.
	CyclePeriod time.Duration `yaml:"cycle_period" env:"CYCLE_PERIOD"`
	// SettleDelay is the debounce confirmation delay.
	SettleDelay time.Duration `yaml:"settle_delay" env:"SETTLE_DELAY"`
	// BootHold is how long the startup banner is shown.
	BootHold time.Duration `yaml:"boot_hold" env:"BOOT_HOLD"`
	// ToneDuration is how long the buzzer sounds on expiry.
	ToneDuration time.Duration `yaml:"tone_duration" env:"TONE_DURATION"`
	// MessageHold is how long each loss message is shown.
	MessageHold time.Duration `yaml:"message_hold" env:"MESSAGE_HOLD"`
	// ListenAddress enables the remote gRPC API when set.
	ListenAddress string `yaml:"listen_address,omitempty" env:"LISTEN_ADDRESS"`
	// SerialPort is an optional serial device sending button letters.
	SerialPort string `yaml:"serial_port,omitempty" env:"SERIAL_PORT"`
	// SerialBaud is the baud rate of SerialPort.
	SerialBaud int `yaml:"serial_baud,omitempty" env:"SERIAL_BAUD"`
	// CallTimeout bounds every remote call of the press and status commands.
	CallTimeout time.Duration `yaml:"call_timeout,omitempty" env:"CALL_TIMEOUT"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty" env:"LOG_LEVEL"`
}

const (
	// DefaultConfigFilename is the default filename for simulator settings.
	DefaultConfigFilename = "chess-clock-settings.yaml"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// DefaultTimeout is the default timeout for remote calls.
	DefaultTimeout = 5 * time.Second

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CHESS_CLOCK_"

	// maxInitialSeconds caps the budget at 100 hours.
	maxInitialSeconds = 100 * 60 * 60
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInitialSeconds is returned when the time budget is out of range.
	errInitialSeconds = errors.New("initial seconds must be between 1 and 360000")
	// errNegativeDuration is returned when a duration setting is negative.
	errNegativeDuration = errors.New("duration must not be negative")
	// errCyclePeriod is returned when the cycle period is not positive.
	errCyclePeriod = errors.New("cycle period must be positive")
	// errLogLevel is returned for an unknown log level.
	errLogLevel = errors.New("unknown log level")
)

// Default returns the stock settings, equal to the firmware constants.
func Default() *Config {
	return &Config{
		InitialSeconds: match.InitialSeconds,
		CyclePeriod:    cycle.DefaultPeriod,
		SettleDelay:    input.DefaultSettleDelay,
		BootHold:       cycle.DefaultBootHold,
		ToneDuration:   expiry.DefaultToneDuration,
		MessageHold:    expiry.DefaultMessageHold,
		CallTimeout:    DefaultTimeout,
		LogLevel:       "info",
	}
}

// Load reads settings from path on top of the defaults, applies CHESS_CLOCK_*
// environment overrides and validates the result. A missing file is not an
// error: defaults and environment are used.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Keep defaults.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for ranges and formatting.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.InitialSeconds <= 0 || cfg.InitialSeconds > maxInitialSeconds {
		return fmt.Errorf("%d: %w", cfg.InitialSeconds, errInitialSeconds)
	}

	if cfg.CyclePeriod <= 0 {
		return errCyclePeriod
	}

	for name, d := range map[string]time.Duration{
		"settle_delay":  cfg.SettleDelay,
		"boot_hold":     cfg.BootHold,
		"tone_duration": cfg.ToneDuration,
		"message_hold":  cfg.MessageHold,
		"call_timeout":  cfg.CallTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s: %w", name, errNegativeDuration)
		}
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%q: %w", cfg.LogLevel, errLogLevel)
	}

	if cfg.ListenAddress == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	return nil
}

// Settings converts the configuration into loop settings.
func (c *Config) Settings() cycle.Settings {
	return cycle.Settings{
		Budget:      c.InitialSeconds,
		Period:      c.CyclePeriod,
		SettleDelay: c.SettleDelay,
		BootHold:    c.BootHold,
		Alert: expiry.Timing{
			Tone: c.ToneDuration,
			Hold: c.MessageHold,
		},
	}
}
