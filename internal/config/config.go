// Package config provides Viper-based configuration loading for the
// skirmish simulator.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the fixed-timestep arena settings.
type SimulationConfig struct {
	// TickInterval is the length of one simulation step.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// Duration is how long the arena runs before reporting; 0 = until stopped.
	Duration time.Duration `mapstructure:"duration"`
	// Agents is the number of combat agents spawned into the arena.
	Agents int `mapstructure:"agents"`
	// ArenaRadius is the spawn circle radius in world units.
	ArenaRadius float64 `mapstructure:"arena_radius"`
	// SelectionInterval is how often each agent re-runs weapon selection.
	SelectionInterval time.Duration `mapstructure:"selection_interval"`
}

// CombatConfig holds the per-agent weapon system settings.
type CombatConfig struct {
	// ReactionSeconds is the minimum continuous visibility before a shot.
	ReactionSeconds float64 `mapstructure:"reaction_seconds"`
	// FacingTolerance is the on-target angular tolerance in radians.
	FacingTolerance float64 `mapstructure:"facing_tolerance"`
	// DefaultWeapon is the weapon type granted on reset.
	DefaultWeapon string `mapstructure:"default_weapon"`
	// WeaponsDir is the weapon definition YAML directory; empty = use the
	// compiled-in defaults.
	WeaponsDir string `mapstructure:"weapons_dir"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Combat     CombatConfig     `mapstructure:"combat"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.TickInterval <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.tick_interval must be > 0, got %s", s.TickInterval))
	}
	if s.Duration < 0 {
		errs = append(errs, "simulation.duration must not be negative")
	}
	if s.Agents < 2 {
		errs = append(errs, fmt.Sprintf("simulation.agents must be >= 2, got %d", s.Agents))
	}
	if s.ArenaRadius <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.arena_radius must be > 0, got %v", s.ArenaRadius))
	}
	if s.SelectionInterval <= 0 {
		errs = append(errs, fmt.Sprintf("simulation.selection_interval must be > 0, got %s", s.SelectionInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	// Zero means unset downstream; the weapon system substitutes its default.
	if c.ReactionSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("combat.reaction_seconds must be > 0, got %v", c.ReactionSeconds))
	}
	if c.FacingTolerance <= 0 {
		errs = append(errs, fmt.Sprintf("combat.facing_tolerance must be > 0, got %v", c.FacingTolerance))
	}
	if c.DefaultWeapon == "" {
		errs = append(errs, "combat.default_weapon must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is supplied.
//
// Postcondition: the returned Config passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: Default: built-in defaults invalid: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.tick_interval", "16ms")
	v.SetDefault("simulation.duration", "30s")
	v.SetDefault("simulation.agents", 4)
	v.SetDefault("simulation.arena_radius", 40.0)
	v.SetDefault("simulation.selection_interval", "500ms")

	v.SetDefault("combat.reaction_seconds", 0.3)
	v.SetDefault("combat.facing_tolerance", 0.05)
	v.SetDefault("combat.default_weapon", "blaster")
	v.SetDefault("combat.weapons_dir", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
