// Package cliconfig holds the CLI-facing configuration for padstream and the
// precedence machinery that merges config file, environment and flag values.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bft-labs/padstream"
)

// Fallback policy names accepted on the command line and in config files.
const (
	FallbackNameHoldLast = "hold-last"
	FallbackNameDefault  = "default"
)

// Config holds CLI configuration for padstream.
type Config struct {
	PortName string
	BaudRate int

	TickRate         float64
	ObserverCapacity int
	Fallback         string

	// OverrunThreshold gates the persistent-overrun warning. Zero disables
	// the warning entirely.
	OverrunThreshold float64

	// Demo replaces hardware input with the synthetic source.
	Demo bool

	// Deadzone module. Zero radii leave the module out of the chain.
	DeadzoneLeft   float64
	DeadzoneRight  float64
	DeadzoneTuning string

	// HairTrigger is the right-trigger snap threshold. Zero disables it.
	HairTrigger float64

	// AntiRecoil enables the recoil compensation transform.
	AntiRecoil bool

	LogLevel      string
	StatsInterval time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaudRate:         115200,
		TickRate:         200,
		ObserverCapacity: 32,
		Fallback:         FallbackNameHoldLast,
		OverrunThreshold: 0.05,
		LogLevel:         "info",
		StatsInterval:    10 * time.Second,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud rate must be positive")
	}
	if _, err := ParseFallback(c.Fallback); err != nil {
		return err
	}
	if c.DeadzoneLeft < 0 || c.DeadzoneLeft >= 1 {
		return fmt.Errorf("deadzone-left must be in [0, 1)")
	}
	if c.DeadzoneRight < 0 || c.DeadzoneRight >= 1 {
		return fmt.Errorf("deadzone-right must be in [0, 1)")
	}
	if c.HairTrigger < 0 || c.HairTrigger >= 1 {
		return fmt.Errorf("hair-trigger must be in [0, 1)")
	}
	if c.OverrunThreshold < 0 || c.OverrunThreshold > 1 {
		return fmt.Errorf("overrun-threshold must be in [0, 1]")
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("stats interval must not be negative")
	}
	if c.PortName == "" && !c.Demo {
		return fmt.Errorf("port is required (or --demo for headless operation)")
	}
	return nil
}

// ParseFallback maps a policy name to the pipeline's Fallback value.
func ParseFallback(name string) (padstream.Fallback, error) {
	switch name {
	case FallbackNameHoldLast, "":
		return padstream.FallbackHoldLast, nil
	case FallbackNameDefault:
		return padstream.FallbackDefault, nil
	default:
		return 0, fmt.Errorf("unknown fallback policy %q (want %q or %q)",
			name, FallbackNameHoldLast, FallbackNameDefault)
	}
}

// ToPipelineConfig maps the CLI configuration onto the library's Config.
// Call Validate first; an invalid fallback name maps to the default policy.
func (c *Config) ToPipelineConfig() padstream.Config {
	fb, _ := ParseFallback(c.Fallback)

	cfg := padstream.DefaultConfig()
	cfg.PortName = c.PortName
	cfg.BaudRate = c.BaudRate
	cfg.TickRate = c.TickRate
	cfg.ObserverCapacity = c.ObserverCapacity
	cfg.Fallback = fb
	cfg.OverrunThreshold = c.OverrunThreshold
	return cfg
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloatPtr sets a float64 from a pointer if not nil and flag not changed.
// The pointer distinguishes an explicit zero from an absent value.
func (s *configSetter) setFloatPtr(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setFloatFromStringAllowZero parses a string to float64 and sets the
// destination, treating zero as an explicit value rather than unset.
func (s *configSetter) setFloatFromStringAllowZero(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f < 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
