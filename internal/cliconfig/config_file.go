package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	PortName         string  `toml:"port"`
	BaudRate         int     `toml:"baud_rate"`
	TickRate         float64 `toml:"tick_rate"`
	ObserverCapacity int     `toml:"observer_capacity"`
	Fallback string `toml:"fallback"`
	// A pointer so that an explicit overrun_threshold = 0 (warning
	// disabled) is distinguishable from the key being absent.
	OverrunThreshold *float64 `toml:"overrun_threshold"`
	Demo             *bool    `toml:"demo"`
	DeadzoneLeft     float64 `toml:"deadzone_left"`
	DeadzoneRight    float64 `toml:"deadzone_right"`
	DeadzoneTuning   string  `toml:"deadzone_tuning"`
	HairTrigger      float64 `toml:"hair_trigger"`
	AntiRecoil       *bool   `toml:"anti_recoil"`
	LogLevel         string  `toml:"log_level"`
	StatsInterval    string  `toml:"stats_interval"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.padstream/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".padstream", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", fc.PortName, &cfg.PortName)
	s.setString("fallback", fc.Fallback, &cfg.Fallback)
	s.setString("deadzone-tuning", fc.DeadzoneTuning, &cfg.DeadzoneTuning)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setInt("baud", fc.BaudRate, &cfg.BaudRate)
	s.setInt("observer-capacity", fc.ObserverCapacity, &cfg.ObserverCapacity)

	s.setFloat("tick-rate", fc.TickRate, &cfg.TickRate)
	s.setFloatPtr("overrun-threshold", fc.OverrunThreshold, &cfg.OverrunThreshold)
	s.setFloat("deadzone-left", fc.DeadzoneLeft, &cfg.DeadzoneLeft)
	s.setFloat("deadzone-right", fc.DeadzoneRight, &cfg.DeadzoneRight)
	s.setFloat("hair-trigger", fc.HairTrigger, &cfg.HairTrigger)

	s.setBool("demo", fc.Demo, &cfg.Demo)
	s.setBool("anti-recoil", fc.AntiRecoil, &cfg.AntiRecoil)

	if err := s.setDuration("stats-interval", fc.StatsInterval, &cfg.StatsInterval); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
