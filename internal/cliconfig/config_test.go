package cliconfig

import (
	"testing"
	"time"

	"github.com/bft-labs/padstream"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BaudRate != 115200 {
		t.Errorf("BaudRate = %v, want 115200", cfg.BaudRate)
	}
	if cfg.TickRate != 200 {
		t.Errorf("TickRate = %v, want 200", cfg.TickRate)
	}
	if cfg.Fallback != FallbackNameHoldLast {
		t.Errorf("Fallback = %v, want %v", cfg.Fallback, FallbackNameHoldLast)
	}
	if cfg.StatsInterval != 10*time.Second {
		t.Errorf("StatsInterval = %v, want 10s", cfg.StatsInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.PortName = "/dev/ttyUSB0"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid with port", func(c *Config) {}, false},
		{"valid headless demo", func(c *Config) { c.PortName = ""; c.Demo = true }, false},
		{"no port and no demo", func(c *Config) { c.PortName = "" }, true},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, true},
		{"negative baud", func(c *Config) { c.BaudRate = -1 }, true},
		{"unknown fallback", func(c *Config) { c.Fallback = "panic" }, true},
		{"deadzone out of range", func(c *Config) { c.DeadzoneLeft = 1.0 }, true},
		{"negative stats interval", func(c *Config) { c.StatsInterval = -time.Second }, true},
		{"deadzones in range", func(c *Config) { c.DeadzoneLeft = 0.2; c.DeadzoneRight = 0.15 }, false},
		{"hair trigger in range", func(c *Config) { c.HairTrigger = 0.3 }, false},
		{"hair trigger at 1", func(c *Config) { c.HairTrigger = 1.0 }, true},
		{"negative hair trigger", func(c *Config) { c.HairTrigger = -0.1 }, true},
		{"zero overrun threshold disables warning", func(c *Config) { c.OverrunThreshold = 0 }, false},
		{"overrun threshold above 1", func(c *Config) { c.OverrunThreshold = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    padstream.Fallback
		wantErr bool
	}{
		{"hold-last", FallbackNameHoldLast, padstream.FallbackHoldLast, false},
		{"default", FallbackNameDefault, padstream.FallbackDefault, false},
		{"empty maps to hold-last", "", padstream.FallbackHoldLast, false},
		{"unknown", "nope", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFallback(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFallback(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseFallback(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfig_ToPipelineConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PortName = "/dev/ttyACM0"
	cfg.BaudRate = 57600
	cfg.TickRate = 100
	cfg.ObserverCapacity = 16
	cfg.Fallback = FallbackNameDefault
	cfg.OverrunThreshold = 0.1

	pc := cfg.ToPipelineConfig()

	if pc.PortName != "/dev/ttyACM0" {
		t.Errorf("PortName = %v, want /dev/ttyACM0", pc.PortName)
	}
	if pc.BaudRate != 57600 {
		t.Errorf("BaudRate = %v, want 57600", pc.BaudRate)
	}
	if pc.TickRate != 100 {
		t.Errorf("TickRate = %v, want 100", pc.TickRate)
	}
	if pc.ObserverCapacity != 16 {
		t.Errorf("ObserverCapacity = %v, want 16", pc.ObserverCapacity)
	}
	if pc.Fallback != padstream.FallbackDefault {
		t.Errorf("Fallback = %v, want FallbackDefault", pc.Fallback)
	}
	if pc.OverrunThreshold != 0.1 {
		t.Errorf("OverrunThreshold = %v, want 0.1", pc.OverrunThreshold)
	}

	if err := pc.Validate(); err != nil {
		t.Errorf("mapped config invalid: %v", err)
	}
}
