package cliconfig

import (
	"os"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"PADSTREAM_PORT":           "/dev/ttyUSB1",
				"PADSTREAM_BAUD":           "57600",
				"PADSTREAM_TICK_RATE":      "100",
				"PADSTREAM_FALLBACK":       "default",
				"PADSTREAM_DEADZONE_LEFT":  "0.15",
				"PADSTREAM_STATS_INTERVAL": "30s",
				"PADSTREAM_DEMO":           "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				PortName:      "/dev/ttyUSB1",
				BaudRate:      57600,
				TickRate:      100,
				Fallback:      "default",
				DeadzoneLeft:  0.15,
				StatsInterval: 30 * time.Second,
				Demo:          true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"PADSTREAM_PORT": "/dev/ttyUSB1",
				"PADSTREAM_BAUD": "57600",
			},
			changed: map[string]bool{"port": true},
			initial: Config{
				PortName: "/dev/flag-port",
			},
			expected: Config{
				PortName: "/dev/flag-port",
				BaudRate: 57600,
			},
			wantErr: false,
		},
		{
			name: "explicit zero overrun threshold disables warning",
			envVars: map[string]string{
				"PADSTREAM_OVERRUN_THRESHOLD": "0",
			},
			changed: map[string]bool{},
			initial: Config{
				OverrunThreshold: 0.05,
			},
			expected: Config{
				OverrunThreshold: 0,
			},
			wantErr: false,
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"PADSTREAM_STATS_INTERVAL": "not-a-duration",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"PADSTREAM_BAUD": "not-a-number",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "returns error for invalid float",
			envVars: map[string]string{
				"PADSTREAM_TICK_RATE": "not-a-float",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
		{
			name: "bool accepts 1",
			envVars: map[string]string{
				"PADSTREAM_ANTI_RECOIL": "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				AntiRecoil: true,
			},
			wantErr: false,
		},
		{
			name: "bool false overrides initial",
			envVars: map[string]string{
				"PADSTREAM_DEMO": "false",
			},
			changed: map[string]bool{},
			initial: Config{
				Demo: true,
			},
			expected: Config{
				Demo: false,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set environment variables
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			// Clean up after test
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}
			if tt.wantErr {
				return
			}

			if cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}
