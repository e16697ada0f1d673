package cliconfig

import "os"

// ApplyEnvConfig applies PADSTREAM_* environment variables to the Config.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("port", os.Getenv("PADSTREAM_PORT"), &cfg.PortName)
	s.setString("fallback", os.Getenv("PADSTREAM_FALLBACK"), &cfg.Fallback)
	s.setString("deadzone-tuning", os.Getenv("PADSTREAM_DEADZONE_TUNING"), &cfg.DeadzoneTuning)
	s.setString("log-level", os.Getenv("PADSTREAM_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("baud", os.Getenv("PADSTREAM_BAUD"), &cfg.BaudRate); err != nil {
		return err
	}
	if err := s.setIntFromString("observer-capacity", os.Getenv("PADSTREAM_OBSERVER_CAPACITY"), &cfg.ObserverCapacity); err != nil {
		return err
	}

	if err := s.setFloatFromString("tick-rate", os.Getenv("PADSTREAM_TICK_RATE"), &cfg.TickRate); err != nil {
		return err
	}
	if err := s.setFloatFromStringAllowZero("overrun-threshold", os.Getenv("PADSTREAM_OVERRUN_THRESHOLD"), &cfg.OverrunThreshold); err != nil {
		return err
	}
	if err := s.setFloatFromString("deadzone-left", os.Getenv("PADSTREAM_DEADZONE_LEFT"), &cfg.DeadzoneLeft); err != nil {
		return err
	}
	if err := s.setFloatFromString("deadzone-right", os.Getenv("PADSTREAM_DEADZONE_RIGHT"), &cfg.DeadzoneRight); err != nil {
		return err
	}
	if err := s.setFloatFromString("hair-trigger", os.Getenv("PADSTREAM_HAIR_TRIGGER"), &cfg.HairTrigger); err != nil {
		return err
	}

	if err := s.setDuration("stats-interval", os.Getenv("PADSTREAM_STATS_INTERVAL"), &cfg.StatsInterval); err != nil {
		return err
	}

	s.setBoolFromString("demo", os.Getenv("PADSTREAM_DEMO"), &cfg.Demo)
	s.setBoolFromString("anti-recoil", os.Getenv("PADSTREAM_ANTI_RECOIL"), &cfg.AntiRecoil)

	return nil
}
