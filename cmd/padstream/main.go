package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/padstream"
	"github.com/bft-labs/padstream/internal/cliconfig"
	"github.com/bft-labs/padstream/modules/antirecoil"
	"github.com/bft-labs/padstream/modules/deadzone"
	"github.com/bft-labs/padstream/modules/synth"
)

const helpDescription = `
Drive a controller-emulating peripheral over a serial link at a fixed tick rate.

Frames come from registered sources (or the built-in synthetic source with
--demo), pass through the configured transform chain (deadzones, hair trigger,
anti-recoil), and are encoded and written to the peripheral every tick.
Configure via file ($HOME/.padstream/config.toml), PADSTREAM_* environment
variables, or flags; flags win.
`

var exampleUsage = strings.TrimSpace(`
  padstream --port /dev/ttyUSB0
  padstream --demo --tick-rate 100
  padstream --port COM3 --deadzone-left 0.2 --deadzone-right 0.15
  padstream list-ports
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger().Level(lvl)
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "padstream",
		Short:   "Stream controller frames to a serial peripheral at a fixed cadence",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.padstream/config.toml),
			// then environment, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment (PADSTREAM_*) overrides file config but is
			// overridden by flags (checked via changed map).
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.LogLevel)
			log.Info().Interface("config", cfg).Msg("configuration")

			return run(log, cfg)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.padstream/config.toml)")
	root.Flags().StringVar(&cfg.PortName, "port", cfg.PortName, "serial port of the peripheral (e.g. /dev/ttyUSB0, COM3)")
	root.Flags().IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "serial baud rate")

	root.Flags().Float64Var(&cfg.TickRate, "tick-rate", cfg.TickRate, "pipeline frequency in Hz")
	root.Flags().IntVar(&cfg.ObserverCapacity, "observer-capacity", cfg.ObserverCapacity, "per-observer frame buffer size")
	root.Flags().StringVar(&cfg.Fallback, "fallback", cfg.Fallback, "transform failure policy: hold-last or default")
	root.Flags().Float64Var(&cfg.OverrunThreshold, "overrun-threshold", cfg.OverrunThreshold, "late-tick fraction that triggers a persistent overrun warning (0 disables)")

	root.Flags().BoolVar(&cfg.Demo, "demo", cfg.Demo, "use the built-in synthetic source instead of hardware input")

	root.Flags().Float64Var(&cfg.DeadzoneLeft, "deadzone-left", cfg.DeadzoneLeft, "left stick deadzone radius (0 disables)")
	root.Flags().Float64Var(&cfg.DeadzoneRight, "deadzone-right", cfg.DeadzoneRight, "right stick deadzone radius (0 disables)")
	root.Flags().StringVar(&cfg.DeadzoneTuning, "deadzone-tuning", cfg.DeadzoneTuning, "TOML file to watch for live deadzone tuning")
	root.Flags().Float64Var(&cfg.HairTrigger, "hair-trigger", cfg.HairTrigger, "right trigger snap threshold (0 disables)")
	root.Flags().BoolVar(&cfg.AntiRecoil, "anti-recoil", cfg.AntiRecoil, "enable recoil compensation on the right stick")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	root.Flags().DurationVar(&cfg.StatsInterval, "stats-interval", cfg.StatsInterval, "how often to log tick statistics (0 disables)")

	root.AddCommand(newListPortsCommand())

	if err := root.Execute(); err != nil {
		log := newLogger("info")
		log.Error().Err(err).Msg("padstream")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, cfg cliconfig.Config) error {
	opts := []padstream.Option{padstream.WithLogger(log)}

	if cfg.Demo {
		opts = append(opts, padstream.WithSource(synth.New(synth.DefaultConfig())))
	}

	var dz *deadzone.Deadzone
	if cfg.DeadzoneLeft > 0 || cfg.DeadzoneRight > 0 || cfg.DeadzoneTuning != "" {
		dz = deadzone.New(deadzone.Params{
			LeftRadius:  cfg.DeadzoneLeft,
			RightRadius: cfg.DeadzoneRight,
		})
		opts = append(opts, padstream.WithTransform(dz))
	}
	if cfg.HairTrigger > 0 {
		opts = append(opts, padstream.WithTransform(deadzone.NewHairTrigger(cfg.HairTrigger)))
	}
	if cfg.AntiRecoil {
		opts = append(opts, padstream.WithTransform(antirecoil.New(antirecoil.DefaultConfig())))
	}

	p, err := padstream.New(cfg.ToPipelineConfig(), opts...)
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if dz != nil && cfg.DeadzoneTuning != "" {
		if err := dz.WatchTuning(ctx, cfg.DeadzoneTuning, log); err != nil {
			return fmt.Errorf("watch deadzone tuning: %w", err)
		}
	}

	if err := p.Start(ctx); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}

	// Periodic stats logging and crash detection.
	doneCh := make(chan struct{})
	go func() {
		poll := time.NewTicker(100 * time.Millisecond)
		defer poll.Stop()

		var statsC <-chan time.Time
		if cfg.StatsInterval > 0 {
			stats := time.NewTicker(cfg.StatsInterval)
			defer stats.Stop()
			statsC = stats.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-statsC:
				s := p.Stats()
				log.Info().
					Uint64("ticks", s.Ticks).
					Uint64("overruns", s.Overruns).
					Uint64("source_errors", s.SourceErrors).
					Uint64("transform_failures", s.TransformFailures).
					Uint64("write_errors", s.WriteErrors).
					Uint64("naks", s.Naks).
					Msg("pipeline stats")
			case <-poll.C:
				if p.Status() == padstream.StateCrashed {
					close(doneCh)
					return
				}
			}
		}
	}()

	select {
	case <-sigCh:
		log.Info().Msg("received signal, stopping...")
	case <-doneCh:
		return fmt.Errorf("pipeline crashed")
	}

	if err := p.Stop(); err != nil && !errors.Is(err, padstream.ErrNotRunning) {
		return fmt.Errorf("stop pipeline: %w", err)
	}

	s := p.Stats()
	log.Info().
		Uint64("ticks", s.Ticks).
		Uint64("overruns", s.Overruns).
		Msg("pipeline stopped")
	return nil
}

func newListPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list-ports",
		Short: "List serial ports available on this host",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := padstream.ListPorts()
			if err != nil {
				return fmt.Errorf("list ports: %w", err)
			}
			if len(ports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no serial ports found")
				return nil
			}
			for _, port := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), port)
			}
			return nil
		},
	}
}
