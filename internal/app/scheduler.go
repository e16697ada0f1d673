package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/padstream/internal/domain"
	"github.com/bft-labs/padstream/internal/observe"
	"github.com/bft-labs/padstream/internal/ports"
	"github.com/bft-labs/padstream/internal/wire"
)

// Fallback selects the frame published when the transform chain fails
// mid-tick.
type Fallback int

const (
	// FallbackHoldLast republishes the last successfully produced frame.
	FallbackHoldLast Fallback = iota

	// FallbackDefault publishes the neutral frame.
	FallbackDefault
)

// String returns a human-readable representation of the policy.
func (f Fallback) String() string {
	switch f {
	case FallbackHoldLast:
		return "hold-last"
	case FallbackDefault:
		return "default-frame"
	default:
		return "unknown"
	}
}

// overrunWindow is the number of ticks per persistent-overrun evaluation.
const overrunWindow = 256

// TickEventEmitter is called synchronously from the tick goroutine on
// per-tick incidents. Handlers must be fast.
type TickEventEmitter interface {
	OnTickOverrun(tick uint64, overrun time.Duration)
	OnTransformFailure(err error)
	OnWriteError(err error)
}

// SchedulerConfig contains configuration for the tick loop.
type SchedulerConfig struct {
	// Period is the tick interval (reciprocal of the configured rate).
	Period time.Duration

	// Fallback is the transform-failure policy.
	Fallback Fallback

	// OverrunThreshold is the overrun fraction per window above which a
	// persistent-overrun warning is reported. Zero disables the warning.
	// Not fatal.
	OverrunThreshold float64
}

// Scheduler runs the real-time loop: per tick it invokes every source,
// combines, runs the transform chain, publishes to the observation channel,
// and encodes and sends via the transport.
//
// Run executes on a single dedicated goroutine; it is the only writer of the
// transport and the only producer into the observation channel. Sources and
// transforms execute synchronously within the tick.
type Scheduler struct {
	cfg        SchedulerConfig
	sources    []ports.Source
	transforms []ports.Transform
	transport  ports.Transport
	channel    *observe.Channel
	log        zerolog.Logger
	emitter    TickEventEmitter

	stats statCounters

	// lastGood is the most recent successfully produced frame, retained for
	// the hold-last fallback. Only touched on the tick goroutine.
	lastGood domain.Frame

	// scratch avoids a per-tick allocation for source outputs.
	scratch []domain.Frame

	windowTicks    int
	windowOverruns int
}

// NewScheduler creates a scheduler over the given stages and transport.
func NewScheduler(
	cfg SchedulerConfig,
	sources []ports.Source,
	transforms []ports.Transform,
	transport ports.Transport,
	channel *observe.Channel,
	log zerolog.Logger,
	emitter TickEventEmitter,
) *Scheduler {
	return &Scheduler{
		cfg:        cfg,
		sources:    sources,
		transforms: transforms,
		transport:  transport,
		channel:    channel,
		log:        log,
		emitter:    emitter,
		scratch:    make([]domain.Frame, 0, len(sources)),
	}
}

// Stats returns a snapshot of the tick accounting. Safe from any goroutine.
func (s *Scheduler) Stats() Stats {
	return s.stats.Snapshot()
}

// Run executes the tick loop until the context is cancelled. The transport is
// closed on every exit path before Run returns. The stop signal is checked
// once per tick boundary, never mid-tick.
func (s *Scheduler) Run(ctx context.Context) error {
	defer func() {
		if err := s.transport.Close(); err != nil {
			s.log.Warn().Err(err).Msg("transport close failed")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		s.tick()
		elapsed := time.Since(start)

		if elapsed < s.cfg.Period {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.cfg.Period - elapsed):
			}
			s.accountTick(0)
			continue
		}

		// Overrun: record and proceed immediately. Missed tick boundaries are
		// not coalesced or caught up.
		overrun := elapsed - s.cfg.Period
		s.accountTick(overrun)
		if s.emitter != nil {
			s.emitter.OnTickOverrun(s.stats.ticks.Load(), overrun)
		}
	}
}

// tick runs one iteration: sources, combine, transforms, publish, send.
func (s *Scheduler) tick() {
	frames := s.scratch[:0]
	for i, src := range s.sources {
		f, err := src.Generate()
		if err == nil {
			err = f.Validate()
		}
		if err != nil {
			s.stats.sourceErrors.Add(1)
			s.log.Debug().Err(err).Int("source", i).Msg("source skipped this tick")
			continue
		}
		frames = append(frames, f)
	}

	out := domain.Combine(frames)

	failed := false
	for i, tr := range s.transforms {
		next, err := tr.Apply(out)
		if err == nil {
			err = next.Validate()
		}
		if err != nil {
			s.stats.transformFailures.Add(1)
			s.log.Debug().Err(err).Int("transform", i).Msg("transform chain aborted")
			if s.emitter != nil {
				s.emitter.OnTransformFailure(err)
			}
			failed = true
			break
		}
		out = next
	}

	if failed {
		switch s.cfg.Fallback {
		case FallbackDefault:
			out = domain.DefaultFrame()
		default:
			out = s.lastGood
		}
	} else {
		s.lastGood = out
	}

	// Observation first: best-effort, never blocks, and a failed send must
	// not hide the frame from observers.
	s.channel.Publish(out)

	if err := s.transport.Send(wire.EncodePacket(out)); err != nil {
		s.stats.writeErrors.Add(1)
		s.log.Debug().Err(err).Msg("send failed")
		if s.emitter != nil {
			s.emitter.OnWriteError(err)
		}
	}

	for {
		status, ok := s.transport.PollStatus()
		if !ok {
			break
		}
		switch status {
		case wire.StatusNak:
			s.stats.naks.Add(1)
		case wire.StatusMalformed:
			s.stats.malformedResponses.Add(1)
		}
	}

	s.stats.ticks.Add(1)
}

// accountTick updates drift accounting and reports persistent overrun once
// per window.
func (s *Scheduler) accountTick(overrun time.Duration) {
	s.windowTicks++
	if overrun > 0 {
		s.stats.overruns.Add(1)
		s.stats.driftNanos.Add(int64(overrun))
		s.windowOverruns++
	}

	if s.windowTicks < overrunWindow {
		return
	}

	fraction := float64(s.windowOverruns) / float64(s.windowTicks)
	if s.cfg.OverrunThreshold > 0 && fraction > s.cfg.OverrunThreshold {
		s.log.Warn().
			Float64("fraction", fraction).
			Float64("threshold", s.cfg.OverrunThreshold).
			Dur("cumulative_drift", time.Duration(s.stats.driftNanos.Load())).
			Msg("persistent tick overrun")
	}
	s.windowTicks = 0
	s.windowOverruns = 0
}
