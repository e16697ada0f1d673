package app

import (
	"sync/atomic"
	"time"
)

// Stats is a snapshot of the scheduler's tick accounting.
type Stats struct {
	// Ticks is the number of completed tick iterations.
	Ticks uint64

	// Overruns is the number of ticks whose work exceeded the period.
	Overruns uint64

	// CumulativeDrift is the total time by which overrunning ticks exceeded
	// the period.
	CumulativeDrift time.Duration

	// SourceErrors counts per-tick Generate failures (source skipped).
	SourceErrors uint64

	// TransformFailures counts per-tick transform chain aborts (fallback
	// frame published).
	TransformFailures uint64

	// WriteErrors counts failed transport sends.
	WriteErrors uint64

	// Naks counts peripheral negative acknowledgements.
	Naks uint64

	// MalformedResponses counts undecodable peripheral acknowledgements.
	MalformedResponses uint64
}

// OverrunFraction returns the share of ticks that overran the period.
func (s Stats) OverrunFraction() float64 {
	if s.Ticks == 0 {
		return 0
	}
	return float64(s.Overruns) / float64(s.Ticks)
}

// statCounters is the scheduler-side accumulator behind Stats. All fields are
// updated on the tick goroutine and read from any goroutine, hence atomics.
type statCounters struct {
	ticks              atomic.Uint64
	overruns           atomic.Uint64
	driftNanos         atomic.Int64
	sourceErrors       atomic.Uint64
	transformFailures  atomic.Uint64
	writeErrors        atomic.Uint64
	naks               atomic.Uint64
	malformedResponses atomic.Uint64
}

// Snapshot returns a consistent-enough copy for observability use.
func (c *statCounters) Snapshot() Stats {
	return Stats{
		Ticks:              c.ticks.Load(),
		Overruns:           c.overruns.Load(),
		CumulativeDrift:    time.Duration(c.driftNanos.Load()),
		SourceErrors:       c.sourceErrors.Load(),
		TransformFailures:  c.transformFailures.Load(),
		WriteErrors:        c.writeErrors.Load(),
		Naks:               c.naks.Load(),
		MalformedResponses: c.malformedResponses.Load(),
	}
}
