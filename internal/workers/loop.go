// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

// TickFunc is one iteration of a [Loop]. Returning false unschedules the
// loop.
type TickFunc func(ctx context.Context) bool

// Loop calls its tick function on a fixed cadence.
type Loop struct {
	name      string
	interval  time.Duration
	tick      TickFunc
	clock     clockwork.Clock
	logger    *logger.Logger
	immediate bool
}

// LoopOption configures a [Loop].
type LoopOption func(*Loop)

func WithClock(clock clockwork.Clock) LoopOption {
	return func(l *Loop) { l.clock = clock }
}

func WithLogger(log *logger.Logger) LoopOption {
	return func(l *Loop) { l.logger = log }
}

// Immediately runs the first tick when the loop starts instead of one
// interval later.
func Immediately() LoopOption {
	return func(l *Loop) { l.immediate = true }
}

// NewLoop creates a loop named name that calls tick every interval.
func NewLoop(name string, interval time.Duration, tick TickFunc, opts ...LoopOption) *Loop {
	l := &Loop{
		name:     name,
		interval: interval,
		tick:     tick,
		clock:    clockwork.NewRealClock(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.interval <= 0 {
		l.interval = time.Second
	}
	return l
}

// Run implements Worker. Ticks never overlap: a slow tick delays the next
// one.
func (l *Loop) Run(ctx context.Context) {
	log := l.logger.With().Str("loop", l.name).Logger()

	if l.immediate && !l.tick(ctx) {
		log.Debug().Msg("loop unscheduled")
		return
	}

	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("loop stopped")
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			if !l.tick(ctx) {
				log.Debug().Msg("loop unscheduled")
				return
			}
		}
	}
}
