// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
)

// NewSyncWorker returns a loop that, every interval, applies delay() as the
// minimum write delay of every store returned by targets and flushes it.
// Flush failures are logged; the store retries on the next tick.
func NewSyncWorker(name string, interval time.Duration, delay func() time.Duration, targets func() []Flusher, opts ...LoopOption) *Loop {
	l := NewLoop(name, interval, nil, opts...)
	l.tick = func(ctx context.Context) bool {
		syncStores(ctx, l.logger, name, delay(), targets())
		return true
	}
	return l
}

func syncStores(ctx context.Context, log *logger.Logger, name string, delay time.Duration, targets []Flusher) {
	for _, target := range targets {
		target.SetDelay(delay)
		if err := target.Flush(ctx); err != nil {
			log.Warn().Err(err).Str("task", name).Msg("store flush failed, retrying on next tick")
		}
	}
}
