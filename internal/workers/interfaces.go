// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the periodic background activities of the fleet:
// per-session loops and the store flush tasks.
package workers

import (
	"context"
	"time"
)

// Worker is a background activity. Run blocks until ctx is done or the
// worker decides to stop.
type Worker interface {
	Run(ctx context.Context)
}

// Flusher is a document store kept in sync by a sync worker.
type Flusher interface {
	SetDelay(d time.Duration)
	Flush(ctx context.Context) error
}
