// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"sync"
)

// Handler reacts to a client event of sess. ctx is cancelled when sess is
// retired. Handlers run on the session's event pump and must hand blocking
// work to a goroutine.
type Handler func(ctx context.Context, sess *Session, ev Event)

// Bus fans session events out to subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventKind][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]Handler)}
}

// Subscribe registers h for events of kind. Handlers of one kind run in
// subscription order.
func (b *Bus) Subscribe(kind EventKind, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Publish runs every handler subscribed to ev.Kind synchronously.
func (b *Bus) Publish(ctx context.Context, sess *Session, ev Event) {
	b.mu.RLock()
	handlers := b.handlers[ev.Kind]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, sess, ev)
	}
}
