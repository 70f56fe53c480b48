// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-fleet-keeper/internal/adapter"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

// DefaultCommitMessage is attached to every remote write.
const DefaultCommitMessage = "from_server"

// VersionCache maps branch/path keys to the current version tag of the
// document and serializes read-modify-write sequences per key. One cache is
// shared by every RemoteBackend talking to the same repository.
type VersionCache struct {
	mu    sync.Mutex
	tags  map[string]string
	locks map[string]*sync.Mutex
}

// NewVersionCache returns an empty cache.
func NewVersionCache() *VersionCache {
	return &VersionCache{
		tags:  make(map[string]string),
		locks: make(map[string]*sync.Mutex),
	}
}

// Tag returns the cached version tag of key.
func (c *VersionCache) Tag(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tag, ok := c.tags[key]
	return tag, ok
}

func (c *VersionCache) setTag(key, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[key] = tag
}

func (c *VersionCache) dropTag(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tags, key)
}

func (c *VersionCache) lock(key string) func() {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = new(sync.Mutex)
		c.locks[key] = l
	}
	c.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// RemoteBackend keeps a document in a hosted object repository, using the
// cached version tag as an optimistic-concurrency precondition on writes.
type RemoteBackend struct {
	api     adapter.ObjectAPI
	ref     adapter.ObjectRef
	cache   *VersionCache
	message string
	logger  *logger.Logger
}

// NewRemoteBackend returns the backend of the document at ref. An empty
// branch defaults to "main".
func NewRemoteBackend(api adapter.ObjectAPI, ref adapter.ObjectRef, cache *VersionCache, log *logger.Logger) *RemoteBackend {
	if ref.Branch == "" {
		ref.Branch = "main"
	}
	return &RemoteBackend{
		api:     api,
		ref:     ref,
		cache:   cache,
		message: DefaultCommitMessage,
		logger:  log,
	}
}

// Init pulls the document and, if that fails, pushes seed to create it.
func (b *RemoteBackend) Init(ctx context.Context, seed []byte) error {
	unlock := b.cache.lock(b.ref.Key())
	defer unlock()

	if _, err := b.pull(ctx); err == nil {
		return nil
	}

	return b.push(ctx, seed)
}

// Load pulls the document. Any failure is logged and yields no data.
func (b *RemoteBackend) Load(ctx context.Context) ([]byte, error) {
	unlock := b.cache.lock(b.ref.Key())
	defer unlock()

	data, err := b.pull(ctx)
	if err != nil {
		b.logger.Error().Err(err).Str("key", b.ref.Key()).Msg("remote pull failed")
		return nil, nil
	}
	return data, nil
}

// Save pushes payload. A failure is logged and returned; nothing is retried
// here.
func (b *RemoteBackend) Save(ctx context.Context, payload []byte) error {
	unlock := b.cache.lock(b.ref.Key())
	defer unlock()

	return b.push(ctx, payload)
}

// pull fetches and decodes the document and refreshes the cached tag.
// Callers hold the key lock.
func (b *RemoteBackend) pull(ctx context.Context) ([]byte, error) {
	content, err := b.api.GetContent(ctx, b.ref)
	if err != nil {
		return nil, err
	}
	b.cache.setTag(b.ref.Key(), content.VersionTag)

	raw := strings.NewReplacer("\n", "", "\r", "").Replace(content.Content)
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("error decoding remote document: %w", err)
	}
	return data, nil
}

// push encodes and writes payload, reading the document first when no tag is
// cached. Callers hold the key lock.
func (b *RemoteBackend) push(ctx context.Context, payload []byte) error {
	key := b.ref.Key()

	tag, ok := b.cache.Tag(key)
	if !ok {
		if _, err := b.pull(ctx); err != nil {
			b.logger.Debug().Err(err).Str("key", key).Msg("no version tag, writing without precondition")
		}
		tag, _ = b.cache.Tag(key)
	}

	newTag, err := b.api.CreateOrUpdate(ctx, b.ref, base64.StdEncoding.EncodeToString(payload), tag, b.message)
	if err != nil {
		if errors.Is(err, models.ErrRemoteWriteConflict) {
			b.cache.dropTag(key)
		}
		b.logger.Error().Err(err).Str("key", key).Msg("remote push failed")
		return fmt.Errorf("error pushing %s: %w", key, err)
	}

	b.cache.setTag(key, newTag)
	return nil
}
