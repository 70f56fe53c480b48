// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = RetryPolicy{Attempts: 3, Delay: time.Millisecond}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy, func(ctx context.Context, attempt int) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_CapsAtAttempts(t *testing.T) {
	errBoom := errors.New("boom")
	var attempts []int

	err := Retry(context.Background(), fastPolicy, func(ctx context.Context, attempt int) error {
		attempts = append(attempts, attempt)
		return errBoom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{0, 1, 2}, attempts)
}

func TestRetry_RecoversOnLaterAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy, func(ctx context.Context, attempt int) error {
		calls++
		if attempt < 2 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_StopIsNotRetried(t *testing.T) {
	errFatal := errors.New("fatal")
	calls := 0

	err := Retry(context.Background(), fastPolicy, func(ctx context.Context, attempt int) error {
		calls++
		return Stop(errFatal)
	})

	assert.ErrorIs(t, err, errFatal)
	assert.NotErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 1, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	err := Retry(ctx, RetryPolicy{Attempts: 3, Delay: time.Hour}, func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), RetryPolicy{}, func(ctx context.Context, attempt int) error {
		calls++
		return errors.New("x")
	})

	assert.Equal(t, 1, calls)
}
