// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrAttemptsExhausted wraps the last error once every attempt failed.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// RetryPolicy is a fixed-backoff bounded retry: Attempts calls in total,
// Delay between them.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy is the convention used by every retried network step:
// three attempts, ten seconds apart.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 10 * time.Second}

// Stop marks err as permanent: Retry returns it immediately without further
// attempts.
func Stop(err error) error {
	return &permanentError{err: err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Retry calls op until it succeeds, returns a [Stop] error, ctx is cancelled,
// or the policy runs out of attempts. op receives the 0-based attempt number.
//
// On exhaustion the returned error wraps both [ErrAttemptsExhausted] and the
// last error reported by op.
func Retry(ctx context.Context, p RetryPolicy, op func(ctx context.Context, attempt int) error) error {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Delay <= 0 {
		p.Delay = time.Millisecond
	}

	var (
		attempt int
		lastErr error
	)
	backoff := retry.WithMaxRetries(uint64(p.Attempts-1), retry.NewConstant(p.Delay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		current := attempt
		attempt++

		err := op(ctx, current)
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		return retry.RetryableError(err)
	})
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}

	var perm *permanentError
	if errors.As(lastErr, &perm) {
		return perm.err
	}

	return fmt.Errorf("%w after %d attempt(s): %w", ErrAttemptsExhausted, attempt, lastErr)
}
