// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned by [TokenExpiry] when the token is a JWT without an
// exp claim.
var ErrNoExpiry = errors.New("token carries no expiry")

// TokenExpiry reads the exp claim of a refresh token without verifying its
// signature. The signing key belongs to the remote side; the fleet only needs
// to know whether presenting the token is pointless.
//
// Returns an error if the token is not a JWT or has no exp claim.
func TokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}

// TokenUsable reports whether a stored refresh token is worth presenting at
// now. Opaque (non-JWT) tokens and JWTs without exp are always usable.
func TokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}

	return now.Before(exp)
}
