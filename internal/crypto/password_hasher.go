// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The chronos Authors

// Package crypto holds the password hashing primitives used by the
// authentication services.
package crypto

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/michaelhessen/chronos/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// maxBcryptInput is the longest plaintext bcrypt accepts.
const maxBcryptInput = 72

// bcryptHasher is the bcrypt implementation of [PasswordHasher].
type bcryptHasher struct {
	// cost is the bcrypt work factor applied by Hash. Verify uses whatever
	// cost is embedded in the digest.
	cost int

	// workers bounds how many hash or verify calls run at once, so a burst of
	// logins cannot occupy every CPU.
	workers *semaphore.Weighted

	// observer receives the duration of every bcrypt computation. May be nil.
	observer DurationObserver
}

// DurationObserver is notified how long each hash ("hash") or verify
// ("verify") computation took, excluding time spent waiting for a worker.
type DurationObserver interface {
	ObserveHash(op string, d time.Duration)
}

// Option configures a hasher built by [NewPasswordHasher].
type Option func(*bcryptHasher)

// WithObserver reports bcrypt timings to o.
func WithObserver(o DurationObserver) Option {
	return func(h *bcryptHasher) {
		h.observer = o
	}
}

// NewPasswordHasher constructs a bcrypt [PasswordHasher] with the work factor
// and pool size from cfg. Callers are expected to pass a validated config.
func NewPasswordHasher(cfg config.Hasher, opts ...Option) PasswordHasher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	h := &bcryptHasher{
		cost:    cfg.Cost,
		workers: semaphore.NewWeighted(int64(workers)),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Hash implements [PasswordHasher]. It waits for a free worker slot, giving
// up with ctx.Err() when ctx is done first.
func (h *bcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting for hash worker: %w", err)
	}
	defer h.workers.Release(1)

	defer h.observe("hash", time.Now())
	digest, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher].
func (h *bcryptHasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.workers.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("waiting for hash worker: %w", err)
	}
	defer h.workers.Release(1)

	defer h.observe("verify", time.Now())
	err := bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, &HashFormatError{Err: err}
	}
}

func (h *bcryptHasher) observe(op string, start time.Time) {
	if h.observer != nil {
		h.observer.ObserveHash(op, time.Since(start))
	}
}

// bcryptInput replaces a plaintext longer than bcrypt accepts with the
// base64 of its SHA-256, so every byte of a long password counts.
func bcryptInput(plaintext string) []byte {
	if len(plaintext) <= maxBcryptInput {
		return []byte(plaintext)
	}

	sum := sha256.Sum256([]byte(plaintext))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
