// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// ErrMalformedHash is returned when a stored hash is not a PHC argon2id string.
var ErrMalformedHash = errors.New("sec: malformed password hash")

// Upper bounds accepted from a stored hash. Anything larger is treated as
// malformed rather than allowed to pin a worker or exhaust memory.
const (
	maxHashTime      = 16
	maxHashMemoryKiB = 256 * 1024
	maxHashKeyLen    = 128
)

// KDFParams configures Argon2id.
type KDFParams struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
	KeyLen      uint32
	SaltLen     int
}

// DefaultKDFParams returns the OWASP-recommended Argon2id baseline
// (19 MiB, 2 passes, 1 lane), which also reads hashes produced by the
// previous backend.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:        2,
		MemoryKiB:   19 * 1024,
		Parallelism: 1,
		KeyLen:      32,
		SaltLen:     16,
	}
}

// KDF hashes and verifies passwords on a bounded pool of goroutines so a
// burst of logins cannot occupy every P with Argon2 work.
type KDF struct {
	params KDFParams
	slots  *semaphore.Weighted
}

// NewKDF creates a KDF with the given number of concurrent workers.
// A non-positive worker count uses [runtime.NumCPU].
func NewKDF(workers int, params KDFParams) *KDF {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &KDF{
		params: params,
		slots:  semaphore.NewWeighted(int64(workers)),
	}
}

// Hash derives a PHC-encoded argon2id hash for password.
func (kdf *KDF) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, kdf.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to read salt: %w", err)
	}

	var key []byte
	err := kdf.offload(ctx, func() {
		key = argon2.IDKey([]byte(password), salt, kdf.params.Time, kdf.params.MemoryKiB, kdf.params.Parallelism, kdf.params.KeyLen)
	})
	if err != nil {
		return "", err
	}

	return encodeHash(kdf.params, salt, key), nil
}

// Verify reports whether password matches encoded using a constant-time comparison.
//
// The parameters embedded in encoded win over the KDF defaults so older
// hashes keep verifying after a parameter bump.
func (kdf *KDF) Verify(ctx context.Context, password, encoded string) (bool, error) {
	params, salt, expected, err := decodeHash(encoded)
	if err != nil {
		return false, err
	}

	var key []byte
	err = kdf.offload(ctx, func() {
		key = argon2.IDKey([]byte(password), salt, params.Time, params.MemoryKiB, params.Parallelism, params.KeyLen)
	})
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

// offload runs work on its own goroutine once a worker slot is free.
func (kdf *KDF) offload(ctx context.Context, work func()) error {
	if err := kdf.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("sec: kdf pool: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		defer kdf.slots.Release(1)
		defer func() {
			if recovered := recover(); recovered != nil {
				done <- fmt.Errorf("sec: kdf worker panic: %v", recovered)
				return
			}
			done <- nil
		}()
		work()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("sec: kdf pool: %w", ctx.Err())
	}
}

// # PHC String Format

func encodeHash(params KDFParams, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		params.MemoryKiB, params.Time, params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeHash(encoded string) (KDFParams, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	var params KDFParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Time, &params.Parallelism); err != nil {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	params.SaltLen = len(salt)
	params.KeyLen = uint32(len(key))

	// argon2.IDKey panics on zero rounds or zero lanes.
	if params.Time == 0 || params.Time > maxHashTime ||
		params.Parallelism == 0 ||
		params.MemoryKiB < 8*uint32(params.Parallelism) || params.MemoryKiB > maxHashMemoryKiB ||
		params.KeyLen > maxHashKeyLen {
		return KDFParams{}, nil, nil, ErrMalformedHash
	}

	return params, salt, key, nil
}
