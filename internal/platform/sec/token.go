// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package sec

import (
	"crypto/rand"
	"fmt"
)

// SessionIDLength is the number of characters in a generated session id.
const SessionIDLength = 60

const sessionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSessionID returns a random [A-Za-z0-9] string of [SessionIDLength]
// characters (~357 bits of entropy).
func GenerateSessionID() (string, error) {
	return GenerateSecureToken(SessionIDLength)
}

// GenerateSecureToken returns a random alphanumeric string of n characters.
//
// Bytes at or above the largest multiple of the alphabet size are discarded
// so every character is uniformly distributed.
func GenerateSecureToken(n int) (string, error) {
	const limit = 256 - (256 % len(sessionAlphabet))

	out := make([]byte, 0, n)
	buffer := make([]byte, n+n/4)

	for len(out) < n {
		if _, err := rand.Read(buffer); err != nil {
			return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
		}
		for _, b := range buffer {
			if int(b) >= limit {
				continue
			}
			out = append(out, sessionAlphabet[int(b)%len(sessionAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}
