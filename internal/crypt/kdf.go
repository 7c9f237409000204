package crypt

import (
	"crypto/sha1"

	"golang.org/x/crypto/pbkdf2"

	"github.com/warpdl/cookex/internal/platform"
)

// Chromium derives its cookie key from the safe-storage secret with
// PBKDF2-SHA1. The salt and output length are fixed across platforms; only
// the iteration count differs (macOS uses 1003, Linux deliberately uses 1).
const (
	kdfSalt   = "saltysalt"
	KeyLength = 16

	darwinIterations = 1003
	linuxIterations  = 1
)

// linuxFallbackSecret is the hardcoded secret Chromium uses on Linux when no
// keyring backend protected the profile.
const linuxFallbackSecret = "peanuts"

// DeriveKey stretches a raw safe-storage secret into a fixed-length AES key.
// Same inputs always produce the same key.
func DeriveKey(secret, salt []byte, iterations, length int) []byte {
	return pbkdf2.Key(secret, salt, iterations, length, sha1.New)
}

// ProfileKey derives the cookie key for a browser profile on p from the
// platform secret. On Linux an empty secret selects the hardcoded fallback.
// Windows profiles do not stretch their key (the DPAPI-unwrapped Local State
// key is used directly), so ProfileKey returns secret unchanged there.
func ProfileKey(p platform.Platform, secret []byte) []byte {
	switch p {
	case platform.Darwin:
		return DeriveKey(secret, []byte(kdfSalt), darwinIterations, KeyLength)
	case platform.Linux:
		if len(secret) == 0 {
			secret = []byte(linuxFallbackSecret)
		}
		return DeriveKey(secret, []byte(kdfSalt), linuxIterations, KeyLength)
	}
	return secret
}
