package crypt

import (
	"bytes"
	"testing"

	"github.com/warpdl/cookex/internal/platform"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey([]byte("hunter2"), []byte(kdfSalt), darwinIterations, KeyLength)
	b := DeriveKey([]byte("hunter2"), []byte(kdfSalt), darwinIterations, KeyLength)
	if !bytes.Equal(a, b) {
		t.Error("same inputs produced different keys")
	}
	if len(a) != KeyLength {
		t.Errorf("key length = %d, want %d", len(a), KeyLength)
	}
}

func TestDeriveKey_DistinctSecrets(t *testing.T) {
	a := DeriveKey([]byte("hunter2"), []byte(kdfSalt), darwinIterations, KeyLength)
	b := DeriveKey([]byte("hunter3"), []byte(kdfSalt), darwinIterations, KeyLength)
	if bytes.Equal(a, b) {
		t.Error("different secrets produced the same key")
	}
}

func TestProfileKey_Platforms(t *testing.T) {
	secret := []byte("safe storage secret")

	darwin := ProfileKey(platform.Darwin, secret)
	linux := ProfileKey(platform.Linux, secret)
	if bytes.Equal(darwin, linux) {
		t.Error("darwin and linux presets should disagree on iteration count")
	}
	if len(darwin) != KeyLength || len(linux) != KeyLength {
		t.Errorf("derived key lengths = %d, %d, want %d", len(darwin), len(linux), KeyLength)
	}

	// Windows uses the DPAPI-unwrapped key as-is.
	win := ProfileKey(platform.Windows, secret)
	if !bytes.Equal(win, secret) {
		t.Error("windows profile key should pass the secret through unchanged")
	}
}

func TestProfileKey_LinuxFallback(t *testing.T) {
	fromEmpty := ProfileKey(platform.Linux, nil)
	fromPeanuts := ProfileKey(platform.Linux, []byte(linuxFallbackSecret))
	if !bytes.Equal(fromEmpty, fromPeanuts) {
		t.Error("empty linux secret should derive the hardcoded fallback key")
	}
}
