// Package secrets retrieves platform secret material for browser profiles.
// Every backend is an opaque call that hands back a byte string or fails;
// all calls are bounded by the caller's context so a stalled keychain or
// D-Bus service costs one source, not the whole run.
package secrets

import (
	"context"
	"errors"
)

// ErrNotFound reports that the secret store has no entry for the requested
// service/account pair. Callers treat it as "no key for this source".
var ErrNotFound = errors.New("secret not found")

// Store looks up one secret. Implementations must honor ctx cancellation.
type Store interface {
	Secret(ctx context.Context, service, account string) ([]byte, error)
}

// callResult carries a backend's answer across the timeout boundary.
type callResult struct {
	data []byte
	err  error
}

// bounded runs fn on its own goroutine and abandons it when ctx expires.
// Backends like the Secret Service D-Bus API provide no native deadline, so
// the goroutine may linger; the run does not.
func bounded(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	ch := make(chan callResult, 1)
	go func() {
		data, err := fn()
		ch <- callResult{data: data, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.data, res.err
	}
}
