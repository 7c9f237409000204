package secrets

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"
)

// keyringGet is swapped out by tests.
var keyringGet = keyring.Get

// KeyringStore reads secrets from the desktop keyring (Secret Service on
// Linux, Credential Manager on Windows) via zalando/go-keyring. The D-Bus
// backend has no deadline of its own, so lookups run through bounded.
type KeyringStore struct{}

// NewKeyringStore returns a Store backed by the OS keyring service.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Secret(ctx context.Context, service, account string) ([]byte, error) {
	return bounded(ctx, func() ([]byte, error) {
		secret, err := keyringGet(service, account)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return []byte(secret), nil
	})
}
