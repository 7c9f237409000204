package secrets

import (
	"bytes"
	"context"
	"os/exec"
)

// execCommand is swapped out by tests.
var execCommand = exec.CommandContext

// KeychainStore reads generic passwords from the macOS keychain through the
// `security` tool, the same way the browser vendors document it. A denied or
// missing item surfaces as ErrNotFound.
type KeychainStore struct{}

// NewKeychainStore returns a Store backed by `security find-generic-password`.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{}
}

// Secret runs `security find-generic-password -s service -a account -w` and
// returns the password with the trailing newline removed.
func (s *KeychainStore) Secret(ctx context.Context, service, account string) ([]byte, error) {
	cmd := execCommand(ctx, "security", "find-generic-password", "-s", service, "-a", account, "-w")
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, ErrNotFound
	}
	return bytes.TrimRight(out, "\n"), nil
}
