package secrets

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/zalando/go-keyring"
)

func TestKeyringStore_Found(t *testing.T) {
	orig := keyringGet
	defer func() { keyringGet = orig }()
	keyringGet = func(service, account string) (string, error) {
		if service != "Chrome Safe Storage" || account != "Chrome" {
			t.Errorf("unexpected lookup: %s / %s", service, account)
		}
		return "hunter2", nil
	}

	got, err := NewKeyringStore().Secret(context.Background(), "Chrome Safe Storage", "Chrome")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if string(got) != "hunter2" {
		t.Errorf("Secret = %q", got)
	}
}

func TestKeyringStore_NotFound(t *testing.T) {
	orig := keyringGet
	defer func() { keyringGet = orig }()
	keyringGet = func(service, account string) (string, error) {
		return "", keyring.ErrNotFound
	}

	_, err := NewKeyringStore().Secret(context.Background(), "Nope Safe Storage", "Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestKeyringStore_Timeout(t *testing.T) {
	orig := keyringGet
	defer func() { keyringGet = orig }()
	block := make(chan struct{})
	defer close(block)
	keyringGet = func(service, account string) (string, error) {
		<-block
		return "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewKeyringStore().Secret(ctx, "Slow Safe Storage", "Slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestBounded_ReturnsResult(t *testing.T) {
	got, err := bounded(context.Background(), func() ([]byte, error) {
		return []byte("ok"), nil
	})
	if err != nil || string(got) != "ok" {
		t.Errorf("bounded = %q, %v", got, err)
	}
}

func TestKeychainStore_TrimsTrailingNewline(t *testing.T) {
	orig := execCommand
	defer func() { execCommand = orig }()
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if name != "security" || args[0] != "find-generic-password" {
			t.Errorf("unexpected command: %s %v", name, args)
		}
		return exec.CommandContext(ctx, "echo", "hunter2")
	}

	got, err := NewKeychainStore().Secret(context.Background(), "Chrome Safe Storage", "Chrome")
	if err != nil {
		t.Fatalf("Secret: %v", err)
	}
	if string(got) != "hunter2" {
		t.Errorf("Secret = %q", got)
	}
}

func TestKeychainStore_MissingItem(t *testing.T) {
	orig := execCommand
	defer func() { execCommand = orig }()
	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}

	_, err := NewKeychainStore().Secret(context.Background(), "Nope Safe Storage", "Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
