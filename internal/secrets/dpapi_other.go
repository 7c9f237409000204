//go:build !windows

package secrets

import "errors"

// Unprotect is only backed by DPAPI on Windows.
func Unprotect(data []byte) ([]byte, error) {
	return nil, errors.New("platform unprotect not supported on this OS")
}
