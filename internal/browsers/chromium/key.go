package chromium

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/warpdl/cookex/internal/crypt"
	"github.com/warpdl/cookex/internal/platform"
	"github.com/warpdl/cookex/internal/secrets"
)

// safeStorageCreds maps a browser name to its keychain service/account pair.
// Vendors that share a storage item (beta channels, Opera GX) point at the
// stable entry.
var safeStorageCreds = map[string][2]string{
	"Chrome":        {"Chrome Safe Storage", "Chrome"},
	"Chrome Beta":   {"Chrome Safe Storage", "Chrome"},
	"Chrome Canary": {"Chrome Safe Storage", "Chrome"},
	"Brave":         {"Brave Safe Storage", "Brave"},
	"Brave Beta":    {"Brave Safe Storage", "Brave"},
	"Edge":          {"Microsoft Edge Safe Storage", "Microsoft Edge"},
	"Edge Beta":     {"Microsoft Edge Safe Storage", "Microsoft Edge"},
	"Arc":           {"Arc Safe Storage", "Arc"},
	"Opera":         {"Opera Safe Storage", "Opera"},
	"Opera GX":      {"Opera Safe Storage", "Opera"},
	"Vivaldi":       {"Vivaldi Safe Storage", "Vivaldi"},
	"Chromium":      {"Chromium Safe Storage", "Chromium"},
	"Comet":         {"Comet Safe Storage", "Comet"},
	"Sidekick":      {"Sidekick Safe Storage", "Sidekick"},
	"Yandex":        {"Yandex Safe Storage", "Yandex"},
	"Wavebox":       {"Wavebox Safe Storage", "Wavebox"},
	"Orion":         {"Orion Safe Storage", "Orion"},
}

// safeStorage returns the keychain service/account pair for a browser,
// falling back to the "<Name> Safe Storage" convention for vendors outside
// the map.
func safeStorage(browser string) (service, account string) {
	if creds, ok := safeStorageCreds[browser]; ok {
		return creds[0], creds[1]
	}
	return browser + " Safe Storage", browser
}

// dpapiPrefix precedes the DPAPI-wrapped key inside Local State.
var dpapiPrefix = []byte("DPAPI")

// localState is the subset of the browser's Local State JSON we read.
type localState struct {
	OSCrypt struct {
		EncryptedKey string `json:"encrypted_key"`
	} `json:"os_crypt"`
}

// localStateKey reads the profile key from <basePath>/Local State: the
// os_crypt.encrypted_key value, base64-decoded, DPAPI prefix stripped, then
// unwrapped by the protection API.
func localStateKey(fs afero.Fs, basePath string, unprotect crypt.UnprotectFunc) ([]byte, error) {
	path := filepath.Join(basePath, "Local State")
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read Local State: %w", err)
	}
	var state localState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("cannot parse Local State: %w", err)
	}
	if state.OSCrypt.EncryptedKey == "" {
		return nil, errors.New("Local State has no os_crypt.encrypted_key")
	}
	wrapped, err := base64.StdEncoding.DecodeString(state.OSCrypt.EncryptedKey)
	if err != nil {
		return nil, fmt.Errorf("cannot decode encrypted_key: %w", err)
	}
	if len(wrapped) <= len(dpapiPrefix) {
		return nil, errors.New("encrypted_key is too short")
	}
	wrapped = wrapped[len(dpapiPrefix):]
	if unprotect == nil {
		return nil, errors.New("no protection API available for encrypted_key")
	}
	key, err := unprotect(wrapped)
	if err != nil {
		return nil, fmt.Errorf("cannot unwrap encrypted_key: %w", err)
	}
	return key, nil
}

// profileKey obtains the decryption key for one profile. On darwin and linux
// the platform secret is stretched; on windows the Local State key is used
// directly. A missing linux secret is not an error, the hardcoded fallback
// covers profiles created without a keyring.
func (s *Source) profileKey(ctx context.Context) ([]byte, error) {
	switch s.Platform {
	case platform.Darwin:
		service, account := safeStorage(s.Profile.Browser)
		secret, err := s.Secrets.Secret(ctx, service, account)
		if err != nil {
			return nil, fmt.Errorf("no safe storage secret for %s: %w", s.Profile.Browser, err)
		}
		return crypt.ProfileKey(s.Platform, secret), nil
	case platform.Windows:
		return localStateKey(s.FS, s.Profile.BasePath, s.Unprotect)
	case platform.Linux:
		service, account := safeStorage(s.Profile.Browser)
		secret, err := s.Secrets.Secret(ctx, service, account)
		if err != nil && !errors.Is(err, secrets.ErrNotFound) {
			return nil, fmt.Errorf("keyring lookup for %s: %w", s.Profile.Browser, err)
		}
		return crypt.ProfileKey(s.Platform, secret), nil
	}
	return nil, fmt.Errorf("unsupported platform %s", s.Platform)
}
