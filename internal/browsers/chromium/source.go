package chromium

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/warpdl/cookex/internal/crypt"
	"github.com/warpdl/cookex/internal/export"
	"github.com/warpdl/cookex/internal/platform"
	"github.com/warpdl/cookex/internal/secrets"
	"github.com/warpdl/cookex/internal/snapshot"
	"github.com/warpdl/cookex/internal/timeconv"
	"github.com/warpdl/cookex/pkg/logger"
)

// selectCookies projects the cookies table including the samesite column.
const selectCookies = `
	SELECT host_key, name, encrypted_value, path, expires_utc,
	       is_secure, is_httponly, samesite
	FROM cookies`

// selectCookiesNoSameSite covers older schemas without a samesite column.
const selectCookiesNoSameSite = `
	SELECT host_key, name, encrypted_value, path, expires_utc,
	       is_secure, is_httponly, 0
	FROM cookies`

// Source reads one discovered Chromium profile. It implements export.Source.
type Source struct {
	Profile  Profile
	FS       afero.Fs
	Platform platform.Platform
	// Secrets resolves the safe storage secret on darwin and linux.
	Secrets secrets.Store
	// Unprotect unwraps the Local State key and Legacy values on windows.
	Unprotect crypt.UnprotectFunc
	Times     *timeconv.Normalizer
	Log       logger.Logger
}

// New assembles a Source for one profile with the run-wide collaborators.
func New(profile Profile, fs afero.Fs, p platform.Platform, store secrets.Store, unprotect crypt.UnprotectFunc, times *timeconv.Normalizer, log logger.Logger) *Source {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Source{
		Profile:   profile,
		FS:        fs,
		Platform:  p,
		Secrets:   store,
		Unprotect: unprotect,
		Times:     times,
		Log:       log,
	}
}

func (s *Source) Name() string { return s.Profile.Browser }

// Records snapshots the store, derives the profile key and drains the cookies
// table. A row that cannot be scanned is skipped; a value that cannot be
// decrypted becomes an empty value. Only store-level failures (no key, no
// readable database) surface as errors.
func (s *Source) Records(ctx context.Context) ([]export.Record, error) {
	key, err := s.profileKey(ctx)
	if err != nil {
		return nil, err
	}
	dec := &crypt.Decryptor{Key: key, Platform: s.Platform, Unprotect: s.Unprotect}

	copied, cleanup, err := snapshot.Take(s.FS, s.Profile.CookiePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", copied))
	if err != nil {
		return nil, fmt.Errorf("cannot open cookie database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectCookies)
	if err != nil {
		rows, err = db.QueryContext(ctx, selectCookiesNoSameSite)
		if err != nil {
			return nil, fmt.Errorf("cannot query cookies: %w", err)
		}
	}
	defer rows.Close()

	var records []export.Record
	for rows.Next() {
		var (
			host, name, path     string
			encValue             []byte
			expiresUTC           int64
			isSecure, isHTTPOnly int
			sameSite             int
		)
		if err := rows.Scan(&host, &name, &encValue, &path, &expiresUTC, &isSecure, &isHTTPOnly, &sameSite); err != nil {
			s.Log.Warning("%s: skipping unreadable cookie row: %s", s.Profile.Browser, err)
			continue
		}
		value, err := dec.Open(encValue)
		if err != nil {
			s.Log.Debug("%s: cannot decrypt value for %s%s", s.Profile.Browser, host, path)
			value = ""
		}
		records = append(records, export.Record{
			Source:   s.Profile.Browser,
			Domain:   host,
			Name:     name,
			Value:    value,
			Path:     path,
			Expires:  s.Times.Chromium(expiresUTC),
			Secure:   isSecure != 0,
			HTTPOnly: isHTTPOnly != 0,
			SameSite: sameSite,
		})
	}
	if err := rows.Err(); err != nil {
		return records, fmt.Errorf("cannot iterate cookie rows: %w", err)
	}
	return records, nil
}

var _ export.Source = (*Source)(nil)
