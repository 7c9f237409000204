// Package firefox discovers Firefox profiles and reads their cookies.sqlite
// stores. Values are kept in the clear by the browser, so no decryption is
// involved; only the store format and epoch differ from the Chromium family.
package firefox

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/warpdl/cookex/internal/export"
	"github.com/warpdl/cookex/internal/platform"
	"github.com/warpdl/cookex/internal/snapshot"
	"github.com/warpdl/cookex/internal/timeconv"
	"github.com/warpdl/cookex/pkg/logger"
)

// selectCookies projects moz_cookies. Expiry is Unix seconds.
const selectCookies = `
	SELECT host, name, value, path, expiry, isSecure, isHttpOnly, sameSite
	FROM moz_cookies`

// DefaultProfileBase returns the directory holding Firefox profiles on p.
func DefaultProfileBase(p platform.Platform) string {
	switch p {
	case platform.Darwin:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")
		}
	case platform.Windows:
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Mozilla", "Firefox", "Profiles")
		}
	case platform.Linux:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".mozilla", "firefox")
		}
	}
	return ""
}

// Discover returns the cookie store paths of every profile under profileBase.
func Discover(fs afero.Fs, profileBase string) []string {
	if profileBase == "" {
		return nil
	}
	entries, err := afero.ReadDir(fs, profileBase)
	if err != nil {
		return nil
	}
	var stores []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		store := filepath.Join(profileBase, entry.Name(), "cookies.sqlite")
		if _, err := fs.Stat(store); err == nil {
			stores = append(stores, store)
		}
	}
	return stores
}

// Source reads one Firefox profile's cookie store. It implements
// export.Source.
type Source struct {
	StorePath string
	FS        afero.Fs
	Times     *timeconv.Normalizer
	Log       logger.Logger
}

// New assembles a Source for the store at storePath.
func New(storePath string, fs afero.Fs, times *timeconv.Normalizer, log logger.Logger) *Source {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Source{StorePath: storePath, FS: fs, Times: times, Log: log}
}

func (s *Source) Name() string { return "Firefox" }

// Records snapshots the store and drains moz_cookies. Unreadable rows are
// skipped; store-level failures surface as errors.
func (s *Source) Records(ctx context.Context) ([]export.Record, error) {
	copied, cleanup, err := snapshot.Take(s.FS, s.StorePath)
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
		return nil, fmt.Errorf("cannot query moz_cookies: %w", err)
	}
	defer rows.Close()

	var records []export.Record
	for rows.Next() {
		var (
			host, name, value, path string
			expiry                  int64
			isSecure, isHTTPOnly    int
			sameSite                int
		)
		if err := rows.Scan(&host, &name, &value, &path, &expiry, &isSecure, &isHTTPOnly, &sameSite); err != nil {
			s.Log.Warning("Firefox: skipping unreadable cookie row: %s", err)
			continue
		}
		records = append(records, export.Record{
			Source:   "Firefox",
			Domain:   host,
			Name:     name,
			Value:    value,
			Path:     path,
			Expires:  s.Times.Unix(expiry),
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
