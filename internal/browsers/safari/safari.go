// Package safari reads the macOS Cookies.binarycookies store. The file needs
// Full Disk Access; without it the stat fails and the source is skipped.
package safari

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/warpdl/cookex/internal/binarycookies"
	"github.com/warpdl/cookex/internal/export"
	"github.com/warpdl/cookex/internal/snapshot"
	"github.com/warpdl/cookex/internal/timeconv"
	"github.com/warpdl/cookex/pkg/logger"
)

// DefaultStorePath returns the fixed Safari cookie store location.
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "Library", "Cookies", "Cookies.binarycookies")
}

// Source reads the Safari store. It implements export.Source.
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

func (s *Source) Name() string { return "Safari" }

// Records snapshots the store and decodes every page. A truncated file still
// yields the records decoded before the cut; only an unreadable or
// unrecognized file fails the source.
func (s *Source) Records(ctx context.Context) ([]export.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	copied, cleanup, err := snapshot.Take(s.FS, s.StorePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	f, err := s.FS.Open(copied)
	if err != nil {
		return nil, fmt.Errorf("cannot open cookie store: %w", err)
	}
	defer f.Close()

	cookies, err := binarycookies.Parse(f)
	if err != nil {
		if len(cookies) == 0 {
			return nil, err
		}
		s.Log.Warning("Safari: store truncated, keeping %d decoded cookies: %s", len(cookies), err)
	}

	records := make([]export.Record, 0, len(cookies))
	for _, c := range cookies {
		records = append(records, export.Record{
			Source:   "Safari",
			Domain:   c.Domain,
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Expires:  s.Times.Mac(c.Expiry),
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
			SameSite: 0,
		})
	}
	return records, nil
}

var _ export.Source = (*Source)(nil)
