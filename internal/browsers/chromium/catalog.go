// Package chromium discovers Chromium-family cookie stores, obtains their
// profile keys and reads their SQLite databases into export records.
package chromium

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/warpdl/cookex/internal/platform"
)

// catalogEntry maps a vendor data directory (relative to a platform base
// path) to the browser's display name.
type catalogEntry struct {
	// DataDir is slash-separated and converted per platform before probing.
	DataDir string
	Name    string
}

// knownBrowsers lists every Chromium-family vendor directory worth probing.
// Directories for foreign platforms simply never exist, so the whole list is
// probed everywhere.
var knownBrowsers = []catalogEntry{
	{"Google/Chrome", "Chrome"},
	{"Google/Chrome Beta", "Chrome Beta"},
	{"Google/Chrome Canary", "Chrome Canary"},
	{"BraveSoftware/Brave-Browser", "Brave"},
	{"BraveSoftware/Brave-Browser-Beta", "Brave Beta"},
	{"Microsoft Edge", "Edge"},
	{"Microsoft Edge Beta", "Edge Beta"},
	{"Microsoft/Edge", "Edge"},
	{"Arc/User Data", "Arc"},
	{"com.operasoftware.Opera", "Opera"},
	{"Opera Software/Opera Stable", "Opera"},
	{"Opera Software/Opera GX Stable", "Opera GX"},
	{"Vivaldi", "Vivaldi"},
	{"Chromium", "Chromium"},
	{"Coccoc/Browser", "Coccoc"},
	{"Yandex/YandexBrowser", "Yandex"},
	{"Sidekick", "Sidekick"},
	{"Comet", "Comet"},
	{"Orion", "Orion"},
	{"Wavebox", "Wavebox"},
	{"google-chrome", "Chrome"},
	{"brave-browser", "Brave"},
	{"microsoft-edge", "Edge"},
	{"chromium", "Chromium"},
}

// cookieSubpaths are the store locations tried under each vendor directory,
// in order. Newer releases moved the store under Network/.
var cookieSubpaths = []string{
	"Default/Cookies",
	"Default/Network/Cookies",
	"Cookies",
}

// Profile is one discovered browser installation with a cookie store on disk.
type Profile struct {
	Browser string
	// CookiePath is the live store file; read it through a snapshot.
	CookiePath string
	// BasePath is the vendor data directory, where Local State lives.
	BasePath string
}

// DefaultBasePaths returns the directories browsers install their data under
// on p. Missing environment variables yield fewer paths, never an error.
func DefaultBasePaths(p platform.Platform) []string {
	switch p {
	case platform.Darwin:
		if home, err := os.UserHomeDir(); err == nil {
			return []string{filepath.Join(home, "Library", "Application Support")}
		}
	case platform.Windows:
		var paths []string
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				paths = append(paths, dir)
			}
		}
		return paths
	case platform.Linux:
		if home, err := os.UserHomeDir(); err == nil {
			return []string{
				filepath.Join(home, ".config"),
				filepath.Join(home, ".var", "app"),
				filepath.Join(home, "snap"),
			}
		}
	}
	return nil
}

// Discover probes every known vendor directory under the given base paths and
// returns the profiles whose cookie store exists. For each vendor directory
// the first matching store subpath wins.
func Discover(fs afero.Fs, basePaths []string) []Profile {
	var profiles []Profile
	for _, base := range basePaths {
		if _, err := fs.Stat(base); err != nil {
			continue
		}
		for _, entry := range knownBrowsers {
			dataDir := filepath.Join(base, filepath.FromSlash(entry.DataDir))
			for _, sub := range cookieSubpaths {
				cookiePath := filepath.Join(dataDir, filepath.FromSlash(sub))
				if _, err := fs.Stat(cookiePath); err != nil {
					continue
				}
				profiles = append(profiles, Profile{
					Browser:    entry.Name,
					CookiePath: cookiePath,
					BasePath:   dataDir,
				})
				break
			}
		}
	}
	return profiles
}
