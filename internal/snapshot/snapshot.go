// Package snapshot produces private, readable copies of live browser store
// files. Browsers keep their stores open and locked; reading a copy avoids
// both lock contention and mid-write tears.
package snapshot

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// sqliteCompanions are copied best-effort alongside a SQLite store so an
// uncommitted write-ahead log is not lost.
var sqliteCompanions = []string{"-wal", "-shm"}

// Take copies the store file at srcPath (and its SQLite companion files, if
// any exist) into a fresh temp directory on fs. It returns the path of the
// copied store and a cleanup function that removes the temp directory; the
// caller must invoke cleanup when done.
func Take(fs afero.Fs, srcPath string) (copied string, cleanup func(), err error) {
	info, err := fs.Stat(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("store file not found: %s", srcPath)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory, expected a store file", srcPath)
	}
	if info.Size() == 0 {
		return "", nil, fmt.Errorf("store file at %s is empty", srcPath)
	}

	tempDir, err := afero.TempDir(fs, "", "cookex-snapshot-")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp directory: %w", err)
	}
	cleanup = func() {
		_ = fs.RemoveAll(tempDir)
	}

	base := filepath.Base(srcPath)
	copied = filepath.Join(tempDir, base)
	if err := copyFile(fs, srcPath, copied); err != nil {
		cleanup()
		return "", nil, err
	}

	for _, suffix := range sqliteCompanions {
		companion := srcPath + suffix
		if _, err := fs.Stat(companion); err == nil {
			_ = copyFile(fs, companion, copied+suffix)
		}
	}

	return copied, cleanup, nil
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()

	out, err := fs.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return nil
}
