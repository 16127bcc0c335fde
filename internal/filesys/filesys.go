// Package filesys provides the small file system abstractions used across
// rigconf. It defines read-side and write-side interfaces and an
// implementation that delegates to the standard library, so everything that
// touches the disk stays unit-testable.
package filesys

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lc/rigconf/internal/log"
)

// ReadFS is the read-only surface the project catalog and parser need.
// It is intentionally smaller than the os package: callers never write
// through it.
type ReadFS interface {
	Stat(string) (fs.FileInfo, error)
	Open(string) (*os.File, error)
	ReadDir(string) ([]fs.DirEntry, error)
	ReadFile(string) ([]byte, error)
}

// BootFS is the tiny surface the daemon bootstrap config loader needs.
type BootFS interface {
	Stat(string) (fs.FileInfo, error)
	MkdirAll(string, os.FileMode) error
	Open(string) (*os.File, error)
}

// FileOps is what the settings store needs for its AtomicWrite helper.
type FileOps interface {
	Open(string) (*os.File, error)
	ReadFile(string) ([]byte, error)
	MkdirAll(string, os.FileMode) error
	CreateTemp(string, string) (*os.File, error)
	Rename(string, string) error
	Remove(string) error
	Chmod(string, os.FileMode) error
}

// OS returns a file system implementation that delegates to the standard
// library. The returned implementation satisfies ReadFS, BootFS and FileOps.
func OS() OsFS {
	return OsFS{}
}

// OsFS implements the package interfaces against the local disk.
type OsFS struct{}

func (OsFS) Stat(p string) (fs.FileInfo, error)                { return os.Stat(p) }
func (OsFS) MkdirAll(p string, m os.FileMode) error            { return os.MkdirAll(p, m) }
func (OsFS) Open(p string) (*os.File, error)                   { return os.Open(p) }
func (OsFS) ReadDir(p string) ([]fs.DirEntry, error)           { return os.ReadDir(p) }
func (OsFS) ReadFile(p string) ([]byte, error)                 { return os.ReadFile(p) }
func (OsFS) CreateTemp(dir, pat string) (*os.File, error)      { return os.CreateTemp(dir, pat) }
func (OsFS) Rename(old, newName string) error                  { return os.Rename(old, newName) }
func (OsFS) Remove(p string) error                             { return os.Remove(p) }
func (OsFS) Chmod(p string, m os.FileMode) error               { return os.Chmod(p, m) }
func (OsFS) WriteFile(p string, b []byte, m os.FileMode) error { return os.WriteFile(p, b, m) }

var (
	_ ReadFS  = OsFS{}
	_ BootFS  = OsFS{}
	_ FileOps = OsFS{}
)

// AtomicWrite atomically persists data to dst with the provided file mode.
// The write is crash-safe on local filesystems:
//
//  1. temp file in the same dir
//  2. fsync(temp) + close
//  3. chmod(temp, perm)  (so rename doesn't carry the 0600 temp default)
//  4. rename(temp, dst)
//  5. fsync(dir)
//
// A reader racing the write sees either the old content or the new content,
// never a partially written file.
func AtomicWrite(ops FileOps, dst string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(dst)
	tmp, err := ops.CreateTemp(dir, ".rigconf-*")
	if err != nil {
		return err
	}

	// discard removes the temp file and hands back the original cause.
	discard := func(cause error) error {
		if rmErr := ops.Remove(tmp.Name()); rmErr != nil {
			log.Warnf("filesys: failed to remove temp file %s: %v", tmp.Name(), rmErr)
		}
		return cause
	}

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return discard(err)
	}
	if err = ops.Chmod(tmp.Name(), perm); err != nil {
		return discard(err)
	}
	if err = ops.Rename(tmp.Name(), dst); err != nil {
		return discard(err)
	}

	// Best effort: persist the rename itself.
	if d, dirErr := ops.Open(dir); dirErr == nil {
		if syncErr := d.Sync(); syncErr != nil {
			log.Warnf("filesys: failed to sync directory %s: %v", dir, syncErr)
		}
		if closeErr := d.Close(); closeErr != nil {
			log.Warnf("filesys: failed to close directory %s: %v", dir, closeErr)
		}
	}
	return nil
}
