package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem abstracts the handful of filesystem operations the
// pipeline needs, so tests can fake them and alternative access layers
// (remote or virtual filesystems) can be slotted in as the fallback
// read strategy.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	Abs(path string) (string, error)
	Getwd() (string, error)
}

// DefaultFS implements Filesystem with the standard os and filepath
// packages — the real filesystem of the host.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (DefaultFS) Getwd() (string, error) {
	return os.Getwd()
}
