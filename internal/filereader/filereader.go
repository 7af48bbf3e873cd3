// Package filereader reads report files as text, tolerating the byte
// order marks and UTF-16 encodings some toolchains emit.
package filereader

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/coverlay/coverlay/internal/filesystem"
)

// Reader is the text-read collaborator consumed by the rebuild
// pipeline. A failed read skips that one report file only.
type Reader interface {
	ReadText(path string) (string, error)
}

// ChainReader reads directly from the OS first and falls back to an
// injected Filesystem when that fails. The fallback covers access
// layers where a plain os.ReadFile does not work (virtual or remote
// filesystems surfaced through a Filesystem implementation).
type ChainReader struct {
	fallback filesystem.Filesystem
	log      *slog.Logger
}

func New(fallback filesystem.Filesystem, log *slog.Logger) *ChainReader {
	return &ChainReader{fallback: fallback, log: log}
}

func (r *ChainReader) ReadText(path string) (string, error) {
	data, directErr := os.ReadFile(path)
	if directErr != nil {
		if r.fallback == nil {
			return "", directErr
		}
		r.log.Debug("direct read failed, trying filesystem fallback", "path", path, "error", directErr)
		var fallbackErr error
		data, fallbackErr = r.fallback.ReadFile(path)
		if fallbackErr != nil {
			return "", fmt.Errorf("read %s: direct: %v, fallback: %w", path, directErr, fallbackErr)
		}
	}
	return decode(data)
}

// decode converts raw report bytes to UTF-8 text. A leading BOM picks
// the source encoding (UTF-8, UTF-16LE or UTF-16BE); without one the
// bytes are taken as UTF-8.
func decode(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode report text: %w", err)
	}
	return string(text), nil
}
