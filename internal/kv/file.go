package kv

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileMedium stores each key as a single file inside a data directory.
// Keys are escaped so that slashes and other path characters are safe.
type FileMedium struct {
	dir string
}

// NewFileMedium creates the data directory if needed and returns a medium
// rooted at it.
func NewFileMedium(dir string) (*FileMedium, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

func (f *FileMedium) path(key string) string {
	return filepath.Join(f.dir, url.QueryEscape(key))
}

// Get reads the value stored for key. A missing file means the key is absent.
func (f *FileMedium) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes the value atomically: a temp file in the same directory is
// renamed over the target so readers never observe a partial write.
func (f *FileMedium) Set(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the file for key if it exists.
func (f *FileMedium) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (f *FileMedium) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		key, err := url.QueryUnescape(e.Name())
		if err != nil {
			// Not one of ours, skip.
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
