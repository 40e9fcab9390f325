package cache

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileCache implements the Cache interface using filesystem storage,
// one JSON file per key. It lets short-lived processes share responses.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a file-based cache rooted at dir.
// If dir is empty, uses <user cache dir>/questhub.
func NewFileCache(dir string, opts ...Option) (*FileCache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "questhub")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileCache{dir: dir, now: applyOptions(opts).now}, nil
}

// Dir returns the directory entries are stored in
func (fc *FileCache) Dir() string {
	return fc.dir
}

// Read implements Reader interface
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	entry, err := fc.load(fc.path(key))
	if err != nil || entry.Key != key {
		return nil, false
	}

	// Check if expired
	if maxAge > 0 && fc.now().Sub(entry.StoredAt) >= maxAge {
		return entry, false
	}

	return entry, true
}

// Write implements Writer interface
func (fc *FileCache) Write(key string, entry *Entry) error {
	stored := entry.clone()
	stored.Key = key
	stored.StoredAt = fc.now()

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	// Write to temporary file first, then rename
	tmp, err := os.CreateTemp(fc.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), fc.path(key))
}

// KeyFor implements KeyGenerator interface
func (fc *FileCache) KeyFor(endpoint, query string) string {
	return KeyFor(endpoint, query)
}

// Len returns the number of stored entries, expired ones included
func (fc *FileCache) Len() int {
	return len(fc.Keys())
}

// Keys returns the stored keys in sorted order. Unreadable files are skipped.
func (fc *FileCache) Keys() []string {
	files, err := fc.files()
	if err != nil {
		return []string{}
	}

	keys := make([]string, 0, len(files))
	for _, f := range files {
		entry, err := fc.load(f)
		if err != nil {
			continue
		}
		keys = append(keys, entry.Key)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes every entry file
func (fc *FileCache) Clear() {
	files, err := fc.files()
	if err != nil {
		return
	}
	for _, f := range files {
		_ = os.Remove(f)
	}
}

func (fc *FileCache) files() ([]string, error) {
	dirEntries, err := os.ReadDir(fc.dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(fc.dir, de.Name()))
	}
	return files, nil
}

func (fc *FileCache) load(path string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	if entry.Key == "" {
		return nil, errors.New("cache file has no key")
	}
	return &entry, nil
}

// path maps a key onto a filename. Queries carry arbitrary characters,
// so keys are always hashed.
func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, fmt.Sprintf("%x.json", md5.Sum([]byte(key))))
}

var _ Cache = (*FileCache)(nil)
