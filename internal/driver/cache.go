package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tycho/internal/fingerprint"
)

// Increment when the entry format changes.
const hashCacheSchemaVersion uint16 = 1

// HashCache persists fingerprint artifacts on disk, keyed by the artifact's
// combined path+content key, so unchanged files skip recomputation across
// runs. Thread-safe for concurrent access.
type HashCache struct {
	mu  sync.RWMutex
	dir string
}

type hashCacheEntry struct {
	Schema  uint16
	Path    fingerprint.Digest
	Content fingerprint.Digest
	Lines   uint32
}

// OpenHashCache initializes a cache at the standard location for app.
func OpenHashCache(app string) (*HashCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &HashCache{dir: dir}, nil
}

// OpenHashCacheAt initializes a cache rooted at an explicit directory.
func OpenHashCacheAt(dir string) (*HashCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &HashCache{dir: dir}, nil
}

func (c *HashCache) pathFor(key fingerprint.Digest) string {
	// Subdirectory keeps entries easy to inspect and purge by hand.
	return filepath.Join(c.dir, "hashes", hex.EncodeToString(key[:])+".mp")
}

// Put serializes an artifact to the cache. Writes go through a temp file and
// a rename so readers never observe a torn entry.
func (c *HashCache) Put(key fingerprint.Digest, h *fingerprint.FileHash) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	entry := hashCacheEntry{
		Schema:  hashCacheSchemaVersion,
		Path:    h.Path,
		Content: h.Content,
		Lines:   h.Lines,
	}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads an artifact back. A missing entry or a schema mismatch is a
// miss, not an error.
func (c *HashCache) Get(key fingerprint.Digest) (*fingerprint.FileHash, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var entry hashCacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("%s: corrupt cache entry: %w", c.pathFor(key), err)
	}
	if entry.Schema != hashCacheSchemaVersion {
		return nil, false, nil
	}
	return &fingerprint.FileHash{
		Path:    entry.Path,
		Content: entry.Content,
		Lines:   entry.Lines,
	}, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *HashCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
