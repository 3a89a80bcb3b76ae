// Package embedding implements the embedding-based scoring path: a durable,
// content-addressed on-disk cache in front of a pluggable Embedder, and the
// cosine-similarity scorer that consumes it.
package embedding

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// DefaultMaxAgeMS is the default eviction threshold for cached entries: 7
// days, expressed in milliseconds to match Clock.NowMS/Filesystem mtimes.
const DefaultMaxAgeMS = int64(7 * 24 * 60 * 60 * 1000)

// DefaultCacheDir returns smartctx/embeddings under os.UserCacheDir(),
// falling back to a relative ".smartctx-cache" directory when the user's
// cache directory cannot be determined.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".smartctx-cache"
	}
	return filepath.Join(dir, "smartctx", "embeddings")
}

// entry is the on-disk JSON shape of one cache record.
type entry struct {
	Vector      []float32 `json:"embedding"`
	ContentHash string    `json:"hash"`
	MTimeMS     int64     `json:"mtime"`
}

// Cache is the durable, content-addressed embedding store described in
// spec §4.4. It is safe for concurrent use: keys are deterministic given
// (path, content), so concurrent writers to the same key race harmlessly.
type Cache struct {
	dir    string
	fs     pipeline.Filesystem
	logger *slog.Logger
}

// NewCache constructs a Cache rooted at dir. The directory is created
// lazily on first write, not here.
func NewCache(dir string, fs pipeline.Filesystem) *Cache {
	return &Cache{
		dir:    dir,
		fs:     fs,
		logger: slog.Default().With("component", "embedding_cache"),
	}
}

// Key returns the content-addressed cache key for (path, content): the hex
// SHA-256 digest of path‖content.
func Key(path, content string) string {
	sum := sha256.Sum256([]byte(path + content))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) filePath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get attempts a cache read keyed by (path, content, mtime). A hit requires
// both a parseable record and an exact mtime match; anything else is a
// miss, and a stale/corrupt record is deleted best-effort.
func (c *Cache) Get(path, content string, mtimeMS int64) ([]float32, bool) {
	key := Key(path, content)
	raw, err := c.fs.ReadFile(c.filePath(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Debug("discarding unparseable cache entry", "key", key, "error", err)
		_ = c.fs.Remove(c.filePath(key))
		return nil, false
	}

	if e.MTimeMS != mtimeMS {
		_ = c.fs.Remove(c.filePath(key))
		return nil, false
	}

	return e.Vector, true
}

// Set writes vector to the cache under the key derived from (path,
// content). Failures are logged and swallowed: the cache is an
// optimization, never a correctness requirement.
func (c *Cache) Set(path, content string, mtimeMS int64, vector []float32) {
	key := Key(path, content)
	e := entry{Vector: vector, ContentHash: key, MTimeMS: mtimeMS}

	raw, err := json.Marshal(e)
	if err != nil {
		c.logger.Warn("marshalling cache entry", "key", key, "error", err)
		return
	}

	if err := c.fs.MkdirAll(c.dir); err != nil {
		c.logger.Warn("creating cache directory", "dir", c.dir, "error", err)
		return
	}

	if err := c.fs.WriteFile(c.filePath(key), raw); err != nil {
		c.logger.Warn("writing cache entry", "key", key, "error", err)
	}
}

// Cleanup deletes every cache entry whose filesystem mtime is older than
// maxAgeMS, measured against nowMS. Intended to run asynchronously from
// engine construction; every error is logged and swallowed, never
// propagated.
func (c *Cache) Cleanup(nowMS, maxAgeMS int64) {
	if maxAgeMS <= 0 {
		maxAgeMS = DefaultMaxAgeMS
	}

	entries, err := c.fs.ListDir(c.dir)
	if err != nil {
		c.logger.Debug("listing cache directory for cleanup", "dir", c.dir, "error", err)
		return
	}

	removed := 0
	for _, e := range entries {
		if nowMS-e.MTimeMS <= maxAgeMS {
			continue
		}
		if err := c.fs.Remove(e.Name); err != nil {
			c.logger.Debug("evicting cache entry", "path", e.Name, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		c.logger.Debug("cache cleanup complete", "removed", removed, "dir", c.dir)
	}
}
