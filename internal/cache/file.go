package cache

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// fileTier is the durable fallback cache: one file per key under dir.
// Each file starts with an 8-byte big-endian unix-seconds expiry followed
// by the raw value. Expired files are removed lazily on read.
type fileTier struct {
	dir string
}

func newFileTier(dir string) (*fileTier, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileTier{dir: dir}, nil
}

// path maps a cache key to a filename. Keys are hashed so arbitrary key
// content never reaches the filesystem.
func (f *fileTier) path(key string) string {
	sum := md5.Sum([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".cache")
}

func (f *fileTier) get(key string) ([]byte, bool) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	if len(data) < 8 {
		return nil, false
	}
	expires := int64(binary.BigEndian.Uint64(data[:8]))
	if time.Now().Unix() > expires {
		os.Remove(f.path(key))
		return nil, false
	}
	return data[8:], true
}

func (f *fileTier) set(key string, value []byte, ttl time.Duration) {
	buf := make([]byte, 8+len(value))
	binary.BigEndian.PutUint64(buf[:8], uint64(time.Now().Add(ttl).Unix()))
	copy(buf[8:], value)
	if err := os.WriteFile(f.path(key), buf, 0o644); err != nil {
		slog.Warn("file cache write error", "key", key, "error", err)
	}
}

func (f *fileTier) delete(key string) {
	os.Remove(f.path(key))
}

func (f *fileTier) flush() {
	matches, err := filepath.Glob(filepath.Join(f.dir, "*.cache"))
	if err != nil {
		slog.Warn("file cache flush error", "error", err)
		return
	}
	for _, m := range matches {
		os.Remove(m)
	}
}
