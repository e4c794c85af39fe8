// Package cache keeps JSON snapshots of slow upstream lookups on disk.
//
// It writes through the real filesystem on purpose so entries survive
// the in-memory filesystem used by tests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const TTL = 7 * 24 * time.Hour

func dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	d := filepath.Join(home, ".cache", "hydra")
	_ = os.MkdirAll(d, 0755)
	return d
}

// GenerateKey derives a stable cache identifier from the given parts.
func GenerateKey(parts ...string) string {
	joined := strings.ToLower(strings.ReplaceAll(strings.Join(parts, "|"), " ", ""))
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}

// Read loads a cached object into target. It reports false when the
// entry is missing, expired, or unreadable.
func Read(key string, target interface{}) bool {
	path := filepath.Join(dir(), key)

	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, target) == nil
}

// Write stores a serializable object under key. The entry lands via a
// rename so readers never observe a partial file.
func Write(key string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	path := filepath.Join(dir(), key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// CollectGarbage prunes expired entries in the background.
func CollectGarbage() {
	go func() {
		_ = filepath.WalkDir(dir(), func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if info, err := d.Info(); err == nil && time.Since(info.ModTime()) > TTL {
				_ = os.Remove(path)
			}
			return nil
		})
	}()
}
