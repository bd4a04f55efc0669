// Package cache persists per-image trim results in LevelDB so repeated
// builds over unchanged sources skip the alpha scan.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
)

const keyPrefix = "trim-"

// Entry is the cached geometry of one source image.
type Entry struct {
	Width  int `json:"w"`
	Height int `json:"h"`
	FillX  int `json:"fx"`
	FillY  int `json:"fy"`
	FillW  int `json:"fw"`
	FillH  int `json:"fh"`
}

// TrimCache maps image content hashes to trim results.
type TrimCache struct {
	db *leveldb.DB
}

// Open opens or creates the cache database in dir.
func Open(dir string) (*TrimCache, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open trim cache: %w", err)
	}
	return &TrimCache{db: db}, nil
}

// Get looks up key. A miss is not an error.
func (c *TrimCache) Get(key string) (Entry, bool, error) {
	data, err := c.db.Get([]byte(keyPrefix+key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read trim cache: %w", err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, false, fmt.Errorf("corrupt trim cache entry %s: %w", key, err)
	}
	return e, true, nil
}

// Put stores e under key, replacing any previous value.
func (c *TrimCache) Put(key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to serialize trim cache entry: %w", err)
	}
	if err := c.db.Put([]byte(keyPrefix+key), data, nil); err != nil {
		return fmt.Errorf("failed to write trim cache: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (c *TrimCache) Close() error {
	return c.db.Close()
}

// FileKey returns the MD5 of the file contents, hex encoded.
func FileKey(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
