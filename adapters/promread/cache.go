package promread

import (
	lru "github.com/hashicorp/golang-lru"
)

// FileCache memoizes parsed dumps so multi-pair sweeps do not re-read and
// re-parse the same file for every pair it appears in.
type FileCache struct {
	cache *lru.Cache
}

// NewFileCache creates a cache holding up to size parsed files.
func NewFileCache(size int) (*FileCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &FileCache{cache: cache}, nil
}

// Load returns the parsed rows for path, reading the file only on a miss.
// Parse failures are not cached.
func (c *FileCache) Load(path string) ([]Row, error) {
	if cached, ok := c.cache.Get(path); ok {
		return cached.([]Row), nil
	}
	rows, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, rows)
	return rows, nil
}
