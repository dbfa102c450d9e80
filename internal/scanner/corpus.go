package scanner

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of file contents kept in memory
const DefaultCacheSize = 2048

// Corpus is the read-only set of source files a run searches. File contents
// are cached so the usage and literal-text passes read each file once when
// the corpus fits in the cache. Safe for concurrent use.
type Corpus struct {
	files []FileInfo
	cache *lru.Cache[string, string]
}

// NewCorpus wraps files with a content cache of the given size
func NewCorpus(files []FileInfo, cacheSize int) (*Corpus, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create corpus cache: %w", err)
	}
	return &Corpus{files: files, cache: cache}, nil
}

// Files returns the corpus files in discovery order
func (c *Corpus) Files() []FileInfo {
	return c.files
}

func (c *Corpus) Len() int {
	return len(c.files)
}

// Read returns the content of path
func (c *Corpus) Read(path string) (string, error) {
	if content, ok := c.cache.Get(path); ok {
		return content, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	content := string(data)
	c.cache.Add(path, content)
	return content, nil
}
