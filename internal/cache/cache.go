// Package cache memoizes validation results by candidate content.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fulldiveVR/codex/internal/validator"
)

// DefaultSize is the number of results kept when no size is configured.
const DefaultSize = 256

// Key identifies one validation: the candidate text plus every option that
// changes the verdict.
type Key struct {
	Source             string
	FileName           string
	Strict             bool
	ReportUnverifiable bool
	// Checker identifies the pipeline producing the result, so checkers
	// with different compilers or registries can share one cache.
	Checker string
}

// Digest returns the hex sha256 of the key fields.
func (k Key) Digest() string {
	h := sha256.New()
	for _, part := range []string{
		k.Source,
		k.FileName,
		strconv.FormatBool(k.Strict),
		strconv.FormatBool(k.ReportUnverifiable),
		k.Checker,
	} {
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write([]byte(part))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	size int
	ttl  time.Duration
}

// WithSize sets the maximum number of entries. Non-positive values keep
// the default.
func WithSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.size = n
		}
	}
}

// WithTTL expires entries after d. Zero keeps entries until evicted.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		c.ttl = d
	}
}

// Cache is a bounded, concurrency-safe result cache. Results are copied on
// the way in and out so callers may mutate what they receive.
type Cache struct {
	entries *lru.LRU[string, *validator.Result]
	hits    atomic.Uint64
	misses  atomic.Uint64
}

// New creates a cache.
func New(opts ...Option) *Cache {
	cfg := config{size: DefaultSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache{entries: lru.NewLRU[string, *validator.Result](cfg.size, nil, cfg.ttl)}
}

// Get returns a copy of the cached result for k.
func (c *Cache) Get(k Key) (*validator.Result, bool) {
	r, ok := c.entries.Get(k.Digest())
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return r.Clone(), true
}

// Put stores a copy of r under k.
func (c *Cache) Put(k Key, r *validator.Result) {
	if r == nil {
		return
	}
	c.entries.Add(k.Digest(), r.Clone())
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: c.entries.Len()}
}
