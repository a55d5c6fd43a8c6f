package measure

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/heft/pkg/cache"
	"github.com/matzehuels/heft/pkg/observability"
)

const cacheKeyType = "measure"

// Cached memoizes a SourceMeasurer in a [cache.Cache].
//
// Entries are keyed by the content of the file and the inner measurer's
// fingerprint, never by path, so renamed or copied files hit the same entry
// and edited files miss. Cache failures degrade to a plain measurement.
type Cached struct {
	inner SourceMeasurer
	cache cache.Cache
	ttl   time.Duration
}

// NewCached wraps inner with c. A zero ttl uses [cache.DefaultTTL].
func NewCached(inner SourceMeasurer, c cache.Cache, ttl time.Duration) *Cached {
	if ttl == 0 {
		ttl = cache.DefaultTTL
	}
	return &Cached{inner: inner, cache: c, ttl: ttl}
}

type cachedMeasurement struct {
	Imports  []string `json:"imports"`
	Minified string   `json:"minified"`
	Size     int      `json:"size"`
}

// Measure reads path, then returns a cached measurement or computes and
// stores one.
func (c *Cached) Measure(ctx context.Context, path string) (*Measurement, error) {
	source, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	key := cache.Key(cacheKeyType, cache.Hash([]byte(source)), c.inner.Fingerprint())
	hooks := observability.Cache()

	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		var entry cachedMeasurement
		if json.Unmarshal(data, &entry) == nil {
			hooks.OnCacheHit(ctx, cacheKeyType)
			if entry.Imports == nil {
				entry.Imports = []string{}
			}
			return &Measurement{
				Path:     path,
				Source:   source,
				Imports:  entry.Imports,
				Minified: entry.Minified,
				Size:     entry.Size,
			}, nil
		}
	}
	hooks.OnCacheMiss(ctx, cacheKeyType)

	m, err := c.inner.MeasureSource(ctx, path, source)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedMeasurement{Imports: m.Imports, Minified: m.Minified, Size: m.Size})
	if err == nil && c.cache.Set(ctx, key, data, c.ttl) == nil {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return m, nil
}

// CompressedSize delegates to the inner measurer when it can compress.
func (c *Cached) CompressedSize(data []byte) (int, error) {
	if comp, ok := c.inner.(Compressor); ok {
		return comp.CompressedSize(data)
	}
	return compressedSize(data, DefaultQuality, DefaultWindow)
}

var (
	_ Measurer   = (*Cached)(nil)
	_ Compressor = (*Cached)(nil)
)
