package services

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ChartCache keeps rendered PNGs per dataset and question kind. Datasets never
// change after load, so a cached chart stays valid until it expires.
type ChartCache struct {
	store *cache.Cache
}

func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{store: cache.New(ttl, 2*ttl)}
}

// GetOrRender returns the cached chart or calls render and stores its result.
// The returned slice is a copy the caller may keep or modify.
func (c *ChartCache) GetOrRender(datasetID string, kind QuestionKind, render func() ([]byte, error)) ([]byte, error) {
	key := datasetID + ":" + kind.String()
	if x, found := c.store.Get(key); found {
		return cloneBytes(x.([]byte)), nil
	}

	img, err := render()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, img, cache.DefaultExpiration)
	return cloneBytes(img), nil
}

func (c *ChartCache) Len() int {
	return c.store.ItemCount()
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
