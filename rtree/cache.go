package rtree

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aglyzov/go-rtree/pool"
)

// leafCache remembers leaf node refs by the leaf prefix of a key (the
// significant-bit window without the leaf index). Nodes are only freed by
// Delete, which purges the cache, so a cached ref stays valid.
type leafCache struct {
	lru *lru.Cache[uintptr, pool.Ref]
}

func newLeafCache(size int) (*leafCache, error) {
	c, err := lru.New[uintptr, pool.Ref](size)
	if err != nil {
		return nil, err
	}
	return &leafCache{lru: c}, nil
}

func (c *leafCache) get(prefix uintptr) (pool.Ref, bool) {
	if c == nil {
		return 0, false
	}
	return c.lru.Get(prefix)
}

func (c *leafCache) add(prefix uintptr, ref pool.Ref) {
	if c == nil {
		return
	}
	c.lru.Add(prefix, ref)
}

func (c *leafCache) purge() {
	if c == nil {
		return
	}
	c.lru.Purge()
}

func (c *leafCache) len() int {
	if c == nil {
		return 0
	}
	return c.lru.Len()
}
