package rtree

type config struct {
	levelBits int
	leafCache int
}

// Option configures a Tree at construction.
type Option func(*config)

// WithLevelBits sets the widest level of the partition, in bits
// [1..MaxLevelBits]. Narrow levels mean smaller nodes and deeper trees.
func WithLevelBits(bits int) Option {
	return func(c *config) {
		c.levelBits = bits
	}
}

// WithLeafCache enables an LRU cache of up to size leaf nodes keyed by the
// leaf prefix of a key. Lookups that hit skip the interior levels.
// It has no effect on single-level trees.
func WithLeafCache(size int) Option {
	return func(c *config) {
		c.leafCache = size
	}
}
