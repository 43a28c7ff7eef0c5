package rtree

import (
	"errors"
	"fmt"

	"github.com/aglyzov/go-rtree/pool"
)

var (
	// ErrSignificantBits is returned by New for a significant bit count
	// outside [1..KeyBits].
	ErrSignificantBits = errors.New("rtree: significant bits out of range")
	// ErrLevelBits is returned by New for a level width outside
	// [1..MaxLevelBits].
	ErrLevelBits = errors.New("rtree: level bits out of range")
)

// Allocator supplies the zeroed word blocks that back tree nodes.
// *pool.Pool implements it.
type Allocator interface {
	Alloc(words int) (pool.Ref, error)
	Free(ref pool.Ref)
	Block(ref pool.Ref) []uintptr
}

// Tree maps the significant high bits of a key to a word value. A zero
// value means absent.
//
// A Tree is not safe for concurrent use when any goroutine calls Set.
// Concurrent Gets without a Set are safe.
type Tree struct {
	significant int
	levels      []Level
	root        pool.Ref
	alloc       Allocator
	cache       *leafCache
	size        int
}

// New creates a tree distinguishing keys by their top significantBits bits.
// Nodes are allocated from alloc, or from a private unlimited pool when
// alloc is nil. Nothing stays allocated when New fails.
func New(significantBits int, alloc Allocator, opts ...Option) (*Tree, error) {
	if significantBits < 1 || significantBits > KeyBits {
		return nil, fmt.Errorf("%w: %d not in [1..%d]", ErrSignificantBits, significantBits, KeyBits)
	}

	cfg := config{levelBits: DefaultLevelBits}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.levelBits < 1 || cfg.levelBits > MaxLevelBits {
		return nil, fmt.Errorf("%w: %d not in [1..%d]", ErrLevelBits, cfg.levelBits, MaxLevelBits)
	}

	if alloc == nil {
		alloc = pool.New(0)
	}

	t := &Tree{
		significant: significantBits,
		levels:      buildLevels(significantBits, cfg.levelBits),
		alloc:       alloc,
	}

	if cfg.leafCache > 0 && len(t.levels) > 1 {
		cache, err := newLeafCache(cfg.leafCache)
		if err != nil {
			return nil, fmt.Errorf("rtree: leaf cache: %w", err)
		}
		t.cache = cache
	}

	root, err := t.newNode(&t.levels[0])
	if err != nil {
		return nil, fmt.Errorf("rtree: root node: %w", err)
	}
	t.root = root

	return t, nil
}

// Get returns the value stored for key, or 0. It never allocates.
func (t *Tree) Get(key uintptr) uintptr {
	t.mustLive()

	var (
		win        = window(key, t.significant)
		leaf, last = t.leafLevel()
		prefix     = win >> uint(leaf.Bits)
		ref, start = t.root, 0
	)

	if cached, ok := t.cache.get(prefix); ok {
		ref, start = cached, last
	}

	for i := start; i < last; i++ {
		l := &t.levels[i]
		if ref = t.node(ref, l).child(l.index(win)); ref == 0 {
			return 0 // the path was never populated
		}
	}

	if start != last {
		t.cache.add(prefix, ref)
	}

	return t.node(ref, leaf).slots[leaf.index(win)]
}

// Set stores val for key, allocating the missing nodes on the way. Storing 0
// marks the key absent; it never frees nodes.
//
// On an allocation failure the error is returned, the key is left as it was
// and all the nodes installed so far stay in place.
func (t *Tree) Set(key, val uintptr) error {
	t.mustLive()

	var (
		win        = window(key, t.significant)
		leaf, last = t.leafLevel()
		prefix     = win >> uint(leaf.Bits)
		ref, start = t.root, 0
	)

	if cached, ok := t.cache.get(prefix); ok {
		ref, start = cached, last
	}

	for i := start; i < last; i++ {
		var (
			l    = &t.levels[i]
			idx  = l.index(win)
			next = t.node(ref, l).child(idx)
		)

		if next == 0 {
			if val == 0 {
				return nil // already absent
			}

			var err error
			if next, err = t.newNode(&t.levels[i+1]); err != nil {
				return fmt.Errorf("rtree: set %#x: level %d node: %w", key, i+1, err)
			}
			t.node(ref, l).store(idx, uintptr(next))
		}

		ref = next
	}

	if start != last {
		t.cache.add(prefix, ref)
	}

	was := t.node(ref, leaf).store(leaf.index(win), val)

	switch {
	case val != 0 && !was:
		t.size++
	case val == 0 && was:
		t.size--
	}

	return nil
}

// Delete frees every node of the tree, children before their parent. The
// tree must not be used afterwards.
func (t *Tree) Delete() {
	t.mustLive()

	type frame struct {
		ref      pool.Ref
		depth    int
		expanded bool
	}

	var (
		_, last = t.leafLevel()
		stack   = make([]frame, 1, len(t.levels)*2)
		refs    []pool.Ref
	)

	stack[0] = frame{ref: t.root}

	// walk the tree without function recursion
	for l := len(stack); l > 0; l = len(stack) {
		f := &stack[l-1]

		if f.expanded || f.depth == last {
			t.alloc.Free(f.ref)
			stack = stack[:l-1]
			continue
		}

		f.expanded = true
		depth := f.depth

		refs = t.node(f.ref, &t.levels[depth]).children(refs[:0])
		for _, ref := range refs {
			stack = append(stack, frame{ref: ref, depth: depth + 1})
		}
	}

	t.cache.purge()
	t.cache = nil
	t.root = 0
	t.alloc = nil
	t.size = 0
}

// Len returns the number of significant-bit windows holding a non-zero value.
func (t *Tree) Len() int {
	return t.size
}

func (t *Tree) SignificantBits() int {
	return t.significant
}

// Levels returns a copy of the level partition, root first.
func (t *Tree) Levels() []Level {
	return append([]Level(nil), t.levels...)
}

// Indices returns the per-level node indices a key maps to, root first.
func (t *Tree) Indices(key uintptr) []uint {
	return indicesFor(key, t.levels, t.significant)
}

func (t *Tree) leafLevel() (*Level, int) {
	last := len(t.levels) - 1
	return &t.levels[last], last
}

func (t *Tree) mustLive() {
	if t.alloc == nil {
		panic("rtree: use of a deleted tree")
	}
}
