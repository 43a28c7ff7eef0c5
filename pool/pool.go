// Package pool implements a word-block pool used as the backing store for
// tree nodes.
//
// Every block is a fixed-length slice of machine words addressed by a Ref
// handle. Freed blocks are parked on a bounded per-size free list and handed
// out again (cleared) by later allocations of the same size.
package pool

import (
	"errors"
	"fmt"
)

// DefaultFreeListSize is the number of freed blocks kept per block size.
const DefaultFreeListSize = 32

var (
	// ErrNoMemory is returned by Alloc when the pool limit is exhausted.
	ErrNoMemory = errors.New("pool: out of memory")
	// ErrBadSize is returned by Alloc for non-positive block sizes.
	ErrBadSize = errors.New("pool: bad block size")
)

// Ref is a handle to an allocated block. The zero Ref never refers to a
// live block.
type Ref uintptr

// Stats describes the pool usage.
type Stats struct {
	Allocs int // successful Alloc calls
	Frees  int // Free calls
	Live   int // blocks currently allocated
	InUse  int // words currently allocated
}

type Pool struct {
	blocks  [][]uintptr
	freeIdx []int // recycled handle slots
	spare   map[int][][]uintptr
	limit   int
	stats   Stats
}

// New creates a pool holding at most limit words at once (0 means no limit).
func New(limit int) *Pool {
	if limit < 0 {
		limit = 0
	}
	return &Pool{
		blocks:  make([][]uintptr, 0, 256),
		freeIdx: make([]int, 0, 21),
		spare:   make(map[int][][]uintptr),
		limit:   limit,
	}
}

// Alloc returns a zeroed block of exactly words machine words.
func (p *Pool) Alloc(words int) (Ref, error) {
	if words < 1 {
		return 0, fmt.Errorf("%w: %d words", ErrBadSize, words)
	}
	if p.limit > 0 && p.stats.InUse+words > p.limit {
		return 0, fmt.Errorf("%w: %d words requested, %d of %d in use",
			ErrNoMemory, words, p.stats.InUse, p.limit)
	}

	var block []uintptr
	if list := p.spare[words]; len(list) > 0 {
		block = list[len(list)-1]
		list[len(list)-1] = nil
		p.spare[words] = list[:len(list)-1]
	} else {
		block = make([]uintptr, words)
	}

	var idx int
	if l := len(p.freeIdx); l > 0 {
		idx = p.freeIdx[l-1]
		p.freeIdx = p.freeIdx[:l-1]
		p.blocks[idx] = block
	} else {
		p.blocks = append(p.blocks, block)
		idx = len(p.blocks) - 1
	}

	p.stats.Allocs++
	p.stats.Live++
	p.stats.InUse += words

	return Ref(idx + 1), nil
}

// Free returns a block to the pool. It panics on a double free or on a Ref
// the pool never handed out.
func (p *Pool) Free(ref Ref) {
	idx := p.index(ref)
	block := p.blocks[idx]
	p.blocks[idx] = nil
	p.freeIdx = append(p.freeIdx, idx)

	p.stats.Frees++
	p.stats.Live--
	p.stats.InUse -= len(block)

	if list := p.spare[len(block)]; len(list) < DefaultFreeListSize {
		clear(block)
		p.spare[len(block)] = append(list, block)
	}
}

// Block returns the words of a live block.
func (p *Pool) Block(ref Ref) []uintptr {
	return p.blocks[p.index(ref)]
}

func (p *Pool) Stats() Stats {
	return p.stats
}

// Reset forgets every block including the free lists. Outstanding refs
// become invalid.
func (p *Pool) Reset() {
	clear(p.blocks)
	p.blocks = p.blocks[:0]
	p.freeIdx = p.freeIdx[:0]
	clear(p.spare)
	p.stats = Stats{}
}

func (p *Pool) index(ref Ref) int {
	idx := int(ref) - 1
	if ref == 0 || idx < 0 || idx >= len(p.blocks) || p.blocks[idx] == nil {
		panic(fmt.Sprintf("pool: invalid or freed ref %d", ref))
	}
	return idx
}
