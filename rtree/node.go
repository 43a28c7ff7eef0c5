package rtree

import (
	"math/bits"

	"github.com/hideo55/go-popcount"

	"github.com/aglyzov/go-rtree/pool"
)

// node is a view over a node block: an occupancy bitmap followed by the
// slots. Interior slots hold child refs, leaf slots hold values. A bitmap bit
// is set iff the matching slot is non-zero.
type node struct {
	bitmap []uintptr
	slots  []uintptr
}

func (t *Tree) newNode(l *Level) (pool.Ref, error) {
	return t.alloc.Alloc(l.nodeWords())
}

func (t *Tree) node(ref pool.Ref, l *Level) node {
	block := t.alloc.Block(ref)
	return node{
		bitmap: block[:l.mapWords:l.mapWords],
		slots:  block[l.mapWords:],
	}
}

func (n node) child(idx uint) pool.Ref {
	return pool.Ref(n.slots[idx])
}

// store writes a slot and reports whether it was occupied before.
func (n node) store(idx uint, val uintptr) (was bool) {
	var (
		ofs = idx >> mapWordShift
		bit = uintptr(1) << (idx & mapWordMask)
	)

	was = n.bitmap[ofs]&bit != 0
	n.slots[idx] = val

	if val != 0 {
		n.bitmap[ofs] |= bit
	} else {
		n.bitmap[ofs] &^= bit
	}

	return was
}

// occupied counts the non-zero slots.
func (n node) occupied() int {
	var cnt uint64
	for _, w := range n.bitmap {
		cnt += popcount.Count(uint64(w))
	}
	return int(cnt)
}

// children appends the refs of the allocated children to refs.
func (n node) children(refs []pool.Ref) []pool.Ref {
	for ofs, w := range n.bitmap {
		for ; w != 0; w &= w - 1 {
			idx := ofs<<mapWordShift + bits.TrailingZeros(uint(w))
			refs = append(refs, pool.Ref(n.slots[idx]))
		}
	}
	return refs
}
