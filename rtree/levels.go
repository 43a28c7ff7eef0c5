package rtree

import "math/bits"

const (
	// KeyBits is the width of a key in bits.
	KeyBits = bits.UintSize

	// DefaultLevelBits is the widest level a tree uses unless configured
	// otherwise: 256 slots, 2KiB per node on 64-bit platforms.
	DefaultLevelBits = 8
	// MaxLevelBits bounds a single node to 64Ki slots.
	MaxLevelBits = 16

	mapWordShift = 6 - 32/KeyBits // log2(KeyBits)
	mapWordMask  = KeyBits - 1
)

// Level describes one level of a tree.
type Level struct {
	Bits   int     // bits consumed at this level
	Fanout int     // 1 << Bits slots per node
	Shift  uint    // right shift applied to the significant-bit window
	mask   uintptr // Fanout - 1

	mapWords int // occupancy bitmap words preceding the slots of a node
}

// nodeWords is the size of a node block at this level.
func (l *Level) nodeWords() int {
	return l.mapWords + l.Fanout
}

// index extracts the level index from a significant-bit window.
func (l *Level) index(window uintptr) uint {
	return uint((window >> l.Shift) & l.mask)
}

// buildLevels splits significant bits into levels at most maxBits wide.
// Every level but the root is exactly maxBits wide; the root takes the
// remainder. Bit widths sum to significant.
func buildLevels(significant, maxBits int) []Level {
	height := (significant + maxBits - 1) / maxBits
	levels := make([]Level, height)

	for i := range levels {
		levels[i].Bits = maxBits
	}
	levels[0].Bits = significant - (height-1)*maxBits

	shift := uint(0)
	for i := height - 1; i >= 0; i-- {
		l := &levels[i]
		l.Fanout = 1 << l.Bits
		l.mask = uintptr(l.Fanout - 1)
		l.Shift = shift
		l.mapWords = (l.Fanout + mapWordMask) >> mapWordShift
		shift += uint(l.Bits)
	}

	return levels
}

// window right-aligns the significant bits of a key. The insignificant low
// bits are dropped before any per-level masking.
func window(key uintptr, significant int) uintptr {
	return key >> uint(KeyBits-significant)
}

// indicesFor decomposes a key into one index per level, root first.
func indicesFor(key uintptr, levels []Level, significant int) []uint {
	var (
		win = window(key, significant)
		idx = make([]uint, len(levels))
	)

	for i := range levels {
		idx[i] = levels[i].index(win)
	}

	return idx
}
