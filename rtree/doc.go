// Package rtree implements a bitwise radix tree mapping machine-word keys
// (addresses or address-derived indices) to word values.
//
// A tree is configured with a number of significant bits S. Only the top S
// bits of a key are inspected; the low bits never affect a result. Those S
// bits are split into levels and every level indexes a fixed fan-out node:
//
//	key:    [ S significant bits                  ][ ignored low bits ]
//	        [ root: S-(h-1)*b ][  b  ] ... [  b  ]
//	           interior nodes   ...        leaf node
//
// where b is the level width (DefaultLevelBits unless configured) and h the
// number of levels. The root takes the remainder so every other level is
// exactly b bits wide; when S <= b the tree is a single flat leaf node.
//
// Node layout:
// -----------
//
// Each node is one block of words obtained from an Allocator:
//
//	[ bitmap words ][ slot 0 ][ slot 1 ] ... [ slot fanout-1 ]
//
//   - bitmap - ceil(fanout/KeyBits) words, one bit per slot, set iff the
//     slot is non-zero;
//   - interior slot - the pool.Ref of a child node (0 = not allocated yet);
//   - leaf slot - the stored value (0 = absent).
//
// Nodes are allocated lazily by Set and are all released at once by Delete.
// Get never allocates; a missing node reads as 0 for every key below it.
package rtree
