package rtree

import "github.com/aglyzov/go-rtree/pool"

// LevelStats describes the nodes allocated at one level.
type LevelStats struct {
	Nodes    int // allocated nodes
	Occupied int // non-zero slots over all the nodes
	Words    int // words held by the nodes, bitmaps included
}

// Stats describes the memory held by a tree.
type Stats struct {
	Levels       []LevelStats
	Nodes        int
	Words        int
	CachedLeaves int
}

// Stats walks the tree and reports per-level node usage.
func (t *Tree) Stats() Stats {
	t.mustLive()

	type frame struct {
		ref   pool.Ref
		depth int
	}

	var (
		st    = Stats{Levels: make([]LevelStats, len(t.levels))}
		stack = []frame{{ref: t.root}}
		refs  []pool.Ref
	)

	for l := len(stack); l > 0; l = len(stack) {
		f := stack[l-1]
		stack = stack[:l-1]

		var (
			lvl = &t.levels[f.depth]
			n   = t.node(f.ref, lvl)
			ls  = &st.Levels[f.depth]
		)

		ls.Nodes++
		ls.Occupied += n.occupied()
		ls.Words += lvl.nodeWords()

		if f.depth == len(t.levels)-1 {
			continue
		}

		refs = n.children(refs[:0])
		for _, ref := range refs {
			stack = append(stack, frame{ref: ref, depth: f.depth + 1})
		}
	}

	for _, ls := range st.Levels {
		st.Nodes += ls.Nodes
		st.Words += ls.Words
	}
	st.CachedLeaves = t.cache.len()

	return st
}
