package main

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/aglyzov/go-rtree/pool"
	"github.com/aglyzov/go-rtree/rtree"
)

const (
	chunkShift = 22 // 4MiB chunks
	chunkSize  = 1 << chunkShift
)

func main() {
	var (
		p       = pool.New(1 << 20)
		sigBits = rtree.KeyBits - chunkShift
	)

	// chunk addresses are aligned, so their low bits carry nothing
	tr, err := rtree.New(sigBits, p, rtree.WithLevelBits(10), rtree.WithLeafCache(64))
	if err != nil {
		fmt.Println("new:", err)
		return
	}
	defer tr.Delete()

	for i, lvl := range tr.Levels() {
		fmt.Printf("level %d: bits=%d fanout=%d shift=%d\n", i, lvl.Bits, lvl.Fanout, lvl.Shift)
	}

	base := uintptr(0x7f00) << (bits.UintSize - 16)

	// extent metadata: chunk number within the mapping
	for i := uintptr(0); i < 8; i++ {
		if err := tr.Set(base+i*chunkSize, i+1); err != nil {
			if errors.Is(err, pool.ErrNoMemory) {
				fmt.Println("pool exhausted:", err)
			}
			return
		}
	}

	for _, addr := range []uintptr{base, base + 3*chunkSize + 12345, base + 8*chunkSize, 0} {
		fmt.Printf("%#x -> %d  %v\n", addr, tr.Get(addr), tr.Indices(addr))
	}

	st := tr.Stats()
	fmt.Printf("keys=%d nodes=%d words=%d cached=%d pool=%+v\n",
		tr.Len(), st.Nodes, st.Words, st.CachedLeaves, p.Stats())
}
