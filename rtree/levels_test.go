package rtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLevels(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Significant int
		MaxBits     int
		ExpBits     []int
		ExpShifts   []uint
	}{
		{1, 8, []int{1}, []uint{0}},
		{3, 8, []int{3}, []uint{0}},
		{8, 8, []int{8}, []uint{0}},
		{9, 8, []int{1, 8}, []uint{8, 0}},
		{20, 8, []int{4, 8, 8}, []uint{16, 8, 0}},
		{24, 8, []int{8, 8, 8}, []uint{16, 8, 0}},
		{5, 1, []int{1, 1, 1, 1, 1}, []uint{4, 3, 2, 1, 0}},
		{31, 16, []int{15, 16}, []uint{16, 0}},
		{32, 5, []int{2, 5, 5, 5, 5, 5, 5}, []uint{30, 25, 20, 15, 10, 5, 0}},
	} {
		var (
			tcase = tcase
			name  = fmt.Sprintf("%d/%d", tcase.Significant, tcase.MaxBits)
		)

		t.Run(name, func(t *testing.T) {
			levels := buildLevels(tcase.Significant, tcase.MaxBits)
			require.Len(t, levels, len(tcase.ExpBits))

			for i, l := range levels {
				assert.Equal(t, tcase.ExpBits[i], l.Bits, "level %d bits", i)
				assert.Equal(t, tcase.ExpShifts[i], l.Shift, "level %d shift", i)
				assert.Equal(t, 1<<l.Bits, l.Fanout, "level %d fanout", i)
			}
		})
	}
}

func TestBuildLevels_Invariants(t *testing.T) {
	t.Parallel()

	for maxBits := 1; maxBits <= MaxLevelBits; maxBits++ {
		for significant := 1; significant <= KeyBits; significant++ {
			var (
				levels = buildLevels(significant, maxBits)
				sum    int
				shift  uint
			)

			for i := len(levels) - 1; i >= 0; i-- {
				l := levels[i]

				require.GreaterOrEqual(t, l.Bits, 1)
				require.LessOrEqual(t, l.Bits, maxBits)
				require.Equal(t, shift, l.Shift)
				require.Equal(t, uintptr(l.Fanout-1), l.mask)
				require.GreaterOrEqual(t, l.mapWords*KeyBits, l.Fanout)
				require.Less(t, (l.mapWords-1)*KeyBits, l.Fanout)

				if i > 0 {
					require.Equal(t, maxBits, l.Bits, "only the root may be narrower")
				}

				sum += l.Bits
				shift += uint(l.Bits)
			}

			require.Equal(t, significant, sum, "significant=%d maxBits=%d", significant, maxBits)
		}
	}
}

func TestIndicesFor(t *testing.T) {
	t.Parallel()

	levels := buildLevels(20, 8) // 4 + 8 + 8

	const (
		top  = KeyBits - 20
		high = uintptr(0xA) << (top + 16)
		mid  = uintptr(0xBC) << (top + 8)
		low  = uintptr(0xDE) << top
	)

	assert.Equal(t, []uint{0, 0, 0}, indicesFor(0, levels, 20))
	assert.Equal(t, []uint{0xA, 0xBC, 0xDE}, indicesFor(high|mid|low, levels, 20))
	assert.Equal(t, []uint{0xF, 0xFF, 0xFF}, indicesFor(^uintptr(0), levels, 20))
}

func TestIndicesFor_InsignificantBits(t *testing.T) {
	t.Parallel()

	for significant := 1; significant < KeyBits; significant++ {
		var (
			levels = buildLevels(significant, DefaultLevelBits)
			low    = uintptr(1)<<uint(KeyBits-significant) - 1
			base   = uintptr(0x5A5A5A5A5A5A5A5A&uint64(^uintptr(0))) &^ low
		)

		exp := indicesFor(base, levels, significant)

		assert.Equal(t, exp, indicesFor(base|low, levels, significant), "significant=%d", significant)
		assert.Equal(t, exp, indicesFor(base|1, levels, significant), "significant=%d", significant)
		assert.NotEqual(t, exp, indicesFor(base+low+1, levels, significant), "significant=%d", significant)
	}
}
