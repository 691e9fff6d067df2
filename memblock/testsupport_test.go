package memblock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// requireRegion asserts base and size of the live region at index i.
func requireRegion(t *testing.T, s *RegionSet, i int, base PhysAddr, size Size) {
	t.Helper()
	require.Less(t, i, s.Count(), "region index out of range")
	r := s.Region(i)
	require.Equal(t, base, r.Base, "region[%d] base", i)
	require.Equal(t, size, r.Size, "region[%d] size", i)
}

// requireSetState asserts count and total size of a set.
func requireSetState(t *testing.T, s *RegionSet, cnt int, total Size) {
	t.Helper()
	require.Equal(t, cnt, s.Count(), "%s count", s.Name())
	require.Equal(t, total, s.TotalSize(), "%s total size", s.Name())
}

// checkInvariants validates the structural invariants of both sets: sorted
// bases, no overlap, no same-attribute adjacency, total size equal to the
// sum of entry sizes, count within capacity.
func checkInvariants(t *testing.T, l *Ledger) {
	t.Helper()
	for _, s := range []*RegionSet{l.Memory(), l.Reserved()} {
		require.LessOrEqual(t, s.Count(), s.Capacity(), "%s count exceeds capacity", s.Name())
		var sum Size
		for i := 0; i < s.Count(); i++ {
			r := s.Region(i)
			require.Positive(t, r.Size, "%s[%d] zero-sized", s.Name(), i)
			sum += r.Size
			if i == 0 {
				continue
			}
			prev := s.Region(i - 1)
			require.Less(t, prev.Base, r.Base, "%s not sorted at %d", s.Name(), i)
			require.LessOrEqual(t, prev.End(), r.Base, "%s overlap at %d", s.Name(), i)
			if prev.End() == r.Base {
				sameAttrs := prev.Node == r.Node && prev.Flags == r.Flags
				require.False(t, sameAttrs, "%s unmerged neighbors at %d", s.Name(), i)
			}
		}
		require.Equal(t, sum, s.TotalSize(), "%s total size out of sync", s.Name())
	}
}
