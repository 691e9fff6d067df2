package memblock

import (
	"math/rand"
	"testing"
)

// Random adds, reserves, removes, frees and retags against a small-capacity
// ledger, validating the structural invariants after every step. The small
// capacity keeps array growth firing throughout the run.
func Test_Fuzz_RandomOps_GuardInvariants(t *testing.T) {
	l := New(WithRegionCapacity(8))

	// A generous arena for array placements, far above the op ranges.
	l.Add(64*gib, 16*mib)

	rng := rand.New(rand.NewSource(42)) // fixed seed for reproducibility

	randRange := func() (PhysAddr, Size) {
		base := PhysAddr(gib) + PhysAddr(rng.Intn(1024))*PhysAddr(64*kib)
		size := Size(rng.Intn(8)+1) * 16 * kib
		return base, size
	}

	for i := 0; i < 500; i++ {
		base, size := randRange()
		switch rng.Intn(6) {
		case 0:
			l.Add(base, size)
		case 1:
			l.AddNode(base, size, NodeID(rng.Intn(4)), 0)
		case 2:
			l.Reserve(base, size)
		case 3:
			l.Remove(base, size)
		case 4:
			l.Free(base, size)
		case 5:
			l.SetNode(base, size, NodeID(rng.Intn(4)))
		}
		checkInvariants(t, l)
		if t.Failed() {
			t.Fatalf("invariants broken at step %d", i)
		}
	}

	t.Logf("final state: memory %d/%d regions, reserved %d/%d regions",
		l.Memory().Count(), l.Memory().Capacity(),
		l.Reserved().Count(), l.Reserved().Capacity())
}

// The merge algebra is order-independent for disjoint chained ranges.
func Test_Property_ChainedMergeAnyOrder(t *testing.T) {
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range perms {
		l := New()
		for _, i := range perm {
			l.Add(PhysAddr(gib)+PhysAddr(i)*PhysAddr(8*kib), 8*kib)
		}
		requireSetState(t, l.Memory(), 1, 24*kib)
		requireRegion(t, l.Memory(), 0, gib, 24*kib)
	}
}
