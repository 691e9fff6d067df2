package memblock

import "sort"

// RegionSet is one ordered collection of non-overlapping regions, either the
// "memory" set (physical memory known to exist) or the "reserved" set
// (sub-ranges currently claimed).
//
// Invariants, restored after every completed operation:
//   - live entries regions[0:cnt) are sorted strictly by ascending Base
//   - no two entries overlap, and no two exactly-adjacent entries carry the
//     same node and flags (those are always merged)
//   - totalSize equals the sum of all live entry sizes
//   - capacity only grows (it doubles), never shrinks
//
// Any index or pointer obtained from the set is invalidated by the next
// mutating call on its ledger: growth relocates the whole array, and
// insertion/removal shift the tail.
type RegionSet struct {
	name      string
	regions   []Region // full capacity; live entries are regions[:cnt]
	cnt       int
	totalSize Size

	// Identity of a dynamically placed backing store. The initial array
	// is owned by the Go runtime, has no physical placement, and is never
	// tracked in the reserved set.
	arrayBase    PhysAddr
	arrayBytes   Size
	arrayDynamic bool

	ledger *Ledger
}

// Name returns the set's tag ("memory" or "reserved").
func (s *RegionSet) Name() string { return s.name }

// Count returns the number of live regions.
func (s *RegionSet) Count() int { return s.cnt }

// Capacity returns the current backing-array capacity in entries.
func (s *RegionSet) Capacity() int { return len(s.regions) }

// TotalSize returns the sum of all live region sizes.
func (s *RegionSet) TotalSize() Size { return s.totalSize }

// Region returns a copy of the live region at index i, which must be in
// [0, Count()).
func (s *RegionSet) Region(i int) Region { return s.regions[:s.cnt][i] }

// Overlaps reports whether [base, base+size) has a positive-length
// intersection with any region in the set. Ranges that only share an
// endpoint with a region do not overlap it.
func (s *RegionSet) Overlaps(base PhysAddr, size Size) bool {
	for i := 0; i < s.cnt; i++ {
		if addrsOverlap(base, size, s.regions[i].Base, s.regions[i].Size) {
			return true
		}
	}
	return false
}

// Contains reports whether [base, base+size) lies entirely inside a single
// region of the set.
func (s *RegionSet) Contains(base PhysAddr, size Size) bool {
	i := s.search(base)
	if i < 0 {
		return false
	}
	return base.addClamp(size) <= s.regions[i].End()
}

// search returns the index of the region containing addr, or -1.
func (s *RegionSet) search(addr PhysAddr) int {
	i := sort.Search(s.cnt, func(i int) bool { return s.regions[i].End() > addr })
	if i < s.cnt && s.regions[i].Base <= addr {
		return i
	}
	return -1
}

// insertRegion places r at index idx, shifting the tail up by one. The
// caller must have ensured capacity for one more entry.
func (s *RegionSet) insertRegion(idx int, r Region) {
	copy(s.regions[idx+1:s.cnt+1], s.regions[idx:s.cnt])
	s.regions[idx] = r
	s.cnt++
	s.totalSize += r.Size
}

// removeRegion deletes the entry at idx, shifting the tail down to fill the
// gap.
func (s *RegionSet) removeRegion(idx int) {
	s.totalSize -= s.regions[idx].Size
	copy(s.regions[idx:s.cnt-1], s.regions[idx+1:s.cnt])
	s.cnt--
	s.regions[s.cnt] = Region{}
}

// mergeRegions joins neighbors that are exactly adjacent and carry the same
// node and flags. Entries never overlap when this runs, so one forward scan
// suffices; a single entry can absorb any number of following neighbors.
func (s *RegionSet) mergeRegions() {
	i := 0
	for i+1 < s.cnt {
		this := &s.regions[i]
		next := s.regions[i+1]
		if this.End() == next.Base && this.Node == next.Node && this.Flags == next.Flags {
			// Credit the absorbed size before removeRegion debits it,
			// so the merge is neutral for totalSize.
			this.Size += next.Size
			s.totalSize += next.Size
			s.removeRegion(i + 1)
			continue
		}
		i++
	}
}
