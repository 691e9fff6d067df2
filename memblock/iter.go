package memblock

// RegionIterator is a restartable, read-only traversal of a set's live
// regions in ascending-address order. Mutating the ledger during iteration
// is undefined.
type RegionIterator struct {
	s *RegionSet
	i int
}

// Iter returns an iterator positioned before the first region.
func (s *RegionSet) Iter() RegionIterator {
	return RegionIterator{s: s}
}

// Next returns the next region, or ok=false when the traversal is done.
func (it *RegionIterator) Next() (Region, bool) {
	if it.i >= it.s.cnt {
		return Region{}, false
	}
	r := it.s.regions[it.i]
	it.i++
	return r, true
}

// FreeRangeIterator walks the maximal sub-ranges of available memory that no
// claimed region covers, in ascending-address order. This is the traversal a
// downstream allocator uses to find candidate placements, and the one the
// backing-store grower searches.
type FreeRangeIterator struct {
	l   *Ledger
	mi  int
	ri  int
	cur PhysAddr
}

// FreeRanges returns an iterator over the ledger's current free ranges.
func (l *Ledger) FreeRanges() FreeRangeIterator {
	return FreeRangeIterator{l: l}
}

// Next returns the next free range [start, end), or ok=false when done.
// Both sets are sorted, so one merge-walk suffices; the reserved cursor
// never rewinds because a claimed region is only skipped once the walk has
// moved entirely past it.
func (it *FreeRangeIterator) Next() (start, end PhysAddr, ok bool) {
	l := it.l
	for it.mi < l.memory.cnt {
		m := l.memory.regions[it.mi]
		if it.cur < m.Base {
			it.cur = m.Base
		}
		mend := m.End()
		for it.cur < mend {
			for it.ri < l.reserved.cnt && l.reserved.regions[it.ri].End() <= it.cur {
				it.ri++
			}
			if it.ri >= l.reserved.cnt || l.reserved.regions[it.ri].Base >= mend {
				start = it.cur
				it.cur = mend
				return start, mend, true
			}
			r := l.reserved.regions[it.ri]
			if r.Base > it.cur {
				start = it.cur
				it.cur = r.End()
				return start, r.Base, true
			}
			// Claimed region covers the cursor; resume past it.
			it.cur = r.End()
		}
		it.mi++
	}
	return 0, 0, false
}
