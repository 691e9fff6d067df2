package memblock

// Add registers [base, base+size) as available physical memory, merging with
// any overlapping or adjacent memory regions. Adding an already-covered
// range is a no-op. A range extending past MaxPhysAddr is truncated.
func (l *Ledger) Add(base PhysAddr, size Size) {
	l.memory.insertMerge(base, size, NodeNone, 0)
}

// AddNode is Add with a node id and flags attached to the inserted range.
// Only the uncovered parts of the range receive the attributes; regions with
// differing attributes are left as distinct neighbors (retag existing
// regions with SetNode).
func (l *Ledger) AddNode(base PhysAddr, size Size, nid NodeID, flags Flags) {
	l.memory.insertMerge(base, size, nid, flags)
}

// Reserve claims [base, base+size) in the reserved set. The range does not
// have to be known as available memory. Reserving an already-claimed range
// is a no-op.
func (l *Ledger) Reserve(base PhysAddr, size Size) {
	l.reserved.insertMerge(base, size, NodeNone, 0)
}

// insertMerge inserts [base, base+size) with the given attributes, merging
// with compatible neighbors.
//
// Two passes over the same scan: the first only counts how many new entries
// the uncovered gaps need, so the array can be grown up front; the second
// performs the insertions. Growth is told which range is in flight so the
// relocated array can never be placed on top of it.
func (s *RegionSet) insertMerge(base PhysAddr, size Size, nid NodeID, flags Flags) {
	end := base.addClamp(size)
	size = Size(end - base)
	if size == 0 {
		return
	}

	if s.cnt == 0 {
		s.regions[0] = Region{Base: base, Size: size, Node: nid, Flags: flags}
		s.cnt = 1
		s.totalSize = size
		return
	}

	for insert := false; ; insert = true {
		nrNew := 0
		idx := 0
		b := base
		for idx < s.cnt {
			r := s.regions[idx]
			if r.Base >= end {
				break
			}
			if r.End() <= b {
				idx++
				continue
			}
			// r overlaps the remainder; the gap before it, if any,
			// is not yet covered.
			if r.Base > b {
				nrNew++
				if insert {
					s.insertRegion(idx, Region{Base: b, Size: Size(r.Base - b), Node: nid, Flags: flags})
					idx++ // step over the entry just inserted
				}
			}
			b = r.End()
			idx++
		}
		if b < end {
			nrNew++
			if insert {
				s.insertRegion(idx, Region{Base: b, Size: Size(end - b), Node: nid, Flags: flags})
			}
		}

		if nrNew == 0 {
			// Fully contained in existing regions: nothing to do.
			return
		}
		if insert {
			break
		}
		for s.cnt+nrNew > s.Capacity() {
			s.grow(base, size)
		}
	}

	s.mergeRegions()
}
