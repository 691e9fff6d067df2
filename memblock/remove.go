package memblock

// Remove deletes [base, base+size) from the available memory set. Regions
// straddling a cut boundary are split and only the covered piece is dropped;
// removing an absent range is a no-op.
func (l *Ledger) Remove(base PhysAddr, size Size) {
	l.memory.removeRange(base, size)
}

// Free releases [base, base+size) from the reserved set. Freeing an
// unclaimed range is a no-op.
func (l *Ledger) Free(base PhysAddr, size Size) {
	l.reserved.removeRange(base, size)
}

func (s *RegionSet) removeRange(base PhysAddr, size Size) {
	start, end := s.isolate(base, size)
	for i := end - 1; i >= start; i-- {
		s.removeRegion(i)
	}
}

// isolate splits boundary-straddling regions so that [base, base+size) is
// covered by whole entries, and returns the index range [startRgn, endRgn)
// of those entries. The cut range may intersect any number of regions; parts
// of it with no matching region are simply not represented in the result.
//
// Splitting can add up to two entries, so the array is grown up front when
// fewer than two slots are spare. No range is in flight here, so growth gets
// no exclusion.
func (s *RegionSet) isolate(base PhysAddr, size Size) (startRgn, endRgn int) {
	end := base.addClamp(size)
	if base == end {
		return 0, 0
	}

	for s.cnt+2 > s.Capacity() {
		s.grow(0, 0)
	}

	for idx := 0; idx < s.cnt; idx++ {
		r := s.regions[idx]
		rbase, rend := r.Base, r.End()
		if rbase >= end {
			break
		}
		if rend <= base {
			continue
		}
		switch {
		case rbase < base:
			// Straddles the start of the cut: shrink this entry to
			// the part inside the cut and re-insert the head in
			// front of it. The shrunk remainder is reconsidered on
			// the next iteration.
			s.regions[idx].Base = base
			s.regions[idx].Size = Size(rend - base)
			s.totalSize -= Size(base - rbase)
			s.insertRegion(idx, Region{Base: rbase, Size: Size(base - rbase), Node: r.Node, Flags: r.Flags})
		case rend > end:
			// Straddles the end: shrink this entry to the tail and
			// re-insert the covered piece in front of it, then
			// revisit that piece so it is recorded below.
			s.regions[idx].Base = end
			s.regions[idx].Size = Size(rend - end)
			s.totalSize -= Size(end - rbase)
			s.insertRegion(idx, Region{Base: rbase, Size: Size(end - rbase), Node: r.Node, Flags: r.Flags})
			idx--
		default:
			// Fully inside the cut.
			if endRgn == 0 {
				startRgn = idx
			}
			endRgn = idx + 1
		}
	}
	return startRgn, endRgn
}
