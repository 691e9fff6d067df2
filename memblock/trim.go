package memblock

// TrimMemory rounds every available memory region inward to the given
// alignment: bases up, ends down. Regions already aligned are untouched;
// regions with nothing left after rounding are deleted. The reserved set is
// not consulted, so claimed ranges may end up partly outside trimmed memory.
func (l *Ledger) TrimMemory(align Size) {
	s := &l.memory
	for i := 0; i < s.cnt; i++ {
		r := s.regions[i]
		start := r.Base.alignUp(align)
		end := r.End().alignDown(align)
		if start == r.Base && end == r.End() {
			continue
		}
		if start < end {
			s.totalSize -= r.Size - Size(end-start)
			s.regions[i].Base = start
			s.regions[i].Size = Size(end - start)
		} else {
			s.removeRegion(i)
			i--
		}
	}
}
