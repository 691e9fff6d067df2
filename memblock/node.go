package memblock

// SetNode attaches the given node id to the parts of available memory
// intersecting [base, base+size). Regions straddling the range boundary are
// split so that exactly the intersection is retagged; the flanks keep their
// original node. Neighbors left with equal attributes merge back, so
// retagging with the node a region already carries is a no-op.
//
// Splitting may require array growth, with the usual side effect on the
// reserved set. To retag claimed ranges instead, call SetNode on
// Reserved() directly.
func (l *Ledger) SetNode(base PhysAddr, size Size, nid NodeID) {
	l.memory.SetNode(base, size, nid)
}

// SetNode retags the intersection of [base, base+size) with this set.
func (s *RegionSet) SetNode(base PhysAddr, size Size, nid NodeID) {
	start, end := s.isolate(base, size)
	for i := start; i < end; i++ {
		s.regions[i].Node = nid
	}
	s.mergeRegions()
}

// setClearFlag sets or clears a flag on the intersection of the range with
// the set, splitting boundary regions the same way setNode does.
func (s *RegionSet) setClearFlag(base PhysAddr, size Size, set bool, flag Flags) {
	start, end := s.isolate(base, size)
	for i := start; i < end; i++ {
		if set {
			s.regions[i].Flags |= flag
		} else {
			s.regions[i].Flags &^= flag
		}
	}
	s.mergeRegions()
}

// MarkHotplug tags [base, base+size) of available memory as hotpluggable.
func (l *Ledger) MarkHotplug(base PhysAddr, size Size) {
	l.memory.setClearFlag(base, size, true, FlagHotplug)
}

// ClearHotplug removes the hotplug tag from [base, base+size).
func (l *Ledger) ClearHotplug(base PhysAddr, size Size) {
	l.memory.setClearFlag(base, size, false, FlagHotplug)
}

// MarkMirror tags [base, base+size) of available memory as mirrored.
func (l *Ledger) MarkMirror(base PhysAddr, size Size) {
	l.memory.setClearFlag(base, size, true, FlagMirror)
}

// MarkNoMap tags [base, base+size) as excluded from the linear mapping.
func (l *Ledger) MarkNoMap(base PhysAddr, size Size) {
	l.memory.setClearFlag(base, size, true, FlagNoMap)
}

// ClearNoMap removes the no-map tag from [base, base+size).
func (l *Ledger) ClearNoMap(base PhysAddr, size Size) {
	l.memory.setClearFlag(base, size, false, FlagNoMap)
}
