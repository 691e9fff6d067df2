package memblock

import (
	"math"
	"unsafe"
)

// PhysAddr is a physical address. Arithmetic on physical addresses saturates
// at MaxPhysAddr instead of wrapping.
type PhysAddr uint64

// Size is a length in bytes of a physical address range.
type Size uint64

// NodeID identifies a memory-topology domain (NUMA node). Node identifiers
// are opaque to this package; NodeNone marks a region with no node attached.
type NodeID int32

// NodeNone is the NodeID of regions that have not been tagged with a node.
const NodeNone NodeID = -1

// Flags is a per-region attribute bitset.
type Flags uint32

const (
	// FlagHotplug marks memory that may be removed at runtime.
	FlagHotplug Flags = 1 << iota
	// FlagMirror marks mirrored memory.
	FlagMirror
	// FlagNoMap marks memory that must not enter the linear mapping.
	FlagNoMap
	// FlagDriverManaged marks memory owned by a device driver.
	FlagDriverManaged
)

const (
	// MaxPhysAddr is the highest representable physical address. Ranges
	// extending past it are truncated, never wrapped.
	MaxPhysAddr PhysAddr = math.MaxUint64

	// InitRegions is the static per-set region capacity a ledger starts
	// with. The first insert that does not fit doubles it.
	InitRegions = 128

	// PageSize is the allocation granularity for dynamically placed
	// region arrays.
	PageSize Size = 4096
)

// regionSize is the in-memory size of one Region entry, used to size the
// backing store of a grown region array.
const regionSize = Size(unsafe.Sizeof(Region{}))

// Region is one maximal contiguous physical interval [Base, Base+Size).
type Region struct {
	Base  PhysAddr
	Size  Size
	Node  NodeID
	Flags Flags
}

// End returns the exclusive end address of the region, saturating at
// MaxPhysAddr.
func (r Region) End() PhysAddr {
	return r.Base.addClamp(r.Size)
}

// addClamp returns a+s saturated at MaxPhysAddr.
func (a PhysAddr) addClamp(s Size) PhysAddr {
	if Size(MaxPhysAddr-a) < s {
		return MaxPhysAddr
	}
	return a + PhysAddr(s)
}

// alignUp rounds a up to the given alignment, saturating at MaxPhysAddr.
func (a PhysAddr) alignUp(align Size) PhysAddr {
	if align == 0 {
		return a
	}
	rem := Size(a % PhysAddr(align))
	if rem == 0 {
		return a
	}
	return a.addClamp(align - rem)
}

// alignDown rounds a down to the given alignment.
func (a PhysAddr) alignDown(align Size) PhysAddr {
	if align == 0 {
		return a
	}
	return a - a%PhysAddr(align)
}

// pageAlign rounds s up to PageSize.
func pageAlign(s Size) Size {
	rem := s % PageSize
	if rem == 0 {
		return s
	}
	return s + (PageSize - rem)
}

// addrsOverlap reports whether [base1,base1+size1) and [base2,base2+size2)
// have a positive-length intersection. Ranges that only share an endpoint do
// not overlap.
func addrsOverlap(base1 PhysAddr, size1 Size, base2 PhysAddr, size2 Size) bool {
	return base1 < base2.addClamp(size2) && base2 < base1.addClamp(size1)
}
