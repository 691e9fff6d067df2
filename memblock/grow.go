package memblock

import (
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// exclRange is a range the free-space search must not place storage over.
// Exclusion is strictly overlap-based: a placement that only touches an
// excluded range is legal, and the claim that follows may merge with it.
type exclRange struct {
	base PhysAddr
	size Size
}

// grow doubles the set's region array, relocating it into free space tracked
// by the ledger's memory set.
//
// Two-phase protocol. Allocate-and-copy: find a placement that overlaps
// neither the set's own current dynamic array nor the range the triggering
// operation is currently inserting (pendingBase/pendingSize, zero when the
// caller is not mid-insert), map it and copy the live entries. Commit-and-
// tag: swap the array in, claim the new storage in the reserved set, and
// release the old storage if it was dynamically placed.
//
// The claim can grow the reserved set in turn. That recursion is bounded:
// every growth strictly shrinks the remaining free space and doubles a
// capacity that only ever doubles, so a nested growth always finds the
// reserved set with spare capacity or fails fatally on exhaustion.
//
// Exhaustion panics with ErrNoSpace. There is no allocator beneath this
// layer to fall back on.
func (s *RegionSet) grow(pendingBase PhysAddr, pendingSize Size) {
	l := s.ledger
	newMax := s.Capacity() * 2
	newBytes := pageAlign(Size(newMax) * regionSize)

	var excl []exclRange
	if s.arrayDynamic {
		excl = append(excl, exclRange{s.arrayBase, s.arrayBytes})
	}
	if pendingSize != 0 {
		excl = append(excl, exclRange{pendingBase, pendingSize})
	}

	addr, ok := l.findFreeArea(0, MaxPhysAddr, newBytes, PageSize, excl)
	if !ok {
		panic(fmt.Errorf("%w: cannot double %s array to %d entries (%d bytes)",
			ErrNoSpace, s.name, newMax, newBytes))
	}

	newRegions := l.mapRegions(addr, newBytes, newMax)
	copy(newRegions, s.regions[:s.cnt])
	clear(newRegions[s.cnt:])

	oldBase, oldBytes, oldDynamic := s.arrayBase, s.arrayBytes, s.arrayDynamic
	s.regions = newRegions
	s.arrayBase, s.arrayBytes, s.arrayDynamic = addr, newBytes, true

	l.log.WithFields(logrus.Fields{
		"set":   s.name,
		"max":   newMax,
		"base":  fmt.Sprintf("%#x", addr),
		"bytes": uint64(newBytes),
	}).Debug("memblock: region array doubled")

	l.reserved.insertMerge(addr, newBytes, NodeNone, 0)
	if oldDynamic {
		l.reserved.removeRange(oldBase, oldBytes)
	}
}

// mapRegions materializes a region array of n entries over the chosen
// physical placement. With no space attached the array lives on the Go heap
// and the placement is pure accounting. A space that cannot map a range its
// own ledger handed out is a fatal misconfiguration, not a recoverable
// error: the old array has not been released yet, but the operation that
// needed the growth cannot complete.
func (l *Ledger) mapRegions(base PhysAddr, bytes Size, n int) []Region {
	if l.space == nil {
		return make([]Region, n)
	}
	buf, err := l.space.Bytes(base, bytes)
	if err != nil {
		panic(fmt.Errorf("memblock: mapping region array at %#x: %w", base, err))
	}
	return unsafe.Slice((*Region)(unsafe.Pointer(&buf[0])), n)
}

// FindInRange searches the free space (available memory minus claimed
// ranges) inside [start, end) for a sub-range of the given size, with the
// base aligned to align. Search direction follows the bottom-up policy;
// first fit wins. Returns ok=false when nothing fits.
func (l *Ledger) FindInRange(start, end PhysAddr, size, align Size) (PhysAddr, bool) {
	return l.findFreeArea(start, end, size, align, nil)
}

func (l *Ledger) findFreeArea(start, end PhysAddr, size, align Size, excl []exclRange) (PhysAddr, bool) {
	if size == 0 {
		return 0, false
	}
	var best PhysAddr
	found := false
	it := l.FreeRanges()
	for {
		fs, fe, ok := it.Next()
		if !ok {
			break
		}
		if fs < start {
			fs = start
		}
		if fe > end {
			fe = end
		}
		if fs >= fe {
			continue
		}
		for _, seg := range subtractRanges(fs, fe, excl) {
			lo := seg[0].alignUp(align)
			if lo >= seg[1] || Size(seg[1]-lo) < size {
				continue
			}
			if l.bottomUp {
				return lo, true
			}
			// Free ranges arrive in ascending order, so the last
			// fit seen is the highest one.
			best = (seg[1] - PhysAddr(size)).alignDown(align)
			found = true
		}
	}
	return best, found
}

// subtractRanges returns the sub-segments of [start, end) that have no
// positive-length overlap with any excluded range, in ascending order.
func subtractRanges(start, end PhysAddr, excl []exclRange) [][2]PhysAddr {
	segs := [][2]PhysAddr{{start, end}}
	for _, x := range excl {
		xend := x.base.addClamp(x.size)
		var out [][2]PhysAddr
		for _, sg := range segs {
			if x.base >= sg[1] || xend <= sg[0] {
				out = append(out, sg)
				continue
			}
			if x.base > sg[0] {
				out = append(out, [2]PhysAddr{sg[0], x.base})
			}
			if xend < sg[1] {
				out = append(out, [2]PhysAddr{xend, sg[1]})
			}
		}
		segs = out
	}
	return segs
}
