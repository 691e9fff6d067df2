// Package physmem provides a simulated physical address space for the
// memblock ledger: a contiguous range of fake physical addresses backed by
// an anonymous memory mapping. It stands in for the real RAM an early-boot
// environment would hand the ledger, so that grown region arrays can really
// live inside the address ranges the ledger tracks.
package physmem

import (
	"fmt"

	"github.com/bootmem/memkit/memblock"
)

// Space is one contiguous simulated physical range [Base, Base+Size). It
// implements memblock.Space.
type Space struct {
	base    memblock.PhysAddr
	buf     []byte
	release func() error
}

// New creates a space of the given size whose simulated physical range
// starts at base. Size must be positive.
func New(base memblock.PhysAddr, size memblock.Size) (*Space, error) {
	if size == 0 {
		return nil, fmt.Errorf("physmem: zero-sized space")
	}
	// Region arrays are cast directly over Bytes() results, so simulated
	// offsets must preserve the mapping's 8-byte alignment.
	if base%8 != 0 {
		return nil, fmt.Errorf("physmem: space base %#x is not 8-byte aligned", base)
	}
	if memblock.Size(memblock.MaxPhysAddr-base) < size {
		return nil, fmt.Errorf("physmem: space [%#x, +%d) extends past the maximum address", base, size)
	}
	if size > memblock.Size(^uint(0)>>1) {
		return nil, fmt.Errorf("physmem: space too large to map (%d bytes)", size)
	}
	buf, release, err := anonMap(int(size))
	if err != nil {
		return nil, fmt.Errorf("physmem: mapping %d bytes: %w", size, err)
	}
	return &Space{base: base, buf: buf, release: release}, nil
}

// Base returns the first simulated physical address of the space.
func (sp *Space) Base() memblock.PhysAddr { return sp.base }

// Size returns the size of the space in bytes.
func (sp *Space) Size() memblock.Size { return memblock.Size(len(sp.buf)) }

// Bytes returns the backing memory for the simulated physical range
// [base, base+size), or memblock.ErrBadRange if any part of it falls
// outside the space.
func (sp *Space) Bytes(base memblock.PhysAddr, size memblock.Size) ([]byte, error) {
	if base < sp.base {
		return nil, fmt.Errorf("%w: [%#x, +%d) below space base %#x", memblock.ErrBadRange, base, size, sp.base)
	}
	off := memblock.Size(base - sp.base)
	if off > sp.Size() || sp.Size()-off < size {
		return nil, fmt.Errorf("%w: [%#x, +%d) beyond space end %#x", memblock.ErrBadRange, base, size, sp.base+memblock.PhysAddr(sp.Size()))
	}
	return sp.buf[off : off+size : off+size], nil
}

// Release unmaps the backing memory. The space must not be used afterwards.
func (sp *Space) Release() error {
	if sp.buf == nil {
		return nil
	}
	err := sp.release()
	sp.buf = nil
	return err
}
