package memblock

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Space maps simulated physical address ranges onto real memory. A ledger
// with a Space attached places grown region arrays inside the tracked
// address space itself; without one, grown arrays live on the Go heap while
// the ledger still performs identical placement accounting.
type Space interface {
	// Bytes returns the memory backing [base, base+size), or ErrBadRange
	// if the range lies outside the space.
	Bytes(base PhysAddr, size Size) ([]byte, error)
}

// Ledger is the early-boot physical-memory ledger: the available "memory"
// set and the claimed "reserved" set, plus the free-space search policy the
// backing-store grower uses.
//
// A Ledger is single-threaded by design; it exists for a boot phase that
// precedes any other execution context. Operations on one set may, through
// array growth, also mutate the other set.
type Ledger struct {
	memory   RegionSet
	reserved RegionSet
	bottomUp bool
	space    Space
	log      logrus.FieldLogger
}

// Option configures a Ledger at construction time.
type Option func(*Ledger)

// WithSpace attaches a Space so that grown region arrays are placed in the
// tracked address space itself.
func WithSpace(sp Space) Option {
	return func(l *Ledger) { l.space = sp }
}

// WithLogger enables debug tracing of growth and fatal paths. The default
// logger discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithBottomUp sets the initial free-space search direction.
func WithBottomUp(enable bool) Option {
	return func(l *Ledger) { l.bottomUp = enable }
}

// WithRegionCapacity overrides the initial per-set region capacity
// (InitRegions), clamped to at least one entry. Mainly useful in tests that
// want to exercise array growth without inserting hundreds of regions.
func WithRegionCapacity(n int) Option {
	return func(l *Ledger) {
		if n < 1 {
			n = 1
		}
		l.memory.regions = make([]Region, n)
		l.reserved.regions = make([]Region, n)
	}
}

// New returns an empty ledger with InitRegions of capacity per set,
// top-down free-space search, and no space attached.
func New(opts ...Option) *Ledger {
	nop := logrus.New()
	nop.SetOutput(io.Discard)

	l := &Ledger{
		memory:   RegionSet{name: "memory", regions: make([]Region, InitRegions)},
		reserved: RegionSet{name: "reserved", regions: make([]Region, InitRegions)},
		log:      nop,
	}
	l.memory.ledger = l
	l.reserved.ledger = l
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Memory returns the available-memory set.
func (l *Ledger) Memory() *RegionSet { return &l.memory }

// Reserved returns the claimed set.
func (l *Ledger) Reserved() *RegionSet { return &l.reserved }

// BottomUp reports the free-space search direction: lowest-address-first
// when true, highest-address-first otherwise.
func (l *Ledger) BottomUp() bool { return l.bottomUp }

// SetBottomUp switches the free-space search direction.
func (l *Ledger) SetBottomUp(enable bool) { l.bottomUp = enable }

// PhysMemSize returns the total size of all available memory regions.
func (l *Ledger) PhysMemSize() Size { return l.memory.totalSize }

// ReservedSize returns the total size of all claimed regions.
func (l *Ledger) ReservedSize() Size { return l.reserved.totalSize }

// StartOfDRAM returns the base of the lowest available memory region. Zero
// on an empty ledger.
func (l *Ledger) StartOfDRAM() PhysAddr {
	if l.memory.cnt == 0 {
		return 0
	}
	return l.memory.regions[0].Base
}

// EndOfDRAM returns the exclusive end of the highest available memory
// region. Zero on an empty ledger.
func (l *Ledger) EndOfDRAM() PhysAddr {
	if l.memory.cnt == 0 {
		return 0
	}
	return l.memory.regions[l.memory.cnt-1].End()
}

// IsMemory reports whether addr falls inside an available memory region.
func (l *Ledger) IsMemory(addr PhysAddr) bool {
	return l.memory.search(addr) >= 0
}

// IsReserved reports whether addr falls inside a claimed region.
func (l *Ledger) IsReserved(addr PhysAddr) bool {
	return l.reserved.search(addr) >= 0
}

// IsRegionMemory reports whether [base, base+size) lies entirely inside a
// single available memory region.
func (l *Ledger) IsRegionMemory(base PhysAddr, size Size) bool {
	return l.memory.Contains(base, size)
}

// OverlapsMemory reports whether [base, base+size) intersects any available
// memory region with positive overlap length.
func (l *Ledger) OverlapsMemory(base PhysAddr, size Size) bool {
	return l.memory.Overlaps(base, size)
}

// OverlapsReserved reports whether [base, base+size) intersects any claimed
// region with positive overlap length.
func (l *Ledger) OverlapsReserved(base PhysAddr, size Size) bool {
	return l.reserved.Overlaps(base, size)
}
