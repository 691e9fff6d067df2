// Package memblock implements an early-boot physical-memory ledger: two
// interval sets that track which physical address ranges exist as usable
// memory and which sub-ranges of the address space are currently claimed.
//
// # Overview
//
// A Ledger owns two RegionSets:
//
//   - "memory" — physical memory known to exist, seeded from the firmware
//     memory map via Add/AddNode
//   - "reserved" — ranges currently claimed, via Reserve/Free
//
// Claimed ranges are not required to be subsets of known memory; the two
// sets are tracked independently and only interact through backing-store
// growth.
//
// # Interval algebra
//
// Inserts merge with overlapping and exactly-adjacent regions of equal
// attributes; an insert can absorb any number of neighbors, and re-adding a
// covered range is a no-op. Subtracts split regions as needed: a cut that
// falls strictly inside a region leaves a head and a tail, and removing an
// absent range is a no-op. SetNode and the flag-marking passes retag exactly
// the intersection of a range with the set, splitting at the boundaries.
// All address arithmetic saturates at MaxPhysAddr; a range extending past it
// is truncated, never wrapped.
//
// # Self-hosted growth
//
// Each set starts with a static array of InitRegions entries. The first
// operation that needs more doubles the array, placing the new storage in
// free space tracked by the memory set itself — excluding the array being
// replaced and the range the triggering operation is inserting — and then
// claims that storage in the reserved set. Search direction follows the
// bottom-up policy (SetBottomUp). With a Space attached the array really
// lives at its simulated physical placement; without one the placement is
// accounting only and the array lives on the Go heap.
//
// Out-of-space during growth is the only fatal condition in the package:
// there is no allocator beneath this layer, so it panics with ErrNoSpace.
//
// # Concurrency
//
// None. The ledger is built for a single-threaded boot phase. Note that any
// operation on one set may, through growth, also mutate the other set.
package memblock
