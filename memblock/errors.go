package memblock

import "errors"

var (
	// ErrNoSpace indicates that no free range large enough exists for a
	// doubled region array. There is no allocator beneath this layer, so
	// the condition is unrecoverable: it is delivered via panic, wrapped
	// in a message naming the set that failed to grow.
	ErrNoSpace = errors.New("memblock: no free range for region array")

	// ErrBadRange indicates an address range outside the space handed to
	// the ledger. Only returned by mapped-mode backing stores.
	ErrBadRange = errors.New("memblock: range outside simulated space")
)
