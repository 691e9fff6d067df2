//go:build !unix

package physmem

// anonMap allocates from the Go heap when anonymous mappings are not
// available. Heap allocations are at least pointer-aligned, which is all the
// region arrays placed in a space require.
func anonMap(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}
