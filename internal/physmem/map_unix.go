//go:build unix

package physmem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// anonMap returns size bytes of zeroed, page-aligned anonymous mapping and a
// function that unmaps it.
func anonMap(size int) ([]byte, func() error, error) {
	buf, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	release := func() error {
		err := unix.Munmap(buf)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return buf, release, nil
}
