//go:build !unix && !windows

package mmap

import "os"

// ReadFile reads the named file into memory.
// Memory mapping is not available on this platform.
func ReadFile[T ~[]byte | ~string](name string) (T, error) {
	b, err := os.ReadFile(name)
	return T(b), err
}

// Unmap is a no-op on this platform.
func Unmap[T ~[]byte | ~string](data T) error {
	return nil
}
