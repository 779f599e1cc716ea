//go:build unix || windows

// Package mmap maps read-only files into memory.
package mmap

import (
	"os"
	"unsafe"
)

// ReadFile maps the named file into memory for reading.
//
// The returned data must not be used after calling [Unmap] on it.
// Strings derived from it must be cloned if they outlive the mapping.
func ReadFile[T ~[]byte | ~string](name string) (data T, err error) {
	f, err := os.Open(name)
	if err != nil {
		return
	}
	defer f.Close()

	fs, err := f.Stat()
	if err != nil {
		return
	}

	size := fs.Size()
	if size == 0 {
		return
	}

	b, err := readFile(f, size)
	if err != nil {
		return
	}

	return *(*T)(unsafe.Pointer(&b)), nil
}

// Unmap removes the memory mapping.
func Unmap[T ~[]byte | ~string](data T) error {
	if len(data) == 0 {
		return nil
	}
	p := *(*unsafe.Pointer)(unsafe.Pointer(&data))
	return unmap(unsafe.Slice((*byte)(p), len(data)))
}
