//go:build windows

package persist

import "os"

// golang.org/x/sys has no portable Windows mmap syscall; every Store
// operation on this platform fails fast with ErrUnsupportedPlatform
// instead of silently falling back to a non-mmap path.
func mmapFile(f *os.File, size int64, writable bool) ([]byte, error) {
	return nil, ErrUnsupportedPlatform
}

func munmapFile(data []byte) error {
	return ErrUnsupportedPlatform
}
