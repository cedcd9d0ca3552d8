package persist

import "errors"

var (
	// ErrUnsupportedPlatform is returned by every Store operation on
	// platforms x/sys has no mmap syscall for: a build-tag stub returns
	// persist.ErrUnsupportedPlatform elsewhere.
	ErrUnsupportedPlatform = errors.New("persist: mmap unsupported on this platform")

	// ErrManifestMismatch is returned by ReadLevel when a requested level
	// index has no manifest file in the store's directory.
	ErrManifestMismatch = errors.New("persist: level not present in manifest")
)
