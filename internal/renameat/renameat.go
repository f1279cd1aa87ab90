// Package renameat wraps the kernel's atomic rename primitive with
// flags support (renameat2(2) on Linux).
//
// A rename either fully succeeds or leaves the filesystem unchanged;
// there is deliberately no copy-based fallback anywhere in this package
// or its callers.
package renameat

import "errors"

var ErrUnsupported = errors.New("atomic rename with flags is not supported on this platform")

// Renameat atomically renames oldpath to newpath, applying the given
// flag bits.
func Renameat(oldpath string, newpath string, flags uint) error {
	return renameat(oldpath, newpath, flags)
}
