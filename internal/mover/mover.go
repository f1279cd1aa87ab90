// Package mover executes rename operations in order, failing fast on
// the first error.
//
// There is no copy-and-delete fallback: a rename that the kernel cannot
// satisfy atomically (notably a cross-filesystem move) is reported
// as-is, never emulated. Emulating it would turn a single atomic
// operation into a multi-step one that can leave a partially copied
// file behind on failure or interruption.
package mover

import (
	"errors"
	"fmt"
	"github.com/cirruslabs/rawmv/internal/plan"
	"github.com/cirruslabs/rawmv/internal/renameat"
	"syscall"
)

var (
	ErrAlreadyExists    = errors.New("destination already exists")
	ErrCrossDevice      = errors.New("source and destination are on different filesystems")
	ErrNotFound         = errors.New("no such file or directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotEmpty         = errors.New("destination directory is not empty")
	ErrUnsupported      = errors.New("requested rename flags are not supported by the running kernel")
)

// RenameFunc is the atomic rename primitive invoked once per operation.
type RenameFunc func(oldpath string, newpath string, flags uint) error

// Mover applies operations one at a time, in batch order. Each call to
// the rename primitive blocks until the kernel completes or fails it
// atomically.
type Mover struct {
	// Rename defaults to renameat.Renameat.
	Rename RenameFunc

	// Applied, when non-nil, is called after each successfully applied
	// operation.
	Applied func(op plan.Operation)
}

// Error describes the single failed operation that stopped a batch.
type Error struct {
	// Op is the operation that failed.
	Op plan.Operation

	// Kind is one of the Err* sentinels, or nil when the kernel
	// signaled a condition outside the taxonomy.
	Kind error

	// Errno is the raw error reported by the kernel.
	Errno error
}

func (err *Error) Error() string {
	return fmt.Sprintf("cannot rename %q to %q: %v", err.Op.Source, err.Op.Destination, err.reason())
}

func (err *Error) reason() error {
	if err.Kind != nil {
		return err.Kind
	}

	return err.Errno
}

func (err *Error) Unwrap() []error {
	if err.Kind == nil {
		return []error{err.Errno}
	}

	return []error{err.Kind, err.Errno}
}

// Move applies operations in input order and stops at the first
// failure. Operations applied before the failure remain applied, the
// failed operation leaves the filesystem unchanged, and the remaining
// operations are not attempted.
func (mover *Mover) Move(ops []plan.Operation) error {
	rename := mover.Rename
	if rename == nil {
		rename = renameat.Renameat
	}

	for _, op := range ops {
		if err := rename(op.Source, op.Destination, op.Flags.Bits()); err != nil {
			return &Error{
				Op:    op,
				Kind:  classify(err, op.Flags),
				Errno: err,
			}
		}

		if mover.Applied != nil {
			mover.Applied(op)
		}
	}

	return nil
}

func classify(err error, flags plan.Flags) error {
	switch {
	case errors.Is(err, renameat.ErrUnsupported):
		return ErrUnsupported
	case errors.Is(err, syscall.EEXIST):
		if flags.NoReplace {
			return ErrAlreadyExists
		}

		// Without RENAME_NOREPLACE the kernel only objects to an
		// existing destination when it's a directory it cannot empty
		return ErrNotEmpty
	case errors.Is(err, syscall.ENOTEMPTY):
		return ErrNotEmpty
	case errors.Is(err, syscall.EXDEV):
		return ErrCrossDevice
	case errors.Is(err, syscall.ENOENT):
		return ErrNotFound
	case errors.Is(err, syscall.EACCES), errors.Is(err, syscall.EPERM):
		return ErrPermissionDenied
	case errors.Is(err, syscall.EINVAL), errors.Is(err, syscall.ENOSYS):
		// EINVAL: the filesystem doesn't implement the requested flags;
		// ENOSYS: the kernel predates renameat2(2)
		return ErrUnsupported
	default:
		return nil
	}
}
