// Package plan turns a user-facing move invocation into an ordered
// batch of atomic rename operations.
package plan

import (
	"errors"
	"fmt"
	"github.com/cirruslabs/rawmv/internal/renameat"
	"github.com/samber/lo"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoSources               = errors.New("missing file operand")
	ErrNoDestination           = errors.New("missing destination operand")
	ErrFlagConflict            = errors.New("cannot use '--no-replace' and '--exchange' together")
	ErrDestinationNotDirectory = errors.New("destination is not an existing directory")
	ErrExactOperands           = errors.New("expected exactly one source when the destination is used verbatim")
	ErrNoBaseName              = errors.New("source doesn't have a base name")
)

// Flags selects the kernel-side behavior of each rename operation.
type Flags struct {
	// NoReplace fails the operation instead of overwriting an existing
	// destination.
	NoReplace bool

	// Exchange atomically swaps source and destination; both must exist.
	Exchange bool

	// Whiteout leaves a whiteout marker in place of the source
	// (overlay/union filesystem semantics).
	Whiteout bool
}

// Bits returns the kernel-recognized flag bits for the selected
// capabilities, with no additional bits of our own.
func (flags Flags) Bits() uint {
	var bits uint

	if flags.NoReplace {
		bits |= renameat.NoReplace
	}
	if flags.Exchange {
		bits |= renameat.Exchange
	}
	if flags.Whiteout {
		bits |= renameat.Whiteout
	}

	return bits
}

func (flags Flags) String() string {
	var names []string

	if flags.NoReplace {
		names = append(names, "no-replace")
	}
	if flags.Exchange {
		names = append(names, "exchange")
	}
	if flags.Whiteout {
		names = append(names, "whiteout")
	}

	if len(names) == 0 {
		return "-"
	}

	return strings.Join(names, ",")
}

// Operation is a single atomic rename of Source to Destination.
type Operation struct {
	Source      string
	Destination string
	Flags       Flags
}

// StatFunc probes a path's metadata. It follows symlinks, like os.Stat.
type StatFunc func(name string) (os.FileInfo, error)

// Builder validates a move invocation and produces one Operation per
// source, preserving source order.
type Builder struct {
	Flags Flags

	// IntoDirectory forces directory semantics for the destination,
	// regardless of the number of sources.
	IntoDirectory bool

	// ExactDestination uses the destination path verbatim instead of
	// auto-detecting a directory destination; exactly one source is
	// expected in this mode.
	ExactDestination bool

	// Stat probes whether the destination is an existing directory and
	// defaults to os.Stat. The probe is inherently racy against
	// concurrent filesystem changes: the atomic rename call itself is
	// the sole correctness boundary, the probe only picks the path
	// resolution strategy.
	Stat StatFunc
}

// Build produces the operation batch for moving sources to destination.
// Validation failures produce no partial batch: either every source
// gets an operation or none do.
func (builder *Builder) Build(sources []string, destination string) ([]Operation, error) {
	// The kernel rejects RENAME_NOREPLACE combined with RENAME_EXCHANGE,
	// so reject it here, before any filesystem access
	if builder.Flags.NoReplace && builder.Flags.Exchange {
		return nil, ErrFlagConflict
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	if builder.ExactDestination {
		if len(sources) != 1 {
			return nil, ErrExactOperands
		}

		return builder.operations(sources, destination, false)
	}

	intoDirectory := builder.IntoDirectory || len(sources) > 1

	if !intoDirectory {
		// A single source moves *into* the destination when the
		// destination is an existing directory, mirroring mv(1)
		intoDirectory = builder.isDirectory(destination)
	} else if !builder.isDirectory(destination) {
		return nil, fmt.Errorf("%w: %q", ErrDestinationNotDirectory, destination)
	}

	return builder.operations(sources, destination, intoDirectory)
}

func (builder *Builder) operations(sources []string, destination string, intoDirectory bool) ([]Operation, error) {
	if !intoDirectory {
		return []Operation{
			{
				Source:      sources[0],
				Destination: destination,
				Flags:       builder.Flags,
			},
		}, nil
	}

	for _, source := range sources {
		if !hasBaseName(source) {
			return nil, fmt.Errorf("%w: %q", ErrNoBaseName, source)
		}
	}

	return lo.Map(sources, func(source string, _ int) Operation {
		return Operation{
			Source:      source,
			Destination: filepath.Join(destination, filepath.Base(source)),
			Flags:       builder.Flags,
		}
	}), nil
}

func (builder *Builder) isDirectory(path string) bool {
	stat := builder.Stat
	if stat == nil {
		stat = os.Stat
	}

	fileInfo, err := stat(path)

	return err == nil && fileInfo.IsDir()
}

func hasBaseName(path string) bool {
	switch filepath.Base(path) {
	case "/", ".", "..":
		return false
	default:
		return true
	}
}
