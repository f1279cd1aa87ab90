//go:build !linux

package renameat

// Same bit values as the Linux ABI, so that flag sets built on any
// platform agree on the wire contract.
const (
	NoReplace = 1 << 0
	Exchange  = 1 << 1
	Whiteout  = 1 << 2
)

func renameat(oldpath string, newpath string, flags uint) error {
	return ErrUnsupported
}
