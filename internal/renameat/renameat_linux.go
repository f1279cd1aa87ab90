package renameat

import (
	"golang.org/x/sys/unix"
)

const (
	NoReplace = unix.RENAME_NOREPLACE
	Exchange  = unix.RENAME_EXCHANGE
	Whiteout  = unix.RENAME_WHITEOUT
)

func renameat(oldpath string, newpath string, flags uint) error {
	err := unix.Renameat2(unix.AT_FDCWD, oldpath, unix.AT_FDCWD, newpath, flags)
	if err != nil {
		return err
	}

	return nil
}
