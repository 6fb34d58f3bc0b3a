//go:build !windows

package textio

import (
	"errors"
	"os"
	"syscall"
)

// SyncDir flushes any file renames to the filesystem.
func SyncDir(dirName string) error {
	// fsync the dir to flush the rename
	dir, err := os.OpenFile(dirName, os.O_RDONLY, os.ModeDir)
	if err != nil {
		return err
	}
	defer dir.Close()

	// Samba-backed volumes (e.g. a Windows share mounted in a container)
	// report EINVAL for directory fsync.
	err = dir.Sync()
	if errors.Is(err, syscall.EINVAL) {
		err = nil
	} else if err != nil {
		return err
	}

	return dir.Close()
}
