//go:build !windows

package ttyctl

import "fmt"

// ForceUnlink is a Windows-only operation: the original's safe_unlink
// exists because NTFS can hold a file open against deletion in ways POSIX
// unlink never needs working around (POSIX unlink on an open file simply
// succeeds and frees the inode once the last fd closes).
func ForceUnlink(path string) error {
	return newUnlinkError("unlink", fmt.Errorf("ForceUnlink is only implemented on windows"), 0)
}
