//go:build windows

package ttyctl

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"github.com/Microsoft/go-winio"
	"golang.org/x/sys/windows"
)

var (
	kernel32ForUnlink          = windows.NewLazySystemDLL("kernel32.dll")
	procSetFileInformationByH  = kernel32ForUnlink.NewProc("SetFileInformationByHandle")
)

// fileDispositionInfoClass is FILE_INFO_BY_HANDLE_CLASS's FileDispositionInfo
// member (4), used with SetFileInformationByHandle to mark a handle
// delete-on-close the way the original's FileDispositionInformation does.
const fileDispositionInfoClass = 4

type fileDispositionInfo struct {
	DeleteFile uint8
	_          [3]byte
}

func setFileDispositionDelete(h windows.Handle) error {
	info := fileDispositionInfo{DeleteFile: 1}
	ret, _, err := procSetFileInformationByH.Call(
		uintptr(h),
		uintptr(fileDispositionInfoClass),
		uintptr(unsafe.Pointer(&info)),
		uintptr(unsafe.Sizeof(info)),
	)
	if ret == 0 {
		return err
	}
	return nil
}

// ForceUnlink removes path even when it is read-only, held open by
// another process for anything short of FILE_SHARE_DELETE, or (for
// directories) needs a few retries to observe as empty, mirroring the
// original's safe_unlink. Where the original binds NTDLL natives directly
// (NtOpenFile/NtQueryAttributesFile/NtSetInformationFile/
// NtQueryDirectoryFile), this uses the Win32-level equivalents that
// golang.org/x/sys/windows already exposes (CreateFile with
// FILE_FLAG_BACKUP_SEMANTICS, SetFileInformationByHandle, MoveFileExW)
// plus os.ReadDir for the emptiness check — see DESIGN.md for why that
// substitution is faithful to the same retry/move-away/delete state
// machine without hand-binding an NTDLL surface Win32 already covers.
//
// A reparse point (symlink or junction) is opened with
// FILE_FLAG_OPEN_REPARSE_POINT, so ForceUnlink removes the link itself,
// the directory entry it was given, never the link's target.
func ForceUnlink(path string) error {
	attrs, err := winio.GetFileBasicInfo(path)
	if err != nil {
		if fi, statErr := os.Lstat(path); statErr != nil || fi == nil {
			return newUnlinkError("unlink", err, DebugQueryFailed)
		}
	} else if attrs.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0 {
		attrs.FileAttributes &^= windows.FILE_ATTRIBUTE_READONLY
		if err := winio.SetFileBasicInfo(path, attrs); err != nil {
			return newUnlinkError("unlink", err, DebugQueryFailed)
		}
	}

	isDir := false
	if fi, err := os.Lstat(path); err == nil {
		isDir = fi.IsDir()
	}

	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return newUnlinkError("unlink", err, DebugQueryFailed)
	}

	access := uint32(windows.DELETE)
	share := uint32(windows.FILE_SHARE_DELETE)
	flags := uint32(windows.FILE_FLAG_BACKUP_SEMANTICS | windows.FILE_FLAG_OPEN_REPARSE_POINT)
	if isDir {
		access |= windows.FILE_LIST_DIRECTORY | windows.SYNCHRONIZE
	}

	var handle windows.Handle
	tryToMoveAway := false

	openAttempts := 10
	for {
		handle, err = windows.CreateFile(pathPtr, access, share, nil, windows.OPEN_EXISTING, flags, 0)
		if err == nil {
			break
		}
		if err == windows.ERROR_DELETE_PENDING {
			_ = DebugAlreadyPending // already scheduled for deletion; nothing to do
			return nil
		}
		if err == windows.ERROR_SHARING_VIOLATION {
			share = windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE | windows.FILE_SHARE_DELETE
			tryToMoveAway = true
			openAttempts--
			if openAttempts < 2 {
				return newUnlinkError("unlink", err, DebugSharingExhausted)
			}
			time.Sleep(5 * time.Millisecond)
			continue
		}
		return newUnlinkError("unlink", err, DebugOpenFailed)
	}
	defer windows.CloseHandle(handle)

	movedAway := false
	if tryToMoveAway {
		if isDir {
			empty, emptyErr := dirIsEmpty(path)
			if emptyErr != nil {
				return newUnlinkError("unlink", emptyErr, DebugOpenFailed)
			}
			if !empty {
				// Spec invariant: a non-empty directory is never renamed;
				// report directory-not-empty and leave its contents alone.
				return newUnlinkError("unlink", err, DebugDirectoryNotEmpty)
			}
		}
		if err := moveAway(path, handle); err == nil {
			movedAway = true
		}
	}

	tryCount := 20
	if movedAway {
		tryCount = 5
	}

	var lastErr error
	for tryCount > 0 {
		err := setFileDispositionDelete(handle)
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		if err == windows.ERROR_DIR_NOT_EMPTY {
			empty, emptyErr := dirIsEmpty(path)
			if emptyErr == nil && !empty {
				return newUnlinkError("unlink", err, DebugDirectoryNotEmpty)
			}
		} else if !movedAway {
			if err := moveAway(path, handle); err == nil {
				movedAway = true
			}
		}
		time.Sleep(5 * time.Millisecond)
		tryCount--
	}

	if lastErr != nil {
		if movedAway {
			return newUnlinkError("unlink", nil, DebugMovedButDeleteFailed)
		}
		return newUnlinkError("unlink", lastErr, DebugOpenFailed)
	}
	return nil
}

// moveAway renames the open file/directory into a trash directory next to
// its own volume root, keyed by its file index so collisions can't
// happen, mirroring the original's move_away.
func moveAway(path string, handle windows.Handle) error {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &info); err != nil {
		return err
	}
	fileID := uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow)

	vol := filepath.VolumeName(path)
	if vol == "" {
		vol = "C:"
	}
	trashDir := filepath.Join(vol+`\`, `tmp`, `trash`)
	if err := os.MkdirAll(trashDir, 0700); err != nil {
		return err
	}
	dest := filepath.Join(trashDir, fmt.Sprintf("%016X", fileID))

	destPtr, err := windows.UTF16PtrFromString(dest)
	if err != nil {
		return err
	}
	srcPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(srcPtr, destPtr, windows.MOVEFILE_REPLACE_EXISTING)
}

func dirIsEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
