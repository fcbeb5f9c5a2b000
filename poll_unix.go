//go:build !windows

package ttyctl

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// poll is the POSIX readiness wait: select(2) on the read set and the
// exception set, re-looping only when timeout is infinite and nothing was
// ready. HP-UX's TIOCREQCHECK/TIOCREQSET exceptional-condition handling
// has no target in modern Go (HP-UX is not a supported GOOS) and is not
// reproduced here; see DESIGN.md.
func poll(files []*os.File, timeout time.Duration) (int, []bool, error) {
	isSet := make([]bool, len(files))
	if len(files) == 0 {
		return 0, isSet, nil
	}

	infinite := timeout < 0

	var tv unix.Timeval
	if !infinite {
		tv = unix.NsecToTimeval(timeout.Nanoseconds())
	}

	for {
		var rset, eset unix.FdSet
		maxFd := 0
		for _, f := range files {
			fd := int(f.Fd())
			fdSet(&rset, fd)
			fdSet(&eset, fd)
			if fd > maxFd {
				maxFd = fd
			}
		}

		var tvp *unix.Timeval
		if !infinite {
			tvp = &tv
		}

		ready, err := unix.Select(maxFd+1, &rset, nil, &eset, tvp)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return -1, isSet, newError(ErrIOFailed, "poll", err)
		}

		if ready > 0 {
			for i, f := range files {
				if fdIsSet(&rset, int(f.Fd())) {
					isSet[i] = true
				}
			}
			return ready, isSet, nil
		}

		if !infinite {
			return 0, isSet, nil
		}
		// infinite wait with nothing ready: select spuriously returned,
		// loop again.
	}
}

// fdBits is the width in bits of one unix.FdSet.Bits word, which varies by
// platform (int32 on some 32-bit targets, int64 elsewhere).
var fdBits = int(unsafe.Sizeof(unix.FdSet{}.Bits[0])) * 8

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/fdBits] |= 1 << (uint(fd) % uint(fdBits))
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/fdBits]&(1<<(uint(fd)%uint(fdBits))) != 0
}
