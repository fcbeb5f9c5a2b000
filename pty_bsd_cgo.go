//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package ttyctl

/*
#include <stdlib.h>
#include <util.h>
*/
import "C"

import "unsafe"

// openptyCgo wraps libc's openpty(3), reaching for cgo the same way the
// Solaris/AIX builds do for grantpt/unlockpt/ptsname; the Linux build
// needs no cgo at all, since TIOCGPTN/TIOCSPTLCK cover the same ground
// as plain ioctls.
func openptyCgo() (masterFd, slaveFd int, name string, err error) {
	var cMaster, cSlave C.int
	nameBuf := make([]byte, 128)

	ret, errno := C.openpty(&cMaster, &cSlave, (*C.char)(unsafe.Pointer(&nameBuf[0])), nil, nil)
	if ret != 0 {
		return 0, 0, "", errno
	}

	n := 0
	for n < len(nameBuf) && nameBuf[n] != 0 {
		n++
	}
	return int(cMaster), int(cSlave), string(nameBuf[:n]), nil
}
