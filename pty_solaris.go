//go:build solaris || illumos

package ttyctl

/*
#include <stdlib.h>
#include <stropts.h>
#include <fcntl.h>
*/
import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	termiosGetReq  = unix.TCGETS
	termiosSetReq  = unix.TCSETSW
	oflagDelayBits = 0
	oflagOLCUC     = 0
	posixVDisable  = 0
)

// openPTY allocates a System V STREAMS pty: clone-open /dev/ptmx, then
// grantpt/unlockpt/ptsname via cgo the same way the AIX build does,
// since Solaris provides the same library calls.
func openPTY() (*allocatedPTY, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	fd := C.int(master.Fd())

	if ret, errno := C.grantpt(fd); ret != 0 {
		master.Close()
		return nil, fmt.Errorf("grantpt: %w", errno)
	}
	if ret, errno := C.unlockpt(fd); ret != 0 {
		master.Close()
		return nil, fmt.Errorf("unlockpt: %w", errno)
	}
	cname, errno := C.ptsname(fd)
	if cname == nil {
		master.Close()
		return nil, fmt.Errorf("ptsname: %w", errno)
	}
	name := C.GoString(cname)

	return &allocatedPTY{master: master, name: name}, nil
}

// init installs the pushStreamsModules hook, which pushes the STREAMS
// modules a freshly opened
// slave needs before it behaves like a terminal: ptem (pseudo-terminal
// emulation), ldterm (line discipline), ttcompat (ioctl compatibility).
func init() {
	pushStreamsModules = func(fd uintptr) error {
		for _, mod := range []string{"ptem", "ldterm", "ttcompat"} {
			cmod := C.CString(mod)
			ret, errno := C.ioctl(C.int(fd), C.I_PUSH, unsafe.Pointer(cmod))
			C.free(unsafe.Pointer(cmod))
			if ret != 0 {
				return fmt.Errorf("I_PUSH %s: %w", mod, errno)
			}
		}
		return nil
	}
}
