//go:build aix

package ttyctl

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	termiosGetReq  = unix.TCGETS
	termiosSetReq  = unix.TCSETSW
	oflagDelayBits = 0
	oflagOLCUC     = 0
	posixVDisable  = 0

	aixSlaveOpenFlags = unix.O_RDWR | unix.O_NONBLOCK
)

func init() {
	openSlaveFlags = aixSlaveOpenFlags
}

// openPTY allocates an AIX pty from the /dev/ptc clone device. AIX's
// ptsname still needs the grantpt/unlockpt pair via cgo; the slave is
// opened O_NONBLOCK by the caller (see the openSlaveFlags override
// above) so a read before the child writes anything doesn't block
// forever.
func openPTY() (*allocatedPTY, error) {
	master, err := os.OpenFile("/dev/ptc", os.O_RDWR, 0)
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
