//go:build linux

package ttyctl

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const (
	termiosGetReq  = unix.TCGETS
	termiosSetReq  = unix.TCSETSW
	oflagDelayBits = unix.NLDLY | unix.CRDLY | unix.TABDLY | unix.BSDLY | unix.VTDLY | unix.FFDLY
	oflagOLCUC     = unix.OLCUC
	posixVDisable  = 0 // Linux has no distinct _POSIX_VDISABLE byte; 0 matches glibc's default
)

// openPTY allocates a Linux pty via /dev/ptmx, glibc's getpt() being
// itself nothing more than that same open. The slave is granted and
// unlocked with the TIOCGPTN/TIOCSPTLCK ioctls rather than the legacy
// grantpt/unlockpt library calls, since those just wrap the same ioctls
// and doing it directly avoids cgo.
func openPTY() (*allocatedPTY, error) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR|os.O_NOCTTY, 0)
	if err != nil {
		return nil, err
	}

	var n uint32
	if err := unix.IoctlSetPointerInt(int(master.Fd()), unix.TIOCSPTLCK, 0); err != nil {
		master.Close()
		return nil, err
	}
	n, err = unix.IoctlGetUint32(int(master.Fd()), unix.TIOCGPTN)
	if err != nil {
		master.Close()
		return nil, err
	}

	name := fmt.Sprintf("/dev/pts/%d", n)
	return &allocatedPTY{master: master, name: name}, nil
}
