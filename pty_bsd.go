//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package ttyctl

import (
	"os"

	"golang.org/x/sys/unix"
)

const (
	termiosGetReq  = unix.TIOCGETA
	termiosSetReq  = unix.TIOCSETAW
	oflagDelayBits = 0 // BSD termios has no NLDLY/CRDLY/TABDLY/BSDLY/VTDLY/FFDLY group
	oflagOLCUC     = 0 // BSD termios has no OLCUC bit; case folding isn't a BSD tty feature
	posixVDisable  = 0xff
)

// openPTY allocates a BSD-family pty with openpty(3), the grantpt/
// unlockpt/ptsname dance those libc's don't need: openpty hands back
// both ends already open and matched.
func openPTY() (*allocatedPTY, error) {
	master, slave, name, err := openptyCgo()
	if err != nil {
		return nil, err
	}
	return &allocatedPTY{
		master: os.NewFile(uintptr(master), "ptmx"),
		slave:  os.NewFile(uintptr(slave), name),
		name:   name,
	}, nil
}
