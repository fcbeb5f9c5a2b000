//go:build !windows

package ttyctl

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// allocatedPTY is what each platform's openPTY returns: a master side
// that's always open, and either a pre-opened slave (openpty-style
// platforms) or just a name to open later (ptmx/getpt-style platforms).
type allocatedPTY struct {
	master *os.File
	slave  *os.File // nil if the platform only hands back a name
	name   string
}

// close releases whatever openPTY managed to acquire; used on the
// allocation-failure path so a partial allocation never leaks descriptors.
func (p *allocatedPTY) close() {
	if p == nil {
		return
	}
	if p.master != nil {
		p.master.Close()
	}
	if p.slave != nil {
		p.slave.Close()
	}
}

// openSlaveFlags is overridden on AIX, where the slave must be opened
// O_NONBLOCK so reads can distinguish "no data yet" from true EOF.
var openSlaveFlags = os.O_RDWR

// pushStreamsModules pushes the STREAMS modules a System V pty needs
// (ptem, ldterm, ttcompat) onto the slave. It is a no-op everywhere except
// Solaris/illumos, which overrides it in pty_solaris.go.
var pushStreamsModules = func(fd uintptr) error { return nil }

// childSetupTTY applies this package's terminal discipline to fd, starting
// from its current termios. Applied with the TCSADRAIN-equivalent "wait
// for pending output to drain" semantics.
func childSetupTTY(fd uintptr) error {
	t, err := unix.IoctlGetTermios(int(fd), termiosGetReq)
	if err != nil {
		return err
	}

	t.Iflag &^= unix.IUCLC // don't transform to lower case (0 where absent)
	t.Iflag &^= unix.ISTRIP

	t.Oflag |= unix.OPOST
	t.Oflag &^= unix.ONLCR
	t.Oflag &^= oflagDelayBits
	t.Oflag &^= oflagOLCUC

	t.Cflag = (t.Cflag &^ unix.CSIZE) | unix.CS8

	t.Lflag &^= unix.ECHO
	t.Lflag |= unix.ISIG
	t.Lflag |= unix.ICANON

	t.Cc[unix.VEOF] = 0x04
	t.Cc[unix.VERASE] = posixVDisable
	t.Cc[unix.VKILL] = posixVDisable
	t.Cc[unix.VQUIT] = 0x1C
	t.Cc[unix.VINTR] = 0x03 // must be Ctrl-C: signal delivery relies on it
	t.Cc[unix.VEOL] = posixVDisable
	t.Cc[unix.VSUSP] = 0x1A

	return unix.IoctlSetTermios(int(fd), termiosSetReq, t)
}

// setWinsizeFd writes TIOCSWINSZ to fd.
func setWinsizeFd(fd uintptr, rows, cols int) error {
	ws := &unix.Winsize{Row: uint16(rows), Col: uint16(cols)}
	return unix.IoctlSetWinsize(int(fd), unix.TIOCSWINSZ, ws)
}

// spawnPOSIX allocates a pty, applies the terminal discipline and a
// default window size, then starts the child with the pty as its
// controlling terminal and std streams.
//
// Go cannot safely fork() without exec in a process with the Go runtime's
// background threads, so the fork-then-child-setup-then-exec sequence a
// C implementation would use is expressed instead as os/exec's
// SysProcAttr (Setsid+Setctty), which asks the kernel to perform session
// creation and controlling-terminal acquisition atomically around the
// exec. The termios/winsize configuration that sequence would otherwise
// apply in the child, post-fork, is applied from the parent instead,
// before Start (termios on the slave file, the window size through the
// master): termios and window size are properties
// of the tty line discipline, not of the process that holds the fd, so
// the effect on the eventual child is identical. This is the same
// approach github.com/creack/pty uses.
func spawnPOSIX(argv []string, cfg *spawnConfig) (*Child, error) {
	if len(argv) == 0 {
		return nil, newError(ErrSpawnFailed, "spawn", fmt.Errorf("empty argv"))
	}

	pty, err := openPTY()
	if err != nil {
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	if pty.slave == nil {
		slave, err := os.OpenFile(pty.name, openSlaveFlags, 0)
		if err != nil {
			pty.close()
			return nil, newError(ErrSetupFailed, "spawn", err)
		}
		pty.slave = slave
	}

	if err := pushStreamsModules(pty.slave.Fd()); err != nil {
		pty.close()
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	if err := childSetupTTY(pty.slave.Fd()); err != nil {
		pty.close()
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	rows, cols := cfg.rows, cfg.cols
	if rows <= 0 {
		rows = 24
	}
	if cols <= 0 {
		cols = 80
	}
	_ = setWinsizeFd(pty.master.Fd(), rows, cols)

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = pty.slave
	cmd.Stdout = pty.slave
	cmd.Stderr = pty.slave
	cmd.Env = cfg.env
	cmd.Dir = cfg.dir
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := cmd.Start(); err != nil {
		pty.close()
		return nil, newError(ErrSpawnFailed, "spawn", err)
	}

	// Invariant: the parent never holds the slave-side fd after setup.
	pty.slave.Close()
	pty.slave = nil

	return &Child{
		master:    pty.master,
		slaveName: pty.name,
		cmd:       cmd,
		pid:       cmd.Process.Pid,
	}, nil
}
