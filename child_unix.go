//go:build !windows

package ttyctl

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Child is a running process attached to a pseudo-terminal: a byte stream
// to the process's controlling terminal plus the control operations
// (resize, signal, wait) that go with owning that terminal.
type Child struct {
	master    *os.File
	slaveName string
	cmd       *exec.Cmd
	pid       int
}

// Spawn starts argv[0] with argv[1:] as arguments, attached to a newly
// allocated pseudo-terminal that becomes its controlling terminal.
func Spawn(argv []string, opts ...Option) (*Child, error) {
	return spawnPOSIX(argv, newSpawnConfig(opts))
}

// Pid returns the child's process ID.
func (c *Child) Pid() int { return c.pid }

// Name returns the pathname of the slave side of the pty, bounded to 32
// bytes to match the fixed-size name buffer a C caller would pass.
func (c *Child) Name() string {
	if len(c.slaveName) > 32 {
		return c.slaveName[:32]
	}
	return c.slaveName
}

// Read reads output the child has written to its controlling terminal.
func (c *Child) Read(p []byte) (int, error) {
	n, err := c.master.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, newError(ErrIOFailed, "read", err)
	}
	return n, err
}

// Write sends p to the child as terminal input.
func (c *Child) Write(p []byte) (int, error) {
	n, err := c.master.Write(p)
	if err != nil {
		return n, newError(ErrIOFailed, "write", err)
	}
	return n, nil
}

// File exposes the master descriptor so callers can pass it to Poll.
func (c *Child) File() *os.File { return c.master }

// SetWinsize reports a new terminal size to the child, raising SIGWINCH
// in its foreground process group.
func (c *Child) SetWinsize(rows, cols int) error {
	if err := setWinsizeFd(c.master.Fd(), rows, cols); err != nil {
		return newError(ErrIOFailed, "resize", err)
	}
	return nil
}

// sendSignalChar writes the control character that the line discipline
// turns into a signal for the terminal's foreground process group; it is
// how Interrupt, Quit and Suspend deliver their signals.
func (c *Child) sendSignalChar(ch byte) error {
	_, err := c.master.Write([]byte{ch})
	if err != nil {
		return newError(ErrSignalFailed, "signal", err)
	}
	return nil
}

// Interrupt delivers SIGINT by writing the INTR character (0x03) to the
// master, the way the original's gvd_interrupt_process does via
// send_signal_via_characters: the line discipline turns it into SIGINT
// for the terminal's foreground process group. This is the mechanism the
// mandatory VINTR=0x03 termios setup in childSetupTTY exists to serve;
// InterruptPid, given only a bare pid and no terminal, uses kill(-pgid)
// instead.
func (c *Child) Interrupt() error {
	return c.sendSignalChar(0x03)
}

// Quit sends SIGQUIT the same way Interrupt sends SIGINT.
func (c *Child) Quit() error {
	return c.sendSignalChar(0x1C)
}

// Suspend sends SIGTSTP the same way Interrupt sends SIGINT.
func (c *Child) Suspend() error {
	return c.sendSignalChar(0x1A)
}

// Terminate closes the master before sending SIGKILL, deliberately in
// that order: the child's next read/write sees EOF immediately even if
// the kill signal is delayed or the process is temporarily unkillable.
func (c *Child) Terminate() error {
	c.master.Close()
	if err := c.cmd.Process.Kill(); err != nil {
		return newError(ErrSignalFailed, "terminate", err)
	}
	return nil
}

// Wait blocks until the child exits and returns its exit status, using a
// negated signal number when the child was killed by a signal rather
// than exiting normally.
func (c *Child) Wait() (int, error) {
	err := c.cmd.Wait()
	if err == nil {
		return c.cmd.ProcessState.ExitCode(), nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return -int(status.Signal()), nil
		}
		return exitErr.ExitCode(), nil
	}
	return -1, newError(ErrWaitFailed, "wait", err)
}

// ResetTTY restores the terminal discipline Spawn originally established,
// in case the child has left the line discipline in a raw or otherwise
// altered state. Applied to the master side, as the original's reset_tty
// does. Whether that reaches the line discipline the slave uses depends
// on the platform: on Linux, termios ioctls on a pty master act on its
// slave; elsewhere the call may leave the slave unchanged.
func (c *Child) ResetTTY() error {
	return childSetupTTY(c.master.Fd())
}

// Close releases the pty. It does not wait for the child; callers that
// need the exit status should call Wait first.
func (c *Child) Close() error {
	return c.master.Close()
}
