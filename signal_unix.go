//go:build !windows

package ttyctl

import "golang.org/x/sys/unix"

// InterruptPid sends SIGINT to pid's process group given only a bare PID,
// with no attached terminal to fall back to writing an INTR character on.
func InterruptPid(pid int) error {
	if err := unix.Kill(-pid, unix.SIGINT); err != nil {
		return newError(ErrSignalFailed, "interrupt-pid", err)
	}
	return nil
}

// TerminatePid sends SIGKILL to pid directly (not its process group).
func TerminatePid(pid int) error {
	if err := unix.Kill(pid, unix.SIGKILL); err != nil {
		return newError(ErrSignalFailed, "terminate-pid", err)
	}
	return nil
}

// WaitPid blocks for pid to exit and returns its exit status using the
// same negated-signal-number convention as (*Child).Wait.
func WaitPid(pid int) (int, error) {
	var ws unix.WaitStatus
	_, err := unix.Wait4(pid, &ws, 0, nil)
	if err != nil {
		return -1, newError(ErrWaitFailed, "wait-pid", err)
	}
	if ws.Signaled() {
		return -int(ws.Signal()), nil
	}
	return ws.ExitStatus(), nil
}
