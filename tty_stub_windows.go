//go:build windows

package ttyctl

import "fmt"

// StandaloneTTY has no Windows implementation: the original's Windows
// variant never implements new_tty/close_tty/tty_name/tty_fd at all, only
// the POSIX side does.
type StandaloneTTY struct{}

func NewStandaloneTTY(path string) (*StandaloneTTY, error) {
	return nil, newError(ErrSetupFailed, "new-tty", fmt.Errorf("standalone tty not supported on windows"))
}

func (t *StandaloneTTY) Close() error { return nil }
func (t *StandaloneTTY) Name() string { return "" }
func (t *StandaloneTTY) Fd() uintptr  { return 0 }

// TTYSupported reports whether this platform can open a controlling
// terminal directly. Always false on Windows.
func TTYSupported() bool { return false }
