//go:build windows

package ttyctl

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows          = user32.NewProc("EnumWindows")
	procGetWindowThreadPid   = user32.NewProc("GetWindowThreadProcessId")
	procGetClassName         = user32.NewProc("GetClassNameW")
	procAttachThreadInput    = user32.NewProc("AttachThreadInput")
	procKeybdEvent           = user32.NewProc("keybd_event")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	kernel32ForSignal        = windows.NewLazySystemDLL("kernel32.dll")
	procGetCurrentThreadID   = kernel32ForSignal.NewProc("GetCurrentThreadId")
)

const consoleWindowClass = "ConsoleWindowClass"

// InterruptPid reproduces the original's Windows interrupt_pid: find the
// console window belonging to pid, attach input to it, synthesize a
// Ctrl-C keystroke, and restore the foreground window. When no console
// window belongs to pid, it raises CTRL_BREAK_EVENT for pid instead.
// Given only a bare pid, it does not check that pid still belongs to a
// live process (or to the process the caller means) before signalling it.
func InterruptPid(pid int) error {
	hwnd := findConsoleWindowForPid(uint32(pid))
	if hwnd != 0 {
		injectCtrlCViaWindow(hwnd)
		return nil
	}

	if err := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(pid)); err != nil {
		return newError(ErrSignalFailed, "interrupt-pid", err)
	}
	return nil
}

func findConsoleWindowForPid(pid uint32) syscall.Handle {
	var found syscall.Handle
	cb := syscall.NewCallback(func(hwnd syscall.Handle, _ uintptr) uintptr {
		var winPid uint32
		procGetWindowThreadPid.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&winPid)))
		if winPid != pid {
			return 1 // continue enumeration
		}
		buf := make([]uint16, 256)
		procGetClassName.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if syscall.UTF16ToString(buf) == consoleWindowClass {
			found = hwnd
			return 0 // stop
		}
		return 1
	})
	procEnumWindows.Call(cb, 0)
	return found
}

// injectCtrlCViaWindow attaches our input queue to hwnd's owning thread,
// synthesizes Ctrl-C, waits for the keystroke to reach the console, then
// detaches and restores whatever window was previously in the foreground.
func injectCtrlCViaWindow(hwnd syscall.Handle) {
	prevFg, _, _ := procGetForegroundWindow.Call()
	var ownerPid uint32
	ownerTid, _, _ := procGetWindowThreadPid.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&ownerPid)))
	curTid, _, _ := procGetCurrentThreadID.Call()

	procAttachThreadInput.Call(curTid, ownerTid, 1)
	procSetForegroundWindow.Call(uintptr(hwnd))

	const vkControl = 0x11
	const vkC = 0x43
	const keyeventfKeyup = 0x0002

	procKeybdEvent.Call(vkControl, 0, 0, 0)
	procKeybdEvent.Call(vkC, 0, 0, 0)
	procKeybdEvent.Call(vkC, 0, keyeventfKeyup, 0)
	procKeybdEvent.Call(vkControl, 0, keyeventfKeyup, 0)

	time.Sleep(100 * time.Millisecond)

	procAttachThreadInput.Call(curTid, ownerTid, 0)
	if prevFg != 0 {
		procSetForegroundWindow.Call(prevFg)
	}
}

func terminatePidHandle(pid int) error {
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)
	return windows.TerminateProcess(h, 1)
}

// TerminatePid terminates pid directly, for callers without a *Child.
func TerminatePid(pid int) error {
	if err := terminatePidHandle(pid); err != nil {
		return newError(ErrSignalFailed, "terminate-pid", err)
	}
	return nil
}
