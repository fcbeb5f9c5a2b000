//go:build windows

package ttyctl

import (
	"debug/pe"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Child is a running process attached via anonymous pipes, the Windows
// analogue of the POSIX pty-backed Child. ConPTY did not exist when this
// system's Windows side was designed, so stdio is plumbed through
// CreatePipe instead, matching that original pipe-based transport rather
// than a newer pty-like alternative.
type Child struct {
	proc   windows.Handle
	thread windows.Handle
	pid    int

	stdin  *os.File // write end, parent side
	stdout *os.File // read end, parent side; stderr is the same pipe
}

// Spawn starts argv[0] with argv[1:] as arguments, connecting its stdio to
// anonymous pipes. All children get CREATE_NEW_CONSOLE (never
// CREATE_NEW_PROCESS_GROUP, which would disable Ctrl-C injection);
// console-subsystem children additionally get SW_HIDE so that new
// console window never becomes visible. If subsystem detection itself
// fails, the command is run under "cmd /c " and treated as console, the
// same fallback the original's nt_spawnve uses.
func Spawn(argv []string, opts ...Option) (*Child, error) {
	cfg := newSpawnConfig(opts)
	if len(argv) == 0 {
		return nil, newError(ErrSpawnFailed, "spawn", fmt.Errorf("empty argv"))
	}

	inRead, inWrite, err := pipePair()
	if err != nil {
		return nil, newError(ErrSetupFailed, "spawn", err)
	}
	outRead, outWrite, err := pipePair()
	if err != nil {
		inRead.Close()
		inWrite.Close()
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	// The child's ends must be inheritable; the parent's ends must not be,
	// so a grandchild spawned later doesn't also inherit them.
	if err := windows.SetHandleInformation(windows.Handle(inWrite.Fd()), windows.HANDLE_FLAG_INHERIT, 0); err != nil {
		return nil, newError(ErrSetupFailed, "spawn", err)
	}
	if err := windows.SetHandleInformation(windows.Handle(outRead.Fd()), windows.HANDLE_FLAG_INHERIT, 0); err != nil {
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	gui, err := isGUIApp(argv[0])
	useCmd := false
	if err != nil {
		currentLogger().Sugar().Warnw("subsystem detection failed, using cmd /c and assuming console app", "path", argv[0], "err", err)
		gui = false
		useCmd = true
	}

	si := &windows.StartupInfo{
		Cb:         uint32(unsafeSizeofStartupInfo()),
		Flags:      windows.STARTF_USESTDHANDLES,
		StdInput:   windows.Handle(inRead.Fd()),
		StdOutput:  windows.Handle(outWrite.Fd()),
		StdErr:     windows.Handle(outWrite.Fd()),
	}
	if !gui {
		si.Flags |= windows.STARTF_USESHOWWINDOW
		si.ShowWindow = windows.SW_HIDE
	}

	cmdLine := buildWindowsCommandLine(argv)
	if useCmd {
		cmdLine = "cmd /c " + cmdLine
	}
	cmdLinePtr, err := windows.UTF16PtrFromString(cmdLine)
	if err != nil {
		return nil, newError(ErrSetupFailed, "spawn", err)
	}

	var env *uint16
	if cfg.env != nil {
		env, err = buildWindowsEnvBlock(cfg.env)
		if err != nil {
			return nil, newError(ErrSetupFailed, "spawn", err)
		}
	}
	var dir *uint16
	if cfg.dir != "" {
		dir, err = windows.UTF16PtrFromString(cfg.dir)
		if err != nil {
			return nil, newError(ErrSetupFailed, "spawn", err)
		}
	}

	var pi windows.ProcessInformation
	creationFlags := uint32(windows.CREATE_NEW_CONSOLE)

	err = windows.CreateProcess(
		nil,
		cmdLinePtr,
		nil,
		nil,
		true, // bInheritHandles
		creationFlags,
		env,
		dir,
		si,
		&pi,
	)
	inRead.Close()
	outWrite.Close()
	if err != nil {
		inWrite.Close()
		outRead.Close()
		return nil, newError(ErrSpawnFailed, "spawn", err)
	}

	return &Child{
		proc:   pi.Process,
		thread: pi.Thread,
		pid:    int(pi.ProcessId),
		stdin:  inWrite,
		stdout: outRead,
	}, nil
}

func (c *Child) Pid() int { return c.pid }

func (c *Child) Read(p []byte) (int, error) {
	n, err := c.stdout.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, newError(ErrIOFailed, "read", err)
	}
	return n, err
}

func (c *Child) Write(p []byte) (int, error) {
	n, err := c.stdin.Write(p)
	if err != nil {
		return n, newError(ErrIOFailed, "write", err)
	}
	return n, nil
}

// File exposes the read end so callers can pass it to Poll.
func (c *Child) File() *os.File { return c.stdout }

// SetWinsize is a no-op on the pipe-backed Windows child: there is no pty
// line discipline to inform of a new size, matching the original's
// Windows variant, which never implements winsize at all.
func (c *Child) SetWinsize(rows, cols int) error { return nil }

// ResetTTY is a no-op on Windows for the same reason SetWinsize is.
func (c *Child) ResetTTY() error { return nil }

// Interrupt injects a console Ctrl-C/Ctrl-Break the way the original's
// gvd_interrupt_process does, after first checking the process is still
// the one that owns this PID (STILL_ACTIVE), not a reused PID.
func (c *Child) Interrupt() error {
	var code uint32
	if err := windows.GetExitCodeProcess(c.proc, &code); err != nil {
		return newError(ErrSignalFailed, "interrupt", err)
	}
	if code != windows.STILL_ACTIVE {
		return nil
	}
	return InterruptPid(c.pid)
}

// Terminate calls TerminateProcess.
func (c *Child) Terminate() error {
	c.stdin.Close()
	c.stdout.Close()
	if err := windows.TerminateProcess(c.proc, 1); err != nil {
		return newError(ErrSignalFailed, "terminate", err)
	}
	return nil
}

// Wait blocks for the process to exit and returns its exit code.
func (c *Child) Wait() (int, error) {
	s, err := windows.WaitForSingleObject(c.proc, windows.INFINITE)
	if err != nil || s != windows.WAIT_OBJECT_0 {
		return -1, newError(ErrWaitFailed, "wait", err)
	}
	var code uint32
	if err := windows.GetExitCodeProcess(c.proc, &code); err != nil {
		return -1, newError(ErrWaitFailed, "wait", err)
	}
	windows.CloseHandle(c.thread)
	windows.CloseHandle(c.proc)
	return int(code), nil
}

func (c *Child) Close() error {
	c.stdin.Close()
	return c.stdout.Close()
}

func pipePair() (read, write *os.File, err error) {
	var rh, wh windows.Handle
	sa := &windows.SecurityAttributes{
		Length:        uint32(sizeofSecurityAttributes()),
		InheritHandle: 1,
	}
	if err := windows.CreatePipe(&rh, &wh, sa, 0); err != nil {
		return nil, nil, err
	}
	return os.NewFile(uintptr(rh), "|0"), os.NewFile(uintptr(wh), "|1"), nil
}

// isGUIApp inspects path's PE headers to decide whether CreateProcess
// should leave it console-less, mirroring the original's is_gui_app:
// only WINDOWS_CUI, OS2_CUI, and POSIX_CUI are console subsystems;
// everything else — including IMAGE_SUBSYSTEM_UNKNOWN and NATIVE — is
// treated as GUI, matching is_gui_app's own default/fallthrough
// (terminals.c), which is the spec.md §9 Open Question 2 resolution.
func isGUIApp(path string) (bool, error) {
	f, err := pe.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	var subsystem uint16
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		subsystem = oh.Subsystem
	case *pe.OptionalHeader64:
		subsystem = oh.Subsystem
	default:
		return false, fmt.Errorf("unrecognized optional header")
	}
	switch subsystem {
	case windowsSubsystemWindowsCUI, windowsSubsystemOS2CUI, windowsSubsystemPosixCUI:
		return false, nil
	default:
		return true, nil
	}
}

const (
	windowsSubsystemWindowsCUI = 3 // IMAGE_SUBSYSTEM_WINDOWS_CUI
	windowsSubsystemOS2CUI     = 5 // IMAGE_SUBSYSTEM_OS2_CUI
	windowsSubsystemPosixCUI   = 7 // IMAGE_SUBSYSTEM_POSIX_CUI
)

func buildWindowsEnvBlock(env []string) (*uint16, error) {
	var buf []uint16
	for _, kv := range env {
		u, err := syscall.UTF16FromString(kv)
		if err != nil {
			return nil, err
		}
		buf = append(buf, u[:len(u)-1]...)
		buf = append(buf, 0)
	}
	buf = append(buf, 0)
	return &buf[0], nil
}

func unsafeSizeofStartupInfo() int {
	return int(unsafe.Sizeof(windows.StartupInfo{}))
}

func sizeofSecurityAttributes() int {
	return int(unsafe.Sizeof(windows.SecurityAttributes{}))
}
