//go:build !windows

// Command ttyecho spawns a shell under a controlling terminal and
// relays bytes between it and the calling terminal, standing in for the
// script-language bindings that would normally sit on top of this
// library. It is POSIX-only: SIGWINCH-driven live resize has no Windows
// analogue, and ttyctl's Windows Child is a plain pipe pair with no
// terminal size to report.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/corvid-labs/ttyctl"
	"golang.org/x/term"
)

func main() {
	shell := flag.String("shell", defaultShell(), "shell to run")
	flag.Parse()

	child, err := ttyctl.Spawn([]string{*shell})
	if err != nil {
		fmt.Fprintln(os.Stderr, "ttyecho:", err)
		os.Exit(1)
	}

	if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
		child.SetWinsize(h, w)
	}

	raw, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err == nil {
		defer term.Restore(int(os.Stdin.Fd()), raw)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	go func() {
		for range sigCh {
			if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
				child.SetWinsize(h, w)
			}
		}
	}()

	go io.Copy(child, os.Stdin)
	io.Copy(os.Stdout, child)

	code, _ := child.Wait()
	os.Exit(code)
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}
