// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build linux || freebsd

package clipboard

import (
	"os"
)

type backend int

const (
	backendX11 backend = iota
	backendCommand
)

// unixBackend is chosen once by initialize.
var unixBackend backend

// initialize prefers X11 and falls back to clipboard commands. Wayland
// sessions try the commands first so wl-clipboard is used over XWayland.
func initialize() error {
	x11 := func() error {
		if err := initializeX11(); err != nil {
			return err
		}
		unixBackend = backendX11
		return nil
	}
	command := func() error {
		if err := initializeCommand(); err != nil {
			return err
		}
		unixBackend = backendCommand
		return nil
	}

	order := []func() error{x11, command}
	if isWaylandSession() {
		order = []func() error{command, x11}
	}

	var firstErr error
	for _, try := range order {
		err := try()
		if err == nil {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// read is the platform entry point for reading clipboard
func read() (string, error) {
	if unixBackend == backendCommand {
		return readCommand()
	}
	return readX11()
}

// write is the platform entry point for writing clipboard
func write(text string) (<-chan struct{}, error) {
	if unixBackend == backendCommand {
		return writeCommand(text)
	}
	return writeX11(text)
}

// Detect if we're running under Wayland or X11
func isWaylandSession() bool {
	// Check for Wayland display socket
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return true
	}

	// Check XDG_SESSION_TYPE
	return os.Getenv("XDG_SESSION_TYPE") == "wayland"
}
