// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build netbsd || openbsd || solaris || dragonfly || plan9

package clipboard

func initialize() error {
	return initializeCommand()
}

func read() (string, error) {
	return readCommand()
}

func write(text string) (<-chan struct{}, error) {
	return writeCommand(text)
}
