// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build !darwin && !windows && !linux && !freebsd && !netbsd && !openbsd && !solaris && !dragonfly && !plan9

package clipboard

func initialize() error {
	return ErrUnsupportedPlatform
}

func read() (string, error) {
	return "", ErrUnsupportedPlatform
}

func write(text string) (<-chan struct{}, error) {
	return nil, ErrUnsupportedPlatform
}
