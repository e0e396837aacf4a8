// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build linux || freebsd || netbsd || openbsd || solaris || dragonfly || plan9

package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	atotto "github.com/atotto/clipboard"
)

// Messages printed by wl-paste and xclip when there is no text to paste.
var noTextMessages = []string{
	"nothing is copied",
	"no selection",
	"no suitable type of content",
	"target string not available",
	"target utf8_string not available",
}

func initializeCommand() error {
	if atotto.Unsupported {
		return fmt.Errorf("%w: no clipboard command found, install wl-clipboard, xclip or xsel", ErrUnavailable)
	}
	return nil
}

func readCommand() (string, error) {
	text, err := atotto.ReadAll()
	if err != nil {
		return "", classifyCommandError(err)
	}
	return text, nil
}

// writeCommand returns a nil channel: the clipboard commands fork to keep
// the selection alive on their own.
func writeCommand(text string) (<-chan struct{}, error) {
	if err := atotto.WriteAll(text); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil, nil
}

// classifyCommandError maps a failed paste command to ErrNoText when its
// stderr says the clipboard is empty, and to ErrUnavailable otherwise.
func classifyCommandError(err error) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	stderr := strings.TrimSpace(string(exitErr.Stderr))
	msg := strings.ToLower(stderr)
	for _, m := range noTextMessages {
		if strings.Contains(msg, m) {
			return ErrNoText
		}
	}

	if stderr == "" {
		return fmt.Errorf("%w: paste command failed: %v", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: paste command failed: %s", ErrUnavailable, stderr)
}
