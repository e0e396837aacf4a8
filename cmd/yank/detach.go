package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// detach starts a copy of this executable in serve mode with text on its
// stdin. The child takes over the clipboard and lives on after we exit, the
// way xclip forks into the background.
func detach(text string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("failed to create pipe: %w", err)
	}
	defer w.Close()

	child := exec.Command(exe, "--input", "--serve")
	// An *os.File stdin is passed directly, so no copying goroutine has to
	// outlive this process.
	child.Stdin = r
	child.SysProcAttr = detachAttr()
	if err := child.Start(); err != nil {
		r.Close()
		return fmt.Errorf("failed to start clipboard server: %w", err)
	}
	r.Close()

	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to pass clipboard content: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to pass clipboard content: %w", err)
	}
	return child.Process.Release()
}
