//go:build !linux && !freebsd

package main

import "syscall"

// Clipboard content outlives the writer here, so detach is never reached.
func detachAttr() *syscall.SysProcAttr {
	return nil
}
