//go:build linux || freebsd

package main

import "syscall"

// detachAttr puts the child in its own session so closing the terminal does
// not take the clipboard with it.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
