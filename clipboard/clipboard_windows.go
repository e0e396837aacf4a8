// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build windows

package clipboard

import (
	"fmt"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Windows clipboard format constants
const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

// Another process holding the clipboard usually releases it within a few
// milliseconds.
const (
	openAttempts = 10
	openDelay    = 10 * time.Millisecond
)

// Windows API functions
var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	openClipboard              = user32.NewProc("OpenClipboard")
	closeClipboard             = user32.NewProc("CloseClipboard")
	emptyClipboard             = user32.NewProc("EmptyClipboard")
	getClipboardData           = user32.NewProc("GetClipboardData")
	setClipboardData           = user32.NewProc("SetClipboardData")
	isClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")

	gLock   = kernel32.NewProc("GlobalLock")
	gUnlock = kernel32.NewProc("GlobalUnlock")
	gAlloc  = kernel32.NewProc("GlobalAlloc")
	gFree   = kernel32.NewProc("GlobalFree")
	gSize   = kernel32.NewProc("GlobalSize")
)

func initialize() error {
	for _, dll := range []*windows.LazyDLL{user32, kernel32} {
		if err := dll.Load(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

// openWithRetry opens the clipboard, giving up with ErrBusy when another
// process keeps it open.
func openWithRetry() error {
	var lastErr error
	for i := 0; i < openAttempts; i++ {
		r, _, err := openClipboard.Call(0)
		if r != 0 {
			return nil
		}
		lastErr = err
		time.Sleep(openDelay)
	}
	return fmt.Errorf("%w: OpenClipboard: %v", ErrBusy, lastErr)
}

func read() (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Check if text is available
	r, _, _ := isClipboardFormatAvailable.Call(cfUnicodeText)
	if r == 0 {
		return "", ErrNoText
	}

	if err := openWithRetry(); err != nil {
		return "", err
	}
	defer closeClipboard.Call()

	hMem, _, err := getClipboardData.Call(cfUnicodeText)
	if hMem == 0 {
		return "", fmt.Errorf("%w: GetClipboardData: %v", ErrUnavailable, err)
	}

	p, _, err := gLock.Call(hMem)
	if p == 0 {
		return "", fmt.Errorf("%w: GlobalLock: %v", ErrUnavailable, err)
	}
	defer gUnlock.Call(hMem)

	// The handle may be larger than the string; UTF16ToString stops at NUL.
	size, _, _ := gSize.Call(hMem)
	s := unsafe.Slice((*uint16)(unsafe.Pointer(p)), size/2) //nolint:govet // p is valid from GlobalLock
	return windows.UTF16ToString(s), nil
}

func write(text string) (<-chan struct{}, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s, err := encodeText(text)
	if err != nil {
		return nil, err
	}

	if err := openWithRetry(); err != nil {
		return nil, err
	}
	defer closeClipboard.Call()

	r, _, err := emptyClipboard.Call()
	if r == 0 {
		return nil, fmt.Errorf("%w: EmptyClipboard: %v", ErrUnavailable, err)
	}

	// An emptied clipboard reads back as ErrNoText.
	if len(text) == 0 {
		return nil, nil
	}

	hMem, _, err := gAlloc.Call(gmemMoveable, uintptr(len(s))*unsafe.Sizeof(s[0]))
	if hMem == 0 {
		return nil, fmt.Errorf("%w: GlobalAlloc: %v", ErrUnavailable, err)
	}

	p, _, err := gLock.Call(hMem)
	if p == 0 {
		gFree.Call(hMem)
		return nil, fmt.Errorf("%w: GlobalLock: %v", ErrUnavailable, err)
	}

	dst := unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(s)) //nolint:govet // p is valid from GlobalLock
	copy(dst, s)
	gUnlock.Call(hMem)

	// The system owns hMem once SetClipboardData succeeds.
	v, _, err := setClipboardData.Call(cfUnicodeText, hMem)
	if v == 0 {
		gFree.Call(hMem)
		return nil, fmt.Errorf("%w: SetClipboardData: %v", ErrUnavailable, err)
	}

	return nil, nil
}

// encodeText converts text to the NUL-terminated UTF-16 that CF_UNICODETEXT
// holds. Text with an embedded NUL would be cut short by every reader, so it
// is rejected before the clipboard is emptied.
func encodeText(text string) ([]uint16, error) {
	if i := strings.IndexByte(text, 0); i >= 0 {
		return nil, fmt.Errorf("%w: text contains a NUL character at byte %d", ErrUnavailable, i)
	}
	s, err := windows.UTF16FromString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert text: %v", ErrUnavailable, err)
	}
	return s, nil
}
