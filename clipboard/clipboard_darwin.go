// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build darwin

package clipboard

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
)

var (
	// Classes
	nsPasteboardClass objc.Class
	nsDataClass       objc.Class

	// Selectors
	sel_generalPasteboard    objc.SEL
	sel_dataForType          objc.SEL
	sel_clearContents        objc.SEL
	sel_setData_forType      objc.SEL
	sel_dataWithBytes_length objc.SEL
	sel_bytes                objc.SEL
	sel_length               objc.SEL

	// Pasteboard type (NSString constant)
	NSPasteboardTypeString objc.ID
)

func initialize() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Load AppKit framework for NSPasteboard
	appkit, err := purego.Dlopen("/System/Library/Frameworks/AppKit.framework/AppKit", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// Get classes
	nsPasteboardClass = objc.GetClass("NSPasteboard")
	nsDataClass = objc.GetClass("NSData")

	// Register selectors
	sel_generalPasteboard = objc.RegisterName("generalPasteboard")
	sel_dataForType = objc.RegisterName("dataForType:")
	sel_clearContents = objc.RegisterName("clearContents")
	sel_setData_forType = objc.RegisterName("setData:forType:")
	sel_dataWithBytes_length = objc.RegisterName("dataWithBytes:length:")
	sel_bytes = objc.RegisterName("bytes")
	sel_length = objc.RegisterName("length")

	// NSPasteboardTypeString is an exported NSString pointer
	typeStringPtr, err := purego.Dlsym(appkit, "NSPasteboardTypeString")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	NSPasteboardTypeString = objc.ID(*(*uintptr)(unsafe.Pointer(typeStringPtr)))

	return nil
}

func read() (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Get general pasteboard: [NSPasteboard generalPasteboard]
	pasteboard := objc.ID(nsPasteboardClass).Send(sel_generalPasteboard)
	if pasteboard == 0 {
		return "", ErrUnavailable
	}

	// Get data: [pasteboard dataForType:NSPasteboardTypeString]
	data := pasteboard.Send(sel_dataForType, NSPasteboardTypeString)
	if data == 0 {
		return "", ErrNoText
	}

	// Get length: [data length]
	length := objc.Send[uint64](data, sel_length)
	if length == 0 {
		return "", nil
	}

	// Get bytes: [data bytes]
	bytes := data.Send(sel_bytes)
	if bytes == 0 {
		return "", ErrUnavailable
	}

	// Copy data out of the NSData before it is released
	return string(unsafe.Slice((*byte)(unsafe.Pointer(bytes)), int(length))), nil
}

func write(text string) (<-chan struct{}, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Get general pasteboard
	pasteboard := objc.ID(nsPasteboardClass).Send(sel_generalPasteboard)
	if pasteboard == 0 {
		return nil, ErrUnavailable
	}

	// Clear contents: [pasteboard clearContents]
	pasteboard.Send(sel_clearContents)

	if len(text) == 0 {
		return nil, nil
	}

	// Create NSData from bytes: [NSData dataWithBytes:buf length:len(buf)]
	buf := []byte(text)
	data := objc.ID(nsDataClass).Send(sel_dataWithBytes_length, unsafe.Pointer(&buf[0]), uint64(len(buf)))
	if data == 0 {
		return nil, ErrUnavailable
	}

	// Set data: [pasteboard setData:data forType:NSPasteboardTypeString]
	ok := objc.Send[bool](pasteboard, sel_setData_forType, data, NSPasteboardTypeString)
	if !ok {
		return nil, ErrUnavailable
	}

	// The pasteboard server keeps the content after we exit.
	return nil, nil
}
