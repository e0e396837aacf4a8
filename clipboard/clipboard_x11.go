// Copyright 2025 Ayman Bagabas
// SPDX-License-Identifier: MIT

//go:build linux || freebsd

package clipboard

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
)

// X11 types
type (
	Display uintptr
	Window  uintptr
	Atom    uintptr
	Time    uintptr
	Bool    int
)

// X11 constants
const (
	None             = 0
	CurrentTime      = 0
	AnyPropertyType  = 0
	PropModeReplace  = 0
	Success          = 0
	SelectionNotify  = 31
	SelectionClear   = 29
	SelectionRequest = 30
)

// XEvent is a union in C, we need the largest variant
type XEvent struct {
	typ int32
	pad [23]uintptr // Ensure it's large enough for all event types
}

type XSelectionEvent struct {
	typ        int32
	_          [3]byte // padding
	serial     uintptr
	send_event Bool
	display    Display
	requestor  Window
	selection  Atom
	target     Atom
	property   Atom
	time       Time
}

type XSelectionRequestEvent struct {
	typ        int32
	_          [3]byte
	serial     uintptr
	send_event Bool
	display    Display
	owner      Window
	requestor  Window
	selection  Atom
	target     Atom
	property   Atom
	time       Time
}

// X11 function pointers
var (
	libX11 uintptr

	xOpenDisplay        func(display_name uintptr) Display
	xCloseDisplay       func(display Display)
	xDefaultRootWindow  func(display Display) Window
	xCreateSimpleWindow func(display Display, parent Window, x, y int, width, height, border_width uint, border, background uintptr) Window
	xInternAtom         func(display Display, atom_name string, only_if_exists Bool) Atom
	xSetSelectionOwner  func(display Display, selection Atom, owner Window, time Time)
	xGetSelectionOwner  func(display Display, selection Atom) Window
	xNextEvent          func(display Display, event *XEvent)
	xPending            func(display Display) int
	xChangeProperty     func(display Display, w Window, property Atom, typ Atom, format int, mode int, data *byte, nelements int) int
	xSendEvent          func(display Display, w Window, propagate Bool, event_mask int64, event *XEvent)
	xGetWindowProperty  func(display Display, w Window, property Atom, long_offset, long_length int64, delete Bool, req_type Atom, actual_type_return *Atom, actual_format_return *int, nitems_return *uint64, bytes_after_return *uint64, prop_return **byte) int
	xFree               func(data unsafe.Pointer)
	xDeleteProperty     func(display Display, w Window, property Atom)
	xConvertSelection   func(display Display, selection Atom, target Atom, property Atom, requestor Window, time Time)
)

// selectionTimeout bounds how long a read waits for the selection owner to
// answer a conversion request.
const selectionTimeout = 5 * time.Second

// Text targets served when we own the selection. The first one is also the
// target we request when reading.
var x11TextTargets = []string{
	"UTF8_STRING",
	"text/plain;charset=utf-8",
	"STRING",
	"TEXT",
}

var helpmsg = `%w: Failed to initialize the X11 display, and the clipboard package
will not work properly. Install the following dependency may help:

	# Debian/Ubuntu
	apt install -y libx11-dev

	# Fedora/RHEL
	dnf install -y libX11-devel

	# FreeBSD
	pkg install xorg-libraries

Alternatively install wl-clipboard, xclip or xsel.
`

func initializeX11() error {
	var err error

	// Try common library paths for libX11
	libPaths := []string{
		"libX11.so.6",                // versioned library (Linux, some BSD)
		"libX11.so",                  // generic library (Linux, BSD)
		"/usr/local/lib/libX11.so.6", // FreeBSD
		"/usr/local/lib/libX11.so",
		"/usr/X11R6/lib/libX11.so.6", // Older BSD systems
		"/usr/X11R6/lib/libX11.so",
	}

	for _, path := range libPaths {
		libX11, err = purego.Dlopen(path, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err == nil {
			break
		}
	}

	if err != nil {
		return fmt.Errorf(helpmsg, ErrUnavailable)
	}

	// Load all X11 functions
	purego.RegisterLibFunc(&xOpenDisplay, libX11, "XOpenDisplay")
	purego.RegisterLibFunc(&xCloseDisplay, libX11, "XCloseDisplay")
	purego.RegisterLibFunc(&xDefaultRootWindow, libX11, "XDefaultRootWindow")
	purego.RegisterLibFunc(&xCreateSimpleWindow, libX11, "XCreateSimpleWindow")
	purego.RegisterLibFunc(&xInternAtom, libX11, "XInternAtom")
	purego.RegisterLibFunc(&xSetSelectionOwner, libX11, "XSetSelectionOwner")
	purego.RegisterLibFunc(&xGetSelectionOwner, libX11, "XGetSelectionOwner")
	purego.RegisterLibFunc(&xNextEvent, libX11, "XNextEvent")
	purego.RegisterLibFunc(&xPending, libX11, "XPending")
	purego.RegisterLibFunc(&xChangeProperty, libX11, "XChangeProperty")
	purego.RegisterLibFunc(&xSendEvent, libX11, "XSendEvent")
	purego.RegisterLibFunc(&xGetWindowProperty, libX11, "XGetWindowProperty")
	purego.RegisterLibFunc(&xFree, libX11, "XFree")
	purego.RegisterLibFunc(&xDeleteProperty, libX11, "XDeleteProperty")
	purego.RegisterLibFunc(&xConvertSelection, libX11, "XConvertSelection")

	// Test if we can open display
	display := openDisplay()
	if display == 0 {
		return fmt.Errorf(helpmsg, ErrUnavailable)
	}
	xCloseDisplay(display)

	return nil
}

// openDisplay retries XOpenDisplay, which fails spuriously under load.
func openDisplay() Display {
	var display Display
	for i := 0; i < 42; i++ {
		display = xOpenDisplay(0)
		if display != 0 {
			break
		}
	}
	return display
}

func readX11() (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	display := openDisplay()
	if display == 0 {
		return "", ErrUnavailable
	}
	defer xCloseDisplay(display)

	sel := xInternAtom(display, "CLIPBOARD", 0)
	if xGetSelectionOwner(display, sel) == None {
		return "", ErrNoText
	}

	root := xDefaultRootWindow(display)
	window := xCreateSimpleWindow(display, root, 0, 0, 1, 1, 0, 0, 0)

	prop := xInternAtom(display, "YANK_DATA", 0)
	target := xInternAtom(display, x11TextTargets[0], 0)

	xConvertSelection(display, sel, target, prop, window, CurrentTime)

	var event XEvent
	if !waitSelectionNotify(display, &event, selectionTimeout) {
		return "", fmt.Errorf("%w: selection owner did not respond", ErrUnavailable)
	}

	// Cast event to XSelectionEvent
	sev := (*XSelectionEvent)(unsafe.Pointer(&event))

	// The owner refused to convert the selection to text
	if sev.property == None {
		return "", ErrNoText
	}
	if sev.selection != sel || sev.property != prop {
		return "", ErrUnavailable
	}

	var actual Atom
	var format int
	var nitems, bytesAfter uint64
	var data *byte

	ret := xGetWindowProperty(sev.display, sev.requestor, sev.property,
		0, ^int64(0), 0, AnyPropertyType,
		&actual, &format, &nitems, &bytesAfter, &data)

	if ret != Success || data == nil {
		return "", ErrUnavailable
	}
	defer xFree(unsafe.Pointer(data))
	defer xDeleteProperty(sev.display, sev.requestor, sev.property)

	if err := checkSelectionType(actual, xInternAtom(display, "INCR", 0)); err != nil {
		return "", err
	}
	if nitems == 0 {
		return "", nil
	}

	// Copy data into a Go string before XFree
	return string(unsafe.Slice(data, nitems)), nil
}

// waitSelectionNotify polls the display until a SelectionNotify event
// arrives or the timeout passes. XPending also flushes pending requests.
func waitSelectionNotify(display Display, event *XEvent, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if xPending(display) == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		xNextEvent(display, event)
		if event.typ == SelectionNotify {
			return true
		}
	}
	return false
}

// checkSelectionType rejects properties that only announce an incremental
// (INCR) transfer. Their payload is a size hint, not the text.
func checkSelectionType(actual, incr Atom) error {
	if actual != None && actual == incr {
		return fmt.Errorf("%w: selection too large (incremental transfer not supported)", ErrUnavailable)
	}
	return nil
}

func writeX11(text string) (<-chan struct{}, error) {
	errCh := make(chan error, 1)
	done := make(chan struct{})
	buf := []byte(text)

	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		display := openDisplay()
		if display == 0 {
			errCh <- ErrUnavailable
			return
		}
		defer xCloseDisplay(display)

		root := xDefaultRootWindow(display)
		window := xCreateSimpleWindow(display, root, 0, 0, 1, 1, 0, 0, 0)

		sel := xInternAtom(display, "CLIPBOARD", 0)
		targetsAtom := xInternAtom(display, "TARGETS", 0)
		xaAtom := xInternAtom(display, "ATOM", 0)

		targets := make([]Atom, 0, len(x11TextTargets)+1)
		textTargets := make(map[Atom]bool, len(x11TextTargets))
		for _, name := range x11TextTargets {
			atom := xInternAtom(display, name, 0)
			targets = append(targets, atom)
			textTargets[atom] = true
		}
		targets = append(targets, targetsAtom)

		xSetSelectionOwner(display, sel, window, CurrentTime)
		if xGetSelectionOwner(display, sel) != window {
			errCh <- fmt.Errorf("%w: failed to take selection ownership", ErrUnavailable)
			return
		}
		errCh <- nil
		defer close(done)

		// Serve requests until another client takes the selection
		var event XEvent
		for {
			xNextEvent(display, &event)

			switch event.typ {
			case SelectionClear:
				return

			case SelectionRequest:
				req := (*XSelectionRequestEvent)(unsafe.Pointer(&event))
				if req.selection != sel {
					continue
				}

				var selEvent XSelectionEvent
				selEvent.typ = SelectionNotify
				selEvent.display = req.display
				selEvent.requestor = req.requestor
				selEvent.selection = req.selection
				selEvent.target = req.target
				selEvent.property = req.property
				selEvent.time = req.time

				switch {
				case textTargets[req.target]:
					var p *byte
					if len(buf) > 0 {
						p = &buf[0]
					}
					xChangeProperty(selEvent.display, selEvent.requestor, selEvent.property,
						req.target, 8, PropModeReplace, p, len(buf))
				case req.target == targetsAtom:
					xChangeProperty(selEvent.display, selEvent.requestor, selEvent.property,
						xaAtom, 32, PropModeReplace, (*byte)(unsafe.Pointer(&targets[0])), len(targets))
				default:
					selEvent.property = None
				}

				xSendEvent(selEvent.display, selEvent.requestor, 0, 0, (*XEvent)(unsafe.Pointer(&selEvent)))
			}
		}
	}()

	if err := <-errCh; err != nil {
		return nil, err
	}
	return done, nil
}
