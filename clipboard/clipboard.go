// Package clipboard provides access to the system clipboard's text using
// purego instead of cgo. It supports macOS, Windows and X11 natively, and
// falls back to clipboard commands (wl-clipboard, xclip, xsel) on Wayland and
// other Unix systems.
//
// The package initializes itself on first use and returns errors from
// individual operations.
//
//	// Write text to clipboard
//	done, err := clipboard.Write("hello world")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Read text from clipboard
//	text, err := clipboard.Read()
//	if errors.Is(err, clipboard.ErrNoText) {
//		// empty clipboard
//	}
package clipboard

import (
	"errors"
	"sync"
)

var (
	// ErrUnavailable indicates the clipboard is not available
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrNoText indicates the clipboard does not contain text
	ErrNoText = errors.New("clipboard does not contain text")
	// ErrBusy indicates another process kept the clipboard locked
	ErrBusy = errors.New("clipboard busy")
	// ErrUnsupportedPlatform indicates the platform does not support clipboard operations
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

var (
	// Due to platform limitations, concurrent access can cause issues.
	// Use a global lock to guarantee one operation at a time.
	lock      = sync.Mutex{}
	initOnce  sync.Once
	initError error
)

// ensureInit loads the platform clipboard once. Importing the package for
// its errors does not touch the display server.
func ensureInit() error {
	initOnce.Do(func() {
		initError = initialize()
	})
	return initError
}

// Read returns the clipboard text.
// Returns ErrNoText if the clipboard holds no text, or another error if the
// clipboard is unavailable or initialization failed.
func Read() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}

	lock.Lock()
	defer lock.Unlock()

	return read()
}

// Write replaces the clipboard text.
//
// Some platforms only keep clipboard content alive while the writing process
// runs. There the returned channel is closed once another application takes
// over the clipboard, and the caller should wait for it before exiting. On
// platforms where the content outlives the process the channel is nil.
func Write(text string) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}

	lock.Lock()
	defer lock.Unlock()

	return write(text)
}

// System is the system clipboard.
type System struct{}

// ReadText calls Read.
func (System) ReadText() (string, error) {
	return Read()
}

// WriteText calls Write.
func (System) WriteText(text string) (<-chan struct{}, error) {
	return Write(text)
}
