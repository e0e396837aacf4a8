package yank

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// CopyOptions configures Copy and CopyText.
type CopyOptions struct {
	// CRLF converts LF line endings to CRLF before storing the text.
	CRLF bool
	// Convert is the conversion applied when CRLF is set. Defaults to
	// NaiveLFToCRLF.
	Convert Converter
	// Logger receives debug tracing. Defaults to log.Default().
	Logger *log.Logger
}

// Copy reads r to the end, decodes it as UTF-8 and stores it in the
// clipboard. Nothing is stored if r fails or is not valid UTF-8.
//
// The returned channel is the one from Clipboard.WriteText.
func Copy(cb Clipboard, r io.Reader, opts CopyOptions) (<-chan struct{}, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(KindInput, "failed to read input", err)
	}
	if err := validUTF8(buf); err != nil {
		return nil, newError(KindDecode, "failed to decode input", err)
	}
	return CopyText(cb, string(buf), opts)
}

// CopyText stores text in the clipboard, converting line endings if
// opts.CRLF is set.
func CopyText(cb Clipboard, text string, opts CopyOptions) (<-chan struct{}, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	if opts.CRLF {
		convert := opts.Convert
		if convert == nil {
			convert = NaiveLFToCRLF
		}
		text = convert(text)
	}

	logger.Debug("writing clipboard", "bytes", len(text), "crlf", opts.CRLF)
	done, err := cb.WriteText(text)
	if err != nil {
		return nil, newError(KindClipboard, "failed to set clipboard content", err)
	}
	return done, nil
}

func validUTF8(buf []byte) error {
	if utf8.Valid(buf) {
		return nil
	}
	for off := 0; off < len(buf); {
		r, size := utf8.DecodeRune(buf[off:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("%w at byte %d", ErrInvalidUTF8, off)
		}
		off += size
	}
	return ErrInvalidUTF8
}
