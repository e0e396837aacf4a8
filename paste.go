package yank

import (
	"github.com/charmbracelet/log"
)

// PasteOptions configures Paste.
type PasteOptions struct {
	// LF replaces every CRLF in the clipboard text with LF.
	LF bool
	// Logger receives diagnostics for masked read failures. Defaults to
	// log.Default().
	Logger *log.Logger
}

// Paste returns the clipboard text, or an empty string when it cannot be
// read. It never fails; see ClassifyReadError.
func Paste(cb Clipboard, opts PasteOptions) string {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	text, err := cb.ReadText()
	if err != nil {
		switch ClassifyReadError(err) {
		case RecoverAsEmpty:
			logger.Debug("clipboard has no text", "err", err)
		case LogAndRecoverAsEmpty:
			logger.Error("failed to get clipboard content", "err", err)
		}
		return ""
	}

	if opts.LF {
		text = CRLFToLF(text)
	}
	logger.Debug("read clipboard", "bytes", len(text), "lf", opts.LF)
	return text
}
