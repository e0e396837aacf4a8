// Package yank moves text between the system clipboard and byte streams so
// that terminal tools can read and write the clipboard through stdin and
// stdout.
//
// Print the clipboard, converting CRLF line endings to LF:
//
//	text := yank.Paste(clipboard.System{}, yank.PasteOptions{LF: true})
//	fmt.Print(text)
//
// Set the clipboard from stdin, converting LF line endings to CRLF:
//
//	done, err := yank.Copy(clipboard.System{}, os.Stdin, yank.CopyOptions{CRLF: true})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if done != nil {
//		<-done
//	}
//
// Reads never fail: a clipboard without text yields an empty string, and any
// other read failure is logged and also yields an empty string. Writes fail
// loudly.
package yank

// Clipboard is the capability to get and set the clipboard's text payload.
//
// ReadText must return an error matching clipboard.ErrNoText when the
// clipboard holds nothing representable as text.
//
// WriteText replaces the clipboard text. The returned channel, when non-nil,
// is closed once the caller no longer has to stay alive to keep the content
// available (for example after another X11 client takes the selection).
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) (<-chan struct{}, error)
}
