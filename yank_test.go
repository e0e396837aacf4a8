package yank

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aymanbagabas/yank/clipboard"
	"github.com/charmbracelet/log"
)

// fakeClipboard stores text in memory and can be told to fail.
type fakeClipboard struct {
	text     string
	readErr  error
	writeErr error
	writes   int
	done     chan struct{}
}

func (c *fakeClipboard) ReadText() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

func (c *fakeClipboard) WriteText(text string) (<-chan struct{}, error) {
	c.writes++
	if c.writeErr != nil {
		return nil, c.writeErr
	}
	c.text = text
	return c.done, nil
}

func newTestLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.InfoLevel})
}

func TestPaste(t *testing.T) {
	cases := []struct {
		name string
		text string
		lf   bool
		want string
	}{
		{name: "identity", text: "a\r\nb\nc\rd", want: "a\r\nb\nc\rd"},
		{name: "lf", text: "a\r\nb\nc\rd", lf: true, want: "a\nb\nc\rd"},
		{name: "lf no crlf", text: "Hello\nfrom\nyank", lf: true, want: "Hello\nfrom\nyank"},
		{name: "lone cr", text: "\r", lf: true, want: "\r"},
		{name: "cr cr lf", text: "\r\r\n", lf: true, want: "\r\n"},
		{name: "empty", text: "", lf: true, want: ""},
	}

	for _, tc := range cases {
		var logs bytes.Buffer
		cb := &fakeClipboard{text: tc.text}
		got := Paste(cb, PasteOptions{LF: tc.lf, Logger: newTestLogger(&logs)})
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
		if logs.Len() != 0 {
			t.Fatalf("%s: unexpected diagnostics: %q", tc.name, logs.String())
		}
	}
}

func TestPasteNoTextIsSilent(t *testing.T) {
	for _, lf := range []bool{false, true} {
		var logs bytes.Buffer
		cb := &fakeClipboard{text: "stale", readErr: clipboard.ErrNoText}
		got := Paste(cb, PasteOptions{LF: lf, Logger: newTestLogger(&logs)})
		if got != "" {
			t.Fatalf("lf=%v: expected empty text, got %q", lf, got)
		}
		if logs.Len() != 0 {
			t.Fatalf("lf=%v: expected no diagnostics, got %q", lf, logs.String())
		}
	}
}

func TestPasteLogsOtherErrors(t *testing.T) {
	errs := []error{
		clipboard.ErrBusy,
		clipboard.ErrUnavailable,
		clipboard.ErrUnsupportedPlatform,
		errors.New("access denied"),
	}

	for _, readErr := range errs {
		var logs bytes.Buffer
		cb := &fakeClipboard{readErr: readErr}
		got := Paste(cb, PasteOptions{Logger: newTestLogger(&logs)})
		if got != "" {
			t.Fatalf("%v: expected empty text, got %q", readErr, got)
		}
		out := logs.String()
		if !strings.Contains(out, "failed to get clipboard content") {
			t.Fatalf("%v: expected diagnostic, got %q", readErr, out)
		}
		if !strings.Contains(out, readErr.Error()) {
			t.Fatalf("%v: diagnostic does not describe the error: %q", readErr, out)
		}
	}
}

func TestCopy(t *testing.T) {
	cases := []struct {
		name  string
		input string
		crlf  bool
		want  string
	}{
		{name: "identity", input: "Hello\nfrom\nyank", want: "Hello\nfrom\nyank"},
		{name: "lone cr", input: "\r", want: "\r"},
		{name: "crlf kept", input: "a\r\nb", want: "a\r\nb"},
		{name: "lf", input: "\n", crlf: true, want: "\r\n"},
		{name: "existing crlf duplicated", input: "\r\n", crlf: true, want: "\r\r\n"},
		{name: "empty", input: "", crlf: true, want: ""},
		{
			name:  "mixed",
			input: "\r\nfrom\r\nyank\r\n\n...\\r\n",
			crlf:  true,
			want:  "\r\r\nfrom\r\r\nyank\r\r\n\r\n...\\r\r\n",
		},
	}

	for _, tc := range cases {
		cb := &fakeClipboard{}
		if _, err := Copy(cb, strings.NewReader(tc.input), CopyOptions{CRLF: tc.crlf}); err != nil {
			t.Fatalf("%s: Copy failed: %v", tc.name, err)
		}
		if cb.text != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, cb.text)
		}
	}
}

func TestCopyCustomConverter(t *testing.T) {
	cb := &fakeClipboard{}
	opts := CopyOptions{CRLF: true, Convert: LFToCRLF}
	if _, err := Copy(cb, strings.NewReader("\r\nfrom\r\nyank\r\n\n...\\r\n"), opts); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if want := "\r\nfrom\r\nyank\r\n\r\n...\\r\r\n"; cb.text != want {
		t.Fatalf("Expected %q, got %q", want, cb.text)
	}
}

func TestCopyConverterIgnoredWithoutCRLF(t *testing.T) {
	cb := &fakeClipboard{}
	opts := CopyOptions{Convert: func(string) string { return "converted" }}
	if _, err := CopyText(cb, "text\n", opts); err != nil {
		t.Fatalf("CopyText failed: %v", err)
	}
	if cb.text != "text\n" {
		t.Fatalf("Expected %q, got %q", "text\n", cb.text)
	}
}

func TestCopyInvalidUTF8(t *testing.T) {
	cb := &fakeClipboard{text: "before"}
	_, err := Copy(cb, bytes.NewReader([]byte("ok\xffbad")), CopyOptions{CRLF: true})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("Expected ErrInvalidUTF8, got %v", err)
	}
	if !IsKind(err, KindDecode) {
		t.Fatalf("Expected decode error, got %v", err)
	}
	if !strings.Contains(err.Error(), "at byte 2") {
		t.Fatalf("Expected offset in error, got %q", err.Error())
	}
	if cb.writes != 0 {
		t.Fatalf("Expected clipboard untouched, got %d writes", cb.writes)
	}
	if cb.text != "before" {
		t.Fatalf("Expected %q, got %q", "before", cb.text)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestCopyInputError(t *testing.T) {
	readErr := errors.New("broken pipe")
	cb := &fakeClipboard{}
	_, err := Copy(cb, failingReader{err: readErr}, CopyOptions{})
	if !errors.Is(err, readErr) {
		t.Fatalf("Expected %v, got %v", readErr, err)
	}
	if !IsKind(err, KindInput) {
		t.Fatalf("Expected input error, got %v", err)
	}
	if cb.writes != 0 {
		t.Fatalf("Expected clipboard untouched, got %d writes", cb.writes)
	}
}

func TestCopyPropagatesClipboardError(t *testing.T) {
	cb := &fakeClipboard{writeErr: clipboard.ErrBusy}
	done, err := Copy(cb, strings.NewReader("text"), CopyOptions{})
	if !errors.Is(err, clipboard.ErrBusy) {
		t.Fatalf("Expected ErrBusy, got %v", err)
	}
	if !IsKind(err, KindClipboard) {
		t.Fatalf("Expected clipboard error, got %v", err)
	}
	if done != nil {
		t.Fatalf("Expected nil channel, got %v", done)
	}
}

func TestCopyReturnsDoneChannel(t *testing.T) {
	cb := &fakeClipboard{done: make(chan struct{})}
	done, err := CopyText(cb, "text", CopyOptions{})
	if err != nil {
		t.Fatalf("CopyText failed: %v", err)
	}
	if done == nil {
		t.Fatal("Expected the clipboard's channel")
	}
	close(cb.done)
	<-done
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		input string
		crlf  bool
		lf    bool
		want  string
	}{
		{input: "Hello\nfrom\nwin32yank", want: "Hello\nfrom\nwin32yank"},
		{input: "\r", want: "\r"},
		{input: "\n", crlf: true, want: "\r\n"},
		{input: "\n", crlf: true, lf: true, want: "\n"},
		{input: "a\nb", crlf: true, lf: true, want: "a\nb"},
	}

	for _, tc := range cases {
		cb := &fakeClipboard{}
		if _, err := Copy(cb, strings.NewReader(tc.input), CopyOptions{CRLF: tc.crlf}); err != nil {
			t.Fatalf("Copy(%q) failed: %v", tc.input, err)
		}
		got := Paste(cb, PasteOptions{LF: tc.lf})
		if got != tc.want {
			t.Fatalf("round trip %q (crlf=%v, lf=%v): expected %q, got %q", tc.input, tc.crlf, tc.lf, tc.want, got)
		}
	}
}
