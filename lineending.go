package yank

import "strings"

// Converter rewrites line endings before text is stored in the clipboard.
type Converter func(string) string

// CRLFToLF replaces every CRLF with LF. Lone CR and lone LF are kept.
func CRLFToLF(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// NaiveLFToCRLF replaces every LF with CRLF without looking at what precedes
// it, so an existing CRLF becomes CR CR LF. This is the conversion CopyOptions
// uses unless Convert is set.
func NaiveLFToCRLF(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// LFToCRLF replaces every LF that is not already preceded by CR with CRLF.
func LFToCRLF(s string) string {
	n := strings.Count(s, "\n")
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + n)
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
