package logger

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Per-field length caps for log values. Anything longer is truncated with
// a trailing ellipsis so a hostile input cannot flood the log stream.
const (
	MaxPathLength          = 500
	MaxUserIDLength        = 128
	MaxErrorMessageLength  = 1000
	MaxGeneralStringLength = 2000
	MaxDebugContentLength  = 10000
)

// scrub repairs invalid UTF-8 and strips control characters, keeping
// printable runes plus space, tab, newline and carriage return.
func scrub(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeString scrubs s and truncates it to maxLength bytes. A
// non-positive maxLength falls back to MaxGeneralStringLength.
func SanitizeString(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = MaxGeneralStringLength
	}
	s = scrub(s)
	if len(s) > maxLength {
		s = s[:maxLength] + "..."
	}
	return s
}

// SanitizePath makes a request path safe to log.
func SanitizePath(path string) string {
	return SanitizeString(path, MaxPathLength)
}

// SanitizeError makes an error message safe to log. Nil errors yield "".
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), MaxErrorMessageLength)
}

// SanitizeUserID makes a user or provider ID safe to log.
func SanitizeUserID(userID string) string {
	return SanitizeString(userID, MaxUserIDLength)
}

// SanitizeDebugContent makes chat messages and responses safe for debug
// logs. Debug output still gets scrubbed so user input cannot inject
// fake log lines.
func SanitizeDebugContent(content string) string {
	return SanitizeString(content, MaxDebugContentLength)
}
