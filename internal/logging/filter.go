// Package logging provides redaction helpers for zerolog output and for task
// text that is persisted to the A/B log.
//
// Task descriptions are free text typed by users and sometimes contain pasted
// keys or passwords. Everything that leaves the process, whether the CLI log
// file or the JSONL record, passes through Redact first.
package logging

import (
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// RedactedValue is the replacement string for sensitive data.
const RedactedValue = "[REDACTED]"

// sensitivePatterns match API keys, tokens and inline credentials.
//
//nolint:gochecknoglobals // Compiled once, read-only
var sensitivePatterns = []*regexp.Regexp{
	// Anthropic API keys (sk-ant-api...)
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9_-]{8,}`),

	// OpenAI style keys (sk-..., sk-proj-...)
	regexp.MustCompile(`sk-(?:proj-)?[a-zA-Z0-9_-]{20,}`),

	// Google API keys used by the flash and pro tiers
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{30,}`),

	// GitHub tokens (ghp_, gho_, ghu_, ghs_, ghr_)
	regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{20,}`),

	// AWS access key ids
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),

	// Bearer tokens
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`),

	// key=value style credentials, English and Russian
	regexp.MustCompile(`(?i)(?:api[_-]?key|secret|password|passwd|token|парол[ьяе]|секрет|токен)\s*[:=]\s*["']?[^\s"']{6,}["']?`),

	// PEM private key headers
	regexp.MustCompile(`-----BEGIN[A-Z ]*PRIVATE KEY-----`),
}

// Redact replaces every sensitive match in s with RedactedValue.
func Redact(s string) string {
	for _, p := range sensitivePatterns {
		s = p.ReplaceAllString(s, RedactedValue)
	}
	return s
}

// ContainsSensitiveData reports whether Redact would change s.
func ContainsSensitiveData(s string) bool {
	for _, p := range sensitivePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// TruncateRunes returns at most maxRunes runes of s. It never splits a
// multi-byte character, which matters for Cyrillic task text.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	i := 0
	for pos := range s {
		if i == maxRunes {
			return s[:pos]
		}
		i++
	}
	return s
}

// SafeTask prepares task text for persistence: secrets are redacted first so
// a key cut in half by truncation cannot slip through, then it is truncated.
func SafeTask(s string, maxRunes int) string {
	return TruncateRunes(Redact(s), maxRunes)
}

// SensitiveDataHook flags log events whose message contains sensitive data.
// Zerolog hooks cannot rewrite the message; FilteringWriter does the actual
// redaction on the way to disk.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a new SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

// FilteringWriter wraps an io.Writer and redacts sensitive data from output.
type FilteringWriter struct {
	w io.Writer
}

// NewFilteringWriter creates a FilteringWriter around w.
func NewFilteringWriter(w io.Writer) *FilteringWriter {
	return &FilteringWriter{w: w}
}

// Write implements io.Writer. It reports len(p) on success so callers do not
// treat a shorter redacted write as a short write.
func (fw *FilteringWriter) Write(p []byte) (int, error) {
	if _, err := fw.w.Write([]byte(Redact(string(p)))); err != nil {
		return 0, err
	}
	return len(p), nil
}
