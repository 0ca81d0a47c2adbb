// Package logparse extracts timed events from qnn-net-run text logs.
package logparse

import (
	"strconv"
	"strings"
)

// SplitLines splits raw log text into lines, tolerating both LF and CRLF
// endings. A trailing newline does not produce an empty final line.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// Normalize strips carriage returns from every line. It never reorders or
// drops lines; malformed content is left for the extractors to reject.
func Normalize(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.ReplaceAll(line, "\r", "")
	}
	return out
}

// CleanNumericToken reduces a token to digits and a single decimal point.
// Everything else (units, ANSI residue, thousands separators) is discarded.
func CleanNumericToken(tok string) string {
	var b strings.Builder
	dotSeen := false
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !dotSeen:
			dotSeen = true
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LeadingTimestamp parses the leading "<num>ms" token of a log line and
// returns the value in milliseconds. An unparseable or negative token is
// reported as absent, never as zero.
func LeadingTimestamp(line string) (float64, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return 0, false
	}

	tok := trimmed
	if idx := strings.IndexAny(trimmed, " \t"); idx >= 0 {
		tok = trimmed[:idx]
	}
	if !strings.HasSuffix(tok, "ms") {
		return 0, false
	}

	cleaned := CleanNumericToken(strings.TrimSuffix(tok, "ms"))
	if cleaned == "" || cleaned == "." {
		return 0, false
	}

	ts, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || ts < 0 {
		return 0, false
	}
	return ts, true
}
