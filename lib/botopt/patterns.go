// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import (
	"regexp"
	"strings"
)

// The patterns are compiled once and shared read-only.
var (
	// ansiPattern matches an ANSI SGR sequence such as "\x1b[1;31m".
	// The bare reset "\x1b[m" is intentionally not matched.
	ansiPattern = regexp.MustCompile(`\x1b\[[^m]+m`)

	// headerPattern matches a section title at the start of a line.
	headerPattern = regexp.MustCompile(`^(?P<title>[A-Z]+):`)

	// optionPattern matches an option spelling: one or two hyphens
	// followed by letters and hyphens.
	optionPattern = regexp.MustCompile(`(?P<option>--?[a-zA-Z-]+)`)
)

// headingReplacement rewrites a matched "TITLE:" prefix.
const headingReplacement = "\n##### ${title}"

// optionReplacement quotes a matched option spelling.
const optionReplacement = "`${option}`"

// splitLines splits text into lines the way a line reader would: "\n"
// separates lines, a trailing "\r" is removed, and a final newline does
// not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for index, line := range lines {
		lines[index] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitHead splits a trimmed line at the first run of spaces. The rest
// is re-joined with single spaces.
func splitHead(line string) (head, rest string) {
	fragments := strings.Split(strings.TrimSpace(line), " ")
	words := make([]string, 0, len(fragments))
	for _, fragment := range fragments[1:] {
		if fragment = strings.TrimSpace(fragment); fragment != "" {
			words = append(words, fragment)
		}
	}
	return strings.TrimSpace(fragments[0]), strings.Join(words, " ")
}
