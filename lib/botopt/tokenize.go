// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import "strings"

// ideographicSpace is the full-width space (U+3000) produced by CJK
// input methods. It separates tokens exactly like an ASCII space.
const ideographicSpace = "　"

// Tokenize splits a chat message into its non-empty tokens. Full-width
// spaces become ASCII spaces, the text is split by line and then by
// space, and each fragment is trimmed. Tokens keep their message order:
// the first line's tokens left to right, then the second line's, and
// so on.
//
// Only the space character separates tokens within a line. A tab inside
// a fragment stays part of the token (it is only trimmed at the ends).
func Tokenize(message string) []string {
	normalized := strings.ReplaceAll(message, ideographicSpace, " ")

	var tokens []string
	for _, line := range splitLines(normalized) {
		for _, fragment := range strings.Split(line, " ") {
			fragment = strings.TrimSpace(fragment)
			if fragment == "" {
				continue
			}
			tokens = append(tokens, fragment)
		}
	}
	return tokens
}

// Match tokenizes message and reports whether it is addressed to the
// command called name, i.e. whether its first token equals name. The
// returned stream includes that first token, since validators expect
// a full command line. A message with no tokens is never addressed.
func Match(name, message string) ([]string, bool) {
	tokens := Tokenize(message)
	if len(tokens) == 0 || tokens[0] != name {
		return nil, false
	}
	return tokens, true
}
