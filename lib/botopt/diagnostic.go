// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import (
	"fmt"
	"log/slog"
	"strings"
)

// sectionKind identifies which part of a diagnostic the converter is
// reading.
type sectionKind int

const (
	// sectionNone is the state before the first header. Lines seen in
	// this state are dropped.
	sectionNone sectionKind = iota
	sectionUsage
	sectionFlags
	sectionSubcommands
	sectionArgs
	// sectionOther is any other all-caps header. Its lines pass through.
	sectionOther
)

// section is the converter's position in the diagnostic. title is only
// meaningful for sectionOther.
type section struct {
	kind  sectionKind
	title string
}

// sectionFor classifies a header title.
func sectionFor(title string) section {
	switch title {
	case "USAGE":
		return section{kind: sectionUsage}
	case "FLAGS":
		return section{kind: sectionFlags}
	case "SUBCOMMANDS":
		return section{kind: sectionSubcommands}
	case "ARGS":
		return section{kind: sectionArgs}
	default:
		return section{kind: sectionOther, title: title}
	}
}

// FormatDiagnostic converts a validator's usage/help diagnostic into
// markdown for a chat client. See the package documentation for the
// layout it expects. Input that does not follow the layout degrades to
// dropped or passed-through lines; the conversion itself cannot fail.
func FormatDiagnostic(diagnostic string) string {
	return formatDiagnostic(diagnostic, discardLogger)
}

// formatDiagnostic is a single left-to-right pass over the lines of
// diagnostic. The only lookahead is in the FLAGS section, where a line
// holding nothing but option spellings takes the following raw line as
// its description.
func formatDiagnostic(diagnostic string, logger *slog.Logger) string {
	var output strings.Builder
	current := section{kind: sectionNone}
	// Set on entering USAGE: the next body line is the synopsis.
	synopsisPending := false

	lines := splitLines(diagnostic)
	for index := 0; index < len(lines); index++ {
		// Color sequences become backticks so that highlighted words
		// turn into code spans.
		line := ansiPattern.ReplaceAllString(lines[index], "`")
		logger.Debug("diagnostic line", "index", index, "line", line)

		if match := headerPattern.FindStringSubmatch(line); match != nil {
			current = sectionFor(match[1])
			output.WriteString(headerPattern.ReplaceAllString(line, headingReplacement))
			output.WriteString("\n\n")
			if current.kind == sectionUsage {
				synopsisPending = true
			}
			continue
		}

		switch current.kind {
		case sectionNone:
			continue

		case sectionUsage:
			trimmed := strings.TrimSpace(line)
			if synopsisPending {
				synopsisPending = false
				fmt.Fprintf(&output, "```\n%s\n```\n", trimmed)
			} else {
				output.WriteString(trimmed + "\n")
			}

		case sectionSubcommands, sectionArgs:
			name, description := splitHead(line)
			fmt.Fprintf(&output, "* `%s`: %s\n", name, description)

		case sectionFlags:
			if strings.TrimSpace(line) == "" {
				continue
			}
			options := strings.TrimSpace(optionPattern.ReplaceAllString(line, optionReplacement))
			if !strings.HasSuffix(options, "`") {
				fmt.Fprintf(&output, "* %s\n", options)
				continue
			}
			// The spellings fill the line; the description was wrapped
			// onto the next one.
			description := ""
			if index+1 < len(lines) {
				index++
				description = strings.TrimSpace(lines[index])
			}
			fmt.Fprintf(&output, "* %s: %s\n", options, description)

		default:
			output.WriteString(line + "\n")
		}
	}

	return output.String()
}
