// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/YushiOMOTE/structbotopt/lib/config"
)

// newLogger creates the structured logger for a run. With format
// auto, a terminal gets slog.TextHandler for human-readable output and
// anything else (pipes, CI, log collectors) gets slog.JSONHandler.
func newLogger(output io.Writer, level slog.Level, format string) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	useText := format == config.FormatText
	if format == config.FormatAuto {
		useText = isTerminal(output)
	}

	var handler slog.Handler
	if useText {
		handler = slog.NewTextHandler(output, options)
	} else {
		handler = slog.NewJSONHandler(output, options)
	}
	return slog.New(handler)
}

// isTerminal reports whether writer is a terminal.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// terminalWidth returns writer's width in columns, or 0 when it is not
// a terminal.
func terminalWidth(writer io.Writer) int {
	file, ok := writer.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
