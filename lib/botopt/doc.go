// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// Package botopt treats a chat message as a command line.
//
// A message goes through three stages:
//
//   - [Tokenize] normalizes full-width spaces (U+3000) to ASCII spaces,
//     splits the text by line and then by space, and drops empty
//     fragments. [Match] additionally gates on the first token: a
//     message whose first token is not the command name is simply not
//     addressed to that command. This is not an error.
//
//   - A [Validator] turns the token stream into a typed value or fails
//     with a plain-text diagnostic (usage, flags, subcommands). The
//     validator is a collaborator: lib/cmdschema provides one backed by
//     pflag, tests use synthetic ones.
//
//   - [FormatDiagnostic] rewrites that diagnostic into markdown suitable
//     for a chat client: level-5 headings for sections, a fenced block
//     for the usage synopsis, and bullet lists for flags, arguments, and
//     subcommands.
//
// [Parser] and [Router] run the whole pipeline and return a [Result]
// whose [Outcome] is one of NotAddressed, Parsed, or Rejected. Every
// stage is a pure function of its input, so a Parser or Router may be
// shared between goroutines.
//
// The diagnostic layout the converter understands is the uppercase
// convention: sections start with an all-caps word followed by a colon
// (USAGE:, FLAGS:, SUBCOMMANDS:, ARGS:, or any other), body lines are
// indented, and ANSI SGR color sequences may appear anywhere. Lines
// that do not fit the convention are dropped (before the first section)
// or passed through (under unknown sections). The converter never
// fails.
package botopt
