// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// Package cmdschema declares chat commands and validates token streams
// against them.
//
// The central type is [Command]: a named command with a [pflag.FlagSet]
// factory, positional [Arg] declarations, and nested
// [Command.Subcommands]. A [Validator] wraps a root Command and
// implements the botopt.Validator contract: [Validator.Validate] takes
// the full token stream (command name first) and returns an
// [Invocation] or a [*UsageError].
//
// UsageError carries a diagnostic in the uppercase layout the botopt
// converter understands:
//
//	error: Found argument 'prod2' which wasn't expected, or isn't valid in this context
//
//	USAGE:
//	    deploy [FLAGS] [OPTIONS] <target>
//
//	For more information try --help
//
// Help (-h, --help, or the help pseudo-subcommand) is also reported as a
// UsageError, with a full listing: USAGE, FLAGS (switches), OPTIONS
// (flags that take a value), ARGS, and SUBCOMMANDS. With
// [Validator.Color] set, flag spellings, offending values, and
// suggestions are colored with ANSI sequences, which the converter turns
// into code spans.
//
// Unknown subcommands and flags get a "Did you mean" suggestion when a
// known name is within Levenshtein distance 3.
//
// Commands can also be declared as data ([CommandDecl]) and built with
// [CommandDecl.Build]; lib/config loads such declarations from YAML or
// JSONC.
//
// Validation never mutates the schema, so a Validator may be shared
// between goroutines.
package cmdschema
