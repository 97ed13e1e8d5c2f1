// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/x/ansi"
)

var discardLogger = slog.New(slog.DiscardHandler)

// Validator turns a token stream into a typed command value.
//
// CommandName is the token a message must start with to be addressed
// to this command. Validate receives the full stream, including that
// first token. On failure, the returned error carries the usage/help
// text shown to the user: if the error (or any error it wraps) has a
// Diagnostic() string method, that text is used, otherwise Error().
type Validator[T any] interface {
	CommandName() string
	Validate(tokens []string) (T, error)
}

// Outcome is what happened to a message.
type Outcome int

const (
	// NotAddressed means the message does not start with the command
	// name. Nothing was validated.
	NotAddressed Outcome = iota

	// Parsed means the validator accepted the tokens. Result.Value
	// holds the command value.
	Parsed

	// Rejected means the validator refused the tokens. Result.Markdown
	// holds the formatted diagnostic.
	Rejected
)

func (outcome Outcome) String() string {
	switch outcome {
	case NotAddressed:
		return "not-addressed"
	case Parsed:
		return "parsed"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result is the outcome of running one message through the pipeline.
type Result[T any] struct {
	Outcome Outcome

	// Command is the command name the message was addressed to. Empty
	// when NotAddressed.
	Command string

	// Value is the validated command. Only set when Parsed.
	Value T

	// Markdown is the diagnostic rewritten for a chat client. Only set
	// when Rejected.
	Markdown string

	// Diagnostic is the validator's raw text, ANSI sequences included.
	// Only set when Rejected.
	Diagnostic string
}

// Addressed reports whether the message targeted the command at all.
func (result Result[T]) Addressed() bool {
	return result.Outcome != NotAddressed
}

// Parser runs messages through a single validator.
type Parser[T any] struct {
	Validator Validator[T]

	// Logger receives per-token and per-line debug records. Nil
	// discards them.
	Logger *slog.Logger
}

// Parse runs message through the pipeline: tokenize and gate on the
// command name, validate, and on failure convert the diagnostic to
// markdown. Parse never returns an error; a validation failure is a
// Rejected result.
func (parser *Parser[T]) Parse(message string) Result[T] {
	logger := parser.Logger
	if logger == nil {
		logger = discardLogger
	}

	name := parser.Validator.CommandName()
	tokens, ok := Match(name, message)
	if !ok {
		return Result[T]{Outcome: NotAddressed}
	}

	for index, token := range tokens {
		logger.Debug("token", "command", name, "index", index, "token", token)
	}

	value, err := parser.Validator.Validate(tokens)
	if err == nil {
		return Result[T]{Outcome: Parsed, Command: name, Value: value}
	}

	diagnostic := diagnosticText(err)
	logger.Debug("validation failed",
		"command", name,
		"diagnostic", ansi.Strip(diagnostic),
	)
	return Result[T]{
		Outcome:    Rejected,
		Command:    name,
		Markdown:   formatDiagnostic(diagnostic, logger),
		Diagnostic: diagnostic,
	}
}

// Parse runs message through validator with no logging. See
// [Parser.Parse].
func Parse[T any](validator Validator[T], message string) Result[T] {
	parser := Parser[T]{Validator: validator}
	return parser.Parse(message)
}

// diagnosticText extracts the usage/help text carried by a validation
// error.
func diagnosticText(err error) string {
	var carrier interface{ Diagnostic() string }
	if errors.As(err, &carrier) {
		return carrier.Diagnostic()
	}
	return err.Error()
}
