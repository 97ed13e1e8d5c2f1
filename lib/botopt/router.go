// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import (
	"fmt"
	"log/slog"
)

// Router dispatches a message to whichever of several validators it is
// addressed to. Validators are tried in registration order; command
// names are unique, so at most one can match.
//
// Register all validators before calling Route. After that a Router is
// read-only and safe for concurrent use.
type Router[T any] struct {
	// Logger is handed to the per-validator parsers. Nil discards.
	Logger *slog.Logger

	parsers []Parser[T]
}

// Register adds a validator. It fails if another registered validator
// already answers to the same command name, or the name is empty.
func (router *Router[T]) Register(validator Validator[T]) error {
	name := validator.CommandName()
	if name == "" {
		return fmt.Errorf("registering validator: empty command name")
	}
	for _, parser := range router.parsers {
		if parser.Validator.CommandName() == name {
			return fmt.Errorf("registering validator: command %q already registered", name)
		}
	}
	router.parsers = append(router.parsers, Parser[T]{Validator: validator, Logger: router.Logger})
	return nil
}

// Commands returns the registered command names in registration order.
func (router *Router[T]) Commands() []string {
	names := make([]string, len(router.parsers))
	for index, parser := range router.parsers {
		names[index] = parser.Validator.CommandName()
	}
	return names
}

// Route runs message through the validator it is addressed to. When no
// registered command matches, the result is NotAddressed.
func (router *Router[T]) Route(message string) Result[T] {
	for index := range router.parsers {
		result := router.parsers[index].Parse(message)
		if result.Addressed() {
			return result
		}
	}
	return Result[T]{Outcome: NotAddressed}
}
