// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Invocation is a successfully validated command line.
type Invocation struct {
	// Path is the command names from the root to the selected command
	// (e.g., ["deploy", "rollout"]).
	Path []string

	// Command is the selected (deepest) command.
	Command *Command

	// Flags is the selected command's parsed flag set. Use its typed
	// getters (GetBool, GetInt, GetDuration, ...) to read values.
	Flags *pflag.FlagSet

	// Positional holds the positional tokens after flag parsing.
	Positional []string

	// flagSets are the parsed flag sets of every command on Path, root
	// first.
	flagSets []*pflag.FlagSet
}

// Lookup finds a flag by name on the selected command or, failing
// that, on its ancestors, nearest first. Returns nil if undefined.
func (invocation *Invocation) Lookup(name string) *pflag.Flag {
	for index := len(invocation.flagSets) - 1; index >= 0; index-- {
		if flag := invocation.flagSets[index].Lookup(name); flag != nil {
			return flag
		}
	}
	return nil
}

// Arg returns the value of the named positional argument, or "" if it
// was not given. For a variadic argument it returns the first value.
func (invocation *Invocation) Arg(name string) string {
	values := invocation.Args(name)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Args returns the values bound to the named positional argument: one
// value for an ordinary argument, all remaining values for a variadic
// one, nil if the argument was not given or is not declared.
func (invocation *Invocation) Args(name string) []string {
	for index, arg := range invocation.Command.Args {
		if arg.Name != name {
			continue
		}
		if index >= len(invocation.Positional) {
			return nil
		}
		if arg.Variadic {
			return invocation.Positional[index:]
		}
		return invocation.Positional[index : index+1]
	}
	return nil
}

// String renders the invocation as the command path, the flags that
// were explicitly set (ancestors first), and the positionals.
func (invocation *Invocation) String() string {
	parts := append([]string(nil), invocation.Path...)
	for _, flagSet := range invocation.flagSets {
		flagSet.Visit(func(flag *pflag.Flag) {
			parts = append(parts, fmt.Sprintf("--%s=%s", flag.Name, flag.Value.String()))
		})
	}
	parts = append(parts, invocation.Positional...)
	return strings.Join(parts, " ")
}
