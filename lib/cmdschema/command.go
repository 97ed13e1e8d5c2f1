// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Command is one node of a command tree.
type Command struct {
	// Name is the command name as typed in the message (e.g., "deploy").
	Name string

	// Summary is a one-line description shown in the parent's
	// SUBCOMMANDS listing.
	Summary string

	// Description is the detailed text at the top of the command's own
	// help. Falls back to Summary when empty.
	Description string

	// Version, when set, is shown in help and enables --version.
	Version string

	// Usage overrides the synthesized synopsis (e.g., "deploy <target>").
	Usage string

	// Flags returns a fresh *pflag.FlagSet for this command. It is
	// called on every validation, so the returned set must not be
	// shared. If nil, the command accepts no flags besides --help.
	Flags func() *pflag.FlagSet

	// Args declares positional arguments in order. Required arguments
	// come before optional ones; only the last may be variadic.
	Args []Arg

	// Subcommands are dispatched by the first positional token.
	Subcommands []*Command

	// Passthrough stops flag parsing at the first positional token, so
	// everything after it is kept verbatim, dashes included.
	Passthrough bool
}

// Arg declares a positional argument.
type Arg struct {
	Name     string
	Summary  string
	Required bool

	// Variadic consumes all remaining positional tokens.
	Variadic bool
}

// placeholder is the argument as shown in synopses and listings.
func (arg Arg) placeholder() string {
	var name string
	if arg.Required {
		name = "<" + arg.Name + ">"
	} else {
		name = "[" + arg.Name + "]"
	}
	if arg.Variadic {
		name += "..."
	}
	return name
}

// subcommand returns the direct subcommand called name, or nil.
func (command *Command) subcommand(name string) *Command {
	for _, sub := range command.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

// flagSet builds the command's flag set configured for validation:
// errors are returned rather than printed, and --help (plus --version
// when the command has a version) is always defined.
func (command *Command) flagSet() *pflag.FlagSet {
	var flagSet *pflag.FlagSet
	if command.Flags != nil {
		flagSet = command.Flags()
	}
	if flagSet == nil {
		flagSet = pflag.NewFlagSet(command.Name, pflag.ContinueOnError)
	}
	flagSet.Init(command.Name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}

	if flagSet.Lookup(helpFlag) == nil {
		flagSet.BoolP(helpFlag, freeShorthand(flagSet, "h"), false, "Prints help information")
	}
	if command.Version != "" && flagSet.Lookup(versionFlag) == nil {
		flagSet.BoolP(versionFlag, freeShorthand(flagSet, "V"), false, "Prints version information")
	}
	return flagSet
}

const (
	helpFlag    = "help"
	versionFlag = "version"
	helpCommand = "help"
)

// freeShorthand returns shorthand if no flag in flagSet uses it yet.
func freeShorthand(flagSet *pflag.FlagSet, shorthand string) string {
	if flagSet.ShorthandLookup(shorthand) != nil {
		return ""
	}
	return shorthand
}

// requiredArgs is the number of leading required positionals.
func (command *Command) requiredArgs() int {
	count := 0
	for _, arg := range command.Args {
		if !arg.Required {
			break
		}
		count++
	}
	return count
}

// maxArgs is the most positionals the command accepts, or -1 when the
// last argument is variadic.
func (command *Command) maxArgs() int {
	if len(command.Args) > 0 && command.Args[len(command.Args)-1].Variadic {
		return -1
	}
	return len(command.Args)
}

// chain is the path from the root command to the command being
// validated. It stands in for a parent pointer, which would require
// mutating the shared schema.
type chain []*Command

func (path chain) leaf() *Command {
	return path[len(path)-1]
}

func (path chain) with(command *Command) chain {
	return append(slices.Clip(path), command)
}

func (path chain) names() []string {
	names := make([]string, len(path))
	for index, command := range path {
		names[index] = command.Name
	}
	return names
}

// fullName returns the command path as typed (e.g., "deploy rollout").
func (path chain) fullName() string {
	return strings.Join(path.names(), " ")
}
