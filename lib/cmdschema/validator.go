// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"slices"

	"github.com/spf13/pflag"
)

// Validator checks token streams against a command tree.
type Validator struct {
	// Root is the top-level command. Its Name is the token a message
	// must start with.
	Root *Command

	// Color enables ANSI coloring in diagnostics.
	Color bool
}

// CommandName returns the root command's name.
func (validator *Validator) CommandName() string {
	return validator.Root.Name
}

// Validate parses tokens, which must start with the root command's
// name, and returns the resulting [Invocation]. Every failure,
// including an explicit request for help, is a [*UsageError].
func (validator *Validator) Validate(tokens []string) (*Invocation, error) {
	painter := newPainter(validator.Color)
	root := chain{validator.Root}

	if len(tokens) == 0 || tokens[0] != validator.Root.Name {
		got := ""
		if len(tokens) > 0 {
			got = tokens[0]
		}
		return nil, commandMismatchError(painter, root, got)
	}
	return validate(painter, root, nil, tokens[1:])
}

// validate handles one level of the tree: parse this command's flags,
// then either descend into a subcommand or check positionals.
func validate(painter painter, path chain, parents []*pflag.FlagSet, args []string) (*Invocation, error) {
	command := path.leaf()
	flagSet := command.flagSet()
	if len(command.Subcommands) > 0 || command.Passthrough {
		// Flags after the subcommand name belong to the subcommand.
		flagSet.SetInterspersed(false)
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, flagError(painter, path, flagSet, args, err)
	}
	if requested(flagSet, helpFlag) {
		return nil, helpError(painter, path)
	}
	if command.Version != "" && requested(flagSet, versionFlag) {
		return nil, versionError(path)
	}

	flagSets := append(slices.Clip(parents), flagSet)
	positional := flagSet.Args()

	if len(command.Subcommands) > 0 {
		if len(positional) > 0 {
			name := positional[0]
			if sub := command.subcommand(name); sub != nil {
				return validate(painter, path.with(sub), flagSets, positional[1:])
			}
			if name == helpCommand {
				return nil, helpForError(painter, path, positional[1:])
			}
			if len(command.Args) == 0 {
				return nil, unknownSubcommandError(painter, path, name, suggestCommand(name, command.Subcommands))
			}
		} else if len(command.Args) == 0 {
			return nil, missingSubcommandError(painter, path)
		}
	}

	if len(positional) < command.requiredArgs() {
		return nil, missingArgumentError(painter, path, command.Args[len(positional):command.requiredArgs()])
	}
	if limit := command.maxArgs(); limit >= 0 && len(positional) > limit {
		return nil, unexpectedArgumentError(painter, path, positional[limit])
	}

	return &Invocation{
		Path:       path.names(),
		Command:    command,
		Flags:      flagSet,
		Positional: positional,
		flagSets:   flagSets,
	}, nil
}

// requested reports whether the boolean flag called name was set to
// true. A same-named flag of another type never counts.
func requested(flagSet *pflag.FlagSet, name string) bool {
	value, err := flagSet.GetBool(name)
	return err == nil && value
}
