// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// CommandDecl is the data form of a [Command], as written in a config
// file.
type CommandDecl struct {
	Name        string        `yaml:"name" json:"name"`
	Summary     string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string        `yaml:"version,omitempty" json:"version,omitempty"`
	Usage       string        `yaml:"usage,omitempty" json:"usage,omitempty"`
	Flags       []FlagDecl    `yaml:"flags,omitempty" json:"flags,omitempty"`
	Args        []ArgDecl     `yaml:"args,omitempty" json:"args,omitempty"`
	Subcommands []CommandDecl `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
	Passthrough bool          `yaml:"passthrough,omitempty" json:"passthrough,omitempty"`
}

// FlagDecl declares one flag.
type FlagDecl struct {
	Name string `yaml:"name" json:"name"`

	// Short is the optional one-letter shorthand.
	Short string `yaml:"short,omitempty" json:"short,omitempty"`

	// Type is one of the FlagType constants. Empty means string.
	Type FlagType `yaml:"type,omitempty" json:"type,omitempty"`

	// Default is parsed according to Type.
	Default string `yaml:"default,omitempty" json:"default,omitempty"`

	Usage  string `yaml:"usage,omitempty" json:"usage,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// ArgDecl declares one positional argument.
type ArgDecl struct {
	Name     string `yaml:"name" json:"name"`
	Summary  string `yaml:"summary,omitempty" json:"summary,omitempty"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Variadic bool   `yaml:"variadic,omitempty" json:"variadic,omitempty"`
}

// FlagType names the value type of a declared flag.
type FlagType string

const (
	FlagBool     FlagType = "bool"
	FlagString   FlagType = "string"
	FlagInt      FlagType = "int"
	FlagFloat    FlagType = "float"
	FlagDuration FlagType = "duration"
	FlagStrings  FlagType = "strings"
)

// Build checks the declaration tree and returns the equivalent
// [Command] tree. All problems are reported together.
func (decl CommandDecl) Build() (*Command, error) {
	var problems []error
	command := decl.build(decl.Name, &problems)
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return command, nil
}

func (decl CommandDecl) build(path string, problems *[]error) *Command {
	report := func(format string, args ...any) {
		*problems = append(*problems, fmt.Errorf("command %q: "+format, append([]any{path}, args...)...))
	}

	if decl.Name == "" {
		report("name is required")
	} else if strings.ContainsAny(decl.Name, " \t\n　") || strings.HasPrefix(decl.Name, "-") {
		report("name must be a single word not starting with '-'")
	}

	// Define the flags once now so that declaration errors surface at
	// build time; the factory below repeats the same definitions.
	if err := defineFlags(pflag.NewFlagSet(decl.Name, pflag.ContinueOnError), decl.Flags); err != nil {
		report("%v", err)
	}

	seenOptional := false
	for index, arg := range decl.Args {
		switch {
		case arg.Name == "":
			report("argument %d: name is required", index)
		case arg.Required && seenOptional:
			report("argument %q: required arguments must precede optional ones", arg.Name)
		case arg.Variadic && index != len(decl.Args)-1:
			report("argument %q: only the last argument may be variadic", arg.Name)
		}
		if !arg.Required {
			seenOptional = true
		}
	}

	command := &Command{
		Name:        decl.Name,
		Summary:     decl.Summary,
		Description: decl.Description,
		Version:     decl.Version,
		Usage:       decl.Usage,
		Passthrough: decl.Passthrough,
	}
	for _, arg := range decl.Args {
		command.Args = append(command.Args, Arg(arg))
	}
	if len(decl.Flags) > 0 {
		flags := decl.Flags
		name := decl.Name
		command.Flags = func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
			_ = defineFlags(flagSet, flags)
			return flagSet
		}
	}

	seen := make(map[string]bool)
	for _, sub := range decl.Subcommands {
		if seen[sub.Name] {
			report("duplicate subcommand %q", sub.Name)
		}
		seen[sub.Name] = true
		if sub.Name == helpCommand {
			report("subcommand name %q is reserved", helpCommand)
		}
		command.Subcommands = append(command.Subcommands, sub.build(path+" "+sub.Name, problems))
	}
	return command
}

// defineFlags adds the declared flags to flagSet. It stops at the
// first invalid declaration.
func defineFlags(flagSet *pflag.FlagSet, decls []FlagDecl) error {
	for _, decl := range decls {
		if decl.Name == "" || strings.HasPrefix(decl.Name, "-") {
			return fmt.Errorf("flag %q: name must be non-empty without leading dashes", decl.Name)
		}
		if flagSet.Lookup(decl.Name) != nil {
			return fmt.Errorf("flag %q: defined twice", decl.Name)
		}
		if len(decl.Short) > 1 {
			return fmt.Errorf("flag %q: shorthand %q must be a single character", decl.Name, decl.Short)
		}
		if decl.Short != "" && flagSet.ShorthandLookup(decl.Short) != nil {
			return fmt.Errorf("flag %q: shorthand %q already used", decl.Name, decl.Short)
		}

		switch decl.Type {
		case FlagBool:
			flagSet.BoolP(decl.Name, decl.Short, false, decl.Usage)
		case FlagString, "":
			flagSet.StringP(decl.Name, decl.Short, "", decl.Usage)
		case FlagInt:
			flagSet.IntP(decl.Name, decl.Short, 0, decl.Usage)
		case FlagFloat:
			flagSet.Float64P(decl.Name, decl.Short, 0, decl.Usage)
		case FlagDuration:
			flagSet.DurationP(decl.Name, decl.Short, 0, decl.Usage)
		case FlagStrings:
			// A slice Value appends once Set has been called, so the
			// default goes in at definition time.
			var values []string
			if decl.Default != "" {
				for _, value := range strings.Split(decl.Default, ",") {
					values = append(values, strings.TrimSpace(value))
				}
			}
			flagSet.StringSliceP(decl.Name, decl.Short, values, decl.Usage)
			flagSet.Lookup(decl.Name).Hidden = decl.Hidden
			continue
		default:
			return fmt.Errorf("flag %q: unknown type %q", decl.Name, decl.Type)
		}

		flag := flagSet.Lookup(decl.Name)
		flag.Hidden = decl.Hidden
		if decl.Default == "" {
			continue
		}
		if err := flag.Value.Set(decl.Default); err != nil {
			return fmt.Errorf("flag %q: invalid default %q: %w", decl.Name, decl.Default, err)
		}
		flag.DefValue = flag.Value.String()
	}
	return nil
}
