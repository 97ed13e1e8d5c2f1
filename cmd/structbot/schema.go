// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/pflag"

	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
	"github.com/YushiOMOTE/structbotopt/lib/version"
)

const programName = "structbot"

// rootCommand is structbot's own command line, validated with the same
// machinery as the chat commands it serves.
func rootCommand() *cmdschema.Command {
	return &cmdschema.Command{
		Name:    programName,
		Summary: "Answer chat messages that are command lines",
		Version: version.Info(),
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet(programName, pflag.ContinueOnError)
			flagSet.StringP("config", "c", "", "Config `file` (default: $STRUCTBOT_CONFIG, else built-in demo)")
			flagSet.Bool("color", true, "Color diagnostics before conversion (overrides chat.color)")
			flagSet.Bool("raw", false, "Print reply markdown instead of rendering it")
			flagSet.String("log-level", "", "Log `level`: debug, info, warn, or error (overrides log.level)")
			flagSet.Int("width", 0, "Render width in `columns` (overrides chat.width)")
			return flagSet
		},
		Subcommands: []*cmdschema.Command{
			{
				Name:    "parse",
				Summary: "Run one message through the bot",
				Description: "Run one message through the bot and print the outcome. " +
					"Use - to read the message from stdin. Exits 0 when parsed, " +
					"1 when rejected, 2 when the message is not addressed to the bot.",
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("parse", pflag.ContinueOnError)
					flagSet.Bool("json", false, "Print the result as JSON")
					return flagSet
				},
				Args: []cmdschema.Arg{
					{Name: "message", Summary: "Message words, or - for stdin", Required: true, Variadic: true},
				},
				Passthrough: true,
			},
			{
				Name:    "chat",
				Summary: "Chat with the bot in the terminal",
			},
			{
				Name:    "commands",
				Summary: "List the commands the bot answers",
				Args: []cmdschema.Arg{
					{Name: "pattern", Summary: "Fuzzy filter on name and summary"},
				},
			},
		},
	}
}
