// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// structbot answers chat messages that are command lines. Each message
// is tokenized, matched against the configured commands by its first
// word, and validated; rejected messages get their usage diagnostic
// back as chat markdown.
//
// Two ways to use it:
//
// parse: run one message (from arguments or stdin) through the
// pipeline and print the outcome. The exit code tells scripts what
// happened: 0 parsed, 1 rejected, 2 not addressed.
//
// chat: an interactive terminal transcript. Every submitted line gets
// the reply a chat client would show, rendered for the terminal.
//
// Commands come from the config file (--config or STRUCTBOT_CONFIG).
// Without one, a built-in demo command named "deploy" is served.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		// Outcomes that already printed their own output carry an
		// exit code and need no "error:" line.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(arguments []string, stdin io.Reader, stdout, stderr io.Writer) error {
	validator := &cmdschema.Validator{Root: rootCommand(), Color: isTerminal(stderr)}
	invocation, err := validator.Validate(append([]string{programName}, arguments...))
	if err != nil {
		var usage *cmdschema.UsageError
		if !errors.As(err, &usage) {
			return err
		}
		switch usage.Kind {
		case cmdschema.KindHelp, cmdschema.KindVersion:
			fmt.Fprint(stdout, usage.Text)
			return nil
		}
		fmt.Fprint(stderr, usage.Text)
		return &exitError{Code: exitUsage}
	}

	app, err := newApp(invocation, stdout, stderr)
	if err != nil {
		return err
	}

	switch invocation.Command.Name {
	case "parse":
		return app.parse(invocation, stdin)
	case "chat":
		return app.chat()
	case "commands":
		return app.listCommands(invocation.Arg("pattern"))
	default:
		return fmt.Errorf("no handler for command %q", invocation.Command.Name)
	}
}
