// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/YushiOMOTE/structbotopt/lib/botopt"
	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
	"github.com/YushiOMOTE/structbotopt/lib/config"
	"github.com/YushiOMOTE/structbotopt/lib/mdterm"
	"github.com/YushiOMOTE/structbotopt/lib/version"
)

// codeLanguage highlights USAGE synopses, which are fenced without an
// info string.
const codeLanguage = "bash"

// app is everything a subcommand needs: the effective config, the
// router over the configured commands, and output settings.
type app struct {
	config   *config.Config
	logger   *slog.Logger
	commands []*cmdschema.Command
	router   *botopt.Router[*cmdschema.Invocation]

	// raw prints reply markdown as-is.
	raw    bool
	render mdterm.Options

	stdout io.Writer
	stderr io.Writer
}

func newApp(invocation *cmdschema.Invocation, stdout, stderr io.Writer) (*app, error) {
	cfg, err := loadConfig(invocation.Lookup("config").Value.String())
	if err != nil {
		return nil, err
	}

	// Command-line flags override the file.
	if flag := invocation.Lookup("log-level"); flag.Changed {
		cfg.Log.Level = flag.Value.String()
	}
	if flag := invocation.Lookup("color"); flag.Changed {
		cfg.Chat.Color = flag.Value.String() == "true"
	}
	if flag := invocation.Lookup("width"); flag.Changed {
		// pflag has already checked the value.
		cfg.Chat.Width, _ = strconv.Atoi(flag.Value.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	logger := newLogger(stderr, cfg.LogLevel(), cfg.Log.Format).With(
		"subcommand", strings.Join(invocation.Path[1:], " "),
		"environment", string(cfg.Environment),
	)

	if invocation.Command.Name == "chat" && isTerminal(stderr) {
		// Records written to the terminal would tear the alt screen.
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Debug("starting", "build", version.Current())

	commands, err := cfg.BuildCommands()
	if err != nil {
		return nil, err
	}
	router := &botopt.Router[*cmdschema.Invocation]{Logger: logger}
	for _, command := range commands {
		if err := router.Register(&cmdschema.Validator{Root: command, Color: cfg.Chat.Color}); err != nil {
			return nil, err
		}
	}

	width := cfg.Chat.Width
	if width == 0 {
		width = terminalWidth(stdout)
	}
	return &app{
		config:   cfg,
		logger:   logger,
		commands: commands,
		router:   router,
		raw:      invocation.Lookup("raw").Value.String() == "true",
		render: mdterm.Options{
			Width:        width,
			Plain:        !isTerminal(stdout),
			CodeLanguage: codeLanguage,
		},
		stdout: stdout,
		stderr: stderr,
	}, nil
}

// loadConfig loads the file named by path, or by STRUCTBOT_CONFIG when
// path is empty. With neither, the built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if os.Getenv(config.EnvironmentVariable) != "" {
		return config.Load()
	}
	return config.Default(), nil
}

// renderReply turns reply markdown into what the terminal shows. A
// positive width overrides the configured one.
func (app *app) renderReply(markdown string, width int) string {
	if app.raw {
		return strings.TrimRight(markdown, "\n")
	}
	options := app.render
	if width > 0 {
		options.Width = width
	}
	return mdterm.Render(markdown, options)
}

// listCommands prints each configured command matching pattern with
// its summary.
func (app *app) listCommands(pattern string) error {
	commands := filterCommands(app.commands, pattern)
	if len(commands) == 0 {
		fmt.Fprintf(app.stderr, "no command matches %q\n", pattern)
		return &exitError{Code: exitNoMatch}
	}
	nameWidth := 0
	for _, command := range commands {
		nameWidth = max(nameWidth, len(command.Name))
	}
	for _, command := range commands {
		fmt.Fprintf(app.stdout, "%-*s  %s\n", nameWidth, command.Name, command.Summary)
	}
	return nil
}
