// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
)

// ErrorKind classifies a [UsageError] so callers can react without
// parsing the diagnostic text.
type ErrorKind string

const (
	// KindHelp is an explicit help request. The diagnostic is the full
	// help listing.
	KindHelp ErrorKind = "help"

	// KindVersion is an explicit --version request.
	KindVersion ErrorKind = "version"

	// KindUnknownCommand is a command or subcommand name that does not
	// exist.
	KindUnknownCommand ErrorKind = "unknown_command"

	// KindMissingCommand is a command that needs a subcommand but got
	// none. The diagnostic is the help listing.
	KindMissingCommand ErrorKind = "missing_command"

	// KindFlag is any flag parse failure: unknown flag, missing or
	// malformed value.
	KindFlag ErrorKind = "flag"

	// KindUnexpectedArgument is a positional token beyond the declared
	// arguments.
	KindUnexpectedArgument ErrorKind = "unexpected_argument"

	// KindMissingArgument is a required positional argument that was
	// not given.
	KindMissingArgument ErrorKind = "missing_argument"
)

// UsageError is a rejected command line. Error returns a one-line
// summary; Diagnostic returns the multi-line usage/help text meant for
// the user.
type UsageError struct {
	Kind ErrorKind

	// Command is the full command path that rejected the tokens.
	Command string

	// Message is a plain one-line description of the problem.
	Message string

	// Text is the diagnostic, possibly containing ANSI sequences.
	Text string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

// Diagnostic returns the usage/help text.
func (e *UsageError) Diagnostic() string {
	return e.Text
}

const (
	// indent prefixes every body line of a section.
	indent = "    "

	// wrapIndent prefixes a description moved onto its own line.
	wrapIndent = "            "

	// columnGap separates a listing's name column from its
	// descriptions.
	columnGap = 4

	// maxLineWidth is the widest listing line before the description
	// moves to the next line.
	maxLineWidth = 100
)

// painter colors diagnostic fragments. The zero painter leaves text
// unchanged.
type painter struct {
	renderer *lipgloss.Renderer
}

func newPainter(color bool) painter {
	if !color {
		return painter{}
	}
	// Diagnostics travel inside chat messages, not to a terminal, so
	// the profile is forced rather than detected.
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI))
	renderer.SetColorProfile(termenv.ANSI)
	return painter{renderer: renderer}
}

func (painter painter) paint(text string, color lipgloss.Color, bold bool) string {
	if painter.renderer == nil || text == "" {
		return text
	}
	style := painter.renderer.NewStyle().Foreground(color).Bold(bold)
	return style.Render(text)
}

func (painter painter) failure(text string) string { return painter.paint(text, lipgloss.Color("1"), true) }
func (painter painter) value(text string) string   { return painter.paint(text, lipgloss.Color("3"), false) }
func (painter painter) good(text string) string    { return painter.paint(text, lipgloss.Color("2"), false) }

// --- Error diagnostics ---

// errorText renders an error diagnostic: the error line, an optional
// suggestion, the synopsis, and a pointer to --help.
func errorText(painter painter, path chain, message, suggestion string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s %s\n", painter.failure("error:"), message)
	if suggestion != "" {
		fmt.Fprintf(&builder, "\tDid you mean '%s'?\n", painter.good(suggestion))
	}
	fmt.Fprintf(&builder, "\nUSAGE:\n%s%s\n", indent, synopsis(path, path.leaf().flagSet()))
	fmt.Fprintf(&builder, "\nFor more information try %s\n", painter.good("--"+helpFlag))
	return builder.String()
}

func commandMismatchError(painter painter, path chain, got string) *UsageError {
	message := fmt.Sprintf("expected command '%s', got '%s'", path.fullName(), got)
	return &UsageError{
		Kind:    KindUnknownCommand,
		Command: path.fullName(),
		Message: message,
		Text: errorText(painter, path,
			fmt.Sprintf("Expected command '%s', got '%s'", path.fullName(), painter.value(got)), ""),
	}
}

func unknownSubcommandError(painter painter, path chain, name, suggestion string) *UsageError {
	return &UsageError{
		Kind:    KindUnknownCommand,
		Command: path.fullName(),
		Message: fmt.Sprintf("unknown subcommand %q", name),
		Text: errorText(painter, path,
			fmt.Sprintf("The subcommand '%s' wasn't recognized", painter.value(name)), suggestion),
	}
}

func missingSubcommandError(painter painter, path chain) *UsageError {
	return &UsageError{
		Kind:    KindMissingCommand,
		Command: path.fullName(),
		Message: "subcommand required",
		Text:    helpText(painter, path),
	}
}

func flagError(painter painter, path chain, flagSet *pflag.FlagSet, args []string, err error) *UsageError {
	message := err.Error()
	suggestion := ""
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		suggestion = suggestFlag(args, flagSet)
	}
	return &UsageError{
		Kind:    KindFlag,
		Command: path.fullName(),
		Message: message,
		Text:    errorText(painter, path, message, suggestion),
	}
}

func unexpectedArgumentError(painter painter, path chain, argument string) *UsageError {
	return &UsageError{
		Kind:    KindUnexpectedArgument,
		Command: path.fullName(),
		Message: fmt.Sprintf("unexpected argument %q", argument),
		Text: errorText(painter, path,
			fmt.Sprintf("Found argument '%s' which wasn't expected, or isn't valid in this context",
				painter.value(argument)), ""),
	}
}

func missingArgumentError(painter painter, path chain, missing []Arg) *UsageError {
	names := make([]string, len(missing))
	var message strings.Builder
	message.WriteString("The following required arguments were not provided:")
	for index, arg := range missing {
		names[index] = arg.placeholder()
		fmt.Fprintf(&message, "\n%s%s", indent, painter.failure(arg.placeholder()))
	}
	return &UsageError{
		Kind:    KindMissingArgument,
		Command: path.fullName(),
		Message: "missing required arguments: " + strings.Join(names, ", "),
		Text:    errorText(painter, path, message.String(), ""),
	}
}

func helpError(painter painter, path chain) *UsageError {
	return &UsageError{
		Kind:    KindHelp,
		Command: path.fullName(),
		Message: "help requested",
		Text:    helpText(painter, path),
	}
}

// helpForError resolves "help <sub> <sub>..." relative to path.
func helpForError(painter painter, path chain, names []string) *UsageError {
	for _, name := range names {
		sub := path.leaf().subcommand(name)
		if sub == nil {
			return unknownSubcommandError(painter, path, name, suggestCommand(name, path.leaf().Subcommands))
		}
		path = path.with(sub)
	}
	return helpError(painter, path)
}

func versionError(path chain) *UsageError {
	command := path.leaf()
	return &UsageError{
		Kind:    KindVersion,
		Command: path.fullName(),
		Message: "version requested",
		Text:    fmt.Sprintf("VERSION:\n%s%s %s\n", indent, path.fullName(), command.Version),
	}
}

// --- Help listing ---

// helpText renders the full help listing for the command at the end of
// path.
func helpText(painter painter, path chain) string {
	command := path.leaf()
	flagSet := command.flagSet()

	var builder strings.Builder
	title := path.fullName()
	if command.Version != "" {
		title += " " + command.Version
	}
	builder.WriteString(title + "\n")
	if command.Description != "" {
		builder.WriteString(strings.TrimRight(command.Description, "\n") + "\n")
	} else if command.Summary != "" {
		builder.WriteString(command.Summary + "\n")
	}

	fmt.Fprintf(&builder, "\nUSAGE:\n%s%s\n", indent, synopsis(path, flagSet))

	switches, options := flagRows(painter, flagSet)
	writeSection(&builder, flagsTitle, switches)
	writeSection(&builder, "OPTIONS", options)

	var argRows []row
	for _, arg := range command.Args {
		argRows = append(argRows, row{name: arg.placeholder(), description: arg.Summary})
	}
	writeSection(&builder, "ARGS", argRows)

	if len(command.Subcommands) > 0 {
		var subRows []row
		for _, sub := range command.Subcommands {
			subRows = append(subRows, row{name: sub.Name, description: sub.Summary})
		}
		subRows = append(subRows, row{
			name:        helpCommand,
			description: "Prints this message or the help of the given subcommand(s)",
		})
		writeSection(&builder, "SUBCOMMANDS", subRows)
	}

	return builder.String()
}

// synopsis returns the usage line for the command at the end of path.
func synopsis(path chain, flagSet *pflag.FlagSet) string {
	command := path.leaf()
	if command.Usage != "" {
		return command.Usage
	}

	parts := []string{path.fullName()}
	hasSwitches, hasOptions := false, false
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		if isSwitch(flag) {
			hasSwitches = true
		} else {
			hasOptions = true
		}
	})
	if hasSwitches {
		parts = append(parts, "[FLAGS]")
	}
	if hasOptions {
		parts = append(parts, "[OPTIONS]")
	}
	for _, arg := range command.Args {
		parts = append(parts, arg.placeholder())
	}
	if len(command.Subcommands) > 0 {
		if len(command.Args) > 0 {
			parts = append(parts, "[SUBCOMMAND]")
		} else {
			parts = append(parts, "<SUBCOMMAND>")
		}
	}
	return strings.Join(parts, " ")
}

// isSwitch reports whether flag can be given without a value.
func isSwitch(flag *pflag.Flag) bool {
	return flag.NoOptDefVal != ""
}

// row is one entry of a section listing.
type row struct {
	name        string
	description string
}

// flagRows splits the visible flags into switches and value-taking
// options, in the flag set's order.
func flagRows(painter painter, flagSet *pflag.FlagSet) (switches, options []row) {
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		spelling := painter.good("--" + flag.Name)
		if flag.Shorthand != "" {
			spelling = painter.good("-"+flag.Shorthand) + ", " + spelling
		} else {
			spelling = indent + spelling
		}

		varname, usage := pflag.UnquoteUsage(flag)
		if isSwitch(flag) {
			switches = append(switches, row{name: spelling, description: usage})
			return
		}
		if varname != "" {
			spelling += " <" + varname + ">"
		}
		if !isZeroDefault(flag.DefValue) {
			usage = strings.TrimSpace(fmt.Sprintf("%s [default: %s]", usage, flag.DefValue))
		}
		options = append(options, row{name: spelling, description: usage})
	})
	return switches, options
}

func isZeroDefault(value string) bool {
	switch value {
	case "", "0", "0s", "false", "[]":
		return true
	}
	return false
}

// flagsTitle heads the boolean flag listing.
const flagsTitle = "FLAGS"

// writeSection writes a titled two-column listing. Widths are measured
// without ANSI sequences so colored names still line up. Entries too
// wide for one line put the description on the next line.
func writeSection(builder *strings.Builder, title string, rows []row) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(builder, "\n%s:\n", title)

	width := 0
	for _, entry := range rows {
		if !entry.wraps() {
			width = max(width, ansi.StringWidth(entry.name))
		}
	}

	for _, entry := range rows {
		switch {
		case entry.description == "" && title == flagsTitle:
			// A line of bare spellings announces a description on the
			// next line, so an empty one is written out.
			fmt.Fprintf(builder, "%s%s\n\n", indent, entry.name)
		case entry.description == "":
			fmt.Fprintf(builder, "%s%s\n", indent, entry.name)
		case entry.wraps():
			fmt.Fprintf(builder, "%s%s\n%s%s\n", indent, entry.name, wrapIndent, entry.description)
		default:
			padding := strings.Repeat(" ", width-ansi.StringWidth(entry.name)+columnGap)
			fmt.Fprintf(builder, "%s%s%s%s\n", indent, entry.name, padding, entry.description)
		}
	}
}

func (entry row) wraps() bool {
	return len(indent)+ansi.StringWidth(entry.name)+columnGap+ansi.StringWidth(entry.description) > maxLineWidth
}
