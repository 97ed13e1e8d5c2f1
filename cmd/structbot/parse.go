// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/YushiOMOTE/structbotopt/lib/botopt"
	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
)

// parseReport is the --json form of a routed message.
type parseReport struct {
	Outcome    string   `json:"outcome"`
	Command    string   `json:"command,omitempty"`
	Invocation string   `json:"invocation,omitempty"`
	Path       []string `json:"path,omitempty"`
	Positional []string `json:"positional,omitempty"`
	Markdown   string   `json:"markdown,omitempty"`
}

// parse routes one message and reports the outcome through output and
// the exit code.
func (app *app) parse(invocation *cmdschema.Invocation, stdin io.Reader) error {
	message, err := readMessage(invocation.Args("message"), stdin)
	if err != nil {
		return err
	}

	result := app.router.Route(message)
	app.logger.Info("message routed",
		"outcome", result.Outcome.String(),
		"target", result.Command,
	)

	if asJSON, _ := invocation.Flags.GetBool("json"); asJSON {
		if err := app.writeReport(result); err != nil {
			return err
		}
		return outcomeError(result.Outcome)
	}

	switch result.Outcome {
	case botopt.Parsed:
		fmt.Fprintln(app.stdout, result.Value.String())
	case botopt.Rejected:
		fmt.Fprintln(app.stdout, app.renderReply(result.Markdown, 0))
	case botopt.NotAddressed:
		fmt.Fprintf(app.stderr, "message is not addressed to any command (%s)\n",
			strings.Join(app.router.Commands(), ", "))
	}
	return outcomeError(result.Outcome)
}

// readMessage joins the message words, or reads stdin when the only
// word is "-".
func readMessage(words []string, stdin io.Reader) (string, error) {
	if len(words) == 1 && words[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading message from stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(words, " "), nil
}

func (app *app) writeReport(result botopt.Result[*cmdschema.Invocation]) error {
	report := parseReport{
		Outcome:  result.Outcome.String(),
		Command:  result.Command,
		Markdown: result.Markdown,
	}
	if result.Outcome == botopt.Parsed {
		report.Invocation = result.Value.String()
		report.Path = result.Value.Path
		report.Positional = result.Value.Positional
	}

	encoder := json.NewEncoder(app.stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// outcomeError maps an outcome to its exit code; nil means 0.
func outcomeError(outcome botopt.Outcome) error {
	switch outcome {
	case botopt.Rejected:
		return &exitError{Code: exitRejected}
	case botopt.NotAddressed:
		return &exitError{Code: exitNotAddressed}
	default:
		return nil
	}
}
