// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/YushiOMOTE/structbotopt/lib/botopt"
	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
	"github.com/YushiOMOTE/structbotopt/lib/config"
)

func testApp(t *testing.T, arguments ...string) *app {
	t.Helper()
	t.Setenv(config.EnvironmentVariable, "")

	validator := &cmdschema.Validator{Root: rootCommand()}
	invocation, err := validator.Validate(append([]string{programName}, arguments...))
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	app, err := newApp(invocation, &bytes.Buffer{}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return app
}

func send(t *testing.T, model *chatModel, message string) {
	t.Helper()
	model.input.SetValue(message)
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated != model {
		t.Fatal("Update returned a different model")
	}
}

func TestChat_Transcript(t *testing.T) {
	model := newChatModel(testApp(t, "chat"))
	if view := model.View(); view != "starting..." {
		t.Errorf("View before sizing = %q", view)
	}
	model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	send(t, model, "deploy run api")
	send(t, model, "deploy run --wait")
	send(t, model, "hello there")
	send(t, model, "   ")

	if len(model.exchanges) != 3 {
		t.Fatalf("exchanges = %d, want 3 (blank input ignored)", len(model.exchanges))
	}
	outcomes := []botopt.Outcome{botopt.Parsed, botopt.Rejected, botopt.NotAddressed}
	for index, want := range outcomes {
		if got := model.exchanges[index].result.Outcome; got != want {
			t.Errorf("exchange %d outcome = %v, want %v", index, got, want)
		}
	}
	if model.input.Value() != "" {
		t.Errorf("input not reset: %q", model.input.Value())
	}

	transcript := ansi.Strip(model.renderTranscript())
	for _, want := range []string{
		"you: deploy run api\n✓ deploy run api",
		"✗ deploy",
		"USAGE",
		"(not addressed to the bot)",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q:\n%s", want, transcript)
		}
	}
	if !strings.Contains(ansi.Strip(model.View()), "esc: quit") {
		t.Error("View missing help line")
	}
}

func TestChat_RawReplies(t *testing.T) {
	model := newChatModel(testApp(t, "--raw", "chat"))
	model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	send(t, model, "deploy --help")

	if transcript := model.renderTranscript(); !strings.Contains(transcript, "##### SUBCOMMANDS") {
		t.Errorf("raw transcript missing markdown heading:\n%s", transcript)
	}
}

func TestChat_Quit(t *testing.T) {
	model := newChatModel(testApp(t, "chat"))
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		_, command := model.Update(tea.KeyMsg{Type: key})
		if command == nil {
			t.Fatalf("key %v: no command returned", key)
		}
		if _, ok := command().(tea.QuitMsg); !ok {
			t.Errorf("key %v did not quit", key)
		}
	}
}
