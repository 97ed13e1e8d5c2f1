// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/YushiOMOTE/structbotopt/lib/botopt"
	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
	"github.com/YushiOMOTE/structbotopt/lib/mdterm"
)

// chat runs the interactive transcript until the user quits.
func (app *app) chat() error {
	model := newChatModel(app)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(app.stdout))
	_, err := program.Run()
	return err
}

// exchange is one submitted message and the bot's answer.
type exchange struct {
	message string
	result  botopt.Result[*cmdschema.Invocation]
}

// chatModel is the bubbletea model: a scrolling transcript above a
// single-line input.
type chatModel struct {
	app *app

	input      textinput.Model
	transcript viewport.Model
	exchanges  []exchange

	width  int
	height int
	ready  bool

	promptStyle   lipgloss.Style
	acceptedStyle lipgloss.Style
	rejectedStyle lipgloss.Style
	faintStyle    lipgloss.Style
}

func newChatModel(app *app) *chatModel {
	input := textinput.New()
	input.Placeholder = "type a message, e.g. " + app.router.Commands()[0] + " --help"
	input.Prompt = "> "
	input.Focus()

	theme := mdterm.DefaultTheme
	return &chatModel{
		app:           app,
		input:         input,
		promptStyle:   lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		acceptedStyle: lipgloss.NewStyle().Foreground(theme.Accepted),
		rejectedStyle: lipgloss.NewStyle().Foreground(theme.Rejected),
		faintStyle:    lipgloss.NewStyle().Foreground(theme.HelpText),
	}
}

func (model *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (model *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		model.resize(msg.Width, msg.Height)
		return model, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return model, tea.Quit
		case tea.KeyEnter:
			model.submit()
			return model, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var command tea.Cmd
			model.transcript, command = model.transcript.Update(msg)
			return model, command
		}
	}

	var command tea.Cmd
	model.input, command = model.input.Update(msg)
	return model, command
}

func (model *chatModel) View() string {
	if !model.ready {
		return "starting..."
	}
	help := model.faintStyle.Render("enter: send  pgup/pgdn: scroll  esc: quit")
	return model.transcript.View() + "\n" + model.input.View() + "\n" + help
}

// resize lays the transcript out above the input and help lines and
// re-renders it at the new width.
func (model *chatModel) resize(width, height int) {
	model.width = width
	model.height = height
	transcriptHeight := max(height-2, 1)
	if !model.ready {
		model.transcript = viewport.New(width, transcriptHeight)
		model.ready = true
	} else {
		model.transcript.Width = width
		model.transcript.Height = transcriptHeight
	}
	model.input.Width = max(width-len(model.input.Prompt)-1, 1)
	model.refresh()
}

// submit routes the input line and appends the exchange.
func (model *chatModel) submit() {
	message := model.input.Value()
	if strings.TrimSpace(message) == "" {
		return
	}
	model.input.Reset()

	result := model.app.router.Route(message)
	model.app.logger.Debug("message routed",
		"outcome", result.Outcome.String(),
		"target", result.Command,
	)
	model.exchanges = append(model.exchanges, exchange{message: message, result: result})
	model.refresh()
}

func (model *chatModel) refresh() {
	if !model.ready {
		return
	}
	model.transcript.SetContent(model.renderTranscript())
	model.transcript.GotoBottom()
}

func (model *chatModel) renderTranscript() string {
	blocks := make([]string, 0, len(model.exchanges))
	for _, exchange := range model.exchanges {
		blocks = append(blocks, model.renderExchange(exchange))
	}
	return strings.Join(blocks, "\n\n")
}

func (model *chatModel) renderExchange(exchange exchange) string {
	var builder strings.Builder
	builder.WriteString(model.promptStyle.Render("you: " + exchange.message))
	builder.WriteString("\n")

	result := exchange.result
	switch result.Outcome {
	case botopt.Parsed:
		builder.WriteString(model.acceptedStyle.Render("✓ " + result.Value.String()))
	case botopt.Rejected:
		builder.WriteString(model.rejectedStyle.Render("✗ " + result.Command))
		builder.WriteString("\n")
		builder.WriteString(model.app.renderReply(result.Markdown, model.width))
	case botopt.NotAddressed:
		builder.WriteString(model.faintStyle.Render("(not addressed to the bot)"))
	}
	return builder.String()
}
