// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package mdterm

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette for rendered replies. All colors are
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	HeaderForeground lipgloss.Color
	HelpText         lipgloss.Color

	// Reply outcome accents used by chat front ends.
	Accepted lipgloss.Color
	Rejected lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeaderForeground: lipgloss.Color("255"),
	HelpText:         lipgloss.Color("241"),

	Accepted: lipgloss.Color("114"), // green
	Rejected: lipgloss.Color("196"), // red
}
