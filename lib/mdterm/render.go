// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package mdterm

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

// minWidth bounds how far list nesting can narrow a block.
const minWidth = 10

// wrapBreakpoints are the characters ansi.Wrap may break after in
// addition to spaces.
const wrapBreakpoints = " ,.;-+|"

const (
	bullet     = "- "
	hangIndent = "  "
	codeIndent = "  "
)

// Options controls rendering.
type Options struct {
	// Width is the wrap width in columns. Non-positive means
	// DefaultWidth.
	Width int

	// Plain removes every escape sequence from the result.
	Plain bool

	// CodeLanguage is the chroma lexer used for fenced code without
	// an info string. Empty leaves such code faint and unhighlighted.
	CodeLanguage string

	// Theme defaults to DefaultTheme when zero.
	Theme *Theme
}

// CommonMark only; replies carry headings, code and bullet lists.
var markdown = goldmark.New()

// Render parses markdown and renders it as terminal text. The result
// has no trailing newline.
func Render(source string, options Options) string {
	if source == "" {
		return ""
	}
	width := options.Width
	if width <= 0 {
		width = DefaultWidth
	}
	theme := DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}

	// SetColorProfile is needed as well: Renderer.ColorProfile ignores
	// the termenv.Output profile unless one is set explicitly.
	styles := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	renderer := &renderer{
		source:       []byte(source),
		theme:        theme,
		codeLanguage: options.CodeLanguage,
		styles:       styles,
	}
	document := markdown.Parser().Parse(text.NewReader(renderer.source))

	result := renderer.blocks(document, width, "\n\n")
	if options.Plain {
		result = ansi.Strip(result)
	}
	return result
}

type renderer struct {
	source       []byte
	theme        Theme
	codeLanguage string
	styles       *lipgloss.Renderer
}

// blocks renders the children of parent and joins the non-empty ones.
func (renderer *renderer) blocks(parent ast.Node, width int, separator string) string {
	var parts []string
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if part := renderer.block(child, width); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, separator)
}

func (renderer *renderer) block(node ast.Node, width int) string {
	width = max(width, minWidth)

	switch node := node.(type) {
	case *ast.Heading:
		// The heading style replaces the inline text style.
		content := ansi.Strip(renderer.inline(node))
		if content == "" {
			return ""
		}
		style := renderer.styles.NewStyle().Bold(true).Foreground(renderer.theme.HeaderForeground)
		if node.Level <= 2 {
			style = style.Underline(true)
		}
		return ansi.Wrap(style.Render(content), width, wrapBreakpoints)

	case *ast.Paragraph, *ast.TextBlock:
		return ansi.Wrap(renderer.inline(node), width, wrapBreakpoints)

	case *ast.FencedCodeBlock:
		language := string(node.Language(renderer.source))
		if language == "" {
			language = renderer.codeLanguage
		}
		return indentCode(renderer.highlight(segmentsText(node.Lines(), renderer.source), language))

	case *ast.CodeBlock:
		return indentCode(renderer.faintLines(segmentsText(node.Lines(), renderer.source)))

	case *ast.HTMLBlock:
		return indentCode(renderer.faintLines(segmentsText(node.Lines(), renderer.source)))

	case *ast.List:
		separator := "\n\n"
		if node.IsTight {
			separator = "\n"
		}
		var items []string
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, hang(renderer.blocks(item, width-len(bullet), separator)))
		}
		return strings.Join(items, separator)

	default:
		return renderer.blocks(node, width, "\n\n")
	}
}

// inline renders the inline children of parent unwrapped.
func (renderer *renderer) inline(parent ast.Node) string {
	var builder strings.Builder
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			builder.WriteString(renderer.text(string(child.Segment.Value(renderer.source))))
			switch {
			case child.HardLineBreak():
				builder.WriteString("\n")
			case child.SoftLineBreak():
				// Soft breaks reflow.
				builder.WriteString(" ")
			}

		case *ast.String:
			builder.WriteString(renderer.text(string(child.Value)))

		case *ast.CodeSpan:
			builder.WriteString(renderer.faint(codeSpanText(child, renderer.source)))

		case *ast.RawHTML:
			// Angle-bracket placeholders such as <service> parse as raw
			// HTML; they are shown as written.
			builder.WriteString(renderer.text(segmentsText(child.Segments, renderer.source)))

		case *ast.AutoLink:
			builder.WriteString(renderer.text(string(child.Label(renderer.source))))

		default:
			builder.WriteString(renderer.inline(child))
		}
	}
	return builder.String()
}

func (renderer *renderer) text(content string) string {
	return renderer.styles.NewStyle().Foreground(renderer.theme.NormalText).Render(content)
}

func (renderer *renderer) faint(content string) string {
	return renderer.styles.NewStyle().Foreground(renderer.theme.FaintText).Render(content)
}

// faintLines styles each line on its own. Rendering a multi-line
// string in one call would pad every line to the widest one.
func (renderer *renderer) faintLines(content string) string {
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for index, line := range lines {
		lines[index] = renderer.faint(line)
	}
	return strings.Join(lines, "\n")
}

// highlight highlights code with chroma, falling back to faint text
// when no language is known or chroma fails.
func (renderer *renderer) highlight(code, language string) string {
	if language == "" {
		return renderer.faintLines(code)
	}
	var buffer strings.Builder
	if err := quick.Highlight(&buffer, code, language, "terminal256", "monokai"); err != nil {
		return renderer.faintLines(code)
	}
	return buffer.String()
}

// indentCode indents an already styled block without wrapping it.
func indentCode(styled string) string {
	lines := strings.Split(styled, "\n")
	// Highlighters may end with a line holding only reset sequences;
	// fold it into the last visible line.
	for len(lines) > 1 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		tail := strings.TrimSpace(lines[len(lines)-1])
		lines = lines[:len(lines)-1]
		lines[len(lines)-1] += tail
	}
	for index, line := range lines {
		lines[index] = codeIndent + line
	}
	return strings.Join(lines, "\n")
}

// hang puts a bullet on the first line and indents the others under
// it. Blank lines stay blank.
func hang(content string) string {
	lines := strings.Split(content, "\n")
	for index, line := range lines {
		switch {
		case index == 0:
			lines[index] = bullet + line
		case line != "":
			lines[index] = hangIndent + line
		}
	}
	return strings.Join(lines, "\n")
}

func segmentsText(segments *text.Segments, source []byte) string {
	var builder strings.Builder
	for index := 0; index < segments.Len(); index++ {
		segment := segments.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}

func codeSpanText(node ast.Node, source []byte) string {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			code.Write(child.Segment.Value(source))
		case *ast.String:
			code.Write(child.Value)
		}
	}
	return code.String()
}
