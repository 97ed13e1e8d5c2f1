// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package botopt

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestFormatDiagnostic(t *testing.T) {
	tests := []struct {
		name       string
		diagnostic string
		want       string
	}{
		{
			name:       "empty",
			diagnostic: "",
			want:       "",
		},
		{
			name:       "usage and flags",
			diagnostic: "USAGE:\n    cmd [OPTIONS]\n\nFLAGS:\n    -h, --help    Show help\n",
			want: "\n##### USAGE\n\n" +
				"```\ncmd [OPTIONS]\n```\n" +
				"\n" +
				"\n##### FLAGS\n\n" +
				"* `-h`, `--help`    Show help\n",
		},
		{
			name:       "lines before the first header are dropped",
			diagnostic: "cmd 1.0\nDoes things\n\nUSAGE:\n    cmd\n",
			want:       "\n##### USAGE\n\n```\ncmd\n```\n",
		},
		{
			name:       "only the first usage line is fenced",
			diagnostic: "USAGE:\n    cmd build\n    cmd test\n",
			want:       "\n##### USAGE\n\n```\ncmd build\n```\ncmd test\n",
		},
		{
			name:       "every usage section gets its own fence",
			diagnostic: "USAGE:\n    cmd a\nUSAGE:\n    cmd b\n",
			want:       "\n##### USAGE\n\n```\ncmd a\n```\n\n##### USAGE\n\n```\ncmd b\n```\n",
		},
		{
			name:       "subcommand bullet",
			diagnostic: "SUBCOMMANDS:\n    build    Compile the project\n",
			want:       "\n##### SUBCOMMANDS\n\n* `build`: Compile the project\n",
		},
		{
			name:       "argument bullet collapses spacing",
			diagnostic: "ARGS:\n    <target>      Where   to deploy\n",
			want:       "\n##### ARGS\n\n* `<target>`: Where to deploy\n",
		},
		{
			name:       "subcommand without description",
			diagnostic: "SUBCOMMANDS:\n    build\n",
			want:       "\n##### SUBCOMMANDS\n\n* `build`: \n",
		},
		{
			name:       "flag description on the next line is merged",
			diagnostic: "FLAGS:\n    --verbose\n            Use verbose output\n",
			want:       "\n##### FLAGS\n\n* `--verbose`: Use verbose output\n",
		},
		{
			name:       "wrapped flag at end of input",
			diagnostic: "FLAGS:\n    -v, --verbose",
			want:       "\n##### FLAGS\n\n* `-v`, `--verbose`: \n",
		},
		{
			name:       "blank flag lines produce nothing",
			diagnostic: "FLAGS:\n\n    -q, --quiet    Less output\n   \n\n",
			want:       "\n##### FLAGS\n\n* `-q`, `--quiet`    Less output\n",
		},
		{
			name:       "hyphenated words in flag descriptions are quoted too",
			diagnostic: "FLAGS:\n    --ro    Mount read-only volumes\n",
			want:       "\n##### FLAGS\n\n* `--ro`    Mount read`-only` volumes\n",
		},
		{
			name:       "unknown section passes through",
			diagnostic: "OPTIONS:\n    -c, --config <FILE>    Config file\n",
			want:       "\n##### OPTIONS\n\n    -c, --config <FILE>    Config file\n",
		},
		{
			name:       "header keeps the rest of its line",
			diagnostic: "NOTE: deploys are slow\n",
			want:       "\n##### NOTE deploys are slow\n\n",
		},
		{
			name:       "lowercase error line is not a header",
			diagnostic: "error: unexpected argument\n\nUSAGE:\n    cmd\n",
			want:       "\n##### USAGE\n\n```\ncmd\n```\n",
		},
		{
			name:       "carriage returns",
			diagnostic: "USAGE:\r\n    cmd\r\n",
			want:       "\n##### USAGE\n\n```\ncmd\n```\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FormatDiagnostic(test.diagnostic)
			if got != test.want {
				t.Errorf("FormatDiagnostic(%q)\n got: %q\nwant: %q", test.diagnostic, got, test.want)
			}
		})
	}
}

func TestFormatDiagnostic_ANSISequences(t *testing.T) {
	diagnostic := "\x1b[1;31merror:\x1b[0m Found argument '\x1b[33m--lod\x1b[0m'\n" +
		"\n" +
		"USAGE:\n" +
		"    deploy [FLAGS]\n" +
		"\n" +
		"FLAGS:\n" +
		"    \x1b[32m--loud\x1b[0m    Say it \x1b[1mloud\x1b[0m please\n" +
		"OPTIONS:\n" +
		"    \x1b[32m--to\x1b[0m <target>\n"

	want := "\n##### USAGE\n\n" +
		"```\ndeploy [FLAGS]\n```\n" +
		"\n" +
		"\n##### FLAGS\n\n" +
		// Color codes and explicit quoting both contribute backticks.
		"* ``--loud``    Say it `loud` please\n" +
		"\n##### OPTIONS\n\n" +
		"    `--to` <target>\n"

	got := FormatDiagnostic(diagnostic)
	if got != want {
		t.Errorf("FormatDiagnostic()\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatDiagnostic_MergedDescriptionIsRaw(t *testing.T) {
	// The lookahead line is taken as-is, without color substitution.
	diagnostic := "FLAGS:\n    --verbose\n        \x1b[1mLoud\x1b[0m output\n"
	want := "\n##### FLAGS\n\n* `--verbose`: \x1b[1mLoud\x1b[0m output\n"
	if got := FormatDiagnostic(diagnostic); got != want {
		t.Errorf("FormatDiagnostic()\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatDiagnostic_SingleUsageLineSingleFence(t *testing.T) {
	got := FormatDiagnostic("USAGE:\n    cmd <input>\n")
	if count := strings.Count(got, "```"); count != 2 {
		t.Errorf("got %d fence markers, want 2 (one block): %q", count, got)
	}
}

func TestFormatDiagnostic_ValidMarkdown(t *testing.T) {
	diagnostic := strings.Join([]string{
		"app 1.0",
		"Does things",
		"",
		"USAGE:",
		"    app [FLAGS] <SUBCOMMAND>",
		"",
		"FLAGS:",
		"    -h, --help       Prints help information",
		"    -v, --verbose",
		"            Use verbose output",
		"",
		"SUBCOMMANDS:",
		"    build    Compile the project",
		"    help     Prints this message",
	}, "\n")

	output := FormatDiagnostic(diagnostic)

	want := "\n##### USAGE\n\n" +
		"```\napp [FLAGS] <SUBCOMMAND>\n```\n" +
		"\n" +
		"\n##### FLAGS\n\n" +
		"* `-h`, `--help`       Prints help information\n" +
		"* `-v`, `--verbose`: Use verbose output\n" +
		"\n##### SUBCOMMANDS\n\n" +
		"* `build`: Compile the project\n" +
		"* `help`: Prints this message\n"
	if output != want {
		t.Fatalf("FormatDiagnostic()\n got: %q\nwant: %q", output, want)
	}

	source := []byte(output)
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []string
	var fences []string
	lists, items := 0, 0
	err := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := node.(type) {
		case *ast.Heading:
			if node.Level != 5 {
				t.Errorf("heading level = %d, want 5", node.Level)
			}
			headings = append(headings, segmentText(node, source))
		case *ast.FencedCodeBlock:
			fences = append(fences, segmentText(node, source))
		case *ast.List:
			lists++
			if node.Marker != '*' {
				t.Errorf("list marker = %q, want '*'", node.Marker)
			}
		case *ast.ListItem:
			items++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}

	wantHeadings := []string{"USAGE", "FLAGS", "SUBCOMMANDS"}
	if strings.Join(headings, ",") != strings.Join(wantHeadings, ",") {
		t.Errorf("headings = %q, want %q", headings, wantHeadings)
	}
	if len(fences) != 1 || fences[0] != "app [FLAGS] <SUBCOMMAND>\n" {
		t.Errorf("fenced blocks = %q, want one holding the synopsis", fences)
	}
	if lists != 2 {
		t.Errorf("lists = %d, want 2", lists)
	}
	if items != 4 {
		t.Errorf("list items = %d, want 4", items)
	}
}

// segmentText joins the raw source lines of a block node.
func segmentText(node ast.Node, source []byte) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\n\n", 2},
		{"\n", 1},
		{"a\r\nb", 2},
	}
	for _, test := range tests {
		if got := len(splitLines(test.input)); got != test.want {
			t.Errorf("len(splitLines(%q)) = %d, want %d", test.input, got, test.want)
		}
	}
}
