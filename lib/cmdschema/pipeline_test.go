// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema_test

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/YushiOMOTE/structbotopt/lib/botopt"
	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
)

func buildCommand() *cmdschema.Command {
	return &cmdschema.Command{
		Name:    "build",
		Summary: "Compile the project",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("build", pflag.ContinueOnError)
			flagSet.BoolP("release", "r", false, "Build with optimizations")
			flagSet.Bool("locked-dependencies-only-and-nothing-else", false,
				"Refuse to resolve anything that is not already pinned in the lock file")
			return flagSet
		},
		Args: []cmdschema.Arg{{Name: "package", Summary: "Package to build", Required: true}},
	}
}

func TestPipeline_Parsed(t *testing.T) {
	validator := &cmdschema.Validator{Root: buildCommand()}
	result := botopt.Parse[*cmdschema.Invocation](validator, "build　-r\nweb")
	if result.Outcome != botopt.Parsed {
		t.Fatalf("Outcome = %v, want parsed (markdown: %q)", result.Outcome, result.Markdown)
	}
	if result.Value.Arg("package") != "web" {
		t.Errorf("Arg(package) = %q, want web", result.Value.Arg("package"))
	}
	if release, _ := result.Value.Flags.GetBool("release"); !release {
		t.Error("release = false, want true")
	}
}

func TestPipeline_NotAddressed(t *testing.T) {
	validator := &cmdschema.Validator{Root: buildCommand()}
	result := botopt.Parse[*cmdschema.Invocation](validator, "please build web")
	if result.Outcome != botopt.NotAddressed {
		t.Errorf("Outcome = %v, want not-addressed", result.Outcome)
	}
}

func TestPipeline_HelpMarkdown(t *testing.T) {
	validator := &cmdschema.Validator{Root: buildCommand()}
	result := botopt.Parse[*cmdschema.Invocation](validator, "build --help")
	if result.Outcome != botopt.Rejected {
		t.Fatalf("Outcome = %v, want rejected", result.Outcome)
	}

	want := "\n##### USAGE\n\n" +
		"```\nbuild [FLAGS] <package>\n```\n" +
		"\n" +
		"\n##### FLAGS\n\n" +
		"* `-h`, `--help`       Prints help information\n" +
		"* `--locked-dependencies-only-and-nothing-else`: Refuse to resolve anything that is not already pinned in the lock file\n" +
		"* `-r`, `--release`    Build with optimizations\n" +
		"\n##### ARGS\n\n" +
		"* `<package>`: Package to build\n"
	if result.Markdown != want {
		t.Errorf("Markdown:\n%q\nwant:\n%q", result.Markdown, want)
	}
}

func TestPipeline_ColoredErrorMarkdown(t *testing.T) {
	validator := &cmdschema.Validator{Root: buildCommand(), Color: true}
	result := botopt.Parse[*cmdschema.Invocation](validator, "build web extra")
	if result.Outcome != botopt.Rejected {
		t.Fatalf("Outcome = %v, want rejected", result.Outcome)
	}

	want := "\n##### USAGE\n\n" +
		"```\nbuild [FLAGS] <package>\n```\n" +
		"\n" +
		"For more information try `--help`\n"
	if result.Markdown != want {
		t.Errorf("Markdown:\n%q\nwant:\n%q", result.Markdown, want)
	}
	if !strings.Contains(result.Diagnostic, "\x1b[") {
		t.Errorf("raw diagnostic has no color: %q", result.Diagnostic)
	}
}

func TestPipeline_ColoredHelpCompoundsBackticks(t *testing.T) {
	validator := &cmdschema.Validator{Root: buildCommand(), Color: true}
	result := botopt.Parse[*cmdschema.Invocation](validator, "build -h")
	if !strings.Contains(result.Markdown, "* ``-r``, ``--release``    Build with optimizations\n") {
		t.Errorf("Markdown missing doubly quoted flag bullet:\n%s", result.Markdown)
	}
}

func TestPipeline_FlagWithoutDescription(t *testing.T) {
	command, err := cmdschema.CommandDecl{
		Name: "deploy",
		Flags: []cmdschema.FlagDecl{
			{Name: "dry-run", Type: cmdschema.FlagBool},
			{Name: "force", Type: cmdschema.FlagBool, Usage: "Skip confirmation"},
		},
	}.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	for _, color := range []bool{false, true} {
		validator := &cmdschema.Validator{Root: command, Color: color}
		result := botopt.Parse[*cmdschema.Invocation](validator, "deploy --help")
		if result.Outcome != botopt.Rejected {
			t.Fatalf("color=%v: Outcome = %v, want rejected", color, result.Outcome)
		}

		var bullets []string
		for _, line := range strings.Split(result.Markdown, "\n") {
			if strings.HasPrefix(line, "* ") {
				bullets = append(bullets, line)
			}
		}
		if len(bullets) != 3 {
			t.Fatalf("color=%v: got %d flag bullets, want 3:\n%s", color, len(bullets), result.Markdown)
		}
		if !strings.Contains(bullets[0], "--dry-run") || !strings.HasSuffix(bullets[0], ": ") {
			t.Errorf("color=%v: dry-run bullet = %q, want an empty description", color, bullets[0])
		}
		if !strings.Contains(bullets[1], "--force") || !strings.HasSuffix(bullets[1], "Skip confirmation") {
			t.Errorf("color=%v: force bullet = %q", color, bullets[1])
		}
		if !strings.Contains(bullets[2], "--help") {
			t.Errorf("color=%v: help bullet = %q", color, bullets[2])
		}
	}
}

func TestPipeline_Router(t *testing.T) {
	status, err := cmdschema.CommandDecl{
		Name: "status",
		Args: []cmdschema.ArgDecl{{Name: "service"}},
	}.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var router botopt.Router[*cmdschema.Invocation]
	for _, root := range []*cmdschema.Command{buildCommand(), status} {
		if err := router.Register(&cmdschema.Validator{Root: root}); err != nil {
			t.Fatalf("Register(%s): %v", root.Name, err)
		}
	}

	result := router.Route("status api")
	if result.Outcome != botopt.Parsed || result.Value.Arg("service") != "api" {
		t.Errorf("Route(status api) = %v %v", result.Outcome, result.Value)
	}
	if result := router.Route("build"); result.Outcome != botopt.Rejected || result.Command != "build" {
		t.Errorf("Route(build) = %v/%q, want rejected/build", result.Outcome, result.Command)
	}
}
