// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package cmdschema

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/pflag"
)

// suggestionDistance is the largest edit distance still worth
// suggesting. It catches transpositions and dropped or extra
// characters.
const suggestionDistance = 3

// closest returns the candidate nearest to unknown, or "" if none is
// within suggestionDistance. Ties go to the earlier candidate.
func closest(unknown string, candidates []string) string {
	bestName := ""
	bestDistance := suggestionDistance + 1
	for _, candidate := range candidates {
		distance := levenshtein.ComputeDistance(unknown, candidate)
		if distance < bestDistance {
			bestDistance = distance
			bestName = candidate
		}
	}
	return bestName
}

// suggestCommand returns the closest subcommand name (including the
// help pseudo-subcommand) to unknown, or "".
func suggestCommand(unknown string, commands []*Command) string {
	candidates := make([]string, 0, len(commands)+1)
	for _, command := range commands {
		candidates = append(candidates, command.Name)
	}
	candidates = append(candidates, helpCommand)
	return closest(unknown, candidates)
}

// suggestFlag finds the first flag in args that flagSet does not
// define and returns the closest defined flag, spelled with its
// prefix. Returns "" if every flag is defined or nothing is close.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		defined = append(defined, flag.Name)
	})

	for _, arg := range args {
		if arg == "--" {
			break
		}
		if len(arg) < 2 || !strings.HasPrefix(arg, "-") {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if index := strings.IndexByte(name, '='); index >= 0 {
			name = name[:index]
		}
		if name == "" || isDefined(flagSet, name) {
			continue
		}

		if best := closest(name, defined); best != "" {
			return "--" + best
		}
		// Only the first unrecognized flag is considered.
		break
	}
	return ""
}

func isDefined(flagSet *pflag.FlagSet, name string) bool {
	if flagSet.Lookup(name) != nil {
		return true
	}
	return len(name) == 1 && flagSet.ShorthandLookup(name) != nil
}
