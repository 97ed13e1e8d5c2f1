// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/YushiOMOTE/structbotopt/lib/cmdschema"
)

// fuzzyMatch scores text against a lowercase pattern with fzf's
// algorithm. ok is false when the pattern does not match at all.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) (score int, ok bool) {
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
	return result.Score, result.Start >= 0
}

// filterCommands keeps the commands whose name or summary fuzzily
// matches pattern, best match first. Ties keep their configured order.
// An empty pattern keeps everything.
func filterCommands(commands []*cmdschema.Command, pattern string) []*cmdschema.Command {
	if pattern == "" {
		return commands
	}
	runes := []rune(strings.ToLower(pattern))
	slab := util.MakeSlab(100*1024, 2048)

	type scored struct {
		command *cmdschema.Command
		score   int
	}
	var matches []scored
	for _, command := range commands {
		if score, ok := fuzzyMatch(command.Name+" "+command.Summary, runes, slab); ok {
			matches = append(matches, scored{command: command, score: score})
		}
	}
	slices.SortStableFunc(matches, func(a, b scored) int {
		return b.score - a.score
	})

	filtered := make([]*cmdschema.Command, len(matches))
	for index, match := range matches {
		filtered[index] = match.command
	}
	return filtered
}
