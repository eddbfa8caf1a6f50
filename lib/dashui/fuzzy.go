// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab sizes for fzf's match scratch memory, matching the sizes fzf
// itself allocates per worker.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)

// FuzzyResult is the outcome of matching a pattern against a single
// text. Score is zero when the pattern does not match; Positions holds
// the matched rune indices in ascending order.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's FuzzyMatchV2 algorithm against a single text.
// Both sides are lowercased so matching is case-insensitive regardless
// of the algorithm's smart-case behavior. The slab is scratch memory
// reused across calls; nil is accepted and allocates per call.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	lowered := []rune(strings.ToLower(string(pattern)))

	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
		// fzf reports positions in reverse match order.
		sort.Ints(matched.Positions)
	}
	return matched
}
