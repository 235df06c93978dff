package fuzzy

import (
	"sort"
	"strings"
)

// Item is one searchable entry.
type Item interface {
	// SearchText returns the text used for matching.
	SearchText() string

	// DisplayText returns the text shown in the UI.
	DisplayText() string

	// ID returns a stable identifier for the item.
	ID() string
}

// Result is one scored match.
type Result struct {
	Item Item

	// Score is the match quality, 0-1, higher is better.
	Score float64

	// Matches holds the indices of the matched characters, for
	// highlighting.
	Matches []int
}

// MinScore is the floor below which a match is dropped from results.
const MinScore = 0.3

// Search scores every item against the query and returns the survivors
// sorted by score, best first. Ties keep the item order, which for the
// command palette is menu order. An empty query returns every item, so a
// freshly opened palette lists the full table.
func Search(query string, items []Item) []Result {
	if query == "" {
		out := make([]Result, len(items))
		for i, it := range items {
			out[i] = Result{Item: it, Score: 1.0}
		}
		return out
	}

	out := make([]Result, 0, len(items))
	for _, it := range items {
		score, matches := Match(query, it.SearchText())
		if score >= MinScore {
			out = append(out, Result{Item: it, Score: score, Matches: matches})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Match scores how well pattern matches text, 0 (no match) to 1 (exact),
// and returns the matched character indices for highlighting. Exact beats
// prefix beats substring beats subsequence; a subsequence match is
// penalized for gaps between its characters and rewarded for starting
// early in the text.
func Match(pattern, text string) (float64, []int) {
	if len(pattern) == 0 {
		return 1.0, nil
	}

	if pattern == text {
		return 1.0, seq(0, len(pattern))
	}

	patternLower := strings.ToLower(pattern)
	textLower := strings.ToLower(text)

	if strings.HasPrefix(textLower, patternLower) {
		return 0.9, seq(0, len(pattern))
	}

	if idx := strings.Index(textLower, patternLower); idx >= 0 {
		return 0.8, seq(idx, len(pattern))
	}

	// Subsequence walk: each pattern character in order, at its earliest
	// position.
	matches := make([]int, 0, len(patternLower))
	var i, j int
	for i < len(patternLower) && j < len(textLower) {
		if patternLower[i] == textLower[j] {
			matches = append(matches, j)
			i++
		}
		j++
	}
	if i < len(patternLower) {
		return 0.0, nil
	}

	matchRatio := float64(len(patternLower)) / float64(len(textLower))

	gapPenalty := 0.0
	for i := 1; i < len(matches); i++ {
		gap := matches[i] - matches[i-1] - 1
		if gap > 0 {
			gapPenalty += float64(gap) / float64(len(textLower))
		}
	}

	positionBonus := 0.1 * (1.0 - float64(matches[0])/float64(len(textLower)))

	// Scaled down so a scattered subsequence never outranks a substring.
	score := (matchRatio - gapPenalty + positionBonus) * 0.7
	if score < 0 {
		score = 0
	} else if score > 1 {
		score = 1
	}
	return score, matches
}

func seq(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// StringItem adapts a bare string.
type StringItem string

func (s StringItem) SearchText() string  { return string(s) }
func (s StringItem) DisplayText() string { return string(s) }
func (s StringItem) ID() string          { return string(s) }

// StringItems wraps a string slice.
func StringItems(ss []string) []Item {
	out := make([]Item, len(ss))
	for i, s := range ss {
		out[i] = StringItem(s)
	}
	return out
}
