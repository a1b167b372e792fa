// Package suggest ranks candidate names by similarity to a mistyped input,
// for "did you mean" hints on unknown subcommands.
package suggest

import (
	"sort"
	"strings"
)

// similarityFloor is the minimum score for a candidate to be suggested.
const similarityFloor = 0.5

// prefixScore is awarded when the target is a prefix of a candidate, ranking
// completions above near misses.
const prefixScore = 0.9

// FindSimilar returns up to maxResults candidates similar to target, best
// matches first. Ties break alphabetically.
func FindSimilar(target string, candidates []string, maxResults int) []string {
	if target == "" || maxResults <= 0 {
		return []string{}
	}
	type scored struct {
		name  string
		score float64
	}
	matches := make([]scored, 0, len(candidates))
	for _, name := range candidates {
		if score := similarity(target, name); score > similarityFloor {
			matches = append(matches, scored{name: name, score: score})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score == matches[j].score {
			return matches[i].name < matches[j].name
		}
		return matches[i].score > matches[j].score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.name)
	}
	return out
}

// similarity scores how close a is to b on a 0..1 scale, case-insensitively.
func similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1.0
	}
	if strings.HasPrefix(b, a) {
		return prefixScore
	}
	longest := max(len(a), len(b))
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between a and b with two rolling
// rows.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
