// Package similarity scores how close two question texts are and finds
// near-duplicate questions in a bank. All functions are pure: no state is
// kept between calls and the supplied records are never mutated.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/ABDe3N/quizbank/internal/domain/entities"
)

// DefaultThreshold is the score at or above which two questions are
// considered near-duplicates unless the caller asks otherwise.
const DefaultThreshold = 70.0

// Match pairs a candidate question with its similarity score against a
// target. Matches are transient views; the underlying question is shared
// with the caller's collection.
type Match struct {
	Question *entities.Question
	Score    float64
}

// Normalize returns the canonical comparison form of s: lower-cased, with
// leading/trailing whitespace removed and every whitespace run collapsed to
// a single space. Total over all inputs and idempotent.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Distance returns the Levenshtein edit distance between a and b: the
// minimum number of single-rune insertions, deletions and substitutions
// turning one into the other. Inputs are compared as given; callers
// normalize first.
func Distance(a, b string) int {
	r1 := []rune(a)
	r2 := []rune(b)

	// Two rows instead of the full (m+1)x(n+1) matrix.
	cols := len(r2) + 1
	prev := make([]int, cols)
	curr := make([]int, cols)

	for j := 0; j < cols; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i

		for j := 1; j < cols; j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}

			curr[j] = min(
				curr[j-1]+1,    // insertion
				prev[j]+1,      // deletion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[cols-1]
}

// Score rates the similarity of two texts as a percentage in [0, 100],
// rounded to two decimal places. Both inputs are normalized before
// comparison. Identical normalized forms score exactly 100, two empty
// inputs included; when only one input is empty the score is 0.
func Score(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == nb {
		return 100
	}

	if a == "" || b == "" {
		return 0
	}

	maxLen := max(len([]rune(na)), len([]rune(nb)))
	if maxLen == 0 {
		return 100
	}

	ratio := float64(maxLen-Distance(na, nb)) / float64(maxLen)

	// Round half-up to two decimals.
	return math.Floor(ratio*100*100+0.5) / 100
}

// FindNearDuplicates returns every candidate scoring at least threshold
// against the target's text, ordered by descending score. The target itself
// is excluded by id, never by text. A nil target or one without text yields
// no matches.
func FindNearDuplicates(target *entities.Question, candidates []*entities.Question, threshold float64) []Match {
	if target == nil || target.Text == "" {
		return nil
	}

	var matches []Match
	for _, c := range candidates {
		if c == nil || c.ID == target.ID {
			continue
		}

		score := Score(target.Text, c.Text)
		if score >= threshold {
			matches = append(matches, Match{Question: c, Score: score})
		}
	}

	// Equal scores keep candidate order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
