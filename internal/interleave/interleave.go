// Package interleave reorders a question set so consecutive questions switch
// topics, the scheduling trick behind better long-term retention.
package interleave

import (
	"math/rand/v2"

	"github.com/sebastianahumada1/studyapp/internal/question"
)

// untopiced groups questions that carry no topic name.
const untopiced = "(none)"

// Interleave returns a permutation of qs where topics alternate: questions
// are grouped by topic (group order = first-encountered order), each group is
// shuffled, then the groups are merged round-robin. Two adjacent output
// elements share a topic only when a single group remains in the tail.
// rng must not be nil; inject a seeded source for deterministic tests.
func Interleave(qs []question.Question, rng *rand.Rand) []question.Question {
	if len(qs) <= 1 {
		return append([]question.Question(nil), qs...)
	}

	groups := make(map[string][]question.Question)
	var order []string
	for _, q := range qs {
		key := q.TopicName
		if key == "" {
			key = untopiced
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], q)
	}

	for _, key := range order {
		shuffle(groups[key], rng)
	}

	out := make([]question.Question, 0, len(qs))
	for round := 0; len(out) < len(qs); round++ {
		for _, key := range order {
			g := groups[key]
			if round < len(g) {
				out = append(out, g[round])
			}
		}
	}
	return out
}

// Shuffle returns a flat uniform shuffle of qs, used when interleaving is
// disabled for the session.
func Shuffle(qs []question.Question, rng *rand.Rand) []question.Question {
	out := append([]question.Question(nil), qs...)
	shuffle(out, rng)
	return out
}

// shuffle is an in-place Fisher-Yates.
func shuffle(qs []question.Question, rng *rand.Rand) {
	rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}

// NewRand returns a seeded random source, convenient for tests and for the
// CLI which seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
