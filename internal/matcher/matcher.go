// Package matcher pairs every participant of a gift exchange with a receiver.
//
// A Matcher takes a snapshot of participant identifiers and directional
// exclusions and returns a bijection in which nobody gives to themselves and no
// giver is paired with someone they exclude. When no such pairing exists, or the
// search budget runs out, Match reports it with ok == false. That outcome is a
// normal result for the caller to surface, not an error.
package matcher

import (
	"math/rand"
	"time"
)

// DefaultMaxSteps is the number of candidate receivers the backtracking search
// may try before it gives up and reports the exchange as infeasible.
const DefaultMaxSteps = 1_000_000

// Exclusions maps a giver identifier to the receivers that giver must not draw.
// The receiver lists are treated as sets; entries naming identifiers that are
// not participants are ignored.
type Exclusions map[string][]string

// Assignment maps each giver identifier to its receiver identifier.
type Assignment map[string]string

// Rand is the randomness used to order givers and candidates.
// *math/rand.Rand satisfies it.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

// Matcher computes assignments. A Matcher built without WithRand or WithSeed
// seeds a fresh generator on every call and is safe for concurrent use; one
// sharing an injected Rand is as safe as that Rand.
type Matcher struct {
	rnd      Rand
	maxSteps int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(m *Matcher) {
		m.rnd = r
	}
}

// WithSeed makes the Matcher reproducible: the same seed and inputs always
// produce the same assignment.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithMaxSteps bounds the backtracking search. Zero or a negative value removes
// the bound.
func WithMaxSteps(steps int) Option {
	return func(m *Matcher) {
		m.maxSteps = steps
	}
}

// New creates a Matcher with DefaultMaxSteps and a time-seeded random source.
func New(opts ...Option) *Matcher {
	m := &Matcher{maxSteps: DefaultMaxSteps}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match assigns a receiver to every participant. Duplicate identifiers are
// collapsed, keeping the first occurrence. It returns ok == false when fewer than
// two distinct participants are given, when the exclusions leave no valid
// assignment, or when the search budget is exhausted on an exchange of at most
// HallThreshold participants. Larger exchanges fall back to the matching found
// while checking feasibility. Neither argument is modified.
func (m *Matcher) Match(participants []string, exclusions Exclusions) (Assignment, bool) {
	ids := distinct(participants)
	if len(ids) < 2 {
		return nil, false
	}

	eligible := eligibility(ids, exclusions)
	for _, row := range eligible {
		if !anyTrue(row) {
			return nil, false
		}
	}

	rnd := m.rnd
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	matching, ok := feasible(eligible, rnd)
	if !ok {
		return nil, false
	}

	receivers, ok := newSearch(eligible, rnd, m.maxSteps).run()
	if !ok {
		// Past HallThreshold the feasibility check already holds a valid matching.
		if matching == nil {
			return nil, false
		}
		receivers = matching
	}

	assignment := make(Assignment, len(ids))
	for giver, receiver := range receivers {
		assignment[ids[giver]] = ids[receiver]
	}
	return assignment, true
}

// Valid reports whether a is a complete assignment over participants that
// respects exclusions.
func Valid(a Assignment, participants []string, exclusions Exclusions) bool {
	ids := distinct(participants)
	if len(ids) < 2 || len(a) != len(ids) {
		return false
	}
	received := make(map[string]bool, len(ids))
	for _, giver := range ids {
		receiver, ok := a[giver]
		if !ok || receiver == giver || received[receiver] {
			return false
		}
		for _, excluded := range exclusions[giver] {
			if excluded == receiver {
				return false
			}
		}
		received[receiver] = true
	}
	for _, id := range ids {
		if !received[id] {
			return false
		}
	}
	return true
}

func distinct(participants []string) []string {
	seen := make(map[string]bool, len(participants))
	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		if seen[p] {
			continue
		}
		seen[p] = true
		ids = append(ids, p)
	}
	return ids
}

// eligibility builds the giver x receiver matrix of allowed pairs.
func eligibility(ids []string, exclusions Exclusions) [][]bool {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	eligible := make([][]bool, len(ids))
	for g, giver := range ids {
		row := make([]bool, len(ids))
		for r := range row {
			row[r] = r != g
		}
		for _, excluded := range exclusions[giver] {
			if r, ok := index[excluded]; ok {
				row[r] = false
			}
		}
		eligible[g] = row
	}
	return eligible
}

func anyTrue(row []bool) bool {
	for _, ok := range row {
		if ok {
			return true
		}
	}
	return false
}
