package matcher

import "math/bits"

// HallThreshold is the largest participant count checked by enumerating every
// non-empty subset of givers against Hall's condition, O(2^n * n). Above it a
// maximum bipartite matching by augmenting paths decides feasibility in
// O(n * edges).
const HallThreshold = 20

// feasible reports whether a perfect assignment exists. Above HallThreshold it
// also returns the matching it found, giver -> receiver.
func feasible(eligible [][]bool, rnd Rand) ([]int, bool) {
	if len(eligible) <= HallThreshold {
		return nil, hallCondition(eligible)
	}
	return perfectMatching(eligible, rnd)
}

// hallCondition reports whether every subset of givers can reach at least as
// many receivers as it has members. It stops at the first violating subset.
func hallCondition(eligible [][]bool) bool {
	n := len(eligible)
	masks := make([]uint32, n)
	for g, row := range eligible {
		for r, ok := range row {
			if ok {
				masks[g] |= 1 << r
			}
		}
	}

	for subset := uint32(1); subset < 1<<n; subset++ {
		var reachable uint32
		for s := subset; s != 0; s &= s - 1 {
			reachable |= masks[bits.TrailingZeros32(s)]
		}
		if bits.OnesCount32(reachable) < bits.OnesCount32(subset) {
			return false
		}
	}
	return true
}

// perfectMatching runs Kuhn's augmenting path algorithm over shuffled givers and
// candidates. It returns giver -> receiver when every giver can be matched.
func perfectMatching(eligible [][]bool, rnd Rand) ([]int, bool) {
	n := len(eligible)
	shuffle := func(xs []int) {
		rnd.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	}

	candidates := make([][]int, n)
	for g, row := range eligible {
		for r, ok := range row {
			if ok {
				candidates[g] = append(candidates[g], r)
			}
		}
		shuffle(candidates[g])
	}
	givers := make([]int, n)
	for g := range givers {
		givers[g] = g
	}
	shuffle(givers)

	owner := make([]int, n)
	for r := range owner {
		owner[r] = -1
	}

	var augment func(g int, seen []bool) bool
	augment = func(g int, seen []bool) bool {
		for _, r := range candidates[g] {
			if seen[r] {
				continue
			}
			seen[r] = true
			if owner[r] < 0 || augment(owner[r], seen) {
				owner[r] = g
				return true
			}
		}
		return false
	}

	for _, g := range givers {
		if !augment(g, make([]bool, n)) {
			return nil, false
		}
	}

	receiver := make([]int, n)
	for r, g := range owner {
		receiver[g] = r
	}
	return receiver, true
}
