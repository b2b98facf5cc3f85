package matcher

// search is the mutable frame of one Match call.
type search struct {
	eligible [][]bool
	rnd      Rand
	maxSteps int
	steps    int

	order    []int  // givers in the order they are assigned
	used     []bool // receivers already taken
	receiver []int  // giver -> receiver
}

func newSearch(eligible [][]bool, rnd Rand, maxSteps int) *search {
	n := len(eligible)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return &search{
		eligible: eligible,
		rnd:      rnd,
		maxSteps: maxSteps,
		order:    order,
		used:     make([]bool, n),
		receiver: make([]int, n),
	}
}

func (s *search) run() ([]int, bool) {
	s.shuffle(s.order)
	if !s.assign(0) {
		return nil, false
	}
	return s.receiver, true
}

// assign gives a receiver to s.order[k] and recurses, undoing the choice when
// the rest of the givers cannot be completed.
func (s *search) assign(k int) bool {
	if k == len(s.order) {
		return true
	}
	giver := s.order[k]

	candidates := make([]int, 0, len(s.used))
	for r, ok := range s.eligible[giver] {
		if ok && !s.used[r] {
			candidates = append(candidates, r)
		}
	}
	s.shuffle(candidates)

	for _, r := range candidates {
		if s.exhausted() {
			return false
		}
		s.steps++

		s.used[r] = true
		if s.remainingCovered(k + 1) {
			s.receiver[giver] = r
			if s.assign(k + 1) {
				return true
			}
		}
		s.used[r] = false
	}
	return false
}

// remainingCovered reports whether every giver from position k on still has at
// least one free eligible receiver.
func (s *search) remainingCovered(k int) bool {
	for _, giver := range s.order[k:] {
		covered := false
		for r, ok := range s.eligible[giver] {
			if ok && !s.used[r] {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

func (s *search) exhausted() bool {
	return s.maxSteps > 0 && s.steps >= s.maxSteps
}

func (s *search) shuffle(xs []int) {
	s.rnd.Shuffle(len(xs), func(i, j int) {
		xs[i], xs[j] = xs[j], xs[i]
	})
}
