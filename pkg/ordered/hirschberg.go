package ordered

type hirschberg[T any] struct {
	eq    func(a, b T) bool
	steps []step
}

// run aligns source to target, whose first element is updated[offset].
func (h *hirschberg[T]) run(source, target []T, offset int) {
	switch {
	case len(target) == 0:
		for range source {
			h.steps = append(h.steps, step{kind: stepDelete})
		}
	case len(source) == 0:
		for i := range target {
			h.steps = append(h.steps, step{kind: stepInsert, target: offset + i})
		}
	case len(target) == 1 || len(source) == 1:
		h.steps = levenshtein(source, target, h.eq, offset, h.steps)
	default:
		mid := len(target) / 2
		fwd := scoreRow(source, target[:mid], h.eq, false)
		bwd := scoreRow(source, target[mid:], h.eq, true)

		m := len(source)
		split, best := 0, fwd[0]+bwd[m]
		for j := 1; j <= m; j++ {
			if cost := fwd[j] + bwd[m-j]; cost < best {
				split, best = j, cost
			}
		}

		h.run(source[:split], target[:mid], offset)
		h.run(source[split:], target[mid:], offset+mid)
	}
}

// scoreRow returns the last row of the cost table for target against every
// prefix of source. With reverse set both inputs are read back to front, so
// entry j is the cost of producing target from the last j source elements.
func scoreRow[T any](source, target []T, eq func(a, b T) bool, reverse bool) []int {
	m, n := len(source), len(target)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		t := target[i-1]
		if reverse {
			t = target[n-i]
		}
		for j := 1; j <= m; j++ {
			s := source[j-1]
			if reverse {
				s = source[m-j]
			}
			sub := prev[j-1]
			if !eq(t, s) {
				sub++
			}
			cur[j] = min(sub, cur[j-1]+1, prev[j]+1)
		}
		prev, cur = cur, prev
	}
	return prev
}
