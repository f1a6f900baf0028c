package ordered

// levenshtein aligns source to target through the full cost table and
// appends the alignment to steps. Target indices are shifted by offset so
// the function can align sub-slices for hirschberg.
//
// Row i and column j hold the cost of producing target[:i] from source[:j].
// Backtracking prefers replace (or match), then delete, then insert.
func levenshtein[T any](source, target []T, eq func(a, b T) bool, offset int, steps []step) []step {
	n, m := len(target), len(source)
	width := m + 1
	d := make([]int, (n+1)*width)
	for j := 0; j <= m; j++ {
		d[j] = j
	}
	for i := 1; i <= n; i++ {
		row, prev := i*width, (i-1)*width
		d[row] = i
		for j := 1; j <= m; j++ {
			sub := d[prev+j-1]
			if !eq(target[i-1], source[j-1]) {
				sub++
			}
			d[row+j] = min(sub, d[row+j-1]+1, d[prev+j]+1)
		}
	}

	start := len(steps)
	i, j := n, m
	for i > 0 || j > 0 {
		cur := d[i*width+j]
		switch {
		case i > 0 && j > 0:
			same := eq(target[i-1], source[j-1])
			cost := 1
			if same {
				cost = 0
			}
			switch {
			case cur == d[(i-1)*width+j-1]+cost:
				if same {
					steps = append(steps, step{kind: stepMatch})
				} else {
					steps = append(steps, step{kind: stepReplace, target: offset + i - 1})
				}
				i--
				j--
			case cur == d[i*width+j-1]+1:
				steps = append(steps, step{kind: stepDelete})
				j--
			default:
				steps = append(steps, step{kind: stepInsert, target: offset + i - 1})
				i--
			}
		case j > 0:
			steps = append(steps, step{kind: stepDelete})
			j--
		default:
			steps = append(steps, step{kind: stepInsert, target: offset + i - 1})
			i--
		}
	}

	tail := steps[start:]
	for l, r := 0, len(tail)-1; l < r; l, r = l+1, r-1 {
		tail[l], tail[r] = tail[r], tail[l]
	}
	return steps
}

// Distance returns the edit distance between existing and updated using a
// single pair of cost rows.
func Distance[T comparable](existing, updated []T) int {
	row := scoreRow(existing, updated, func(a, b T) bool { return a == b }, false)
	return row[len(existing)]
}
