package match

import "strings"

// Distance returns the Levenshtein edit distance between a and b, counted in
// runes: the fewest single-rune insertions, deletions and substitutions that
// turn a into b.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	// row[j] is the distance between the processed prefix of ra and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i, ca := range ra {
		diag := row[0]
		row[0] = i + 1

		for j, cb := range rb {
			up := row[j+1]

			sub := diag
			if ca != cb {
				sub++
			}

			row[j+1] = min(up+1, row[j]+1, sub)
			diag = up
		}
	}

	return row[len(rb)]
}

// Closest returns the candidate nearest to word, compared case-insensitively.
// A candidate qualifies when its distance is at most a third of the longer
// length, and at least 1. Ties go to the earlier candidate.
func Closest(word string, candidates ...string) (string, bool) {
	best, bestDist := "", -1
	lw := strings.ToLower(word)

	for _, c := range candidates {
		d := Distance(lw, strings.ToLower(c))

		limit := max(len([]rune(word)), len([]rune(c))) / 3
		if d > max(limit, 1) {
			continue
		}

		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist >= 0
}

// Hint formats the closest candidate as ` (did you mean "x"?)`, or returns ""
// when nothing is close.
func Hint(word string, candidates ...string) string {
	if c, ok := Closest(word, candidates...); ok {
		return ` (did you mean "` + c + `"?)`
	}

	return ""
}
