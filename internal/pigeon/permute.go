package pigeon

// Enumerate is Component D, the permutation enumerator. Given the
// per-position bitmasks of a candidate clause (one mark per candidate
// literal, each bit naming a reference-clause position), it returns every
// permutation of bit assignments consistent with bitmask propagation:
// a depth-first search that, at each recursion depth, picks one not-yet
// fixed bit from the current bitmask at that depth, propagates its
// removal from the remaining bitmasks via PropagateBitmask, and recurses.
// A branch dead-ends (and is dropped) the moment PropagateBitmask reports
// ok=false. The result is deduplicated against permutations already
// emitted by an earlier branch reaching the same bitmask vector.
func Enumerate(marks []Mark) [][]Mark {
	var results [][]Mark
	seen := make(map[string]bool)

	var walk func(cur []Mark, depth int)
	walk = func(cur []Mark, depth int) {
		if depth == len(cur) {
			key := markKey(cur)
			if !seen[key] {
				seen[key] = true
				results = append(results, append([]Mark(nil), cur...))
			}
			return
		}

		m := cur[depth]
		if m == 0 {
			return
		}
		for bit := 0; bit < 64; bit++ {
			if m&(1<<uint(bit)) == 0 {
				continue
			}
			next := append([]Mark(nil), cur...)
			next[depth] = Mark(1) << uint(bit)
			rest, ok := PropagateBitmask(next, bit, depth)
			if !ok {
				continue
			}
			walk(rest, depth+1)
		}
	}

	walk(append([]Mark(nil), marks...), 0)
	return results
}

func markKey(marks []Mark) string {
	b := make([]byte, 0, len(marks)*8)
	for _, m := range marks {
		for i := 0; i < 8; i++ {
			b = append(b, byte(m>>(8*uint(i))))
		}
	}
	return string(b)
}
