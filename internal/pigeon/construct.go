package pigeon

import "github.com/pigeonpur/pigeonpur/internal/cnf"

// Witness is a candidate pigeon-hole structure: k+1 "pigeon" clauses
// pairwise exclusive under unit propagation, column by column.
type Witness struct {
	Clauses []cnf.Residual
}

// canSelect reports whether candidate is selectable against the current
// partial witness (§4.E "Selectability predicate"): candidate must share
// no variable with any existing member, and for every position i,
// propagating candidate.Lits[i] must force the negation of every
// existing member's i-th literal.
func canSelect(rf cnf.ResidualFormula, idx Index, current []cnf.Residual, candidate cnf.Residual) bool {
	for _, member := range current {
		if cnf.SharesVariable(member.Lits, candidate.Lits) {
			return false
		}
	}
	for _, member := range current {
		if !excludes(rf, idx, candidate, member) {
			return false
		}
	}
	return true
}

// excludes reports whether, for every position i, propagating a.Lits[i]
// forces -b.Lits[i] — the column-aligned pairwise exclusion §4.E and
// Testable Property 4 (§8) require. a and b must already be aligned to
// the same column order (the reordered pool entries Component D
// produces, or the reference clause itself).
func excludes(rf cnf.ResidualFormula, idx Index, a, b cnf.Residual) bool {
	if len(a.Lits) != len(b.Lits) {
		return false
	}
	for i, la := range a.Lits {
		forced := Propagate(rf, idx, la)
		neg := b.Lits[i].Neg()
		hit := false
		for _, f := range forced {
			if f == neg {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Construct is Component E, the pigeon constructor: a greedy backtracking
// search that grows a pairwise-exclusive set of clauses from an initial
// reference clause and a pool of candidates, targeting exactly k+1
// members (a size-(k+1) pigeon set witnessing PHP(k+1 -> k)). remain must
// already be filtered to clauses that share no variable with ref. k is
// the reference clause's length.
func Construct(rf cnf.ResidualFormula, idx Index, ref cnf.Residual, remain []cnf.Residual, k int) (Witness, bool) {
	current := []cnf.Residual{ref}
	result, ok := construct(rf, idx, current, remain, k)
	return Witness{Clauses: result}, ok
}

func construct(rf cnf.ResidualFormula, idx Index, current, remain []cnf.Residual, k int) ([]cnf.Residual, bool) {
	if len(current) == k+1 {
		return append([]cnf.Residual(nil), current...), true
	}
	// Prune: even taking every remaining candidate can't reach k+1 members.
	if len(remain)+len(current) < k+1 {
		return nil, false
	}

	for i, cand := range remain {
		if !canSelect(rf, idx, current, cand) {
			continue
		}

		next := make([]cnf.Residual, 0, len(remain)-1)
		for j, other := range remain {
			if j == i {
				continue
			}
			if cnf.SharesVariable(other.Lits, cand.Lits) {
				continue
			}
			next = append(next, other)
		}

		if found, ok := construct(rf, idx, append(current, cand), next, k); ok {
			return found, true
		}
	}

	return nil, false
}
