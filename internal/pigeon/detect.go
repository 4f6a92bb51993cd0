// Package pigeon implements the in-line structural detector for
// generalized pigeon-hole sub-problems: given the residual CNF visible
// at a branching-search node, it looks for a set of k+1 clauses that are
// pairwise exclusive under unit propagation (a size-(k+1) witness to
// PHP(k+1 -> k)), and if found returns it so the search can treat the
// current sub-tree as refuted rather than finding the same
// contradiction member-by-member.
package pigeon

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
)

// ErrInvalidResidual is returned by ValidateResidual when the residual
// formula violates the detector's input contract.
var ErrInvalidResidual = errors.New("pigeon: invalid residual formula")

// ValidateResidual enforces the detector's input contract: every residual
// clause must have at least one literal (an empty residual clause is a
// conflict the branching layer must have already caught, never something
// the detector should be asked to reason about), and no residual clause
// may contain a variable more than once.
func ValidateResidual(rf cnf.ResidualFormula) error {
	for _, c := range rf {
		if len(c.Lits) == 0 {
			return errors.Wrapf(ErrInvalidResidual, "clause %d is empty", c.ID)
		}
		seen := make(map[int]bool, len(c.Lits))
		for _, l := range c.Lits {
			if seen[l.Var()] {
				return errors.Wrapf(ErrInvalidResidual, "clause %d repeats variable %d", c.ID, l.Var())
			}
			seen[l.Var()] = true
		}
	}
	return nil
}

// Result reports the outcome of one detector invocation.
type Result struct {
	Found   bool
	Witness Canonical
}

// Bounds restricts which reference clause lengths k the detector will
// consider (a witness found for such a reference has k+1 clauses). A
// zero Bounds imposes no restriction: Min of 0 accepts any k, and Max of
// 0 is treated as unlimited rather than "at most zero". The CLI's
// -min-pigeons/-max-pigeons flags set this directly.
type Bounds struct {
	Min, Max int
}

// DetectPigeon is Component F's orchestration (§4.F "detect_pigeon"): for
// every clause in rf taken as a reference C (whose length falls within
// bounds and that hasn't already been tried as a reference earlier in
// this call), it runs the mark analyser, then — per candidate clause C'
// of the same length sharing no variable with C — the bitmask
// propagator and permutation enumerator, appending one reordered pool
// entry per surviving permutation. If enough distinct candidates
// survive, it hands the pool to the pigeon constructor and returns the
// first witness found (recorded into cache if new), or Found=false if
// no reference clause yields a detectable pigeon-hole structure.
func DetectPigeon(rf cnf.ResidualFormula, cache *Cache, bounds Bounds) (Result, error) {
	if err := ValidateResidual(rf); err != nil {
		return Result{}, err
	}

	idx := NewIndex(rf)
	blocked := make(map[int]bool)

	for _, ref := range rf {
		k := ref.Len()
		if k == 0 || k < bounds.Min || (bounds.Max > 0 && k > bounds.Max) {
			continue
		}

		marks := AnalyseClause(rf, idx, ref)

		var pool []cnf.Residual
		cptCands := 0
		for _, c := range rf {
			if c.ID == ref.ID || blocked[c.ID] {
				continue
			}
			if c.Len() != k {
				continue
			}
			if cnf.SharesVariable(c.Lits, ref.Lits) {
				continue
			}

			// 2a: the candidate bitmask tuple, one M_C(C'[j]) per position.
			tuple := make([]Mark, k)
			for j, lit := range c.Lits {
				tuple[j] = marks[lit]
			}

			// 2b: Component C with r = -1 — reject outright if any
			// position's bitmask is already empty or collapses to a
			// contradiction.
			if _, ok := PropagateBitmask(tuple, -1, -1); !ok {
				continue
			}

			// 2c/2d: Component D enumerates every valid permutation; each
			// becomes its own reordered pool entry (2d).
			perms := Enumerate(tuple)
			if len(perms) == 0 {
				continue
			}
			for _, perm := range perms {
				pool = append(pool, reorderCandidate(c, perm))
			}
			cptCands++
		}

		// A clause tried as reference is blocked from being a candidate
		// against any later reference in this same invocation (§4.F
		// "detect_pigeon", blocked).
		blocked[ref.ID] = true

		// Step 3: not enough distinct candidate clauses to ever reach
		// k+1 members; skip the (more expensive) constructor search.
		if cptCands+1 <= k {
			continue
		}

		if w, ok := Construct(rf, idx, ref, pool, k); ok {
			if cache == nil {
				return Result{Found: true, Witness: Canonicalise(w, rf)}, nil
			}
			canon, _ := cache.Add(w, rf)
			return Result{Found: true, Witness: canon}, nil
		}
	}

	return Result{Found: false}, nil
}

// reorderCandidate rebuilds c with its literals placed according to
// perm, a permutation emitted by Component D: perm[j] is the single-bit
// mask 1<<sigma(j), so c.Lits[j] (position j in the candidate's own
// order) is placed at column sigma(j) in the returned residual, aligning
// it to the reference clause's column order.
func reorderCandidate(c cnf.Residual, perm []Mark) cnf.Residual {
	lits := make([]cnf.Literal, len(perm))
	for j, m := range perm {
		col := bits.TrailingZeros64(uint64(m))
		lits[col] = c.Lits[j]
	}
	return cnf.Residual{ID: c.ID, Lits: lits}
}
