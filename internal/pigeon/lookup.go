package pigeon

import "github.com/pigeonpur/pigeonpur/internal/cnf"

// Propagate is Component A, the lookup-propagator. Given a residual
// formula and a starting literal l0, it returns every literal forced
// true by assigning l0 and iterating unit propagation to fixpoint, in
// the order the literals were derived, assuming no prior assignment.
//
// Unlike the branching layer's watched-literal engine, Propagate does
// not stop on conflict: when a clause becomes empty under the current
// (isolated, from-scratch) assignment, the contradictory literal is
// simply not re-recorded and propagation continues over the rest of the
// formula. Callers that need a definitive conflict signal should look
// for the absence of an expected literal in the result, not for an
// error return — this function has none to give.
func Propagate(rf cnf.ResidualFormula, idx Index, l0 cnf.Literal) []cnf.Literal {
	assigned := make(map[cnf.Literal]bool)
	queued := make(map[cnf.Literal]bool)

	assigned[l0] = true
	queued[l0] = true
	queue := []cnf.Literal{l0}

	var propagated []cnf.Literal

	for len(queue) > 0 {
		lit := queue[0]
		queue = queue[1:]
		propagated = append(propagated, lit)

		for _, clause := range idx[lit.Neg()] {
			var survivor cnf.Literal
			count := 0
			for _, l := range clause.Lits {
				if !assigned[l.Neg()] {
					count++
					survivor = l
					if count > 1 {
						break
					}
				}
			}
			if count == 1 && !assigned[survivor] && !queued[survivor] {
				assigned[survivor] = true
				queued[survivor] = true
				queue = append(queue, survivor)
			}
		}
	}

	return propagated
}
