// Package verify cross-checks a pigeon-hole witness against an
// independent SAT solver, rather than trusting the detector's own
// propagation logic to judge itself. The witness's own clauses are not
// enough to check on their own: a disjunctive clause set is essentially
// always jointly satisfiable, so the question worth asking gini is
// whether the underlying residual formula the witness was drawn from
// actually forces every pair of clauses apart, column by column.
package verify

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
	"github.com/pigeonpur/pigeonpur/internal/pigeon"
)

// Witness independently confirms a canonical witness's column exclusion
// (Testable Property 4, §8 of SPEC_FULL.md): for every pair of the
// witness's clauses and every column i, it builds a tiny CNF from w's
// Context (the residual formula the witness was found against) plus the
// two clauses' i-th literals asserted true, and asks gini whether that
// is satisfiable. A genuine pigeon-hole witness must have every such
// check come back UNSAT — no two clauses can ever occupy the same
// column at once. Any check coming back SAT means the witness does not
// actually hold the column-exclusion property it claims to.
func Witness(w pigeon.Canonical) (bool, error) {
	if len(w.Clauses) < 2 {
		return false, errors.New("verify: witness has fewer than two clauses")
	}

	k := len(w.Clauses[0].Lits)
	if k == 0 {
		return false, errors.New("verify: witness clauses have no columns")
	}
	for _, c := range w.Clauses {
		if len(c.Lits) != k {
			return false, errors.Errorf("verify: clause %d has %d columns, want %d", c.ID, len(c.Lits), k)
		}
	}
	if err := validateContext(w.Context); err != nil {
		return false, err
	}

	for a := 0; a < len(w.Clauses); a++ {
		for b := a + 1; b < len(w.Clauses); b++ {
			for i := 0; i < k; i++ {
				sat, err := jointlySatisfiable(w.Context, w.Clauses[a].Lits[i], w.Clauses[b].Lits[i])
				if err != nil {
					return false, err
				}
				if sat {
					return false, nil
				}
			}
		}
	}

	return true, nil
}

func validateContext(rf cnf.ResidualFormula) error {
	if len(rf) == 0 {
		return errors.New("verify: witness has no recorded context to verify against")
	}
	for _, c := range rf {
		if len(c.Lits) == 0 {
			return errors.Errorf("verify: context clause %d is empty", c.ID)
		}
	}
	return nil
}

// jointlySatisfiable asks gini whether rf is satisfiable with both la
// and lb additionally assumed true — the tiny per-column CNF that
// stands in for "can these two witness clauses hold the same column at
// once".
func jointlySatisfiable(rf cnf.ResidualFormula, la, lb cnf.Literal) (bool, error) {
	g := gini.New()
	for _, c := range rf {
		for _, l := range c.Lits {
			g.Add(litOf(l))
		}
		g.Add(0)
	}
	g.Add(litOf(la))
	g.Add(0)
	g.Add(litOf(lb))
	g.Add(0)

	switch g.Solve() {
	case 1:
		return true, nil
	case -1:
		return false, nil
	default:
		return false, errors.New("verify: gini returned an inconclusive result")
	}
}

func litOf(l cnf.Literal) z.Lit {
	return z.Dimacs2Lit(int(l))
}
