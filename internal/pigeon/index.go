package pigeon

import "github.com/pigeonpur/pigeonpur/internal/cnf"

// Index is a literal occurrence index over a residual formula: for every
// literal, the residual clauses that currently contain it. It is built
// once per detector invocation and shared by the lookup-propagator and
// the pigeon constructor, both of which re-run propagation many times
// over the same residual.
type Index map[cnf.Literal][]cnf.Residual

// NewIndex builds an occurrence index over rf.
func NewIndex(rf cnf.ResidualFormula) Index {
	idx := make(Index)
	for _, c := range rf {
		for _, l := range c.Lits {
			idx[l] = append(idx[l], c)
		}
	}
	return idx
}
