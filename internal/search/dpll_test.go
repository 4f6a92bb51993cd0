package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonpur/pigeonpur/internal/assign"
	"github.com/pigeonpur/pigeonpur/internal/cnf"
	"github.com/pigeonpur/pigeonpur/internal/dimacs"
)

func TestSolveSatisfiable(t *testing.T) {
	parsed := dimacs.Result{
		Formula: cnf.Formula{NumVars: 2, Clauses: []cnf.Clause{
			{ID: 0, Lits: []cnf.Literal{1, 2}},
		}},
		Initial: noopInitial(2),
	}

	res, err := Solve(context.Background(), parsed, Config{})
	require.NoError(t, err)
	assert.True(t, res.Satisfiable)
}

func TestSolveUnsatisfiable(t *testing.T) {
	// Two directly conflicting unit clauses peeled into ToPropagate.
	parsed := dimacs.Result{
		Formula:     cnf.Formula{NumVars: 1},
		Initial:     noopInitial(1),
		ToPropagate: []cnf.Literal{1, -1},
	}

	res, err := Solve(context.Background(), parsed, Config{})
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
}

func TestSolveWithPigeonDetection(t *testing.T) {
	// PHP(3 -> 2): unsatisfiable, and the detector should short-circuit
	// the search rather than requiring full chronological backtracking.
	parsed := dimacs.Result{
		Formula: cnf.Formula{NumVars: 6, Clauses: []cnf.Clause{
			{ID: 0, Lits: []cnf.Literal{1, 2}},
			{ID: 1, Lits: []cnf.Literal{3, 4}},
			{ID: 2, Lits: []cnf.Literal{5, 6}},
			{ID: 3, Lits: []cnf.Literal{-1, -3}},
			{ID: 4, Lits: []cnf.Literal{-1, -5}},
			{ID: 5, Lits: []cnf.Literal{-3, -5}},
			{ID: 6, Lits: []cnf.Literal{-2, -4}},
			{ID: 7, Lits: []cnf.Literal{-2, -6}},
			{ID: 8, Lits: []cnf.Literal{-4, -6}},
		}},
		Initial: noopInitial(6),
	}

	res, err := Solve(context.Background(), parsed, Config{DetectPigeons: true, MinPigeons: 2, MaxPigeons: 64})
	require.NoError(t, err)
	assert.False(t, res.Satisfiable)
	assert.NotEmpty(t, res.Witnesses)
}

// noopInitial stands in for the DIMACS loader's Initial assignment in
// tests that only need parsed.ToPropagate (Solve never reads Initial
// directly: its literals have already been folded into ToPropagate).
func noopInitial(n int) *assign.Set {
	return assign.New(n)
}
