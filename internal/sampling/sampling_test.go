package sampling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
	"github.com/pigeonpur/pigeonpur/internal/pigeon"
)

func php21() cnf.Formula {
	return cnf.Formula{
		NumVars: 2,
		Clauses: []cnf.Clause{
			{ID: 0, Lits: []cnf.Literal{1}},
			{ID: 1, Lits: []cnf.Literal{2}},
			{ID: 2, Lits: []cnf.Literal{-1, -2}},
		},
	}
}

// php32 is PHP(3 -> 2) with no unit clauses: its root residual is the
// whole formula, and every conflict leaf lies below at least one decision.
func php32() cnf.Formula {
	return cnf.Formula{
		NumVars: 6,
		Clauses: []cnf.Clause{
			{ID: 0, Lits: []cnf.Literal{1, 2}},
			{ID: 1, Lits: []cnf.Literal{3, 4}},
			{ID: 2, Lits: []cnf.Literal{5, 6}},
			{ID: 3, Lits: []cnf.Literal{-1, -3}},
			{ID: 4, Lits: []cnf.Literal{-1, -5}},
			{ID: 5, Lits: []cnf.Literal{-3, -5}},
			{ID: 6, Lits: []cnf.Literal{-2, -4}},
			{ID: 7, Lits: []cnf.Literal{-2, -6}},
			{ID: 8, Lits: []cnf.Literal{-4, -6}},
		},
	}
}

func TestExploreRecordsConflictLeaves(t *testing.T) {
	branches := Explore(php21(), Config{RatioBranches: 1, MaxBranches: 10})
	require.NotEmpty(t, branches)
	for _, b := range branches {
		assert.Contains(t, b.Assignment, 1)
	}
}

func TestExploreRespectsMaxBranches(t *testing.T) {
	branches := Explore(php21(), Config{RatioBranches: 1, MaxBranches: 1})
	assert.LessOrEqual(t, len(branches), 1)
}

func TestTryDetectionFindsWitnessAtRoot(t *testing.T) {
	branches := Explore(php32(), Config{RatioBranches: 1, MaxBranches: 10})
	require.NotEmpty(t, branches)

	cache := pigeon.NewCache()
	reports := TryDetection(php32(), branches, cache, 64)

	found := false
	for _, r := range reports {
		if r.Found {
			found = true
		}
	}
	assert.True(t, found, "detection should succeed at the formula's root for a PHP(3 -> 2) instance")
}
