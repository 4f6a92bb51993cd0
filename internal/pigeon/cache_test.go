package pigeon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
)

func TestCanonicaliseSortsClausesAndLiterals(t *testing.T) {
	w := Witness{Clauses: []cnf.Residual{
		{ID: 5, Lits: []cnf.Literal{-3, 1}},
		{ID: 2, Lits: []cnf.Literal{4, -2}},
	}}

	c := Canonicalise(w, nil)
	assert.Equal(t, 2, c.Clauses[0].ID)
	assert.Equal(t, 5, c.Clauses[1].ID)
	assert.Equal(t, []cnf.Literal{-2, 4}, c.Clauses[0].Lits)
	assert.Equal(t, []cnf.Literal{1, -3}, c.Clauses[1].Lits)
}

func TestCanonicaliseNaming(t *testing.T) {
	w := Witness{Clauses: []cnf.Residual{
		{ID: 0, Lits: []cnf.Literal{1, 2}},
		{ID: 1, Lits: []cnf.Literal{3, 4}},
		{ID: 2, Lits: []cnf.Literal{5, 6}},
	}}
	c := Canonicalise(w, nil)
	assert.Equal(t, "ph3-2_1", c.Name)
}

// Invariant: naming counts prior witnesses of the same (rows, columns)
// shape, not anything derived from the witness's own contents (spec.md
// §4.F "Naming"). A second, structurally distinct witness of the same
// shape increments n.
func TestCacheNamesByShapeDiscoveryOrder(t *testing.T) {
	cache := NewCache()

	first := Witness{Clauses: []cnf.Residual{
		{ID: 0, Lits: []cnf.Literal{1, 2}},
		{ID: 1, Lits: []cnf.Literal{3, 4}},
		{ID: 2, Lits: []cnf.Literal{5, 6}},
	}}
	second := Witness{Clauses: []cnf.Residual{
		{ID: 10, Lits: []cnf.Literal{11, 12}},
		{ID: 11, Lits: []cnf.Literal{13, 14}},
		{ID: 12, Lits: []cnf.Literal{15, 16}},
	}}

	c1, added1 := cache.Add(first, nil)
	c2, added2 := cache.Add(second, nil)

	assert.True(t, added1)
	assert.True(t, added2)
	assert.Equal(t, "ph3-2_1", c1.Name)
	assert.Equal(t, "ph3-2_2", c2.Name)
}

// Invariant: cache stability. Two witnesses with the same clause ids in
// different order canonicalise to the same cache entry.
func TestCacheDeduplicatesReorderedWitness(t *testing.T) {
	cache := NewCache()

	a := Witness{Clauses: []cnf.Residual{
		{ID: 0, Lits: []cnf.Literal{1, 2}},
		{ID: 1, Lits: []cnf.Literal{3, 4}},
	}}
	b := Witness{Clauses: []cnf.Residual{
		{ID: 1, Lits: []cnf.Literal{4, 3}},
		{ID: 0, Lits: []cnf.Literal{2, 1}},
	}}

	_, added1 := cache.Add(a, nil)
	_, added2 := cache.Add(b, nil)

	assert.True(t, added1)
	assert.False(t, added2)
	assert.Equal(t, 1, cache.Len())
}
