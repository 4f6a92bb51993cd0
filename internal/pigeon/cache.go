package pigeon

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
)

// Canonical is a witness put into a stable, comparable form: its clauses
// sorted by id, and each clause's literals sorted by absolute value.
// This replaces the original's string-coercion comparison (which could
// be fooled by clauses differing only in literal order) with an actual
// structural canonicalisation.
type Canonical struct {
	Name    string
	Clauses []cnf.Residual

	// Context is the residual formula DetectPigeon was run against when
	// this witness was first recorded. internal/verify uses it to
	// re-derive the witness's column-exclusion facts independently,
	// rather than re-checking the witness's own clauses in isolation
	// (SPEC_FULL.md §4.G).
	Context cnf.ResidualFormula
}

// canonicalise sorts w's clauses by id and each clause's literals by
// absolute value, returning the canonical clause list along with its
// (rows, cols) shape: rows is the witness size (k+1), cols is the
// reference clause length (k).
func canonicalise(w Witness) (clauses []cnf.Residual, rows, cols int) {
	clauses = make([]cnf.Residual, len(w.Clauses))
	copy(clauses, w.Clauses)

	for i := range clauses {
		lits := append([]cnf.Literal(nil), clauses[i].Lits...)
		sort.Slice(lits, func(a, b int) bool {
			return absLit(lits[a]) < absLit(lits[b])
		})
		clauses[i].Lits = lits
	}
	sort.Slice(clauses, func(a, b int) bool {
		return clauses[a].ID < clauses[b].ID
	})

	rows = len(clauses)
	if rows > 0 {
		cols = len(clauses[0].Lits)
	}
	return clauses, rows, cols
}

// Canonicalise puts w into canonical form and names it ph<k+1>-<k>_1, the
// name it would receive as the first witness of its (rows, columns) shape.
// Callers that want the spec's cache-scoped counter (n counts prior
// witnesses of the same shape, per §4.F "Naming") must go through
// Cache.Add instead; this standalone form exists for callers with no
// cache to consult. rf is recorded as the witness's Context.
func Canonicalise(w Witness, rf cnf.ResidualFormula) Canonical {
	clauses, rows, cols := canonicalise(w)
	return Canonical{
		Name:    fmt.Sprintf("ph%d-%d_%d", rows, cols, 1),
		Clauses: clauses,
		Context: rf,
	}
}

func absLit(l cnf.Literal) int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// canonicalKey produces a map key uniquely identifying a canonical
// witness's clause-id multiset, used for cache deduplication.
func canonicalKey(clauses []cnf.Residual) string {
	ids := make([]string, len(clauses))
	for i, cl := range clauses {
		ids[i] = fmt.Sprintf("%d", cl.ID)
	}
	return strings.Join(ids, ",")
}

type shape struct {
	rows, cols int
}

// Cache deduplicates witnesses discovered across the whole search by
// their canonical clause-id set, preserving first-seen order for
// deterministic reporting, and names each newly-seen shape in discovery
// order (ph<k+1>-<k>_<n>, n counting prior witnesses of that same
// (rows, columns) shape, per §4.F "Naming").
type Cache struct {
	seen    map[string]Canonical
	counts  map[shape]int
	entries []Canonical
}

// NewCache returns an empty witness cache.
func NewCache() *Cache {
	return &Cache{seen: make(map[string]Canonical), counts: make(map[shape]int)}
}

// Add records w if its canonical form hasn't been seen before, returning
// the canonical witness (with its assigned or previously-assigned name)
// and whether it was newly added. rf is the residual formula w was found
// against; it is recorded as the witness's Context on first sighting
// only, matching the cache's own first-seen naming rule.
func (c *Cache) Add(w Witness, rf cnf.ResidualFormula) (Canonical, bool) {
	clauses, rows, cols := canonicalise(w)
	key := canonicalKey(clauses)
	if existing, ok := c.seen[key]; ok {
		return existing, false
	}

	sh := shape{rows: rows, cols: cols}
	c.counts[sh]++
	canon := Canonical{
		Name:    fmt.Sprintf("ph%d-%d_%d", rows, cols, c.counts[sh]),
		Clauses: clauses,
		Context: rf,
	}
	c.seen[key] = canon
	c.entries = append(c.entries, canon)
	return canon, true
}

// Entries returns every distinct witness recorded so far, in discovery
// order.
func (c *Cache) Entries() []Canonical {
	return append([]Canonical(nil), c.entries...)
}

// Len reports how many distinct witnesses the cache holds.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Names returns the canonical names of every distinct witness recorded
// so far, in discovery order.
func (c *Cache) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}
