// Package assign implements the dense Assignment representation used
// throughout the search and propagation layers: a flag per signed
// literal, mirroring the "assigned"/"toAssign" arrays of the research
// prototype this system is modeled on (see Design Note on the mark
// table being dense over 2N+1 signed literals).
package assign

// Set is a dense assignment over the signed literals of an N-variable
// formula. It answers "is literal l currently true" in O(1) and carries
// no notion of "false" separately from "not assigned" — callers check
// both l and l.Neg() as the Python original does with `assigned[lit]`
// and `assigned[-lit]`.
type Set struct {
	n    int
	vals []bool
}

// New returns a Set sized for variables 1..n.
func New(n int) *Set {
	return &Set{n: n, vals: make([]bool, 2*n+1)}
}

func (s *Set) index(l int) int {
	return l + s.n
}

// True reports whether the literal l is currently assigned true.
func (s *Set) True(l int) bool {
	return s.vals[s.index(l)]
}

// Set marks the literal l as true (v=true) or clears it (v=false).
func (s *Set) Set(l int, v bool) {
	s.vals[s.index(l)] = v
}

// Clear resets every literal to unassigned.
func (s *Set) Clear() {
	for i := range s.vals {
		s.vals[i] = false
	}
}

// Unassign clears the truth of l (and, symmetrically, leaves -l clear
// too, since at most one of a complementary pair should ever be true).
func (s *Set) Unassign(l int) {
	s.Set(l, false)
}

// AssignedLiterals returns every literal currently assigned true, for
// variables 1..N in ascending order of variable, positive literal first.
func (s *Set) AssignedLiterals() []int {
	var out []int
	for v := 1; v <= s.n; v++ {
		if s.True(v) {
			out = append(out, v)
		} else if s.True(-v) {
			out = append(out, -v)
		}
	}
	return out
}
