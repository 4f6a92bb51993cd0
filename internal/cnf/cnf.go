// Package cnf holds the data model shared by the DIMACS loader, the
// branching search, and the pigeon-hole detector: literals, clauses, and
// the two views of a formula (the immutable master CNF and the residual
// CNF that shrinks as the search assigns variables).
package cnf

import "fmt"

// Literal is a signed, non-zero integer in [-N, N]. Var(Literal) = |Literal|.
type Literal int

// Var returns the variable underlying l, always positive.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// Neg returns the negation of l.
func (l Literal) Neg() Literal {
	return -l
}

func (l Literal) String() string {
	return fmt.Sprintf("%d", int(l))
}

// Clause is an ordered, id-stamped sequence of literals belonging to the
// master formula. Order is significant: pigeon-hole detection indexes
// permutations by position.
type Clause struct {
	ID   int
	Lits []Literal
}

func (c Clause) Len() int { return len(c.Lits) }

// Formula is the master CNF produced once by the DIMACS loader. It is
// never mutated after construction.
type Formula struct {
	NumVars int
	Clauses []Clause
}

// ClauseByID returns the clause with the given id, or false if no such
// clause exists in the master formula.
func (f Formula) ClauseByID(id int) (Clause, bool) {
	for _, c := range f.Clauses {
		if c.ID == id {
			return c, true
		}
	}
	return Clause{}, false
}

// Residual is a clause as it appears in a residual view of the CNF: the
// same stable id as the master clause, but with satisfied literals'
// clauses removed entirely and falsified literals stripped from the
// remaining ones.
type Residual struct {
	ID   int
	Lits []Literal
}

func (r Residual) Len() int { return len(r.Lits) }

// ResidualFormula is a residual view of the CNF: a sequence of residual
// clauses, built fresh by the branching layer before every detector call
// and discarded afterward.
type ResidualFormula []Residual

// ByID returns the residual clause with the given id, or false if absent.
func (rf ResidualFormula) ByID(id int) (Residual, bool) {
	for _, r := range rf {
		if r.ID == id {
			return r, true
		}
	}
	return Residual{}, false
}

// SharesVariable reports whether a and b have any variable in common,
// regardless of sign.
func SharesVariable(a, b []Literal) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Var() == y.Var() {
				return true
			}
		}
	}
	return false
}
