package cnf

import "testing"

func TestLiteralVarAndNeg(t *testing.T) {
	l := Literal(-5)
	if l.Var() != 5 {
		t.Errorf("Var() = %d, want 5", l.Var())
	}
	if l.Neg() != 5 {
		t.Errorf("Neg() = %d, want 5", l.Neg())
	}
}

func TestFormulaClauseByID(t *testing.T) {
	f := Formula{NumVars: 2, Clauses: []Clause{
		{ID: 0, Lits: []Literal{1, 2}},
		{ID: 1, Lits: []Literal{-1, -2}},
	}}
	c, ok := f.ClauseByID(1)
	if !ok || len(c.Lits) != 2 {
		t.Fatalf("ClauseByID(1) = %v, %v", c, ok)
	}
	if _, ok := f.ClauseByID(99); ok {
		t.Fatal("ClauseByID(99) should not be found")
	}
}

func TestSharesVariable(t *testing.T) {
	a := []Literal{1, -2}
	b := []Literal{-1, 3}
	if !SharesVariable(a, b) {
		t.Error("expected a and b to share variable 1")
	}
	c := []Literal{4, 5}
	if SharesVariable(a, c) {
		t.Error("expected a and c to share no variable")
	}
}
