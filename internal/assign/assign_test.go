package assign

import "testing"

func TestSetAndTrue(t *testing.T) {
	s := New(3)
	s.Set(1, true)
	s.Set(-2, true)

	if !s.True(1) {
		t.Error("expected literal 1 to be true")
	}
	if !s.True(-2) {
		t.Error("expected literal -2 to be true")
	}
	if s.True(-1) {
		t.Error("expected literal -1 to be false")
	}
	if s.True(3) {
		t.Error("expected literal 3 to be unassigned")
	}
}

func TestUnassign(t *testing.T) {
	s := New(3)
	s.Set(1, true)
	s.Unassign(1)
	if s.True(1) {
		t.Error("expected literal 1 to be unassigned after Unassign")
	}
}

func TestClear(t *testing.T) {
	s := New(3)
	s.Set(1, true)
	s.Set(-2, true)
	s.Clear()
	if s.True(1) || s.True(-2) {
		t.Error("expected all literals unassigned after Clear")
	}
}

func TestAssignedLiterals(t *testing.T) {
	s := New(3)
	s.Set(1, true)
	s.Set(-2, true)
	got := s.AssignedLiterals()
	want := []int{1, -2}
	if len(got) != len(want) {
		t.Fatalf("AssignedLiterals() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AssignedLiterals() = %v, want %v", got, want)
		}
	}
}
