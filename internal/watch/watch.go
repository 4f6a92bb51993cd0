// Package watch implements two-watched-literal unit propagation for the
// branching layer's own decisions. It is deliberately separate from the
// pigeon package's lookup-propagator (Component A of the detector):
// Component A runs a full per-clause scan from a clean slate on every
// call, while this package maintains persistent watch lists across the
// whole search, the way a real DPLL/CDCL engine's propagation loop does.
// It is the "watched-literals variant of the underlying propagation
// layer" the design notes call out as swappable behind the propagator
// interface — search only calls New, Watch and Propagate.
package watch

import "github.com/pigeonpur/pigeonpur/internal/assign"

// entry is one watcher: a blocking literal plus, for clauses longer than
// two literals, a pointer to the clause's current (mutable) literal
// order. Binary clauses carry no clause reference, matching the
// original's single-element watch record.
type entry struct {
	blocking int
	clause   *clauseRef
}

type clauseRef struct {
	id   int
	lits []int // positions 0 and 1 are the two watched literals
}

// Lists maintains, for every literal, the clauses currently watching it.
type Lists struct {
	byLit map[int][]*entry
}

// New returns an empty set of watch lists.
func New() *Lists {
	return &Lists{byLit: make(map[int][]*entry)}
}

// Watch registers a clause (length >= 2) for watched-literal propagation,
// watching its first two literals.
func (w *Lists) Watch(id int, lits []int) {
	if len(lits) < 2 {
		panic("watch: clause must have at least two literals")
	}
	cr := &clauseRef{id: id, lits: append([]int(nil), lits...)}
	w.addWatch(cr.lits[0], cr.lits[1], cr)
	w.addWatch(cr.lits[1], cr.lits[0], cr)
}

func (w *Lists) addWatch(lit, other int, cr *clauseRef) {
	e := &entry{blocking: other}
	if len(cr.lits) > 2 {
		e.clause = cr
	}
	w.byLit[lit] = append(w.byLit[lit], e)
}

// Propagate runs unit propagation to fixpoint starting from the literals
// in seed, recording every literal assigned true (in dequeue order) into
// propagated. When ignoreConflicts is false, Propagate stops and returns
// false as soon as a watched clause is falsified; when true, it records
// the conflict but keeps propagating the rest of the queue, matching the
// lookup-propagator's "do not stop on conflict" contract being carried
// into the watched-literal engine for the cases that need it.
func (w *Lists) Propagate(a *assign.Set, seed []int, ignoreConflicts bool) (ok bool, propagated []int) {
	pending := append([]int(nil), seed...)
	queued := make(map[int]bool, len(pending))
	for _, l := range pending {
		queued[l] = true
	}
	ok = true
	for len(pending) > 0 {
		lit := pending[0]
		pending = pending[1:]
		delete(queued, lit)

		if a.True(-lit) {
			ok = false
			if !ignoreConflicts {
				return false, propagated
			}
			continue
		}
		propagated = append(propagated, lit)
		a.Set(lit, true)

		if !w.replaceWatch(-lit, a, &pending, queued, ignoreConflicts) {
			ok = false
			if !ignoreConflicts {
				return false, propagated
			}
		}
	}
	return ok, propagated
}

// replaceWatch updates every watcher of notLit after notLit has just
// become falsified (i.e. -notLit was assigned true). It returns false if
// any watched clause was found empty under the current assignment.
func (w *Lists) replaceWatch(notLit int, a *assign.Set, pending *[]int, queued map[int]bool, ignoreConflicts bool) bool {
	watchers := w.byLit[notLit]
	w.byLit[notLit] = nil
	ok := true

	for idx, e := range watchers {
		if a.True(e.blocking) {
			// Already satisfied by the blocking literal.
			w.byLit[notLit] = append(w.byLit[notLit], e)
			continue
		}

		if e.clause == nil {
			// Binary clause: nothing to re-watch, only the blocking
			// literal can satisfy or falsify it.
			w.byLit[notLit] = append(w.byLit[notLit], e)
			if a.True(-e.blocking) {
				if !ignoreConflicts {
					w.byLit[notLit] = append(w.byLit[notLit], watchers[idx+1:]...)
					return false
				}
				ok = false
			} else if !queued[e.blocking] {
				*pending = append(*pending, e.blocking)
				queued[e.blocking] = true
			}
			continue
		}

		cr := e.clause
		block := cr.lits[0] ^ cr.lits[1] ^ notLit
		cr.lits[0] = notLit
		cr.lits[1] = block

		replacement, satisfied := searchReplacement(cr, a)
		if satisfied {
			w.byLit[notLit] = append(w.byLit[notLit], &entry{blocking: block, clause: cr})
			continue
		}
		if replacement < 0 {
			w.byLit[notLit] = append(w.byLit[notLit], &entry{blocking: block, clause: cr})
			if a.True(-block) {
				if !ignoreConflicts {
					w.byLit[notLit] = append(w.byLit[notLit], watchers[idx+1:]...)
					return false
				}
				ok = false
			} else if !queued[block] {
				*pending = append(*pending, block)
				queued[block] = true
			}
			continue
		}

		cr.lits[0], cr.lits[replacement] = cr.lits[replacement], cr.lits[0]
		w.byLit[cr.lits[0]] = append(w.byLit[cr.lits[0]], &entry{blocking: block, clause: cr})
	}
	return ok
}

// searchReplacement looks, among cr.lits[2:], for either a satisfying
// literal or a literal that is not falsified (a valid new watch).
func searchReplacement(cr *clauseRef, a *assign.Set) (replacement int, satisfied bool) {
	replacement = -1
	for i := 2; i < len(cr.lits); i++ {
		if a.True(cr.lits[i]) {
			return -1, true
		}
		if !a.True(-cr.lits[i]) {
			return i, false
		}
	}
	return -1, false
}
