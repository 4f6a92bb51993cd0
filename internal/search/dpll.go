// Package search implements the DPLL branching loop that the pigeon-hole
// detector hooks into: unit propagation via two-watched-literals,
// chronological backtracking decisions, and an inline call into the
// detector after every propagation fixpoint.
package search

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pigeonpur/pigeonpur/internal/assign"
	"github.com/pigeonpur/pigeonpur/internal/cnf"
	"github.com/pigeonpur/pigeonpur/internal/dimacs"
	"github.com/pigeonpur/pigeonpur/internal/pigeon"
	"github.com/pigeonpur/pigeonpur/internal/watch"
)

// Incomplete is returned when ctx is cancelled before the search
// concludes.
var Incomplete = errors.New("search: cancelled before a solution could be found")

// Config controls one Solve invocation.
type Config struct {
	// DetectPigeons enables the inline structural detector. Disabling it
	// yields a plain DPLL search, useful for isolating the detector's
	// contribution when benchmarking.
	DetectPigeons bool
	MinPigeons    int
	MaxPigeons    int
	Tracer        Tracer
	Log           logrus.FieldLogger
}

// Result is the outcome of a Solve call.
type Result struct {
	Satisfiable bool
	Model       []int // signed literals assigned true, valid only if Satisfiable
	Witnesses   []pigeon.Canonical
}

type decision struct {
	lit        int
	trailMark  int
	triedOther bool
}

type searcher struct {
	cfg     Config
	formula cnf.Formula
	watches *watch.Lists
	asg     *assign.Set
	trail   []int
	decided []decision
	cache   *pigeon.Cache
}

// Solve runs the branching search to completion or until ctx is
// cancelled. parsed is the output of the DIMACS loader: its ToPropagate
// queue seeds the top-level unit propagation before any decision is
// made. On cancellation the returned Result carries the witnesses found
// so far alongside the Incomplete error.
func Solve(ctx context.Context, parsed dimacs.Result, cfg Config) (Result, error) {
	if cfg.Tracer == nil {
		cfg.Tracer = DefaultTracer{}
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}

	s := &searcher{
		cfg:     cfg,
		formula: parsed.Formula,
		watches: watch.New(),
		asg:     assign.New(parsed.Formula.NumVars),
		cache:   pigeon.NewCache(),
	}

	for _, c := range parsed.Formula.Clauses {
		if len(c.Lits) >= 2 {
			s.watches.Watch(c.ID, litInts(c.Lits))
		}
	}

	seed := make([]int, 0, len(parsed.ToPropagate))
	for _, l := range parsed.ToPropagate {
		seed = append(seed, int(l))
	}

	ok, propagated := s.watches.Propagate(s.asg, seed, false)
	s.trail = append(s.trail, propagated...)
	if !ok {
		cfg.Log.Debug("pigeonpur: conflict during top-level unit propagation")
		return Result{Satisfiable: false}, nil
	}

	for {
		select {
		case <-ctx.Done():
			return Result{Witnesses: s.cache.Entries()}, Incomplete
		default:
		}

		if cfg.DetectPigeons {
			if rf, conflict := s.residual(); !conflict {
				bounds := pigeon.Bounds{Min: cfg.MinPigeons, Max: cfg.MaxPigeons}
				if res, err := pigeon.DetectPigeon(rf, s.cache, bounds); err == nil && res.Found {
					cfg.Log.WithField("witness", res.Witness.Name).Debug("pigeonpur: detector found a witness")
					if !s.backtrack() {
						return Result{Satisfiable: false, Witnesses: s.cache.Entries()}, nil
					}
					continue
				}
			}
		}

		cfg.Tracer.Trace(s.position())

		lit, done := s.chooseLiteral()
		if done {
			return Result{Satisfiable: true, Model: append([]int(nil), s.trail...), Witnesses: s.cache.Entries()}, nil
		}

		s.decided = append(s.decided, decision{lit: lit, trailMark: len(s.trail)})
		ok, propagated := s.watches.Propagate(s.asg, []int{lit}, false)
		s.trail = append(s.trail, propagated...)
		if !ok {
			if !s.backtrack() {
				return Result{Satisfiable: false, Witnesses: s.cache.Entries()}, nil
			}
		}
	}
}

// backtrack undoes assignments back to the most recent decision that
// still has an untried branch, flips it, and re-propagates. It returns
// false if the decision stack is exhausted (the formula is unsatisfiable).
func (s *searcher) backtrack() bool {
	for len(s.decided) > 0 {
		last := &s.decided[len(s.decided)-1]
		for len(s.trail) > last.trailMark {
			s.asg.Unassign(s.trail[len(s.trail)-1])
			s.trail = s.trail[:len(s.trail)-1]
		}
		if last.triedOther {
			s.decided = s.decided[:len(s.decided)-1]
			continue
		}
		last.triedOther = true
		flipped := -last.lit
		last.lit = flipped

		ok, propagated := s.watches.Propagate(s.asg, []int{flipped}, false)
		s.trail = append(s.trail, propagated...)
		if ok {
			return true
		}
	}
	return false
}

// chooseLiteral picks the lowest-numbered unassigned variable and tries
// it positive first. done is true once every variable is assigned.
func (s *searcher) chooseLiteral() (lit int, done bool) {
	for v := 1; v <= s.formula.NumVars; v++ {
		if !s.asg.True(v) && !s.asg.True(-v) {
			return v, false
		}
	}
	return 0, true
}

// residual derives the residual CNF view implied by the current
// assignment: satisfied clauses are dropped entirely, falsified
// literals are stripped from the rest. conflict is true if any clause
// is left with zero literals.
func (s *searcher) residual() (cnf.ResidualFormula, bool) {
	var rf cnf.ResidualFormula
	for _, c := range s.formula.Clauses {
		satisfied := false
		var remaining []cnf.Literal
		for _, l := range c.Lits {
			if s.asg.True(int(l)) {
				satisfied = true
				break
			}
			if !s.asg.True(int(-l)) {
				remaining = append(remaining, l)
			}
		}
		if satisfied {
			continue
		}
		if len(remaining) == 0 {
			return nil, true
		}
		rf = append(rf, cnf.Residual{ID: c.ID, Lits: remaining})
	}
	return rf, false
}

func (s *searcher) position() Position {
	return pos{depth: len(s.decided), assigned: append([]int(nil), s.trail...), witnesses: s.cache.Len()}
}

type pos struct {
	depth     int
	assigned  []int
	witnesses int
}

func (p pos) Depth() int      { return p.depth }
func (p pos) Assigned() []int { return p.assigned }
func (p pos) Witnesses() int  { return p.witnesses }

func litInts(lits []cnf.Literal) []int {
	out := make([]int, len(lits))
	for i, l := range lits {
		out[i] = int(l)
	}
	return out
}
