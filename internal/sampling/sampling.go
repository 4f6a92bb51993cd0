// Package sampling implements the supplemental exploration mode enabled
// by the CLI's -sample flag: rather than detecting pigeon-hole
// structures inline during a single DPLL run, it samples a bounded
// number of conflict branches from an independent DPLL search, then re-runs the
// detector against the residual formula at every backtrack point along
// each sampled branch. This is deliberately not claimed to be equivalent
// to inline detection - it trades search completeness for a broad,
// cheap survey of where pigeon-hole structures tend to appear in a
// formula's search tree.
package sampling

import (
	"github.com/sirupsen/logrus"

	"github.com/pigeonpur/pigeonpur/internal/cnf"
	"github.com/pigeonpur/pigeonpur/internal/pigeon"
)

// Config controls one exploration run.
type Config struct {
	// RatioBranches keeps every RatioBranches-th conflict (UNSAT) leaf
	// reached by the sampling search (1 keeps all of them).
	RatioBranches int
	// MaxBranches caps how many leaves are kept in total.
	MaxBranches int
	MaxPigeons  int
	Log         logrus.FieldLogger
}

// Branch is one sampled DPLL conflict leaf: the sequence of decision
// literals taken to reach it, and the propagated assignment up to the
// conflict.
type Branch struct {
	Decisions  []int
	Assignment []int
}

// Explore runs a plain DPLL search (no inline detection) over formula,
// keeping every cfg.RatioBranches-th conflict leaf it reaches, up to
// cfg.MaxBranches leaves.
func Explore(formula cnf.Formula, cfg Config) []Branch {
	e := &explorer{formula: formula, cfg: cfg}
	e.search(0, nil, nil)
	return e.branches
}

type explorer struct {
	formula  cnf.Formula
	cfg      Config
	branches []Branch
	seen     int
}

func (e *explorer) search(next int, decisions, assignment []int) {
	if len(e.branches) >= e.cfg.MaxBranches && e.cfg.MaxBranches > 0 {
		return
	}

	status, propagated := e.propagate(next, assignment)
	if status == "UNSAT" {
		e.seen++
		ratio := e.cfg.RatioBranches
		if ratio < 1 {
			ratio = 1
		}
		if e.seen%ratio == 0 {
			e.branches = append(e.branches, Branch{
				Decisions:  append([]int(nil), decisions...),
				Assignment: append([]int(nil), propagated...),
			})
		}
		return
	}

	nextVar := chooseNextVariable(e.formula.NumVars, propagated)
	if nextVar == 0 {
		return
	}

	e.search(-nextVar, append(decisions, -nextVar), propagated)
	if e.cfg.MaxBranches > 0 && len(e.branches) >= e.cfg.MaxBranches {
		return
	}
	e.search(nextVar, append(decisions, nextVar), propagated)
}

// propagate runs unit propagation to fixpoint starting from an
// assignment that already includes prior, stopping at the first
// conflict, matching the sampling search's "stop early" contract (unlike
// the lookup-propagator used inline by the detector, which never stops).
func (e *explorer) propagate(lit int, assignment []int) (status string, result []int) {
	assigned := make(map[int]bool, len(assignment)+1)
	for _, a := range assignment {
		assigned[a] = true
	}
	propagated := append([]int(nil), assignment...)
	if lit != 0 {
		if assigned[lit] {
			return "UNKNOWN", propagated
		}
		if assigned[-lit] {
			return "UNSAT", propagated
		}
		assigned[lit] = true
		propagated = append(propagated, lit)
	}

	// Re-scan every clause to a fixpoint: lit == 0 at the root means
	// there is no decision yet, but the formula's own unit clauses still
	// need to be propagated once before the first decision is made.
	for {
		progress := false
		for _, c := range e.formula.Clauses {
			satisfied := false
			count := 0
			var survivor cnf.Literal
			for _, l := range c.Lits {
				if assigned[int(l)] {
					satisfied = true
					break
				}
				if !assigned[int(-l)] {
					count++
					survivor = l
				}
			}
			if satisfied {
				continue
			}
			if count == 0 {
				return "UNSAT", propagated
			}
			if count == 1 && !assigned[int(survivor)] {
				assigned[int(survivor)] = true
				propagated = append(propagated, int(survivor))
				progress = true
			}
		}
		if !progress {
			break
		}
	}

	return "UNKNOWN", propagated
}

func chooseNextVariable(numVars int, assignment []int) int {
	present := make(map[int]bool, len(assignment)*2)
	for _, a := range assignment {
		present[a] = true
	}
	for v := 1; v <= numVars; v++ {
		if !present[v] && !present[-v] {
			return v
		}
	}
	return 0
}

// Report is one detection attempt at a particular backtrack point along
// a sampled branch.
type Report struct {
	Decisions []int
	Witness   pigeon.Canonical
	Found     bool
}

// TryDetection re-runs the detector at every backtrack point of every
// sampled branch, from the deepest prefix to the shallowest, stopping
// each branch's walk as soon as a witness is found at some prefix.
func TryDetection(formula cnf.Formula, branches []Branch, cache *pigeon.Cache, maxPigeons int) []Report {
	var reports []Report
	explored := make(map[string]bool)

	for _, b := range branches {
		for back := 1; back <= len(b.Decisions); back++ {
			prefix := b.Decisions[:len(b.Decisions)-back]
			key := intsKey(prefix)
			if explored[key] {
				continue
			}
			explored[key] = true

			// The residual at prefix is the assignment made before the
			// first decision that prefix leaves out.
			undone := b.Decisions[len(b.Decisions)-back]
			cutoff := len(b.Assignment)
			for i, a := range b.Assignment {
				if a == undone {
					cutoff = i
					break
				}
			}
			assign := b.Assignment[:cutoff]

			rf := simplify(formula, assign)
			report := Report{Decisions: append([]int(nil), prefix...)}
			if hasEligibleClause(rf, maxPigeons) {
				res, err := pigeon.DetectPigeon(rf, cache, pigeon.Bounds{Max: maxPigeons})
				if err == nil && res.Found {
					report.Found = true
					report.Witness = res.Witness
				}
			}
			reports = append(reports, report)
			if report.Found {
				break
			}
		}
	}
	return reports
}

func hasEligibleClause(rf cnf.ResidualFormula, maxPigeons int) bool {
	for _, c := range rf {
		if c.Len() > 1 && (maxPigeons <= 0 || c.Len() <= maxPigeons) {
			return true
		}
	}
	return false
}

func simplify(formula cnf.Formula, assignment []int) cnf.ResidualFormula {
	assigned := make(map[int]bool, len(assignment))
	for _, a := range assignment {
		assigned[a] = true
	}
	var rf cnf.ResidualFormula
	for _, c := range formula.Clauses {
		satisfied := false
		var lits []cnf.Literal
		for _, l := range c.Lits {
			if assigned[int(l)] {
				satisfied = true
				break
			}
			if assigned[int(-l)] {
				continue
			}
			lits = append(lits, l)
		}
		if satisfied || len(lits) == 0 {
			continue
		}
		rf = append(rf, cnf.Residual{ID: c.ID, Lits: lits})
	}
	return rf
}

func intsKey(xs []int) string {
	b := make([]byte, 0, len(xs)*4)
	for _, x := range xs {
		for x != 0 {
			b = append(b, byte(x))
			x >>= 8
		}
		b = append(b, 0xff)
	}
	return string(b)
}
