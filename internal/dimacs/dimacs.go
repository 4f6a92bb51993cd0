// Package dimacs reads DIMACS CNF files into the cnf package's data
// model. The Builder/Read split follows the shape of the DIMACS readers
// seen across the SAT corpus: a Builder processes the problem line,
// each clause line, and comments as they're encountered, and Read wraps
// a default Builder that collects them into a Result.
package dimacs

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pigeonpur/pigeonpur/internal/assign"
	"github.com/pigeonpur/pigeonpur/internal/cnf"
)

// Builder receives callbacks as a DIMACS file is parsed, in file order.
type Builder interface {
	// Problem processes the "p cnf <vars> <clauses>" line.
	Problem(numVars, numClauses int)
	// Clause processes one clause line. lits is a shared buffer; readers
	// that need to retain it must copy.
	Clause(lits []int)
	// Comment processes a "c ..." line.
	Comment(line string)
}

// Result is the outcome of parsing a DIMACS file: the master formula
// (unit clauses peeled off into an initial assignment per long-clause
// numbering, as the branching layer expects) plus the literals that
// should be propagated before the first decision.
type Result struct {
	Formula     cnf.Formula
	Initial     *assign.Set
	ToPropagate []cnf.Literal
}

// resultBuilder wraps Result to implement Builder, numbering long
// clauses by their zero-based position in the long-clause stream (unit
// clauses never receive an id; they are consumed into the initial
// assignment, per the external-interface contract).
type resultBuilder struct {
	numVars     int
	clauses     []cnf.Clause
	nextID      int
	initial     *assign.Set
	toPropagate []cnf.Literal
}

func (b *resultBuilder) Problem(numVars, numClauses int) {
	b.numVars = numVars
	b.initial = assign.New(numVars)
	b.clauses = make([]cnf.Clause, 0, numClauses)
}

func (b *resultBuilder) Clause(lits []int) {
	if len(lits) == 1 {
		l := cnf.Literal(lits[0])
		if !b.initial.True(int(l)) {
			b.initial.Set(int(l), true)
			b.toPropagate = append(b.toPropagate, l)
		}
		return
	}
	cl := make([]cnf.Literal, len(lits))
	for i, v := range lits {
		cl[i] = cnf.Literal(v)
	}
	b.clauses = append(b.clauses, cnf.Clause{ID: b.nextID, Lits: cl})
	b.nextID++
}

func (b *resultBuilder) Comment(string) {}

// Read parses a DIMACS CNF file from r.
func Read(r io.Reader) (Result, error) {
	b := &resultBuilder{}
	if err := ReadBuilder(r, b); err != nil {
		return Result{}, err
	}
	return Result{
		Formula:     cnf.Formula{NumVars: b.numVars, Clauses: b.clauses},
		Initial:     b.initial,
		ToPropagate: b.toPropagate,
	}, nil
}

// ReadBuilder parses a DIMACS CNF file from r, invoking the methods of b
// in file order.
func ReadBuilder(r io.Reader, b Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	foundProblem := false
	var numClauses, parsed int
	var buf []int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line[0] {
		case 'c':
			b.Comment(line)
		case 'p':
			if foundProblem {
				return errors.Errorf("duplicate problem line: %q", line)
			}
			parts := strings.Fields(line)
			if len(parts) != 4 || parts[1] != "cnf" {
				return errors.Errorf("invalid problem line: %q", line)
			}
			numVars, err := strconv.Atoi(parts[2])
			if err != nil {
				return errors.Wrap(err, "invalid number of variables")
			}
			numClauses, err = strconv.Atoi(parts[3])
			if err != nil {
				return errors.Wrap(err, "invalid number of clauses")
			}
			b.Problem(numVars, numClauses)
			foundProblem = true
		default:
			if !foundProblem {
				return errors.Errorf("clause found before problem line: %q", line)
			}
			if parsed >= numClauses {
				return errors.Errorf("too many clauses: expected %d", numClauses)
			}
			buf = buf[:0]
			parts := strings.Fields(line)
			for i, p := range parts {
				v, err := strconv.Atoi(p)
				if err != nil {
					return errors.Wrapf(err, "invalid literal in clause %q", line)
				}
				if v == 0 {
					if i != len(parts)-1 {
						return errors.Errorf("zero found before end of clause line: %q", line)
					}
					break
				}
				buf = append(buf, v)
			}
			if len(buf) == 0 {
				return errors.Errorf("empty clause line: %q", line)
			}
			b.Clause(buf)
			parsed++
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading dimacs input")
	}
	if !foundProblem {
		return errors.New("no problem line found")
	}
	if parsed != numClauses {
		return errors.Errorf("mismatched clause count: expected %d, got %d", numClauses, parsed)
	}
	return nil
}
