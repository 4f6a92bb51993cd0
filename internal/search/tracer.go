package search

import (
	"fmt"
	"io"
)

// Position is a snapshot of the search at a decision point, handed to a
// Tracer on every branch and backtrack.
type Position interface {
	Depth() int
	Assigned() []int
	Witnesses() int
}

// Tracer observes the branching search without influencing it.
type Tracer interface {
	Trace(p Position)
}

// DefaultTracer discards every position, the zero-cost default.
type DefaultTracer struct{}

func (DefaultTracer) Trace(_ Position) {}

// LoggingTracer writes a line per traced position to Writer, used by the
// CLI's -debug flag.
type LoggingTracer struct {
	Writer io.Writer
}

func (t LoggingTracer) Trace(p Position) {
	fmt.Fprintf(t.Writer, "depth=%d assigned=%d witnesses=%d\n", p.Depth(), len(p.Assigned()), p.Witnesses())
}
