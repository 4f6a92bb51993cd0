package pigeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Invariant: bitmask-propagator monotonicity. Every bitmask in the
// result is a subset of the corresponding input bitmask (propagation
// only ever clears bits, never sets new ones).
func TestBitmaskMonotonicity(t *testing.T) {
	in := []Mark{0b111, 0b111, 0b111}
	out, ok := PropagateBitmask(in, 0, 0)
	assert.True(t, ok)
	for i := range in {
		assert.Zero(t, out[i]&^in[i], "bit set in output but not input at %d", i)
	}
}

func TestBitmaskForcesSingleton(t *testing.T) {
	// Bit 0 is already fixed at index 0; clearing it from index 1 leaves
	// index 1 with a single bit, which must then propagate further.
	in := []Mark{0b01, 0b11}
	out, ok := PropagateBitmask(in, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, Mark(0b01), out[0])
	assert.Equal(t, Mark(0b10), out[1])
}

func TestBitmaskConflict(t *testing.T) {
	in := []Mark{0b01}
	_, ok := PropagateBitmask(in, 0, -1)
	assert.False(t, ok)
}
