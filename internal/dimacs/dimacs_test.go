package dimacs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `c a comment line
p cnf 4 3
1 2 0
-1 -2 0
3 0
`

func TestReadPeelsUnitClauses(t *testing.T) {
	res, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Formula.NumVars)
	require.Len(t, res.Formula.Clauses, 2)
	assert.Equal(t, 0, res.Formula.Clauses[0].ID)
	assert.Equal(t, 1, res.Formula.Clauses[1].ID)

	require.Len(t, res.ToPropagate, 1)
	assert.EqualValues(t, 3, res.ToPropagate[0])
	assert.True(t, res.Initial.True(3))
}

func TestReadRejectsMissingProblemLine(t *testing.T) {
	_, err := Read(strings.NewReader("1 2 0\n"))
	assert.Error(t, err)
}

func TestReadRejectsMismatchedClauseCount(t *testing.T) {
	_, err := Read(strings.NewReader("p cnf 2 2\n1 2 0\n"))
	assert.Error(t, err)
}

func TestReadRejectsZeroBeforeEndOfLine(t *testing.T) {
	_, err := Read(strings.NewReader("p cnf 2 1\n1 0 2 0\n"))
	assert.Error(t, err)
}
