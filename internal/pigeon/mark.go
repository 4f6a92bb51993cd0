package pigeon

import "github.com/pigeonpur/pigeonpur/internal/cnf"

// Mark is a k-bit unsigned bitmask over the positions of a reference
// clause of length k (k <= 64, which covers both the configured
// maxPigeons default and any clause length realistically seen in a
// DIMACS instance this detector is aimed at).
type Mark uint64

// MarkTable maps every signed literal appearing in the analysis to the
// bitmask of reference-clause positions whose literal propagates its
// negation.
type MarkTable map[cnf.Literal]Mark

// AnalyseClause is Component B, the mark analyser. For the reference
// clause ref, it computes M_C: for each position i of ref and each
// literal rho forced by assigning ref.Lits[i] true (other than
// ref.Lits[i] itself), bit i of M_C(-rho) is set. Bit i of M_C(ref.Lits[i])
// is always set directly, recording ref.Lits[i] ⇒ ¬(-ref.Lits[i]).
func AnalyseClause(rf cnf.ResidualFormula, idx Index, ref cnf.Residual) MarkTable {
	marks := make(MarkTable)
	for i, lit := range ref.Lits {
		marks[lit] |= 1 << uint(i)
		for _, rho := range Propagate(rf, idx, lit) {
			if rho == lit {
				continue
			}
			marks[rho.Neg()] |= 1 << uint(i)
		}
	}
	return marks
}
