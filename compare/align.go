package compare

import (
	"fmt"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Alignment is a run of Length residues numbered consecutively in the same
// chain on both sides, starting at StartA in ChainA and StartB in ChainB.
type Alignment struct {
	ChainA string
	StartA int
	ChainB string
	StartB int
	Length int
}

func (a Alignment) String() string {
	return fmt.Sprintf("('%s', %d, '%s', %d, %d)",
		a.ChainA, a.StartA, a.ChainB, a.StartB, a.Length)
}

// Alignments walks the active sequences of a and b together and splits them
// into maximal runs in which both sides stay in the same chain and advance
// their residue numbers by exactly one at each step. Walking stops at the
// end of the shorter sequence.
func Alignments(a, b *rnastruct.Structure) []Alignment {
	aligns := make([]Alignment, 0)
	n := a.Len()
	if b.Len() < n {
		n = b.Len()
	}

	var cur Alignment
	for i := 0; i < n; i++ {
		ra, rb := a.Residue(i), b.Residue(i)
		if cur.Length > 0 &&
			ra.Chain == cur.ChainA && ra.Pos == cur.StartA+cur.Length &&
			rb.Chain == cur.ChainB && rb.Pos == cur.StartB+cur.Length {

			cur.Length++
			continue
		}
		if cur.Length > 0 {
			aligns = append(aligns, cur)
		}
		cur = Alignment{ra.Chain, ra.Pos, rb.Chain, rb.Pos, 1}
	}
	if cur.Length > 0 {
		aligns = append(aligns, cur)
	}
	return aligns
}
