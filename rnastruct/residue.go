package rnastruct

import (
	"fmt"
	"strings"

	"github.com/clementbernardd/RNA-assessment/pdb"
)

// Residue associates a chain label and a sequence position with a one letter
// nucleotide code and the atoms of the residue.
//
// The atoms are a copy owned by the residue. Transforming the coordinates of
// the *pdb.Entry a structure was loaded from never changes them.
type Residue struct {
	Chain string
	Pos   int
	NT    byte
	Atoms pdb.Atoms
}

// Key returns the "chain:pos" identity of the residue.
func (r Residue) Key() string {
	return key(r.Chain, r.Pos)
}

func (r Residue) String() string {
	return fmt.Sprintf("%s:%d:%c > %d atoms", r.Chain, r.Pos, r.NT, len(r.Atoms))
}

func key(chain string, pos int) string {
	return fmt.Sprintf("%s:%d", chain, pos)
}

var longNucleotides = map[string]byte{
	"ADE": 'A', "CYT": 'C', "GUA": 'G', "URA": 'U', "URI": 'U', "THY": 'T',
}

// NucleotideCode returns the one letter code for a residue name. One letter
// names are returned as is. Two letter names with an 'R' or 'D' prefix
// ("RA", "DG") and the common three letter names are translated. Anything
// else is 'X'.
//
// Files passed through the normalizer only ever contain one letter names.
func NucleotideCode(name string) byte {
	name = strings.ToUpper(strings.TrimSpace(name))
	switch {
	case len(name) == 1:
		return name[0]
	case len(name) == 2 && (name[0] == 'R' || name[0] == 'D'):
		return name[1]
	}
	if nt, ok := longNucleotides[name]; ok {
		return nt
	}
	return 'X'
}
