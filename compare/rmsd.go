package compare

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/clementbernardd/RNA-assessment/pdb"
	"github.com/clementbernardd/RNA-assessment/rmsd"
	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Logger receives the warnings of every comparison. It may be replaced, or
// set to a logger writing to io.Discard to silence them.
var Logger = log.New(os.Stderr, "", 0)

// ErrLengthMismatch is returned when two structures with active sequences
// of different lengths are superposed.
var ErrLengthMismatch = errors.New("Different number of residues!")

// The atoms used for superposition.
var (
	BackboneAtoms = []string{
		"C1'", "C2'", "C3'", "C4'", "C5'", "O2'", "O3'", "O4'", "O5'",
		"OP1", "OP2", "P",
	}
	BaseAtoms = []string{
		"C2", "C4", "C5", "C6", "C8", "N1", "N2", "N3", "N4", "N6", "N7",
		"N9", "O2", "O4", "O6",
	}
	AllAtoms = append(append([]string{}, BackboneAtoms...), BaseAtoms...)
)

// RMSD superposes trg onto src and returns the RMS deviation. Atoms are
// paired by name within the residues at the same active rank of each
// structure, using only the names in AllAtoms.
//
// When fitPath is not empty, a copy of the full coordinates of trg moved by
// the superposition is written there. trg itself is never changed.
//
// If the active sequences have different lengths, ErrLengthMismatch is
// returned.
func RMSD(src, trg *rnastruct.Structure, fitPath string) (float64, error) {
	sup, err := Fit(src, trg, AllAtoms)
	if err != nil {
		return 0, err
	}
	if len(fitPath) > 0 {
		fit := trg.Entry.Copy()
		sup.ApplyEntry(fit)
		if err := pdb.WriteFile(fitPath, fit); err != nil {
			return 0, err
		}
	}
	return sup.RMS, nil
}

// Fit computes the superposition of trg onto src using the atoms with the
// given names. See RMSD.
func Fit(src, trg *rnastruct.Structure, names []string) (rmsd.Superposition, error) {
	srcAtoms, trgAtoms, err := MatchAtoms(src, trg, names)
	if err != nil {
		return rmsd.Superposition{}, err
	}
	sup, err := rmsd.Fit(srcAtoms.Coords(), trgAtoms.Coords())
	if err != nil {
		return rmsd.Superposition{}, fmt.Errorf("Could not superpose '%s' "+
			"onto '%s': %s", trg.Path, src.Path, err)
	}
	return sup, nil
}

// MatchAtoms pairs the atoms of the residues at each active rank of src and
// trg. For every rank, each atom of the src residue whose name is in names
// is paired with the trg atom of the same name. A src atom without a match
// is left out with a warning.
//
// The two returned lists have the same length, and the i-th atoms of each
// correspond to each other.
func MatchAtoms(src, trg *rnastruct.Structure, names []string) (
	pdb.Atoms, pdb.Atoms, error) {

	if src.Len() != trg.Len() {
		return nil, nil, fmt.Errorf("%w ('%s' has %d, '%s' has %d)",
			ErrLengthMismatch, src.Path, src.Len(), trg.Path, trg.Len())
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	srcAtoms, trgAtoms := make(pdb.Atoms, 0), make(pdb.Atoms, 0)
	for i := 0; i < src.Len(); i++ {
		sres, tres := src.Residue(i), trg.Residue(i)
		for _, sa := range sres.Atoms {
			if !wanted[sa.Name] {
				continue
			}
			j := tres.Atoms.Index(sa.Name)
			if j < 0 {
				Logger.Printf("WARNING\tAtom %s from residue %s not found "+
					"in target atom list", sa.Name, sres.Key())
				continue
			}
			srcAtoms = append(srcAtoms, sa)
			trgAtoms = append(trgAtoms, tres.Atoms[j])
		}
	}
	return srcAtoms, trgAtoms, nil
}
