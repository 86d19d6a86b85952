package pdb

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// WriteFile writes the entry to the file at path in PDB format. An existing
// file is truncated. Nothing is written if the entry cannot be represented
// in PDB format (see Write).
func WriteFile(fpath string, e *Entry) error {
	if err := checkChains(e); err != nil {
		return fmt.Errorf("Could not write '%s': %s", fpath, err)
	}
	f, err := os.Create(fpath)
	if err != nil {
		return fmt.Errorf("Could not create '%s': %s", fpath, err)
	}
	if err := Write(f, e); err != nil {
		f.Close()
		return fmt.Errorf("Could not write '%s': %s", fpath, err)
	}
	return f.Close()
}

// Write writes every model of the entry as fixed-column ATOM/HETATM records.
// Each chain is terminated by a TER record. MODEL/ENDMDL records are only
// written when there is more than one model.
//
// The PDB format has a single column for chain identifiers, so an entry with
// a longer identifier (as found in mmCIF files) is an error and nothing is
// written.
func Write(w io.Writer, e *Entry) error {
	if err := checkChains(e); err != nil {
		return err
	}
	buf := bufio.NewWriter(w)
	multi := len(e.Models) > 1
	serial := 0
	for _, m := range e.Models {
		if multi {
			fmt.Fprintf(buf, "MODEL     %4d\n", m.Num)
		}
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				for _, a := range r.Atoms {
					serial++
					writeAtom(buf, serial, c.Ident, r, a)
				}
			}
			fmt.Fprintln(buf, "TER")
		}
		if multi {
			fmt.Fprintln(buf, "ENDMDL")
		}
	}
	fmt.Fprintln(buf, "END")
	return buf.Flush()
}

func checkChains(e *Entry) error {
	for _, m := range e.Models {
		for _, c := range m.Chains {
			if len(c.Ident) > 1 {
				return fmt.Errorf("Chain identifier '%s' of model %d does "+
					"not fit in the PDB format", c.Ident, m.Num)
			}
		}
	}
	return nil
}

func writeAtom(w io.Writer, serial int, chain string, r *Residue, a Atom) {
	record := "ATOM  "
	if a.Het {
		record = "HETATM"
	}
	chainID := byte(' ')
	if len(chain) > 0 {
		chainID = chain[0]
	}
	icode := r.ICode
	if icode == 0 {
		icode = ' '
	}
	altLoc := a.AltLoc
	if altLoc == 0 {
		altLoc = ' '
	}
	fmt.Fprintf(w, "%s%5d %s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f"+
		"          %2s%2s\n",
		record, serial%100000, atomField(a.Name), altLoc, r.Name, chainID,
		r.SeqNum, icode, a.Coords.X, a.Coords.Y, a.Coords.Z,
		a.Occupancy, a.TempFactor, a.Element, a.Charge)
}

// atomField returns the four column atom name field. Names shorter than four
// characters start in the second column, as is customary.
func atomField(name string) string {
	if len(name) >= 4 {
		return name[:4]
	}
	return fmt.Sprintf(" %-3s", name)
}
