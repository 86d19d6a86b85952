package pdb

import (
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/cif"
	"github.com/TuftsBCB/structure"
)

// ReadCIF reads exactly one entry from a PDBx/mmCIF data source. Atoms are
// taken from the "atom_site" loop, using the author chain and residue
// numbering so that identifiers agree with those of the equivalent PDB file.
//
// An error is returned if there is not exactly one data block, or if the
// block has no atom_site loop.
func ReadCIF(r io.Reader) (*Entry, error) {
	cf, err := cif.Read(r)
	if err != nil {
		return nil, err
	}
	if len(cf.Blocks) != 1 {
		return nil, fmt.Errorf("expected one data block but got %d",
			len(cf.Blocks))
	}
	var block *cif.DataBlock
	for _, b := range cf.Blocks {
		block = b
	}

	loop, ok := block.Loops["atom_site.group_pdb"]
	if !ok {
		return nil, fmt.Errorf("no atom_site loop found")
	}
	groups := loopStrings(loop, "atom_site.group_pdb")
	names := loopStrings(loop, "atom_site.label_atom_id")
	comps := loopStrings(loop, "atom_site.label_comp_id")
	chains := loopStrings(loop, "atom_site.auth_asym_id")
	seqids := loopInts(loop, "atom_site.auth_seq_id")
	xs := loopFloats(loop, "atom_site.cartn_x")
	ys := loopFloats(loop, "atom_site.cartn_y")
	zs := loopFloats(loop, "atom_site.cartn_z")
	if groups == nil || names == nil || comps == nil || chains == nil ||
		seqids == nil || xs == nil || ys == nil || zs == nil {
		return nil, fmt.Errorf("the atom_site loop is missing required columns")
	}
	models := loopInts(loop, "atom_site.pdbx_pdb_model_num")
	serials := loopInts(loop, "atom_site.id")
	alts := loopStrings(loop, "atom_site.label_alt_id")
	icodes := loopStrings(loop, "atom_site.pdbx_pdb_ins_code")
	elements := loopStrings(loop, "atom_site.type_symbol")

	entry := &Entry{}
	byNum := make(map[int]*Model)
	for i := range groups {
		num := 1
		if models != nil {
			num = models[i]
		}
		m, ok := byNum[num]
		if !ok {
			m = &Model{Num: num}
			byNum[num] = m
			entry.Models = append(entry.Models, m)
		}

		atom := Atom{
			Name:      names[i],
			AltLoc:    ' ',
			Het:       groups[i] == "HETATM",
			Occupancy: 1.0,
			Coords:    structure.Coords{X: xs[i], Y: ys[i], Z: zs[i]},
		}
		if serials != nil {
			atom.Serial = serials[i]
		}
		if alts != nil && isSet(alts[i]) {
			atom.AltLoc = alts[i][0]
		}
		if elements != nil && isSet(elements[i]) {
			atom.Element = elements[i]
		}
		icode := byte(' ')
		if icodes != nil && isSet(icodes[i]) {
			icode = icodes[i][0]
		}

		chain := m.getOrMakeChain(chains[i])
		res := chain.getOrMakeResidue(comps[i], seqids[i], icode)
		if atom.AltLoc != ' ' && res.Atoms.Index(atom.Name) >= 0 {
			continue
		}
		res.Atoms = append(res.Atoms, atom)
	}
	if len(entry.Models) == 0 {
		return nil, fmt.Errorf("no ATOM or HETATM records found")
	}
	return entry, nil
}

// isSet reports whether a CIF value is neither missing ('?') nor
// inapplicable ('.').
func isSet(s string) bool {
	return len(s) > 0 && s != "?" && s != "."
}

// The CIF reader types every loop column by its contents, so a chain column
// made only of digits comes back as integers. The helpers below coerce a
// column into the type we need, returning nil when the column is absent.

func loopStrings(loop *cif.Loop, tag string) []string {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if ss := v.Strings(); ss != nil {
		return ss
	}
	if is := v.Ints(); is != nil {
		ss := make([]string, len(is))
		for i, n := range is {
			ss[i] = strconv.Itoa(n)
		}
		return ss
	}
	if fs := v.Floats(); fs != nil {
		ss := make([]string, len(fs))
		for i, f := range fs {
			ss[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ss
	}
	return nil
}

func loopInts(loop *cif.Loop, tag string) []int {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if is := v.Ints(); is != nil {
		return is
	}
	ss := v.Strings()
	if ss == nil {
		return nil
	}
	is := make([]int, len(ss))
	for i, s := range ss {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		is[i] = n
	}
	return is
}

func loopFloats(loop *cif.Loop, tag string) []float64 {
	if _, ok := loop.Columns[tag]; !ok {
		return nil
	}
	v := loop.Get(tag)
	if fs := v.Floats(); fs != nil {
		return fs
	}
	if is := v.Ints(); is != nil {
		fs := make([]float64, len(is))
		for i, n := range is {
			fs[i] = float64(n)
		}
		return fs
	}
	return nil
}
