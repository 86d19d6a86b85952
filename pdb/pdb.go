package pdb

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/TuftsBCB/structure"
)

// Entry represents all information known about a particular coordinate file
// (that has been implemented in this package).
//
// Currently, an entry is a file path and a list of models. Each model holds
// its chains in the order in which they first appear in the file.
type Entry struct {
	Path   string
	Models []*Model
}

// Model is a single MODEL block of a coordinate file. Files without MODEL
// records have exactly one model numbered 1.
type Model struct {
	Num    int
	Chains []*Chain
}

// Chain is a list of residues sharing a chain identifier, in document order.
type Chain struct {
	Ident    string
	Residues []*Residue
}

// Residue groups consecutive ATOM/HETATM records sharing a residue name,
// sequence number and insertion code.
type Residue struct {
	Name   string
	SeqNum int
	ICode  byte
	Atoms  Atoms
}

// Atom contains information about an ATOM or HETATM record.
type Atom struct {
	Serial     int
	Name       string
	AltLoc     byte
	Het        bool
	Occupancy  float64
	TempFactor float64
	Element    string
	Charge     string
	Coords     structure.Coords
}

// Atoms names a slice of Atom.
type Atoms []Atom

// Read creates a new Entry from a file. If the file cannot be read, or there
// is an error parsing it, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used. Files
// ending in ".cif" (before any ".gz") are read as PDBx/mmCIF.
func Read(fileName string) (*Entry, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	base := fileName
	if path.Ext(fileName) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
		base = strings.TrimSuffix(fileName, ".gz")
	}

	var entry *Entry
	if path.Ext(base) == ".cif" {
		entry, err = ReadCIF(reader)
	} else {
		entry, err = ReadPDB(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("Could not read '%s': %s", fileName, err)
	}
	entry.Path = fileName
	return entry, nil
}

// ReadPDB reads fixed-column PDB records from r. Only MODEL, ENDMDL, ATOM and
// HETATM records are interpreted; everything else is ignored.
//
// An error is returned if no atoms could be found.
func ReadPDB(r io.Reader) (*Entry, error) {
	entry := &Entry{Models: make([]*Model, 0, 1)}

	var cur *Model
	breader := bufio.NewReaderSize(r, 1000)
	lineNum := 0
	for {
		line, err := breader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(line) == 0 && err == io.EOF {
			break
		}
		lineNum++
		line = padLine(strings.TrimRight(line, "\r\n"))

		// The record name is always in the first six columns.
		switch strings.TrimSpace(line[0:6]) {
		case "MODEL":
			num, perr := strconv.Atoi(strings.TrimSpace(line[10:14]))
			if perr != nil {
				num = len(entry.Models) + 1
			}
			cur = &Model{Num: num}
			entry.Models = append(entry.Models, cur)
		case "ENDMDL":
			cur = nil
		case "ATOM", "HETATM":
			if cur == nil {
				cur = &Model{Num: len(entry.Models) + 1}
				entry.Models = append(entry.Models, cur)
			}
			if perr := cur.parseAtom(line); perr != nil {
				return nil, fmt.Errorf("line %d: %s", lineNum, perr)
			}
		}
		if err == io.EOF {
			break
		}
	}

	// Drop models that ended up without atoms (e.g., a bare MODEL record).
	models := entry.Models[:0]
	for _, m := range entry.Models {
		if len(m.Chains) > 0 {
			models = append(models, m)
		}
	}
	entry.Models = models
	if len(entry.Models) == 0 {
		return nil, fmt.Errorf("no ATOM or HETATM records found")
	}
	return entry, nil
}

// padLine right pads a record to 80 columns so that fixed column slicing
// never goes out of bounds.
func padLine(line string) string {
	if len(line) >= 80 {
		return line
	}
	return line + strings.Repeat(" ", 80-len(line))
}

// parseAtom builds an Atom value from the fixed columns of an ATOM/HETATM
// record and adds it to the proper chain and residue of the model.
//
// Only the first alternate location of an atom is kept.
func (m *Model) parseAtom(line string) error {
	seqNum, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
	if err != nil {
		return fmt.Errorf("bad residue sequence number '%s'", line[22:26])
	}
	atom := Atom{
		Name:    strings.TrimSpace(line[12:16]),
		AltLoc:  line[16],
		Het:     strings.TrimSpace(line[0:6]) == "HETATM",
		Element: strings.TrimSpace(line[76:78]),
		Charge:  strings.TrimSpace(line[78:80]),
	}
	if atom.Serial, err = strconv.Atoi(strings.TrimSpace(line[6:11])); err != nil {
		atom.Serial = 0
	}
	coords := [3]float64{}
	for i, col := range [3]int{30, 38, 46} {
		v, err := strconv.ParseFloat(strings.TrimSpace(line[col:col+8]), 64)
		if err != nil {
			return fmt.Errorf("bad coordinate '%s'", line[col:col+8])
		}
		coords[i] = v
	}
	atom.Coords = structure.Coords{X: coords[0], Y: coords[1], Z: coords[2]}
	atom.Occupancy = parseFloatDefault(line[54:60], 1.0)
	atom.TempFactor = parseFloatDefault(line[60:66], 0.0)

	chain := m.getOrMakeChain(strings.TrimSpace(line[21:22]))
	res := chain.getOrMakeResidue(strings.TrimSpace(line[17:20]), seqNum, line[26])
	if atom.AltLoc != ' ' && res.Atoms.Index(atom.Name) >= 0 {
		return nil
	}
	res.Atoms = append(res.Atoms, atom)
	return nil
}

func parseFloatDefault(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}

// Chain looks for the chain with identifier ident and returns it. 'nil' is
// returned if the chain could not be found.
func (m *Model) Chain(ident string) *Chain {
	for _, chain := range m.Chains {
		if chain.Ident == ident {
			return chain
		}
	}
	return nil
}

// getOrMakeChain looks for a chain in the 'Chains' slice corresponding to the
// chain indentifier. If one doesn't exist, it is created and appended.
func (m *Model) getOrMakeChain(ident string) *Chain {
	if chain := m.Chain(ident); chain != nil {
		return chain
	}
	chain := &Chain{Ident: ident, Residues: make([]*Residue, 0, 30)}
	m.Chains = append(m.Chains, chain)
	return chain
}

// getOrMakeResidue returns the last residue of the chain if it matches the
// given name, number and insertion code. Otherwise a new residue is started.
func (c *Chain) getOrMakeResidue(name string, seqNum int, icode byte) *Residue {
	if n := len(c.Residues); n > 0 {
		last := c.Residues[n-1]
		if last.Name == name && last.SeqNum == seqNum && last.ICode == icode {
			return last
		}
	}
	res := &Residue{Name: name, SeqNum: seqNum, ICode: icode,
		Atoms: make(Atoms, 0, 25)}
	c.Residues = append(c.Residues, res)
	return res
}

// Name returns the base name of the path of this entry.
func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// FirstModel returns the first model of the entry.
func (e *Entry) FirstModel() *Model {
	return e.Models[0]
}

// Copy returns a deep copy of the entry. Modifying the atoms of the copy
// never affects the original.
func (e *Entry) Copy() *Entry {
	cp := &Entry{Path: e.Path, Models: make([]*Model, len(e.Models))}
	for i, m := range e.Models {
		cm := &Model{Num: m.Num, Chains: make([]*Chain, len(m.Chains))}
		for j, c := range m.Chains {
			cc := &Chain{Ident: c.Ident, Residues: make([]*Residue, len(c.Residues))}
			for k, r := range c.Residues {
				cr := *r
				cr.Atoms = r.Atoms.Copy()
				cc.Residues[k] = &cr
			}
			cm.Chains[j] = cc
		}
		cp.Models[i] = cm
	}
	return cp
}

// EachAtom calls f with a pointer to every atom of every model, so that f
// may modify atoms in place.
func (e *Entry) EachAtom(f func(a *Atom)) {
	for _, m := range e.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				for i := range r.Atoms {
					f(&r.Atoms[i])
				}
			}
		}
	}
}

// Copy returns a new slice with the same atoms.
func (as Atoms) Copy() Atoms {
	cp := make(Atoms, len(as))
	copy(cp, as)
	return cp
}

// Index returns the position of the first atom with the given name, or -1.
func (as Atoms) Index(name string) int {
	for i := range as {
		if as[i].Name == name {
			return i
		}
	}
	return -1
}

// Coords returns the coordinates of every atom, in order.
func (as Atoms) Coords() []structure.Coords {
	cs := make([]structure.Coords, len(as))
	for i := range as {
		cs[i] = as[i].Coords
	}
	return cs
}

func (a Atom) String() string {
	return fmt.Sprintf("(%d, %s, [%0.3f %0.3f %0.3f])",
		a.Serial, a.Name, a.Coords.X, a.Coords.Y, a.Coords.Z)
}

func (as Atoms) String() string {
	lines := make([]string, len(as))
	for i, atom := range as {
		lines[i] = atom.String()
	}
	return strings.Join(lines, "\n")
}
