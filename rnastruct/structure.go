package rnastruct

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/clementbernardd/RNA-assessment/pdb"
)

var defaultLogger = log.New(os.Stderr, "", 0)

// Options controls how a structure is loaded. The zero value loads every
// residue and no interactions.
type Options struct {
	// Index is the path of an index specification restricting and ordering
	// the residues that take part in comparisons. See ParseIndex.
	// When empty, every residue is used in file order.
	Index string

	// Annotator provides the interactions of the structure. When nil, the
	// structure has no interactions.
	Annotator Annotator

	// Logger receives warnings. When nil, they are written to stderr.
	Logger *log.Logger
}

// ranks locates a residue by its position in the file and in the active
// sequence. active is -1 for residues outside the active sequence.
type ranks struct {
	file, active int
}

// Structure is an ordered list of residues with the interactions between
// them. A structure is never modified after it is loaded.
//
// ResList holds every residue of the first model in file order. ResSeq holds
// indices into ResList in the order used for comparison: the active
// sequence. The position of a residue in ResSeq is its active rank, and
// interactions always refer to active ranks.
type Structure struct {
	Path    string
	Entry   *pdb.Entry
	ResList []Residue
	ResSeq  []int

	index        map[string]ranks
	interactions []Interaction
	logger       *log.Logger
}

// Load reads the coordinate file at fpath and builds a structure from it.
// See FromEntry.
func Load(fpath string, opts Options) (*Structure, error) {
	entry, err := pdb.Read(fpath)
	if err != nil {
		return nil, err
	}
	return FromEntry(entry, opts)
}

// FromEntry builds a structure from the first model of entry. If entry has
// more than one model, a warning is logged.
//
// The active sequence is built from the index specification in opts, if
// any. Interactions come from running opts.Annotator on entry.Path.
func FromEntry(entry *pdb.Entry, opts Options) (*Structure, error) {
	s := &Structure{
		Path:   entry.Path,
		Entry:  entry,
		index:  make(map[string]ranks),
		logger: opts.Logger,
	}
	if s.logger == nil {
		s.logger = defaultLogger
	}
	if len(entry.Models) == 0 {
		return nil, fmt.Errorf("No models found in '%s'.", entry.Path)
	}
	if len(entry.Models) > 1 {
		s.logger.Printf("WARNING\t%d models found in '%s'. Only the first "+
			"will be used!", len(entry.Models), entry.Path)
	}
	s.loadResidues(entry.FirstModel())

	if len(opts.Index) > 0 {
		entries, err := LoadIndex(opts.Index)
		if err != nil {
			return nil, err
		}
		if err := s.selectResidues(entries); err != nil {
			return nil, fmt.Errorf("Could not apply index '%s' to '%s': %s",
				opts.Index, entry.Path, err)
		}
	} else {
		s.selectAll()
	}

	if opts.Annotator != nil {
		anns, err := opts.Annotator.Annotate(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("Could not annotate '%s': %s",
				entry.Path, err)
		}
		s.addAnnotations(anns)
	}
	return s, nil
}

func (s *Structure) loadResidues(model *pdb.Model) {
	s.ResList = make([]Residue, 0)
	for _, chain := range model.Chains {
		for _, r := range chain.Residues {
			res := Residue{
				Chain: chain.Ident,
				Pos:   r.SeqNum,
				NT:    NucleotideCode(r.Name),
				Atoms: r.Atoms.Copy(),
			}
			k := res.Key()
			if _, ok := s.index[k]; ok {
				s.logger.Printf("WARNING\tDuplicate residue '%s' in '%s'. "+
					"Only the first one can be indexed.", k, s.Path)
			} else {
				s.index[k] = ranks{file: len(s.ResList), active: -1}
			}
			s.ResList = append(s.ResList, res)
		}
	}
}

func (s *Structure) selectAll() {
	s.ResSeq = make([]int, len(s.ResList))
	for i := range s.ResList {
		s.ResSeq[i] = i
		s.setActive(s.ResList[i].Key(), i, i)
	}
}

// selectResidues builds the active sequence from index entries. Each entry
// must resolve to a run of residues that are consecutive in the file and
// belong to a single chain.
func (s *Structure) selectResidues(entries []IndexEntry) error {
	s.ResSeq = make([]int, 0)
	for _, entry := range entries {
		start, ok := s.FileRank(entry.Chain, entry.Start)
		if !ok {
			return fmt.Errorf("Bad index key: '%s'",
				key(entry.Chain, entry.Start))
		}
		for i := start; i < start+entry.Count; i++ {
			if i >= len(s.ResList) {
				return fmt.Errorf("Bad count %d in index entry: '%s'",
					entry.Count, entry)
			}
			if s.ResList[i].Chain != entry.Chain {
				return fmt.Errorf("Position %d in index entry: '%s' is "+
					"outside the chain", i, entry)
			}
			s.ResSeq = append(s.ResSeq, i)
			s.setActive(s.ResList[i].Key(), i, len(s.ResSeq)-1)
		}
	}
	return nil
}

// setActive records the active rank of the residue at file rank fileRank.
// Residues whose key is held by an earlier duplicate are not indexed.
func (s *Structure) setActive(k string, fileRank, active int) {
	if rk, ok := s.index[k]; ok && rk.file == fileRank {
		rk.active = active
		s.index[k] = rk
	}
}

// FileRank returns the position in ResList of the residue numbered pos in
// chain.
func (s *Structure) FileRank(chain string, pos int) (int, bool) {
	rk, ok := s.index[key(chain, pos)]
	if !ok {
		return 0, false
	}
	return rk.file, true
}

// ActiveRank returns the active rank of the residue numbered pos in chain.
// It returns false if there is no such residue or if the residue is not part
// of the active sequence.
func (s *Structure) ActiveRank(chain string, pos int) (int, bool) {
	rk, ok := s.index[key(chain, pos)]
	if !ok || rk.active < 0 {
		return 0, false
	}
	return rk.active, true
}

// Len returns the length of the active sequence.
func (s *Structure) Len() int {
	return len(s.ResSeq)
}

// Residue returns the residue at the given active rank.
func (s *Structure) Residue(rank int) Residue {
	return s.ResList[s.ResSeq[rank]]
}

// ResSequence returns the atoms of every residue in active order.
func (s *Structure) ResSequence() []pdb.Atoms {
	atoms := make([]pdb.Atoms, len(s.ResSeq))
	for i, ndx := range s.ResSeq {
		atoms[i] = s.ResList[ndx].Atoms
	}
	return atoms
}

// RawSequence returns the nucleotide codes of every residue in active order.
func (s *Structure) RawSequence() string {
	seq := make([]byte, len(s.ResSeq))
	for i, ndx := range s.ResSeq {
		seq[i] = s.ResList[ndx].NT
	}
	return string(seq)
}

// RadiusOfGyration returns the root mean square distance of every atom of
// every residue in the file to their centroid. It is 0 for a structure
// without atoms.
func (s *Structure) RadiusOfGyration() float64 {
	var cx, cy, cz float64
	count := 0
	for _, res := range s.ResList {
		for _, a := range res.Atoms {
			cx, cy, cz = cx+a.Coords.X, cy+a.Coords.Y, cz+a.Coords.Z
			count++
		}
	}
	if count == 0 {
		return 0
	}
	n := float64(count)
	cx, cy, cz = cx/n, cy/n, cz/n

	var sum float64
	for _, res := range s.ResList {
		for _, a := range res.Atoms {
			dx, dy, dz := a.Coords.X-cx, a.Coords.Y-cy, a.Coords.Z-cz
			sum += dx*dx + dy*dy + dz*dz
		}
	}
	return math.Sqrt(sum / n)
}

func (s *Structure) String() string {
	lines := make([]string, 0, len(s.ResSeq)+1)
	lines = append(lines, fmt.Sprintf("%s (%d residues, %d active, "+
		"%d interactions)", s.Path, len(s.ResList), len(s.ResSeq),
		len(s.interactions)))
	for _, ndx := range s.ResSeq {
		lines = append(lines, "\t"+s.ResList[ndx].String())
	}
	return strings.Join(lines, "\n")
}
