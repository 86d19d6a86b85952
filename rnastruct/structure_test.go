package rnastruct

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TuftsBCB/structure"

	"github.com/clementbernardd/RNA-assessment/pdb"
)

var quiet = log.New(io.Discard, "", 0)

type fakeAnnotator []Annotation

func (f fakeAnnotator) Annotate(string) ([]Annotation, error) {
	return f, nil
}

type failingAnnotator struct{}

func (failingAnnotator) Annotate(path string) ([]Annotation, error) {
	return nil, fmt.Errorf("no annotator for %s", path)
}

// chainDef describes a chain of consecutively numbered residues.
type chainDef struct {
	ident string
	start int
	seq   string
}

func makeEntry(defs ...chainDef) *pdb.Entry {
	model := &pdb.Model{Num: 1}
	serial, x := 1, 0.0
	for _, def := range defs {
		chain := &pdb.Chain{Ident: def.ident}
		for i := 0; i < len(def.seq); i++ {
			res := &pdb.Residue{Name: def.seq[i : i+1], SeqNum: def.start + i}
			for j, name := range []string{"P", "C1'"} {
				res.Atoms = append(res.Atoms, pdb.Atom{
					Serial: serial,
					Name:   name,
					Coords: structure.Coords{X: x, Y: float64(j), Z: 0},
				})
				serial++
			}
			chain.Residues = append(chain.Residues, res)
			x++
		}
		model.Chains = append(model.Chains, chain)
	}
	return &pdb.Entry{Path: "test.pdb", Models: []*pdb.Model{model}}
}

func twoChains() *pdb.Entry {
	return makeEntry(chainDef{"A", 1, "GGCAU"}, chainDef{"B", 10, "AUGCC"})
}

func fromEntry(t *testing.T, entry *pdb.Entry, opts Options) *Structure {
	if opts.Logger == nil {
		opts.Logger = quiet
	}
	s, err := FromEntry(entry, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func writeIndex(t *testing.T, contents string) string {
	fpath := filepath.Join(t.TempDir(), "index")
	if err := os.WriteFile(fpath, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return fpath
}

func TestLoad(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "two.pdb")
	if err := pdb.WriteFile(fpath, twoChains()); err != nil {
		t.Fatal(err)
	}
	s, err := Load(fpath, Options{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.ResList) != 10 || s.Len() != 10 {
		t.Fatalf("Expected 10 residues, got %d (%d active).",
			len(s.ResList), s.Len())
	}
	if seq := s.RawSequence(); seq != "GGCAUAUGCC" {
		t.Fatalf("Unexpected sequence %s.", seq)
	}
	atoms := s.ResSequence()
	if len(atoms) != 10 || len(atoms[7]) != 2 || atoms[7][1].Name != "C1'" {
		t.Fatalf("Unexpected atoms for residue B:12:\n%s", atoms[7])
	}
	if r := s.Residue(5); r.Chain != "B" || r.Pos != 10 || r.NT != 'A' {
		t.Fatalf("Unexpected residue at rank 5: %s", r)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "none.pdb"), Options{}); err == nil {
		t.Fatalf("Expected an error for a missing file.")
	}
}

func TestAtomsAreCopied(t *testing.T) {
	entry := twoChains()
	s := fromEntry(t, entry, Options{})
	entry.EachAtom(func(a *pdb.Atom) { a.Coords.Z = 100 })
	if z := s.ResSequence()[0][0].Coords.Z; z != 0 {
		t.Fatalf("Residue atoms changed with the entry: Z = %f", z)
	}
}

func TestMultipleModels(t *testing.T) {
	entry := twoChains()
	second := makeEntry(chainDef{"A", 1, "GG"}).Models[0]
	second.Num = 2
	entry.Models = append(entry.Models, second)

	buf := new(bytes.Buffer)
	s := fromEntry(t, entry, Options{Logger: log.New(buf, "", 0)})
	if s.Len() != 10 {
		t.Fatalf("Only the first model should be used, got %d residues.",
			s.Len())
	}
	if !strings.Contains(buf.String(), "2 models found") {
		t.Fatalf("Expected a warning about models, got %q", buf.String())
	}
}

func TestDuplicateKeys(t *testing.T) {
	entry := makeEntry(chainDef{"A", 1, "GCA"})
	dup := *entry.Models[0].Chains[0].Residues[0]
	dup.Name = "U"
	entry.Models[0].Chains[0].Residues = append(
		entry.Models[0].Chains[0].Residues, &dup)

	buf := new(bytes.Buffer)
	s := fromEntry(t, entry, Options{Logger: log.New(buf, "", 0)})
	if !strings.Contains(buf.String(), "Duplicate residue 'A:1'") {
		t.Fatalf("Expected a duplicate key warning, got %q", buf.String())
	}
	if rank, ok := s.ActiveRank("A", 1); !ok || rank != 0 {
		t.Fatalf("The first residue should keep the key, got rank %d.", rank)
	}
	if s.Len() != 4 || s.RawSequence() != "GCAU" {
		t.Fatalf("Duplicates must still be part of the sequence, got %s.",
			s.RawSequence())
	}
}

func TestIndexRoundTrip(t *testing.T) {
	full := fromEntry(t, twoChains(), Options{})
	indexed := fromEntry(t, twoChains(),
		Options{Index: writeIndex(t, "# everything\nA:1:5,B:10:5\n")})

	if len(full.ResSeq) != len(indexed.ResSeq) {
		t.Fatalf("Lengths differ: %d != %d", len(full.ResSeq),
			len(indexed.ResSeq))
	}
	for i := range full.ResSeq {
		if full.ResSeq[i] != indexed.ResSeq[i] {
			t.Fatalf("Active sequences differ at %d: %v != %v",
				i, full.ResSeq, indexed.ResSeq)
		}
	}
}

func TestIndexSubset(t *testing.T) {
	s := fromEntry(t, twoChains(), Options{Index: writeIndex(t, "B:11:2\nA:2:3")})
	if seq := s.RawSequence(); seq != "UGGCA" {
		t.Fatalf("Unexpected indexed sequence %s.", seq)
	}
	if rank, ok := s.ActiveRank("A", 2); !ok || rank != 2 {
		t.Fatalf("Expected A:2 at active rank 2, got %d (%v).", rank, ok)
	}
	if _, ok := s.ActiveRank("A", 1); ok {
		t.Fatalf("A:1 is not selected and must have no active rank.")
	}
	if rank, ok := s.FileRank("A", 1); !ok || rank != 0 {
		t.Fatalf("A:1 must keep its file rank, got %d (%v).", rank, ok)
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []string{
		"A:7:1",         // no such residue
		"B:12:5",        // runs off the end
		"A:4:3",         // crosses into chain B
		"A:1",           // malformed
		"A:x:1",         // bad number
		"A:1:1,",        // empty entry
		"A:1:0",         // empty range
		"A:3:-2",        // negative count
		"A:1:5,B:10:-4", // negative count after a good entry
	}
	for _, index := range tests {
		_, err := FromEntry(twoChains(),
			Options{Index: writeIndex(t, index), Logger: quiet})
		if err == nil {
			t.Errorf("Expected an error for index '%s'.", index)
		}
	}
}

func TestParseIndex(t *testing.T) {
	input := "# comment\n\nA:1:10, B:3:2\n  C:-2:4  \n"
	entries, err := ParseIndex(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := []IndexEntry{{"A", 1, 10}, {"B", 3, 2}, {"C", -2, 4}}
	if len(entries) != len(want) {
		t.Fatalf("Expected %v but got %v.", want, entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("Expected %v but got %v.", want, entries)
		}
	}
}

func TestParseIndexCount(t *testing.T) {
	for _, input := range []string{"A:1:0", "A:3:-2", "A:1:5,B:10:-4"} {
		_, err := ParseIndex(strings.NewReader(input))
		if err == nil || !strings.Contains(err.Error(), "Bad count") {
			t.Errorf("Expected a bad count error for '%s', got %v.", input, err)
		}
	}
}

func TestInteractions(t *testing.T) {
	anns := fakeAnnotator{
		{Kind: Pair2D, ChainA: "A", PosA: 1, NTA: 'G', ChainB: "B", PosB: 14,
			NTB: 'C', Extra1: "W", Extra2: "W", Extra3: "cis"},
		{Kind: Pair3D, ChainA: "B", PosA: 12, NTA: 'G', ChainB: "A", PosB: 4,
			NTB: 'A', Extra1: "S", Extra2: "H", Extra3: "trans"},
		{Kind: Stack, ChainA: "A", PosA: 2, NTA: 'G', ChainB: "A", PosB: 3,
			NTB: 'C', Extra1: "upward", Extra2: "ignored"},
		{Kind: Stack, ChainA: "A", PosA: 5, NTA: 'U', ChainB: "Z", PosB: 1,
			NTB: 'A', Extra1: "upward"},
	}
	s := fromEntry(t, twoChains(), Options{Annotator: anns})

	all, err := s.Interactions(All)
	if err != nil {
		t.Fatal(err)
	}
	want := []Interaction{
		{Pair2D, 0, 9, "WWcis"},
		{Pair3D, 3, 7, "SHtrans"},
		{Stack, 1, 2, "upward"},
	}
	if len(all) != len(want) {
		t.Fatalf("Expected %v but got %v.", want, all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("Expected %v but got %v.", want, all)
		}
	}

	counts := map[string]int{
		"PAIR": 2, "PAIR_2D": 1, "PAIR_3D": 1, "STACK": 1, "ALL": 3,
	}
	for kind, n := range counts {
		got, err := s.Interactions(kind)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != n {
			t.Errorf("Expected %d interactions of kind %s but got %d.",
				n, kind, len(got))
		}
	}
	if _, err := s.Interactions("HELIX"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Expected ErrUnknownKind, got %v.", err)
	}
}

func TestInteractionsOutsideIndex(t *testing.T) {
	anns := fakeAnnotator{
		{Kind: Pair2D, ChainA: "A", PosA: 1, ChainB: "B", PosB: 14,
			Extra1: "W", Extra2: "W", Extra3: "cis"},
		{Kind: Pair2D, ChainA: "A", PosA: 2, ChainB: "B", PosB: 13,
			Extra1: "W", Extra2: "W", Extra3: "cis"},
	}
	s := fromEntry(t, twoChains(),
		Options{Annotator: anns, Index: writeIndex(t, "A:2:4,B:10:4")})
	all, _ := s.Interactions(All)
	if len(all) != 1 {
		t.Fatalf("Interactions outside the index must be dropped, got %v.", all)
	}
	if all[0].A != 0 || all[0].B != 7 {
		t.Fatalf("Expected ranks (0, 7), got %v.", all[0])
	}
}

func TestAnnotatorError(t *testing.T) {
	_, err := FromEntry(twoChains(),
		Options{Annotator: failingAnnotator{}, Logger: quiet})
	if err == nil {
		t.Fatalf("Expected the annotator error to be returned.")
	}
}

func TestRadiusOfGyration(t *testing.T) {
	entry := makeEntry(chainDef{"A", 1, "G"})
	atoms := entry.Models[0].Chains[0].Residues[0].Atoms
	atoms[0].Coords = structure.Coords{X: -1}
	atoms[1].Coords = structure.Coords{X: 1}

	s := fromEntry(t, entry, Options{})
	if rg := s.RadiusOfGyration(); math.Abs(rg-1) > 1e-9 {
		t.Fatalf("Expected a radius of gyration of 1, got %f.", rg)
	}
	empty := &Structure{}
	if rg := empty.RadiusOfGyration(); rg != 0 {
		t.Fatalf("Expected 0 for an empty structure, got %f.", rg)
	}
}

func TestNucleotideCode(t *testing.T) {
	tests := map[string]byte{
		"A": 'A', " G ": 'G', "RU": 'U', "DC": 'C', "GUA": 'G', "ura": 'U',
		"HOH": 'X', "PSU": 'X',
	}
	for name, want := range tests {
		if got := NucleotideCode(name); got != want {
			t.Errorf("NucleotideCode(%q) = %c, expected %c", name, got, want)
		}
	}
}
