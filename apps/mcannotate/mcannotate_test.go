package mcannotate

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

const sampleOutput = `Residue conformations -------------------------------------------
A1 : G C3p_endo anti
A2 : G C3p_endo anti
A3 : C C3p_endo anti
'1'-2 : A C2p_endo syn
B20 : C C3p_endo anti
Adjacent stackings ----------------------------------------------
A1-A2 : adjacent_5p upward
A2-A3 : adjacent_5p inward pairing
A3-'1'-2 : adjacent_5p
Non-Adjacent stackings ------------------------------------------
A3-B20 : outward
Number of stackings = 3
Number of adjacent stackings = 2
Number of non adjacent stackings = 1
Base-pairs ------------------------------------------------------
A1-B20 : G-C Ww/Ww pairing antiparallel cis XIX
A2-A3 : G-C Ww/Ww pairing parallel trans
A3-'1'-2 : C-A Bs/Hh pairing antiparallel cis
A2.B-B20 : G-A O2'/C8 pairing cis
A1-A3 : G-C O1P/Ww
A2-B20 : G-U Ww/Ww pairing
`

func init() {
	Logger = log.New(io.Discard, "", 0)
}

func TestParse(t *testing.T) {
	anns, err := Parse(strings.NewReader(sampleOutput))
	if err != nil {
		t.Fatal(err)
	}
	want := []rnastruct.Annotation{
		{Kind: rnastruct.Stack, ChainA: "A", PosA: 1, NTA: 'G',
			ChainB: "A", PosB: 2, NTB: 'G', Extra1: "upward"},
		{Kind: rnastruct.Stack, ChainA: "A", PosA: 2, NTA: 'G',
			ChainB: "A", PosB: 3, NTB: 'C', Extra1: "inward"},
		{Kind: rnastruct.Stack, ChainA: "A", PosA: 3, NTA: 'C',
			ChainB: "B", PosB: 20, NTB: 'C', Extra1: "outward"},
		{Kind: rnastruct.Pair2D, ChainA: "A", PosA: 1, NTA: 'G',
			ChainB: "B", PosB: 20, NTB: 'C',
			Extra1: "W", Extra2: "W", Extra3: "cis"},
		{Kind: rnastruct.Pair3D, ChainA: "A", PosA: 2, NTA: 'G',
			ChainB: "A", PosB: 3, NTB: 'C',
			Extra1: "W", Extra2: "W", Extra3: "trans"},
		{Kind: rnastruct.Pair3D, ChainA: "A", PosA: 3, NTA: 'C',
			ChainB: "1", PosB: -2, NTB: 'A',
			Extra1: "S", Extra2: "H", Extra3: "cis"},
	}
	if len(anns) != len(want) {
		t.Fatalf("Expected %d annotations but got %d:\n%v",
			len(want), len(anns), anns)
	}
	for i := range want {
		if anns[i] != want[i] {
			t.Fatalf("Annotation %d: expected\n%+v\nbut got\n%+v",
				i, want[i], anns[i])
		}
	}
}

func TestParseInsertionCode(t *testing.T) {
	out := `Residue conformations -------------------------------------------
A1 : G C3p_endo anti
A1.B : A C3p_endo anti
A2 : C C3p_endo anti
Adjacent stackings ----------------------------------------------
A1-A1.B : adjacent_5p upward
A1-A2 : adjacent_5p upward
Base-pairs ------------------------------------------------------
A1.B-A2 : A-C Ww/Ww pairing antiparallel cis
A1-A2 : G-C Ww/Ww pairing antiparallel cis
`
	buf := new(bytes.Buffer)
	Logger = log.New(buf, "", 0)
	defer func() { Logger = log.New(io.Discard, "", 0) }()

	anns, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(anns) != 2 {
		t.Fatalf("Expected 2 annotations but got %d:\n%v", len(anns), anns)
	}
	for _, ann := range anns {
		if ann.PosA != 1 || ann.PosB != 2 || ann.NTA != 'G' {
			t.Fatalf("Unexpected annotation %+v", ann)
		}
	}
	if n := strings.Count(buf.String(), "insertion code"); n != 2 {
		t.Fatalf("Expected 2 warnings but got %d:\n%s", n, buf)
	}
}

func TestEdge(t *testing.T) {
	tests := map[string]string{
		"Ww": "W", "Hh": "H", "Ss": "S", "W": "W", "Bs": "S", "Bh": "H",
		"O2'": "S", "C8": "H", "O1P": "", "": "",
	}
	for code, want := range tests {
		got, ok := edge(code)
		if got != want || ok != (len(want) > 0) {
			t.Errorf("edge(%q) = (%q, %v), expected %q", code, got, ok, want)
		}
	}
}

func TestAnnotate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	dir := t.TempDir()
	out := filepath.Join(dir, "output")
	if err := os.WriteFile(out, []byte(sampleOutput), 0644); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "MC-Annotate")
	body := "#!/bin/sh\ncat " + out + "\n"
	if err := os.WriteFile(script, []byte(body), 0755); err != nil {
		t.Fatal(err)
	}

	anns, err := Config{Exec: script}.Annotate("ignored.pdb")
	if err != nil {
		t.Fatal(err)
	}
	if len(anns) != 6 {
		t.Fatalf("Expected 6 annotations but got %d.", len(anns))
	}

	var annotator rnastruct.Annotator = Config{Exec: filepath.Join(dir, "none")}
	if _, err := annotator.Annotate("ignored.pdb"); err == nil {
		t.Fatalf("Expected an error for a missing executable.")
	}
}
