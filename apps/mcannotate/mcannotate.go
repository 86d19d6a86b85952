package mcannotate

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Logger receives warnings about interactions that cannot be used. It may
// be replaced, or set to a logger writing to io.Discard to silence them.
var Logger = log.New(os.Stderr, "", 0)

// Config locates the MC-Annotate executable.
type Config struct {
	Exec string

	// When true, the command is echoed and the 'MC-Annotate' stderr is
	// mapped to the current processes' stderr.
	Verbose bool
}

// DefaultConfig runs $MCANNOTATE_BIN, or 'MC-Annotate' from the PATH when
// that variable is not set.
var DefaultConfig = Config{
	Exec:    defaultExec(),
	Verbose: false,
}

func defaultExec() string {
	if exec := os.Getenv("MCANNOTATE_BIN"); len(exec) > 0 {
		return exec
	}
	return "MC-Annotate"
}

// Annotate runs MC-Annotate on the coordinate file at fpath and parses its
// output. Config satisfies rnastruct.Annotator.
func (conf Config) Annotate(fpath string) ([]rnastruct.Annotation, error) {
	stdout := new(bytes.Buffer)
	c := cmd.New(conf.Exec, fpath)
	c.Cmd.Stdout = stdout
	if conf.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf("Could not run %s on '%s': %s",
			conf.Exec, fpath, err)
	}
	return Parse(stdout)
}

type section int

const (
	sectionNone section = iota
	sectionResidues
	sectionStackings
	sectionPairs
)

var (
	// A residue is a chain (optionally quoted), a possibly negative number
	// and an optional insertion code: A12, '1'12, A-3, A12.B
	resPattern = `'?([A-Za-z0-9])'?(-?\d+)(?:\.([A-Za-z]))?`
	reResidue  = regexp.MustCompile(`^` + resPattern + `$`)
	reResPair  = regexp.MustCompile(`^` + resPattern + `-` + resPattern + `$`)
)

var topologies = map[string]bool{
	"upward": true, "downward": true, "inward": true, "outward": true,
}

// canonical holds the nucleotide pairs that form secondary structure when
// paired cis through both Watson-Crick edges.
var canonical = map[string]bool{
	"GC": true, "CG": true, "AU": true, "UA": true, "GU": true, "UG": true,
}

// Parse reads the output of MC-Annotate. Stackings are read from the
// "Adjacent stackings" and "Non-Adjacent stackings" sections and base pairs
// from the "Base-pairs" section. Nucleotides are taken from the "Residue
// conformations" section when it precedes the interactions.
//
// A base pair is a secondary structure pair (rnastruct.Pair2D) when both
// residues pair cis through their Watson-Crick edge and the nucleotides form
// a Watson-Crick or wobble pair. Any other pair is rnastruct.Pair3D.
// Stackings without a topology and pairs whose edges or orientation cannot
// be determined are skipped. Residues are identified by chain and number
// only, so interactions involving a residue with an insertion code are
// skipped with a warning.
func Parse(r io.Reader) ([]rnastruct.Annotation, error) {
	anns := make([]rnastruct.Annotation, 0)
	nts := make(map[string]byte)
	cur := sectionNone

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasSuffix(line, "---") {
			cur = sectionOf(line)
			continue
		}

		left, right, ok := strings.Cut(line, " : ")
		if !ok {
			continue
		}
		left = strings.TrimSpace(left)
		fields := strings.Fields(right)
		if (cur == sectionStackings || cur == sectionPairs) &&
			hasInsertionCode(left) {

			Logger.Printf("WARNING\tInteraction '%s' involves a residue "+
				"with an insertion code and is skipped", left)
			continue
		}
		switch cur {
		case sectionResidues:
			m := reResidue.FindStringSubmatch(left)
			if m != nil && len(m[3]) == 0 && len(fields) > 0 {
				nts[m[1]+":"+m[2]] = fields[0][0]
			}
		case sectionStackings:
			if ann, ok := parseStacking(left, fields); ok {
				ann.NTA = nts[ann.ChainA+":"+strconv.Itoa(ann.PosA)]
				ann.NTB = nts[ann.ChainB+":"+strconv.Itoa(ann.PosB)]
				anns = append(anns, ann)
			}
		case sectionPairs:
			if ann, ok := parsePair(left, fields); ok {
				anns = append(anns, ann)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return anns, nil
}

func sectionOf(header string) section {
	switch {
	case strings.HasPrefix(header, "Residue conformations"):
		return sectionResidues
	case strings.HasPrefix(header, "Adjacent stackings"),
		strings.HasPrefix(header, "Non-Adjacent stackings"):
		return sectionStackings
	case strings.HasPrefix(header, "Base-pairs"):
		return sectionPairs
	}
	return sectionNone
}

// hasInsertionCode reports whether either residue of "A12.B-A13" has an
// insertion code.
func hasInsertionCode(s string) bool {
	m := reResPair.FindStringSubmatch(s)
	return m != nil && (len(m[3]) > 0 || len(m[6]) > 0)
}

// parseResidues reads the two residues of an interaction, as in "A1-B20".
func parseResidues(s string) (ann rnastruct.Annotation, ok bool) {
	m := reResPair.FindStringSubmatch(s)
	if m == nil {
		return ann, false
	}
	ann.ChainA, ann.ChainB = m[1], m[4]
	ann.PosA, _ = strconv.Atoi(m[2])
	ann.PosB, _ = strconv.Atoi(m[5])
	return ann, true
}

// parseStacking reads "A1-A2 : adjacent_5p upward".
func parseStacking(left string, fields []string) (rnastruct.Annotation, bool) {
	ann, ok := parseResidues(left)
	if !ok {
		return ann, false
	}
	for _, f := range fields {
		if topologies[f] {
			ann.Kind = rnastruct.Stack
			ann.Extra1 = f
			return ann, true
		}
	}
	return ann, false
}

// parsePair reads "A1-B20 : G-C Ww/Ww pairing antiparallel cis XIX".
func parsePair(left string, fields []string) (rnastruct.Annotation, bool) {
	ann, ok := parseResidues(left)
	if !ok || len(fields) < 2 {
		return ann, false
	}
	nts := strings.Split(fields[0], "-")
	if len(nts) != 2 || len(nts[0]) == 0 || len(nts[1]) == 0 {
		return ann, false
	}
	ann.NTA, ann.NTB = nts[0][0], nts[1][0]

	edges := strings.Split(fields[1], "/")
	if len(edges) != 2 {
		return ann, false
	}
	if ann.Extra1, ok = edge(edges[0]); !ok {
		return ann, false
	}
	if ann.Extra2, ok = edge(edges[1]); !ok {
		return ann, false
	}
	for _, f := range fields[2:] {
		if f == "cis" || f == "trans" {
			ann.Extra3 = f
		}
	}
	if len(ann.Extra3) == 0 {
		return ann, false
	}

	ann.Kind = rnastruct.Pair3D
	if fields[1] == "Ww/Ww" && ann.Extra3 == "cis" &&
		canonical[string([]byte{ann.NTA, ann.NTB})] {

		ann.Kind = rnastruct.Pair2D
	}
	return ann, true
}

// edge reduces an MC-Annotate edge descriptor to one of the three base
// edges: W (Watson-Crick), H (Hoogsteen) or S (sugar).
// Bifurcated edges ("Bs", "Bh") use their second letter.
func edge(code string) (string, bool) {
	switch {
	case code == "O2'":
		return "S", true
	case code == "C8":
		return "H", true
	case len(code) >= 2 && code[0] == 'B':
		code = code[1:]
	}
	if len(code) == 0 {
		return "", false
	}
	switch e := strings.ToUpper(code[:1]); e {
	case "W", "H", "S":
		return e, true
	}
	return "", false
}
