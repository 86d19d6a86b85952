package compare

import (
	"fmt"
	"strings"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Colors of the base pairs drawn by VARNA.
const (
	MatchedColor   = "#00FF00"
	UnmatchedColor = "#FF0000"
)

var varnaEdges = map[byte]string{'W': "wc", 'S': "s", 'H': "h"}

// VARNAData holds the parameters for drawing the pairs of one structure with
// VARNA, colored by whether they are found in another structure.
type VARNAData struct {
	SequenceDBN  string
	StructureDBN string
	AuxBPs       string
	Algorithm    string
}

// Params returns the data keyed by VARNA parameter name.
func (d VARNAData) Params() map[string]string {
	return map[string]string{
		"sequenceDBN":  d.SequenceDBN,
		"structureDBN": d.StructureDBN,
		"auxBPs":       d.AuxBPs,
		"algorithm":    d.Algorithm,
	}
}

// VARNA draws every base pair of src on the sequence of src. Pairs also
// found in trg are MatchedColor, the others UnmatchedColor. The dot-bracket
// structure is left empty so that only the auxiliary pairs are drawn.
//
// Pairs whose extra information does not start with two edges are skipped.
func VARNA(src, trg *rnastruct.Structure, algorithm string) (VARNAData, error) {
	spairs, err := src.Interactions(rnastruct.Pair)
	if err != nil {
		return VARNAData{}, err
	}
	tpairs, err := trg.Interactions(rnastruct.Pair)
	if err != nil {
		return VARNAData{}, err
	}

	seq := src.RawSequence()
	bps := make([]string, 0, len(spairs))
	for _, p := range spairs {
		if len(p.Extra) < 2 {
			continue
		}
		edge5, ok5 := varnaEdges[p.Extra[0]]
		edge3, ok3 := varnaEdges[p.Extra[1]]
		if !ok5 || !ok3 {
			continue
		}
		color := UnmatchedColor
		if contains(tpairs, p) {
			color = MatchedColor
		}
		bps = append(bps, fmt.Sprintf(
			"(%d,%d):color=%s,edge5=%s,edge3=%s,stericity=%s",
			p.A+1, p.B+1, color, edge5, edge3, p.Extra[2:]))
	}
	return VARNAData{
		SequenceDBN:  seq,
		StructureDBN: strings.Repeat(".", len(seq)),
		AuxBPs:       strings.Join(bps, ";"),
		Algorithm:    algorithm,
	}, nil
}
