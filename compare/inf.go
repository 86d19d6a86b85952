package compare

import (
	"fmt"
	"math"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Undefined is the INF reported when there are too few interactions to
// compute it.
const Undefined = -1.0

// Counts holds the outcome of matching the interactions of two structures.
type Counts struct {
	TP, FP, FN int
}

func (c Counts) String() string {
	return fmt.Sprintf("TP: %d, FP: %d, FN: %d", c.TP, c.FP, c.FN)
}

// INF returns the interaction network fidelity: the geometric mean of
// precision and recall. It is -1 when there are no true positives and
// either no false positives or no false negatives.
func (c Counts) INF() float64 {
	if c.TP == 0 && (c.FP == 0 || c.FN == 0) {
		return Undefined
	}
	ppv := float64(c.TP) / float64(c.TP+c.FP)
	sty := float64(c.TP) / float64(c.TP+c.FN)
	return math.Sqrt(ppv * sty)
}

// Confusion matches the interactions of the given kind (see
// (*rnastruct.Structure).Interactions) of src against those of trg. Two
// interactions match when their kinds, both ranks and extra information are
// equal.
//
// src interactions with a match are true positives, those without are
// false negatives. trg interactions without a match in src are false
// positives.
func Confusion(src, trg *rnastruct.Structure, kind string) (Counts, error) {
	sints, err := src.Interactions(kind)
	if err != nil {
		return Counts{}, err
	}
	tints, err := trg.Interactions(kind)
	if err != nil {
		return Counts{}, err
	}

	var c Counts
	for _, s := range sints {
		if contains(tints, s) {
			c.TP++
		} else {
			c.FN++
		}
	}
	for _, t := range tints {
		if !contains(sints, t) {
			c.FP++
		}
	}
	return c, nil
}

// INF computes the interaction network fidelity of src and trg over the
// interactions of the given kind. See Counts.INF for the -1 sentinel.
func INF(src, trg *rnastruct.Structure, kind string) (float64, error) {
	c, err := Confusion(src, trg, kind)
	if err != nil {
		return 0, err
	}
	return c.INF(), nil
}

func contains(inters []rnastruct.Interaction, inter rnastruct.Interaction) bool {
	for _, other := range inters {
		if other == inter {
			return true
		}
	}
	return false
}
