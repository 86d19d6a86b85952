package compare

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// The two parameter sets for PValue, from Hajdin et al., RNA 16(7), 2010.
const (
	PValuePlus  = "+"
	PValueMinus = "-"
)

// ErrPValueMode is returned for a p-value mode other than PValuePlus and
// PValueMinus.
var ErrPValueMode = errors.New("Wrong p-value parameter, expected '+' or '-'")

// PValue returns the probability of observing an RMSD of at most rmsd for a
// structure of n residues, given the RMSD expected of a random structure of
// that size.
//
// The expected RMSD is a*n^0.41 - b, with (a, b) = (5.1, 15.8) for
// PValuePlus and (6.4, 12.7) for PValueMinus. The observed value is turned
// into a z-score with a standard deviation of 1.8.
func PValue(rmsd float64, n int, mode string) (float64, error) {
	var a, b float64
	switch mode {
	case PValuePlus:
		a, b = 5.1, 15.8
	case PValueMinus:
		a, b = 6.4, 12.7
	default:
		return 0, fmt.Errorf("%w (got '%s')", ErrPValueMode, mode)
	}
	expected := a*math.Pow(float64(n), 0.41) - b
	z := (rmsd - expected) / 1.8
	return distuv.UnitNormal.CDF(z), nil
}

// DI returns the deformation index of src and trg: their RMSD divided by
// their INF over all interactions. No fitted coordinates are written.
//
// The INF sentinel of -1 is not treated specially, so DI is negative when
// neither structure has interactions.
func DI(src, trg *rnastruct.Structure) (float64, error) {
	rms, err := RMSD(src, trg, "")
	if err != nil {
		return 0, err
	}
	inf, err := INF(src, trg, rnastruct.All)
	if err != nil {
		return 0, err
	}
	return rms / inf, nil
}
