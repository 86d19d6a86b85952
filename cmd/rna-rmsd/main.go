package main

import (
	"flag"
	"fmt"

	"github.com/clementbernardd/RNA-assessment/cmd/util"
	"github.com/clementbernardd/RNA-assessment/compare"
	"github.com/clementbernardd/RNA-assessment/pdb"
)

var (
	flagRefIndex = ""
	flagCmpIndex = ""
	flagAtomSet  = "all"
)

var atomSets = map[string][]string{
	"all":      compare.AllAtoms,
	"backbone": compare.BackboneAtoms,
	"base":     compare.BaseAtoms,
}

func init() {
	flag.StringVar(&flagRefIndex, "ref-index", flagRefIndex,
		"An index file selecting the residues of the reference structure.")
	flag.StringVar(&flagCmpIndex, "cmp-index", flagCmpIndex,
		"An index file selecting the residues of the compared structure.")
	flag.StringVar(&flagAtomSet, "atom-set", flagAtomSet,
		"The atoms used for superposition: 'all', 'backbone' or 'base'.")

	util.FlagUse("verbose")
	util.FlagParse("ref-pdb cmp-pdb [fit-out-pdb]",
		"Superposes the compared structure onto the reference structure\n"+
			"and prints the RMSD. When fit-out-pdb is given, the moved\n"+
			"coordinates of the compared structure are written to it.\n")
	util.AssertRangeNArg(2, 3)
}

func main() {
	names, ok := atomSets[flagAtomSet]
	if !ok {
		util.Fatalf("Unknown atom set '%s'.", flagAtomSet)
	}

	ref := util.Structure(util.Arg(0), flagRefIndex)
	cmp := util.Structure(util.Arg(1), flagCmpIndex)
	util.Verbosef("Reference: %s (radius of gyration %.3f)\n",
		ref, ref.RadiusOfGyration())
	util.Verbosef("Compared: %s (radius of gyration %.3f)\n",
		cmp, cmp.RadiusOfGyration())

	sup, err := compare.Fit(ref, cmp, names)
	util.Assert(err, "Could not superpose '%s' onto '%s'",
		util.Arg(1), util.Arg(0))

	if util.NArg() == 3 {
		fit := cmp.Entry.Copy()
		sup.ApplyEntry(fit)
		util.Assert(pdb.WriteFile(util.Arg(2), fit),
			"Could not write '%s'", util.Arg(2))
	}
	fmt.Printf("%.3f\n", sup.RMS)
}
