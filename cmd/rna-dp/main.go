package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/clementbernardd/RNA-assessment/cmd/util"
	"github.com/clementbernardd/RNA-assessment/compare"
)

var (
	flagRefIndex = ""
	flagCmpIndex = ""
	flagPython   = compare.DPDefault.Python
	flagDryRun   = false
)

func init() {
	flag.StringVar(&flagRefIndex, "ref-index", flagRefIndex,
		"An index file selecting the residues of the reference structure.")
	flag.StringVar(&flagCmpIndex, "cmp-index", flagCmpIndex,
		"An index file selecting the residues of the compared structure.")
	flag.StringVar(&flagPython, "python", flagPython,
		"The python interpreter used to run the DP generator.")
	flag.BoolVar(&flagDryRun, "dry-run", flagDryRun,
		"When set, the configuration is written to stdout and the\n"+
			"generator is not run.")

	util.FlagUse("verbose")
	util.FlagParse("ref-pdb cmp-pdb template dp-script out-dir",
		"Builds the configuration of the deformation profile generator\n"+
			"for two structures and runs the generator on it.\n")
	util.AssertNArg(5)
}

func main() {
	ref := util.Structure(util.Arg(0), flagRefIndex)
	cmp := util.Structure(util.Arg(1), flagCmpIndex)

	template, err := os.ReadFile(util.Arg(2))
	util.Assert(err, "Could not read template '%s'", util.Arg(2))

	outDir := util.Arg(4)
	if flagDryRun {
		fmt.Print(compare.DPConfig(ref, cmp, string(template), outDir))
		return
	}

	dp := compare.DPRunner{
		Python:  flagPython,
		Script:  util.Arg(3),
		Verbose: util.FlagVerbose,
	}
	util.Assert(dp.Run(ref, cmp, string(template), outDir),
		"Could not build the deformation profile of '%s'", util.Arg(1))
	util.Verbosef("Configuration written to '%s.cfg'.\n", cmp.Path)
}
