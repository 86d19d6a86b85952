package util

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"strings"

	"github.com/clementbernardd/RNA-assessment/apps/mcannotate"
	"github.com/clementbernardd/RNA-assessment/normalize"
)

var (
	FlagCpu = runtime.NumCPU()

	FlagVerbose = false

	FlagMCAnnotate = mcannotate.DefaultConfig.Exec

	flagResidues = ""
	FlagResidues normalize.Table

	flagAtoms = ""
	FlagAtoms normalize.Table
)

func init() {
	log.SetFlags(0)
}

type commonFlag struct {
	set, init func()
	use       bool
}

var commonFlags = map[string]*commonFlag{
	"cpu": {
		set: func() {
			flag.IntVar(&FlagCpu, "cpu", FlagCpu,
				"The max number of CPUs to use.")
		},
		init: func() {
			runtime.GOMAXPROCS(FlagCpu)
		},
	},
	"verbose": {
		set: func() {
			flag.BoolVar(&FlagVerbose, "verbose", FlagVerbose,
				"When set, progress and external commands are shown\n"+
					"on stderr.")
		},
		init: func() {
			mcannotate.DefaultConfig.Verbose = FlagVerbose
		},
	},
	"mc-annotate": {
		set: func() {
			flag.StringVar(&FlagMCAnnotate, "mc-annotate", FlagMCAnnotate,
				"The MC-Annotate executable used to find interactions.\n"+
					"Defaults to $MCANNOTATE_BIN when it is set.")
		},
		init: func() {
			mcannotate.DefaultConfig.Exec = FlagMCAnnotate
		},
	},
	"residues": {
		set: func() {
			flag.StringVar(&flagResidues, "residues", flagResidues,
				"A residue name table to use in lieu of the built-in one.")
		},
		init: func() {
			FlagResidues = tableOrDefault(flagResidues,
				normalize.DefaultResidues)
		},
	},
	"atoms": {
		set: func() {
			flag.StringVar(&flagAtoms, "atoms", flagAtoms,
				"An atom name table to use in lieu of the built-in one.")
		},
		init: func() {
			FlagAtoms = tableOrDefault(flagAtoms, normalize.DefaultAtoms)
		},
	},
}

func FlagUse(names ...string) {
	for _, name := range names {
		commonFlags[name].use = true
	}
}

// Arg just calls `flag.Arg`. It's included here to avoid
// an extra import to `flag` just to call Arg.
func Arg(i int) string {
	return flag.Arg(i)
}

// NArg just calls `flag.NArg`. It's included here to avoid
// an extra import to `flag` just to call NArg.
func NArg() int {
	return flag.NArg()
}

// FlagParse registers the common flags selected with FlagUse, parses the
// command line and applies the common flags. The usage message lists
// positional after the program name, then desc, then the flags of the
// program followed by the common flags.
func FlagParse(positional string, desc string) {
	for _, fl := range commonFlags {
		if fl.use {
			fl.set()
		}
	}

	flag.Usage = func() {
		log.Printf("Usage: %s [flags] %s\n\n",
			path.Base(os.Args[0]), positional)
		if len(desc) > 0 {
			log.Printf("%s\n", desc)
		}
		var own, common []*flag.Flag
		flag.VisitAll(func(fl *flag.Flag) {
			if _, ok := commonFlags[fl.Name]; ok {
				common = append(common, fl)
			} else {
				own = append(own, fl)
			}
		})
		printFlags(own)
		if len(common) > 0 {
			log.Printf("\nCommon flags:\n")
			printFlags(common)
		}
		os.Exit(1)
	}
	flag.Parse()

	for _, fl := range commonFlags {
		if fl.use && fl.init != nil {
			fl.init()
		}
	}
}

func printFlags(flags []*flag.Flag) {
	for _, fl := range flags {
		def := ""
		if len(fl.DefValue) > 0 {
			def = fmt.Sprintf(" (default: %s)", fl.DefValue)
		}
		log.Printf("-%s%s\n    %s\n", fl.Name, def,
			strings.Replace(fl.Usage, "\n", "\n    ", -1))
	}
}
