package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sync"

	"github.com/clementbernardd/RNA-assessment/cmd/util"
	"github.com/clementbernardd/RNA-assessment/normalize"
)

var (
	flagOutDir = ""
	flagQuiet  = false
)

func init() {
	flag.StringVar(&flagOutDir, "out-dir", flagOutDir,
		"When set, every input file is normalized into this directory\n"+
			"under its own base name.")
	flag.BoolVar(&flagQuiet, "quiet", flagQuiet,
		"When set, errors and warnings for individual lines are not shown.")

	util.FlagUse("cpu", "verbose", "residues", "atoms")
	util.FlagParse("(in-pdb out-pdb) | (-out-dir dir in-pdb [in-pdb ...])",
		"Rewrites the coordinate records of PDB files in a strict layout\n"+
			"with normalized residue and atom names. No output file is\n"+
			"written for an input with errors.\n")
	if len(flagOutDir) == 0 {
		util.AssertNArg(2)
	} else {
		util.AssertLeastNArg(1)
	}
}

func main() {
	norm := normalize.New(util.FlagResidues, util.FlagAtoms)
	if flagQuiet {
		norm.Logger = log.New(io.Discard, "", 0)
	}

	if len(flagOutDir) == 0 {
		res, err := norm.ParseFile(util.Arg(0), util.Arg(1))
		util.Assert(err)
		if !res.OK() {
			util.Fatalf("%d errors found in '%s'. Nothing written.",
				len(res.Errors), util.Arg(0))
		}
		return
	}

	util.Assert(os.MkdirAll(flagOutDir, 0755),
		"Could not create directory '%s'", flagOutDir)

	files := flag.Args()
	progress := util.NewProgress(len(files))
	jobs := make(chan string, 100)
	wg := new(sync.WaitGroup)
	for i := 0; i < max(1, util.FlagCpu); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for in := range jobs {
				progress.JobDone(normalizeTo(norm, in))
			}
		}()
	}
	for _, in := range files {
		jobs <- in
	}
	close(jobs)
	wg.Wait()
	progress.Close()
}

func normalizeTo(norm *normalize.Normalizer, in string) error {
	out := path.Join(flagOutDir, path.Base(in))
	res, err := norm.ParseFile(in, out)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("%d errors found in '%s'. Nothing written.",
			len(res.Errors), in)
	}
	return nil
}
