package compare

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/cmd"

	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// DPConfig returns the configuration of the DP (deformation profile)
// generator for comparing trg against the reference src: the two models,
// their alignment runs and the output directory, followed by template.
func DPConfig(src, trg *rnastruct.Structure, template, outDir string) string {
	aligns := Alignments(src, trg)
	alignStrs := make([]string, len(aligns))
	for i, a := range aligns {
		alignStrs[i] = a.String()
	}

	var b strings.Builder
	b.WriteString("matrix=True\n")
	b.WriteString("quiet_err = True\n")
	fmt.Fprintf(&b, "out_dir = '%s'\n", outDir)
	fmt.Fprintf(&b, "ref_model = ('%s', 0)\n", src.Path)
	fmt.Fprintf(&b, "cmp_model = [('%s', 0)]\n", trg.Path)
	fmt.Fprintf(&b, "aligns = [%s]\n", strings.Join(alignStrs, ", "))
	b.WriteString(template)
	return b.String()
}

// DPRunner runs the DP generator script.
type DPRunner struct {
	Python string
	Script string

	// When true, the command is echoed and the script's stderr is mapped to
	// the current processes' stderr.
	Verbose bool
}

// DPDefault runs dp.py from the current directory.
var DPDefault = DPRunner{
	Python:  "python",
	Script:  "dp.py",
	Verbose: false,
}

// Run writes the DP configuration (see DPConfig) next to the trg file, with
// a ".cfg" suffix, and runs the generator on it. The generator output is
// written next to the trg file with a ".log" suffix.
func (dp DPRunner) Run(src, trg *rnastruct.Structure, template, outDir string) error {
	cfgPath, logPath := trg.Path+".cfg", trg.Path+".log"
	cfg := DPConfig(src, trg, template, outDir)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		return err
	}

	logFile, err := os.Create(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	c := cmd.New(dp.Python, dp.Script, "-c", cfgPath)
	c.Cmd.Stdout = logFile
	if dp.Verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return fmt.Errorf("Could not run the DP generator %s: %s", dp.Script, err)
	}
	return nil
}
