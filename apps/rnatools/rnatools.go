package rnatools

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/cmd"
)

// Result is the score reported by an external tool. When the tool could not
// be run or its output could not be read, Degraded is true, Value is 0 and
// Reason says what went wrong.
type Result struct {
	Value    float64
	Degraded bool
	Reason   string
}

func ok(v float64) Result {
	return Result{Value: v}
}

func degraded(format string, v ...interface{}) Result {
	return Result{Value: 0, Degraded: true, Reason: fmt.Sprintf(format, v...)}
}

func (r Result) String() string {
	if r.Degraded {
		return fmt.Sprintf("%f (degraded: %s)", r.Value, r.Reason)
	}
	return fmt.Sprintf("%f", r.Value)
}

// MCQConfig runs the MCQ (mean of circular quantities) web service client.
type MCQConfig struct {
	Java string
	Jar  string

	// When true, the command is echoed and the tool's stderr is mapped to
	// the current processes' stderr.
	Verbose bool
}

// MCQDefault expects the client jar in the current directory.
var MCQDefault = MCQConfig{
	Java:    "java",
	Jar:     "mcq.ws.client-0.0.1-SNAPSHOT-jar-with-dependencies.jar",
	Verbose: false,
}

const mcqMain = "pl.poznan.put.mcq.ws.client.Global"

// Run computes the MCQ of model against native. The score is the first
// number printed by the client.
func (conf MCQConfig) Run(native, model string) Result {
	out, err := run(conf.Verbose, conf.Java,
		"-cp", conf.Jar, mcqMain, "-m", model, "-t", native)
	if err != nil {
		return degraded("%s", err)
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return degraded("MCQ printed nothing")
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return degraded("Could not read MCQ output '%s': %s", fields[0], err)
	}
	return ok(v)
}

// GDTConfig runs the GDT (global distance test) jar.
type GDTConfig struct {
	Java string
	Jar  string

	// When true, the command is echoed and the tool's stderr is mapped to
	// the current processes' stderr.
	Verbose bool
}

// GDTDefault expects gdt.jar in the current directory.
var GDTDefault = GDTConfig{
	Java:    "java",
	Jar:     "gdt.jar",
	Verbose: false,
}

// Run computes the GDT of model against native. The score is the last comma
// separated column of the second line of output. A score of NaN is degraded.
func (conf GDTConfig) Run(native, model string) Result {
	out, err := run(conf.Verbose, conf.Java, "-jar", conf.Jar, native, model)
	if err != nil {
		return degraded("%s", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return degraded("GDT printed %d lines, expected at least 2", len(lines))
	}
	cols := strings.Split(lines[1], ",")
	last := strings.TrimSpace(cols[len(cols)-1])
	if last == "NaN" {
		return degraded("GDT is NaN")
	}
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return degraded("Could not read GDT output '%s': %s", last, err)
	}
	return ok(v)
}

// run executes a command and returns everything it wrote to stdout.
func run(verbose bool, name string, args ...string) (string, error) {
	stdout := new(bytes.Buffer)
	c := cmd.New(name, args...)
	c.Cmd.Stdout = stdout
	if verbose {
		fmt.Fprintf(os.Stderr, "\n%s\n", c)
		c.Cmd.Stderr = os.Stderr
	}
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("Could not run %s: %s", name, err)
	}
	return stdout.String(), nil
}
