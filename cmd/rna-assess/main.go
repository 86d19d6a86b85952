package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/clementbernardd/RNA-assessment/apps/mcannotate"
	"github.com/clementbernardd/RNA-assessment/apps/rnatools"
	"github.com/clementbernardd/RNA-assessment/cmd/util"
	"github.com/clementbernardd/RNA-assessment/compare"
	"github.com/clementbernardd/RNA-assessment/score"
)

var (
	flagJSON        = false
	flagAnnotate    = true
	flagPredIndex   = ""
	flagNativeIndex = ""
	flagPredList    = ""
	flagJava        = "java"
	flagMCQJar      = ""
	flagGDTJar      = ""
	flagVARNA       = ""
)

func init() {
	flag.BoolVar(&flagJSON, "json", flagJSON,
		"When set, scores are written as JSON.")
	flag.BoolVar(&flagAnnotate, "annotate", flagAnnotate,
		"When false, MC-Annotate is not run and every INF is -1.")
	flag.StringVar(&flagPredIndex, "pred-index", flagPredIndex,
		"An index file selecting the residues of the prediction.")
	flag.StringVar(&flagNativeIndex, "native-index", flagNativeIndex,
		"An index file selecting the residues of the native structure.")
	flag.StringVar(&flagPredList, "pred-list", flagPredList,
		"A file with one prediction per line, assessed in addition to\n"+
			"any prediction given on the command line.")
	flag.StringVar(&flagJava, "java", flagJava,
		"The java executable used by -mcq-jar and -gdt-jar.")
	flag.StringVar(&flagMCQJar, "mcq-jar", flagMCQJar,
		"When set, the MCQ is also reported using this client jar.")
	flag.StringVar(&flagGDTJar, "gdt-jar", flagGDTJar,
		"When set, the GDT is also reported using this jar.")
	flag.StringVar(&flagVARNA, "varna", flagVARNA,
		"When set to a VARNA layout algorithm (e.g. 'radiate'), the VARNA\n"+
			"parameters drawing the pairs of the prediction are reported.\n"+
			"Only used when a single prediction is assessed.")

	util.FlagUse("cpu", "verbose", "mc-annotate")
	util.FlagParse("native-pdb [pred-pdb ...]",
		"Scores each predicted structure against the native structure.\n")
	util.AssertLeastNArg(1)
}

// report is the assessment of one prediction.
type report struct {
	Pred   string
	Scores score.Scores
	MCQ    *float64
	GDT    *float64
	VARNA  map[string]string
	Error  string
}

// jsonValue returns the report keyed by score name. Scores that are not
// finite, such as a DI divided by an INF of 0, are null.
func (r report) jsonValue() map[string]interface{} {
	m := map[string]interface{}{"PRED": r.Pred}
	if len(r.Error) > 0 {
		m["ERROR"] = r.Error
		return m
	}
	for _, metric := range r.Scores.Metrics() {
		m[metric.Name] = finite(metric.Value)
	}
	if r.MCQ != nil {
		m["MCQ"] = finite(*r.MCQ)
	}
	if r.GDT != nil {
		m["GDT"] = finite(*r.GDT)
	}
	if r.VARNA != nil {
		m["VARNA"] = r.VARNA
	}
	return m
}

func finite(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

func main() {
	native := util.Arg(0)
	preds := flag.Args()[1:]
	if len(flagPredList) > 0 {
		f := util.OpenFile(flagPredList)
		preds = append(preds, util.ReadLines(f)...)
		f.Close()
	}
	if len(preds) == 0 {
		util.Fatalf("No prediction to assess.")
	}

	opts := score.Options{
		PredIndex:   flagPredIndex,
		NativeIndex: flagNativeIndex,
	}
	if flagAnnotate {
		opts.Annotator = mcannotate.DefaultConfig
	}

	var reports []report
	if len(preds) == 1 {
		reports = []report{assessOne(native, preds[0], opts)}
	} else {
		reports = assessAll(native, preds, opts)
	}
	for i := range reports {
		external(native, &reports[i])
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		values := make([]map[string]interface{}, len(reports))
		for i, r := range reports {
			values[i] = r.jsonValue()
		}
		if len(values) == 1 {
			util.Assert(enc.Encode(values[0]), "Could not write JSON")
		} else {
			util.Assert(enc.Encode(values), "Could not write JSON")
		}
	} else {
		for _, r := range reports {
			printReport(r, len(reports) > 1)
		}
	}
	for _, r := range reports {
		if len(r.Error) > 0 {
			os.Exit(1)
		}
	}
}

// assessOne scores a single prediction, computing the scores in parallel.
func assessOne(native, pred string, opts score.Options) report {
	r := report{Pred: pred}
	a, err := score.Load(pred, native, opts)
	if err != nil {
		r.Error = err.Error()
		util.Warnf("%s", err)
		return r
	}
	util.Verbosef("Prediction: %s\nNative: %s\n", a.Pred, a.Native)
	if r.Scores, err = a.AllParallel(); err != nil {
		r.Error = err.Error()
		util.Warnf("%s", err)
		return r
	}
	if len(flagVARNA) > 0 {
		data, err := compare.VARNA(a.Pred, a.Native, flagVARNA)
		util.Assert(err)
		r.VARNA = data.Params()
	}
	return r
}

// assessAll scores many predictions, loading the native structure once.
func assessAll(native string, preds []string, opts score.Options) []report {
	scores, errs := score.RunAll(native, preds, opts)

	progress := util.NewProgress(len(preds))
	reports := make([]report, len(preds))
	for i := range preds {
		reports[i] = report{Pred: preds[i], Scores: scores[i]}
		if errs[i] != nil {
			reports[i].Error = errs[i].Error()
			progress.JobDone(fmt.Errorf("Could not assess '%s': %s",
				preds[i], errs[i]))
		} else {
			progress.JobDone(nil)
		}
	}
	progress.Close()
	return reports
}

// external adds the scores of the external tools requested on the command
// line. A tool that fails is reported as 0 with a warning.
func external(native string, r *report) {
	if len(r.Error) > 0 {
		return
	}
	if len(flagMCQJar) > 0 {
		conf := rnatools.MCQConfig{
			Java: flagJava, Jar: flagMCQJar, Verbose: util.FlagVerbose,
		}
		r.MCQ = toolScore("MCQ", r.Pred, conf.Run(native, r.Pred))
	}
	if len(flagGDTJar) > 0 {
		conf := rnatools.GDTConfig{
			Java: flagJava, Jar: flagGDTJar, Verbose: util.FlagVerbose,
		}
		r.GDT = toolScore("GDT", r.Pred, conf.Run(native, r.Pred))
	}
}

func toolScore(name, pred string, res rnatools.Result) *float64 {
	if res.Degraded {
		util.Warnf("WARNING: %s of '%s' reported as 0: %s", name, pred, res.Reason)
	}
	v := res.Value
	return &v
}

func printReport(r report, header bool) {
	if header {
		fmt.Printf("%s\n", r.Pred)
	}
	if len(r.Error) > 0 {
		fmt.Printf("ERROR : %s\n", r.Error)
		return
	}
	for _, m := range r.Scores.Metrics() {
		fmt.Printf("%s : %s\n", m.Name, value(m.Value))
	}
	if r.MCQ != nil {
		fmt.Printf("MCQ : %s\n", value(*r.MCQ))
	}
	if r.GDT != nil {
		fmt.Printf("GDT : %s\n", value(*r.GDT))
	}
	for _, name := range []string{
		"sequenceDBN", "structureDBN", "auxBPs", "algorithm",
	} {
		if v, ok := r.VARNA[name]; ok {
			fmt.Printf("%s : %s\n", name, v)
		}
	}
	if header {
		fmt.Println()
	}
}

// value formats a score, showing undefined INF values as they are.
func value(v float64) string {
	if v == compare.Undefined {
		return "-1"
	}
	return fmt.Sprintf("%.3f", v)
}
