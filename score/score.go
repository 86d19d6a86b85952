package score

import (
	"log"
	"runtime"
	"sync"

	"github.com/clementbernardd/RNA-assessment/compare"
	"github.com/clementbernardd/RNA-assessment/rnastruct"
)

// Options controls how the two structures are loaded.
type Options struct {
	// Index specifications for each structure. See rnastruct.ParseIndex.
	PredIndex   string
	NativeIndex string

	// Annotator provides the interactions of both structures. It is
	// typically mcannotate.DefaultConfig. When nil, neither structure has
	// interactions and every INF is -1.
	Annotator rnastruct.Annotator

	// Logger receives warnings while loading. When nil, they are written to
	// stderr.
	Logger *log.Logger
}

// Assessment is a predicted structure along with the native structure it is
// judged against. Every score compares Pred (the source) against Native (the
// target), so fitted coordinates are those of the native moved onto the
// prediction.
type Assessment struct {
	Pred   *rnastruct.Structure
	Native *rnastruct.Structure
}

// Load reads and annotates the predicted and native structures.
func Load(pred, native string, opts Options) (*Assessment, error) {
	nativeStruct, err := rnastruct.Load(native, rnastruct.Options{
		Index:     opts.NativeIndex,
		Annotator: opts.Annotator,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	predStruct, err := rnastruct.Load(pred, rnastruct.Options{
		Index:     opts.PredIndex,
		Annotator: opts.Annotator,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return &Assessment{Pred: predStruct, Native: nativeStruct}, nil
}

// RMSD returns the all-atom RMSD after superposition.
func (a *Assessment) RMSD() (float64, error) {
	return compare.RMSD(a.Pred, a.Native, "")
}

// INFAll returns the INF over every pair and stacking.
func (a *Assessment) INFAll() (float64, error) {
	return compare.INF(a.Pred, a.Native, rnastruct.All)
}

// INFWC returns the INF over canonical (Watson-Crick and wobble) pairs.
func (a *Assessment) INFWC() (float64, error) {
	return compare.INF(a.Pred, a.Native, string(rnastruct.Pair2D))
}

// INFNWC returns the INF over non canonical pairs.
func (a *Assessment) INFNWC() (float64, error) {
	return compare.INF(a.Pred, a.Native, string(rnastruct.Pair3D))
}

// INFStack returns the INF over stackings.
func (a *Assessment) INFStack() (float64, error) {
	return compare.INF(a.Pred, a.Native, string(rnastruct.Stack))
}

// PValue returns the p-value of the RMSD, using the PValueMinus parameters
// and the length of the native sequence.
func (a *Assessment) PValue() (float64, error) {
	rms, err := a.RMSD()
	if err != nil {
		return 0, err
	}
	return a.pvalue(rms)
}

func (a *Assessment) pvalue(rms float64) (float64, error) {
	return compare.PValue(rms, len(a.Native.RawSequence()), compare.PValueMinus)
}

// DI returns the deformation index.
func (a *Assessment) DI() (float64, error) {
	return compare.DI(a.Pred, a.Native)
}

// Scores holds every score of an assessment. The JSON names are the ones
// used in reports.
type Scores struct {
	RMSD     float64 `json:"RMSD"`
	PValue   float64 `json:"P-VALUE"`
	INFAll   float64 `json:"INF_ALL"`
	INFWC    float64 `json:"INF_WC"`
	INFNWC   float64 `json:"INF_NWC"`
	INFStack float64 `json:"INF_STACK"`
	DI       float64 `json:"DI"`
}

// Metric is a named score.
type Metric struct {
	Name  string
	Value float64
}

// Metrics returns the scores in report order.
func (s Scores) Metrics() []Metric {
	return []Metric{
		{"RMSD", s.RMSD},
		{"P-VALUE", s.PValue},
		{"INF_ALL", s.INFAll},
		{"INF_WC", s.INFWC},
		{"INF_NWC", s.INFNWC},
		{"INF_STACK", s.INFStack},
		{"DI", s.DI},
	}
}

// All computes every score. The RMSD and INF over all interactions are only
// computed once.
func (a *Assessment) All() (Scores, error) {
	var s Scores
	var err error
	if s.RMSD, err = a.RMSD(); err != nil {
		return Scores{}, err
	}
	if s.INFAll, err = a.INFAll(); err != nil {
		return Scores{}, err
	}
	if s.INFWC, err = a.INFWC(); err != nil {
		return Scores{}, err
	}
	if s.INFNWC, err = a.INFNWC(); err != nil {
		return Scores{}, err
	}
	if s.INFStack, err = a.INFStack(); err != nil {
		return Scores{}, err
	}
	if s.PValue, err = a.pvalue(s.RMSD); err != nil {
		return Scores{}, err
	}
	s.DI = s.RMSD / s.INFAll
	return s, nil
}

// AllParallel computes the same scores as All, running the superposition
// and each INF on its own goroutine. Structures are never modified by a
// comparison, so this is safe.
//
// At most GOMAXPROCS comparisons run at the same time.
func (a *Assessment) AllParallel() (Scores, error) {
	var s Scores
	jobs := []struct {
		dst *float64
		run func() (float64, error)
	}{
		{&s.RMSD, a.RMSD},
		{&s.INFAll, a.INFAll},
		{&s.INFWC, a.INFWC},
		{&s.INFNWC, a.INFNWC},
		{&s.INFStack, a.INFStack},
	}

	queue := make(chan int, len(jobs))
	errs := make([]error, len(jobs))
	wg := new(sync.WaitGroup)
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range queue {
				*jobs[job].dst, errs[job] = jobs[job].run()
			}
		}()
	}
	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return Scores{}, err
		}
	}

	var err error
	if s.PValue, err = a.pvalue(s.RMSD); err != nil {
		return Scores{}, err
	}
	s.DI = s.RMSD / s.INFAll
	return s, nil
}

// RunAll assesses every prediction against the same native structure, in
// parallel. The order and length of both returned slices is the order and
// length of preds: for each i, either scores[i] is valid or errs[i] is not
// nil. One failed prediction does not stop the others.
//
// The native structure is loaded once. opts.PredIndex applies to every
// prediction.
func RunAll(native string, preds []string, opts Options) ([]Scores, []error) {
	scores := make([]Scores, len(preds))
	errs := make([]error, len(preds))

	nativeStruct, err := rnastruct.Load(native, rnastruct.Options{
		Index:     opts.NativeIndex,
		Annotator: opts.Annotator,
		Logger:    opts.Logger,
	})
	if err != nil {
		for i := range errs {
			errs[i] = err
		}
		return scores, errs
	}

	jobs := make(chan int, 100)
	wg := new(sync.WaitGroup)
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for job := range jobs {
				pred, err := rnastruct.Load(preds[job], rnastruct.Options{
					Index:     opts.PredIndex,
					Annotator: opts.Annotator,
					Logger:    opts.Logger,
				})
				if err != nil {
					errs[job] = err
					continue
				}
				a := &Assessment{Pred: pred, Native: nativeStruct}
				scores[job], errs[job] = a.All()
			}
		}()
	}
	for i := range preds {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return scores, errs
}
