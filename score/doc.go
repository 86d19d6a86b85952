/*
Package score assesses a predicted RNA structure against its native
structure with the scores of package compare: RMSD, p-value, INF over all
interactions, canonical pairs, non canonical pairs and stackings, and the
deformation index.

A typical use:

	a, err := score.Load("pred.pdb", "native.pdb", score.Options{
		Annotator: mcannotate.DefaultConfig,
	})
	if err != nil {
		log.Fatal(err)
	}
	scores, err := a.All()
*/
package score
