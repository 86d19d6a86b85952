/*
rna-assess scores predicted RNA structures against a native structure.

For each prediction, the following scores are reported:

	RMSD       all-atom RMSD after optimal superposition
	P-VALUE    significance of the RMSD given the length of the native
	INF_ALL    interaction network fidelity over pairs and stackings
	INF_WC     INF over canonical pairs
	INF_NWC    INF over non canonical pairs
	INF_STACK  INF over stackings
	DI         deformation index, RMSD / INF_ALL

An INF is -1 when there are too few interactions to compute it.

Interactions are found with MC-Annotate, which must be installed. Use
-mc-annotate or $MCANNOTATE_BIN to say where it is, or -annotate=false to
skip it. The MCQ and GDT scores are also reported when the jar of the
corresponding tool is given with -mcq-jar or -gdt-jar. A tool that fails is
reported as 0 with a warning.

Residues of the prediction and native structures are put in correspondence
by their order in the file. Use -pred-index and -native-index to select and
order residues with index files, where each entry is 'chain:start:count'.

Usage:
	rna-assess [flags] native-pdb [pred-pdb ...]

When more than one prediction is given, the native structure is only loaded
once and up to -cpu predictions are scored at the same time. A prediction
that cannot be scored does not stop the others, but the exit status is 1.
*/
package main
