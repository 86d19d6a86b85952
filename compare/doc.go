/*
Package compare computes similarity scores between two RNA structures.

Every function takes a source and a target structure and treats both as
read-only. Residues are put in correspondence by active rank (see package
rnastruct), so the two structures may use different chains and numbering as
long as their active sequences line up.

The scores are:

	RMSD   atomic deviation after optimal superposition
	INF    interaction network fidelity over pairs and stackings
	PValue significance of an RMSD given the length of the structure
	DI     deformation index, RMSD / INF over all interactions

Alignments, VARNA and DPConfig produce input for external visualization
tools.
*/
package compare
