/*
rna-rmsd computes the RMSD between two RNA structures read from PDB or mmCIF
files, after superposing the second (compared) structure onto the first
(reference) structure.

Residues are paired by their order in each file, or by the order given in
index files (see -ref-index and -cmp-index). Both structures must have the
same number of residues. Within a pair of residues, atoms are paired by
name; an atom of the reference residue missing from the compared residue is
left out with a warning.

A PDB file may either be plain text or compressed using the Lempel-Ziv coding
(i.e., gzip). If the PDB file is gzipped, it must end with a '.gz' extension.

Usage:
	rna-rmsd [flags] ref-pdb cmp-pdb [fit-out-pdb]

When fit-out-pdb is given, every model of the compared structure is moved by
the superposition and written to it.

Details

The superposition is computed with the Kabsch algorithm, which finds the
rotation minimizing the RMSD between two paired sets of points from the SVD
of their covariance matrix.
*/
package main
