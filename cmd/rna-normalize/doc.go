/*
rna-normalize rewrites the coordinate records of RNA PDB files into a strict
fixed-column layout, so that structures from different prediction tools can
be compared with each other.

Residue and atom names are mapped through two name tables. Names mapped to
'-' are dropped, which is how water, ions and hydrogens are removed by the
built-in tables. Any residue or atom name missing from the tables is an
error, as is an ATOM record in a file with neither MODEL nor chain
identifiers. Occupancy and temperature factors are always written as 1.00
and 0.00.

Every problem is reported with its line number, and no output is written
for a file with errors.

Usage:
	rna-normalize [flags] in-pdb out-pdb
	rna-normalize [flags] -out-dir dir in-pdb [in-pdb ...]

The flags are:
	-residues table
		A residue name table in lieu of the built-in one. Each line holds
		an input name and its replacement, separated by whitespace.
	-atoms table
		An atom name table in lieu of the built-in one.
	-out-dir dir
		Normalize every input file into dir, using up to -cpu files at a
		time.
	-quiet
		Do not show errors and warnings for individual lines.
	-verbose
		Show progress when normalizing many files.
*/
package main
