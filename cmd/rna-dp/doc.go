/*
rna-dp prepares and runs the deformation profile (DP) generator for a
compared RNA structure against a reference structure.

The configuration names both structures, the output directory and the runs
of residues aligned between the two structures, followed by the contents of
the template file. It is written next to cmp-pdb with a '.cfg' suffix, and
the generator is run as

	python dp-script -c cmp-pdb.cfg

with its output written next to cmp-pdb with a '.log' suffix.

Usage:
	rna-dp [flags] ref-pdb cmp-pdb template dp-script out-dir

Use -dry-run to print the configuration without running anything.
*/
package main
