/*
Package rnastruct loads RNA structures for comparison.

A Structure is built from the first model of a coordinate file. Its residues
are kept in file order, and an optional index specification selects and
orders the residues that take part in comparisons (the active sequence).
Interactions between residues (base pairs and stackings) are provided by an
Annotator, such as the MC-Annotate wrapper in apps/mcannotate, and are
stored in terms of active ranks so that two structures with different
numbering can be compared directly.

Residues are identified by chain and residue number. Insertion codes are
not part of the identity.
*/
package rnastruct
