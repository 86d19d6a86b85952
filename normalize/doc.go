/*
Package normalize rewrites the coordinate records of a PDB file into the
canonical form expected by downstream assessment tools.

Residue and atom names are translated through two name tables (see
ReadTable), missing chain identifiers are filled in, the occupancy is
forced to 1.00 and blank temperature factors and element symbols get
defaults. Every line is checked before a verdict is reached, so a single
pass reports all problems in a file. The normalized text should only be
used when the Result is OK.
*/
package normalize
