/*
Package pdb reads atomic coordinates from PDB and PDBx/mmCIF files and writes
them back out in PDB format.

An Entry is a list of models, each model a list of chains and each chain a
list of residues in document order. Only the coordinate records are read;
header, SEQRES, REMARK and connectivity records are ignored.

Anything that is an ATOM or HETATM record is kept, whether it belongs to a
nucleic acid, a protein or a ligand.
*/
package pdb
