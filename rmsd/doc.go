/*
Package rmsd implements the Kabsch algorithm for the least-squares rigid
superposition of two paired sets of points, as described in detail here:
http://cnx.org/content/m11608/latest/

Fit returns the optimal rotation and translation together with the root mean
square deviation after superposition. The transformation can then be applied
to any set of atoms, typically a copy of the whole structure from which the
moving points were taken.
*/
package rmsd
