package rmsd

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"
	"gonum.org/v1/gonum/mat"

	"github.com/clementbernardd/RNA-assessment/pdb"
)

// Matrix3 represents a 3x3 matrix, in row-major order
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Matrix3 [9]float64

// Identity is the rotation that leaves every point in place.
var Identity = Matrix3{
	1, 0, 0,
	0, 1, 0,
	0, 0, 1,
}

// Superposition is the rigid body transformation that best maps a set of
// moving points onto a set of fixed points, along with the resulting RMSD.
//
// A point p is transformed as Rotation * p + Translation.
type Superposition struct {
	Rotation    Matrix3
	Translation structure.Coords
	RMS         float64
}

// Fit computes the least-squares superposition of moving onto fixed. The two
// sets must have the same, non-zero, length and fixed[i] must correspond to
// moving[i].
//
// A brief, high-level overview:
//
// Center both sets by subtracting their centroids.
//
// Compute the covariance matrix H = Q(P^T), where Q holds the moving points
// and P the fixed points as 3xN matrices.
//
// Compute the SVD of H = US(V^T).
//
// Compute d = sign(det(V(U^T))).
//
// The optimal rotation is R = V([1 0 0] [0 1 0] [0 0 d])(U^T).
func Fit(fixed, moving []structure.Coords) (Superposition, error) {
	if len(fixed) != len(moving) {
		return Superposition{}, fmt.Errorf("Computing a superposition "+
			"requires two sets of equal length, but the lengths are %d "+
			"and %d.", len(fixed), len(moving))
	}
	if len(fixed) == 0 {
		return Superposition{}, fmt.Errorf("Cannot superpose empty sets " +
			"of points.")
	}

	cf, cm := centroid(fixed), centroid(moving)
	P, Q := center(fixed, cf), center(moving, cm)

	H := covariance(Q, P)
	var svd mat.SVD
	if ok := svd.Factorize(mat.NewDense(3, 3, H[:]), mat.SVDFull); !ok {
		return Superposition{}, fmt.Errorf("SVD factorization of the " +
			"covariance matrix failed.")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)

	// If the determinant of V(U^T) is negative, then the rotation is an
	// "improper rotation" (a reflection). To correct for it, we multiply
	// V by ( [1 0 0] [0 1 0] [0 0 -1] ).
	var VUT mat.Dense
	VUT.Mul(&V, U.T())
	if mat.Det(&VUT) < 0 {
		for r := 0; r < 3; r++ {
			V.Set(r, 2, -V.At(r, 2))
		}
		VUT.Mul(&V, U.T())
	}

	var R Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R[r*3+c] = VUT.At(r, c)
		}
	}

	rc := R.apply(cm)
	sup := Superposition{
		Rotation:    R,
		Translation: structure.Coords{X: cf.X - rc.X, Y: cf.Y - rc.Y, Z: cf.Z - rc.Z},
	}

	// Now compute the RMSD between the rotated moving points and the fixed
	// points. Both are still centered, so no translation is needed.
	var sum float64
	for i := range Q {
		q := R.apply(Q[i])
		dx, dy, dz := q.X-P[i].X, q.Y-P[i].Y, q.Z-P[i].Z
		sum += dx*dx + dy*dy + dz*dz
	}
	sup.RMS = math.Sqrt(sum / float64(len(Q)))
	return sup, nil
}

// RMSD returns the root mean square deviation of the two sets of points after
// optimal superposition. See Fit for the requirements on the inputs.
func RMSD(fixed, moving []structure.Coords) (float64, error) {
	sup, err := Fit(fixed, moving)
	if err != nil {
		return 0, err
	}
	return sup.RMS, nil
}

// Transform returns the image of a single point.
func (sup Superposition) Transform(p structure.Coords) structure.Coords {
	q := sup.Rotation.apply(p)
	return structure.Coords{
		X: q.X + sup.Translation.X,
		Y: q.Y + sup.Translation.Y,
		Z: q.Z + sup.Translation.Z,
	}
}

// Apply transforms the given atoms in place.
func (sup Superposition) Apply(atoms pdb.Atoms) {
	for i := range atoms {
		atoms[i].Coords = sup.Transform(atoms[i].Coords)
	}
}

// ApplyEntry transforms every atom of every model of the entry in place.
// Use (*pdb.Entry).Copy first if the original must be preserved.
func (sup Superposition) ApplyEntry(entry *pdb.Entry) {
	entry.EachAtom(func(a *pdb.Atom) {
		a.Coords = sup.Transform(a.Coords)
	})
}

func (a Matrix3) apply(p structure.Coords) structure.Coords {
	return structure.Coords{
		X: a[0]*p.X + a[1]*p.Y + a[2]*p.Z,
		Y: a[3]*p.X + a[4]*p.Y + a[5]*p.Z,
		Z: a[6]*p.X + a[7]*p.Y + a[8]*p.Z,
	}
}

// covariance computes the 3x3 matrix A(B^T), where A and B are the 3xN
// matrices whose columns are the points of a and b.
func covariance(a, b []structure.Coords) Matrix3 {
	var C Matrix3
	for i := range a {
		ai := [3]float64{a[i].X, a[i].Y, a[i].Z}
		bi := [3]float64{b[i].X, b[i].Y, b[i].Z}
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				C[r*3+c] += ai[r] * bi[c]
			}
		}
	}
	return C
}

// centroid calculates the average position of a set of points.
func centroid(points []structure.Coords) structure.Coords {
	var c structure.Coords
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	n := float64(len(points))
	return structure.Coords{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

func center(points []structure.Coords, c structure.Coords) []structure.Coords {
	centered := make([]structure.Coords, len(points))
	for i, p := range points {
		centered[i] = structure.Coords{X: p.X - c.X, Y: p.Y - c.Y, Z: p.Z - c.Z}
	}
	return centered
}
