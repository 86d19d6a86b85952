package rmsd

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/TuftsBCB/structure"
	matrix "github.com/skelterjohn/go.matrix"

	"github.com/clementbernardd/RNA-assessment/pdb"
)

const epsilon = 1e-6

var exampleSets = [2][]structure.Coords{
	{
		atom(-2.803, -15.373, 24.556),
		atom(0.893, -16.062, 25.147),
		atom(1.368, -12.371, 25.885),
		atom(-1.651, -12.153, 28.177),
		atom(-0.440, -15.218, 30.068),
		atom(2.551, -13.273, 31.372),
		atom(0.105, -11.330, 33.567),
	},
	{
		atom(-14.739, -18.673, 15.040),
		atom(-12.473, -15.810, 16.074),
		atom(-14.802, -13.307, 14.408),
		atom(-17.782, -14.852, 16.171),
		atom(-16.124, -14.617, 19.584),
		atom(-15.029, -11.037, 18.902),
		atom(-18.577, -10.001, 17.996),
	},
}

func ExampleRMSD() {
	rms, err := RMSD(exampleSets[0], exampleSets[1])
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("RMSD: %f\n", rms)
	// Output:
	// RMSD: 0.719106
}

func TestAgreesWithStructure(t *testing.T) {
	ours, err := RMSD(exampleSets[0], exampleSets[1])
	if err != nil {
		t.Fatal(err)
	}
	theirs := structure.RMSD(exampleSets[0], exampleSets[1])
	if math.Abs(ours-theirs) > 1e-3 {
		t.Fatalf("RMSD disagrees with the structure package: %f != %f",
			ours, theirs)
	}
}

func TestCovariant(t *testing.T) {
	for i := 0; i < 1000; i++ {
		a, b := randomAtoms(11), randomAtoms(11)

		// Compute our covariant
		cv := covariance(a, b)
		tC := tmat(cv[:])

		// Now compute the "correct" covariant.
		mat1 := matrix.MakeDenseMatrix(rows(a), 3, len(a))
		mat2 := matrix.MakeDenseMatrix(rows(b), 3, len(b))
		aC_, _ := mat1.TimesDense(mat2.Transpose())
		aC := tmat(aC_.Array())

		if !tC.equal(aC) {
			t.Fatalf("The covariant of\n%v\nand\n%v\nis\n%s\nbut we said\n%s\n",
				a, b, aC, tC)
		}
	}
}

func TestFitRigid(t *testing.T) {
	for i := 0; i < 200; i++ {
		fixed := randomAtoms(15)
		rot := randomRotation()
		shift := randomAtom()
		moving := make([]structure.Coords, len(fixed))
		for j, p := range fixed {
			q := rot.apply(p)
			moving[j] = structure.Coords{
				X: q.X + shift.X, Y: q.Y + shift.Y, Z: q.Z + shift.Z}
		}

		sup, err := Fit(fixed, moving)
		if err != nil {
			t.Fatal(err)
		}
		if sup.RMS > epsilon {
			t.Fatalf("Expected an RMSD of 0 for a rigid copy, got %f.", sup.RMS)
		}
		for j := range moving {
			if dist(sup.Transform(moving[j]), fixed[j]) > 1e-4 {
				t.Fatalf("Point %d maps to %v instead of %v.",
					j, sup.Transform(moving[j]), fixed[j])
			}
		}
		if d := det(sup.Rotation); math.Abs(d-1) > epsilon {
			t.Fatalf("Rotation is not proper, determinant is %f.", d)
		}
	}
}

func TestFitMirror(t *testing.T) {
	fixed := randomAtoms(10)
	mirrored := make([]structure.Coords, len(fixed))
	for i, p := range fixed {
		mirrored[i] = structure.Coords{X: -p.X, Y: p.Y, Z: p.Z}
	}
	sup, err := Fit(fixed, mirrored)
	if err != nil {
		t.Fatal(err)
	}
	if d := det(sup.Rotation); math.Abs(d-1) > epsilon {
		t.Fatalf("A reflection must never be returned, determinant is %f.", d)
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit(randomAtoms(3), randomAtoms(4)); err == nil {
		t.Fatalf("Expected an error for sets of different lengths.")
	}
	if _, err := Fit(nil, nil); err == nil {
		t.Fatalf("Expected an error for empty sets.")
	}
}

func TestApplyEntry(t *testing.T) {
	entry := &pdb.Entry{Models: []*pdb.Model{{Num: 1, Chains: []*pdb.Chain{{
		Ident: "A",
		Residues: []*pdb.Residue{{Name: "G", SeqNum: 1, Atoms: pdb.Atoms{
			{Name: "P", Coords: atom(1, 0, 0)},
			{Name: "C1'", Coords: atom(0, 1, 0)},
		}}},
	}}}}}
	sup := Superposition{
		Rotation:    Matrix3{0, -1, 0, 1, 0, 0, 0, 0, 1},
		Translation: atom(1, 1, 1),
	}
	cp := entry.Copy()
	sup.ApplyEntry(cp)

	got := cp.FirstModel().Chains[0].Residues[0].Atoms
	if dist(got[0].Coords, atom(1, 2, 1)) > epsilon ||
		dist(got[1].Coords, atom(0, 1, 1)) > epsilon {
		t.Fatalf("Unexpected transformed atoms:\n%s", got)
	}
	orig := entry.FirstModel().Chains[0].Residues[0].Atoms
	if orig[0].Coords != atom(1, 0, 0) {
		t.Fatalf("Original entry was modified: %s", orig[0])
	}

	same := orig.Copy()
	Superposition{Rotation: Identity}.Apply(same)
	if same[1].Coords != orig[1].Coords {
		t.Fatalf("Identity moved an atom: %s", same[1])
	}
}

func BenchmarkFit(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		atoms1 := randomAtoms(100)
		atoms2 := randomAtoms(100)
		b.StartTimer()
		Fit(atoms1, atoms2)
	}
}

type tmat []float64

func (m tmat) String() string {
	return fmt.Sprintf(`
|%f  %f  %f|
|%f  %f  %f|
|%f  %f  %f|
`, m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func (m1 tmat) equal(m2 tmat) bool {
	for i := 0; i < 9; i++ {
		if math.Abs(m1[i]-m2[i]) > epsilon*math.Max(1, math.Abs(m2[i])) {
			return false
		}
	}
	return true
}

// rows lays out points as a 3xN matrix in row-major order.
func rows(points []structure.Coords) []float64 {
	n := len(points)
	m := make([]float64, 3*n)
	for i, p := range points {
		m[0*n+i] = p.X
		m[1*n+i] = p.Y
		m[2*n+i] = p.Z
	}
	return m
}

func det(a Matrix3) float64 {
	return a[0]*(a[4]*a[8]-a[5]*a[7]) -
		a[1]*(a[3]*a[8]-a[5]*a[6]) +
		a[2]*(a[3]*a[7]-a[4]*a[6])
}

func dist(a, b structure.Coords) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// randomRotation builds a proper rotation from three random Euler angles.
func randomRotation() Matrix3 {
	a, b, c := rand.Float64()*math.Pi*2, rand.Float64()*math.Pi*2,
		rand.Float64()*math.Pi*2
	rz := Matrix3{math.Cos(a), -math.Sin(a), 0, math.Sin(a), math.Cos(a), 0, 0, 0, 1}
	ry := Matrix3{math.Cos(b), 0, math.Sin(b), 0, 1, 0, -math.Sin(b), 0, math.Cos(b)}
	rx := Matrix3{1, 0, 0, 0, math.Cos(c), -math.Sin(c), 0, math.Sin(c), math.Cos(c)}
	return mult(rz, mult(ry, rx))
}

func mult(a, b Matrix3) Matrix3 {
	var m Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for i := 0; i < 3; i++ {
				m[r*3+c] += a[r*3+i] * b[i*3+c]
			}
		}
	}
	return m
}

func randomAtoms(cnt int) []structure.Coords {
	atoms := make([]structure.Coords, cnt)
	for i := 0; i < cnt; i++ {
		atoms[i] = randomAtom()
	}
	return atoms
}

func randomAtom() structure.Coords {
	return atom(
		rand.Float64()*float64(rand.Intn(500)),
		rand.Float64()*float64(rand.Intn(500)),
		rand.Float64()*float64(rand.Intn(500)))
}

func atom(x, y, z float64) structure.Coords {
	return structure.Coords{X: x, Y: y, Z: z}
}
