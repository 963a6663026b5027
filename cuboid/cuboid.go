// Package cuboid computes rectangular-cuboid surface areas over large input
// batches, once on an accelerator and once sequentially on the host, and
// compares the two.
package cuboid

import (
	"fmt"
	"math/rand"
)

// Inputs holds the three edge-length arrays. All three are index-aligned
// and equal in length.
type Inputs struct {
	A []int32
	B []int32
	C []int32
}

// Len returns the element count.
func (in Inputs) Len() int { return len(in.A) }

func (in Inputs) validate() error {
	if len(in.A) == 0 {
		return fmt.Errorf("empty inputs")
	}
	if len(in.B) != len(in.A) || len(in.C) != len(in.A) {
		return fmt.Errorf("input lengths differ: a=%d b=%d c=%d",
			len(in.A), len(in.B), len(in.C))
	}
	return nil
}

// RandomInputs draws n edge triples uniformly from [1, 9], seeded for
// reproducible runs.
func RandomInputs(n int, seed int64) Inputs {
	rng := rand.New(rand.NewSource(seed))
	in := Inputs{
		A: make([]int32, n),
		B: make([]int32, n),
		C: make([]int32, n),
	}
	for i := 0; i < n; i++ {
		in.A[i] = int32(rng.Intn(9) + 1)
		in.B[i] = int32(rng.Intn(9) + 1)
		in.C[i] = int32(rng.Intn(9) + 1)
	}
	return in
}

// SurfaceArea is the per-element formula both execution paths compute.
func SurfaceArea(a, b, c int32) int32 {
	return 2 * ((a * b) + (b * c) + (a * c))
}

// SurfaceAreas is the sequential baseline. It shares nothing with the
// accelerator path beyond the inputs.
func SurfaceAreas(in Inputs) []int32 {
	areas := make([]int32, in.Len())
	for i := range areas {
		areas[i] = SurfaceArea(in.A[i], in.B[i], in.C[i])
	}
	return areas
}

// Compare returns the number of indices at which the two result arrays
// differ. Integer results compare exactly; a length difference counts every
// unpaired element as a mismatch.
func Compare(accel, seq []int32) int {
	n := len(accel)
	if len(seq) < n {
		n = len(seq)
	}
	mismatches := len(accel) - n + len(seq) - n
	for i := 0; i < n; i++ {
		if accel[i] != seq[i] {
			mismatches++
		}
	}
	return mismatches
}
