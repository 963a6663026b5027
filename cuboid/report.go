package cuboid

import (
	"fmt"
	"io"
)

// WriteReport prints both elapsed times, their ratio, and the first sampleN
// rows of inputs alongside both result arrays for visual cross-check.
func WriteReport(w io.Writer, in Inputs, accel, seq []int32, accelSec, seqSec float64, sampleN int) {
	fmt.Fprintf(w, "\nThe accelerator kernel ran in %f seconds\n", accelSec)
	fmt.Fprintf(w, "The sequential code ran in %f seconds\n\n", seqSec)
	if accelSec > 0 {
		fmt.Fprintf(w, "The sequential time is %fX of the accelerator time\n\n", seqSec/accelSec)
	}

	n := in.Len()
	if sampleN > n {
		sampleN = n
	}
	for i := 0; i < sampleN; i++ {
		fmt.Fprintf(w, "a=%d\tb=%d\tc=%d\t\tdevice=%d\t\thost=%d\n",
			in.A[i], in.B[i], in.C[i], accel[i], seq[i])
	}
	if n > sampleN {
		fmt.Fprintf(w, "... %d more items\n", n-sampleN)
	}
}
