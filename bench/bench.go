// Package bench measures wall-clock elapsed time for units of work and
// summarizes repeated runs.
package bench

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// Clock is the monotonic time source. Variable so tests can pin it.
var Clock = time.Now

// Record is one timed execution.
type Record struct {
	Start time.Time
	End   time.Time
}

// Seconds returns the elapsed duration in seconds.
func (r Record) Seconds() float64 {
	return r.End.Sub(r.Start).Seconds()
}

// Measure wraps fn with timestamps immediately before and after. The record
// is valid even when fn fails.
func Measure(fn func() error) (Record, error) {
	r := Record{Start: Clock()}
	err := fn()
	r.End = Clock()
	return r, err
}

// Summary returns the mean and standard deviation of a set of elapsed-time
// samples. Sigma is zero for fewer than two samples.
func Summary(samples []float64) (mean, sigma float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	mean = stat.Mean(samples, nil)
	if len(samples) > 1 {
		sigma = stat.StdDev(samples, nil)
	}
	return mean, sigma
}
