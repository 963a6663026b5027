package cuboid

import (
	"github.com/gpupipe/cuboidbench/bench"
	"github.com/gpupipe/cuboidbench/device"
	"github.com/gpupipe/cuboidbench/runner"
	"go.uber.org/zap"
)

// elementSize is the device-side size of one array element (int).
const elementSize = 4

// Result is one accelerator pass.
type Result struct {
	Areas  []int32
	Record bench.Record
}

// Elapsed returns the accelerator time in seconds, covering enqueue through
// the completion barrier.
func (r *Result) Elapsed() float64 { return r.Record.Seconds() }

// Run executes the full accelerator pipeline over in: session open, program
// build, buffer provisioning, upload, timed dispatch, download. The session
// adopts dev and tears everything down on every exit path. Fail-fast: the
// first error aborts the run.
func Run(dev *device.Device, in Inputs, log *zap.Logger) (*Result, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	n := in.Len()

	sess, err := runner.Open(dev)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	kern, err := runner.BuildProgram(sess, KernelSource(), EntryPoint, n)
	if err != nil {
		return nil, err
	}
	log.Debug("kernel compiled",
		zap.String("entry", EntryPoint),
		zap.Int("elements", n))

	bufA, err := runner.Allocate(sess, "a", runner.ReadOnly, n, elementSize)
	if err != nil {
		return nil, err
	}
	bufB, err := runner.Allocate(sess, "b", runner.ReadOnly, n, elementSize)
	if err != nil {
		return nil, err
	}
	bufC, err := runner.Allocate(sess, "c", runner.ReadOnly, n, elementSize)
	if err != nil {
		return nil, err
	}
	bufArea, err := runner.Allocate(sess, "area", runner.WriteOnly, n, elementSize)
	if err != nil {
		return nil, err
	}

	if err := runner.Upload(bufA, in.A); err != nil {
		return nil, err
	}
	if err := runner.Upload(bufB, in.B); err != nil {
		return nil, err
	}
	if err := runner.Upload(bufC, in.C); err != nil {
		return nil, err
	}

	if err := runner.Bind(kern, bufA, bufB, bufC, bufArea); err != nil {
		return nil, err
	}

	// The timer brackets enqueue plus the completion barrier, not the
	// transfers, matching the sequential measurement's scope.
	rec, err := bench.Measure(func() error {
		return runner.Dispatch(sess, kern, n)
	})
	if err != nil {
		return nil, err
	}

	areas := make([]int32, n)
	if err := runner.Download(bufArea, areas); err != nil {
		return nil, err
	}

	log.Debug("accelerator pass complete",
		zap.Int("elements", n),
		zap.Float64("seconds", rec.Seconds()))

	return &Result{Areas: areas, Record: rec}, nil
}
