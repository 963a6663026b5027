package runner

import (
	"fmt"

	"github.com/gpupipe/cuboidbench/status"
)

// CreationError reports a failure to provision a device-side resource
// (session, program, kernel or buffer).
type CreationError struct {
	Resource string
	Status   int
	Err      error
}

func (e *CreationError) Error() string {
	msg := fmt.Sprintf("creating %s failed", e.Resource)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%s)", status.Text(e.Status))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CreationError) Unwrap() error { return e.Err }

// BuildError reports a kernel compilation failure. Log carries the compiler
// diagnostic text and is expected to be surfaced verbatim before aborting.
type BuildError struct {
	Kernel string
	Log    string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("building kernel %q failed (%s)", e.Kernel,
		status.Text(status.BuildProgramFailure))
}

// TransferError reports a failed host/device copy.
type TransferError struct {
	Buffer   string
	ToDevice bool
	Status   int
	Err      error
}

func (e *TransferError) Error() string {
	dir := "device to host"
	if e.ToDevice {
		dir = "host to device"
	}
	msg := fmt.Sprintf("transfer %s for buffer %q failed", dir, e.Buffer)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%s)", status.Text(e.Status))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransferError) Unwrap() error { return e.Err }

// DispatchError reports a failure at argument binding, enqueue, or the
// completion barrier.
type DispatchError struct {
	Kernel string
	Status int
	Err    error
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("dispatching kernel %q failed", e.Kernel)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (%s)", status.Text(e.Status))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DispatchError) Unwrap() error { return e.Err }
