package runner

import (
	"fmt"

	"github.com/gpupipe/cuboidbench/status"
	"go.uber.org/multierr"
)

// Bind assigns the kernel's positional arguments: a, b, c at positions 0-2
// (read-only inputs, in that order), result at position 3 (write-only).
// Every individual bind failure is accumulated and surfaced; none are
// silently dropped.
func Bind(k *Kernel, a, b, c, result *Buffer) error {
	if k == nil || k.released {
		return &DispatchError{Status: status.InvalidKernel}
	}

	bufs := [KernelArity]*Buffer{a, b, c, result}
	var errs error
	for pos, buf := range bufs {
		if err := checkArg(pos, buf); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		k.args[pos] = buf
	}
	if errs != nil {
		return &DispatchError{Kernel: k.name, Status: status.InvalidKernelArgs, Err: errs}
	}
	return nil
}

func checkArg(pos int, buf *Buffer) error {
	if buf == nil {
		return fmt.Errorf("argument %d: nil buffer", pos)
	}
	if buf.released {
		return fmt.Errorf("argument %d (%s): buffer already released", pos, buf.name)
	}
	want := ReadOnly
	if pos == KernelArity-1 {
		want = WriteOnly
	}
	if buf.mode != want {
		return fmt.Errorf("argument %d (%s): buffer is %s, position takes %s",
			pos, buf.name, buf.mode, want)
	}
	return nil
}

// Dispatch enqueues one parallel invocation of k over [0, n) and blocks
// until every worker has completed. The runtime chooses how workers are
// grouped; correctness never depends on the grouping.
func Dispatch(s *Session, k *Kernel, n int) error {
	if s == nil || s.closed {
		return &DispatchError{Status: status.InvalidCommandQueue}
	}
	if k == nil || k.released {
		return &DispatchError{Status: status.InvalidKernel}
	}
	if k.elems != n {
		return &DispatchError{
			Kernel: k.name,
			Status: status.InvalidGlobalWorkSize,
			Err:    fmt.Errorf("kernel compiled for %d elements, dispatch over %d", k.elems, n),
		}
	}

	for pos, buf := range k.args {
		if buf == nil {
			return &DispatchError{
				Kernel: k.name,
				Status: status.InvalidKernelArgs,
				Err:    fmt.Errorf("argument %d not bound", pos),
			}
		}
		if buf.released {
			return &DispatchError{
				Kernel: k.name,
				Status: status.InvalidMemObject,
				Err:    fmt.Errorf("argument %d (%s) released before dispatch", pos, buf.name),
			}
		}
		if buf.count != n || buf.byteLen != int64(n)*int64(buf.elemSize) {
			return &DispatchError{
				Kernel: k.name,
				Status: status.InvalidBufferSize,
				Err: fmt.Errorf("argument %d (%s) holds %d elements (%d bytes), domain is %d",
					pos, buf.name, buf.count, buf.byteLen, n),
			}
		}
	}

	args := make([]interface{}, 0, KernelArity)
	for _, buf := range k.args {
		args = append(args, buf.mem)
	}
	if err := k.kern.RunWithArgs(args...); err != nil {
		return &DispatchError{Kernel: k.name, Err: err}
	}

	// Completion barrier: uploads, the kernel and this wait share one
	// in-order queue, so nothing downstream observes partial results.
	s.handle().Finish()
	return nil
}
