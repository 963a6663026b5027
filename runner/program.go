package runner

import (
	"fmt"

	"github.com/gpupipe/cuboidbench/status"
	"github.com/notargets/gocca"
)

// KernelArity is the fixed argument count of every kernel this pipeline
// dispatches: three read-only input buffers and one write-only result buffer.
const KernelArity = 4

// maxBuildLog bounds the diagnostic text carried by a BuildError.
const maxBuildLog = 2048

// Kernel is a compiled entry point with positional buffer arguments. All
// KernelArity arguments must be bound before dispatch.
type Kernel struct {
	kern     *gocca.OCCAKernel
	name     string
	elems    int
	args     [KernelArity]*Buffer
	released bool
}

// Name returns the entry-point name.
func (k *Kernel) Name() string { return k.name }

// Elements returns the element count the kernel was compiled for.
func (k *Kernel) Elements() int { return k.elems }

// preamble carries compile-time constants into the kernel source, keeping
// the entry point at exactly KernelArity buffer parameters.
func preamble(n int) string {
	return fmt.Sprintf("#define ELEMENT_COUNT %d\n", n)
}

// BuildProgram compiles source against the session's device and extracts the
// named entry point. On compilation failure the compiler diagnostic text is
// returned in a BuildError, truncated to maxBuildLog bytes.
func BuildProgram(s *Session, source, entry string, n int) (*Kernel, error) {
	if s == nil || s.closed {
		return nil, &CreationError{Resource: "program", Status: status.InvalidContext}
	}
	if n <= 0 {
		return nil, &CreationError{
			Resource: "program",
			Status:   status.InvalidValue,
			Err:      fmt.Errorf("element count %d", n),
		}
	}

	full := preamble(n) + "\n" + source
	kern, err := s.handle().BuildKernelFromString(full, entry, nil)
	if err != nil {
		return nil, &BuildError{Kernel: entry, Log: truncateLog(err.Error())}
	}
	if kern == nil {
		return nil, &CreationError{
			Resource: "kernel " + entry,
			Status:   status.InvalidKernelName,
		}
	}

	k := &Kernel{kern: kern, name: entry, elems: n}
	s.kernels = append(s.kernels, k)
	return k, nil
}

func truncateLog(log string) string {
	if len(log) > maxBuildLog {
		return log[:maxBuildLog]
	}
	return log
}

func (k *Kernel) release(hook func(kind, name string)) {
	if k.released {
		return
	}
	k.released = true
	if hook != nil {
		hook("kernel", k.name)
	}
	if k.kern != nil {
		k.kern.Free()
	}
}
