// Package runner drives the accelerator execution pipeline: an exclusive
// session over one device, program compilation, device buffers, and blocking
// kernel dispatch. Every resource is released in reverse acquisition order,
// on every exit path, before the device itself goes away.
package runner

import (
	"github.com/gpupipe/cuboidbench/device"
	"github.com/gpupipe/cuboidbench/status"
	"github.com/notargets/gocca"
)

// Session owns a device for the duration of one run, together with every
// kernel and buffer created against it. The underlying runtime folds the
// context and in-order command queue into the device handle, so the
// queue-before-context teardown discipline becomes: dependents first, device
// last.
type Session struct {
	dev     *device.Device
	kernels []*Kernel
	buffers []*Buffer
	closed  bool

	// releaseHook observes teardown order in tests; nil otherwise.
	releaseHook func(kind, name string)
}

// Open adopts dev into a new exclusive session. The session takes ownership:
// closing the session closes the device.
func Open(dev *device.Device) (*Session, error) {
	if dev == nil {
		return nil, &CreationError{Resource: "execution session", Status: status.InvalidDevice}
	}
	if dev.Closed() || dev.Handle() == nil {
		return nil, &CreationError{Resource: "execution session", Status: status.DeviceNotAvailable}
	}
	return &Session{dev: dev}, nil
}

func (s *Session) handle() *gocca.OCCADevice { return s.dev.Handle() }

// Closed reports whether the session has been torn down.
func (s *Session) Closed() bool { return s.closed }

// Close releases buffers, then kernels, then the device, each group in
// reverse acquisition order. Close is idempotent and is the only valid
// teardown path.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for i := len(s.buffers) - 1; i >= 0; i-- {
		s.buffers[i].release(s.releaseHook)
	}
	for i := len(s.kernels) - 1; i >= 0; i-- {
		s.kernels[i].release(s.releaseHook)
	}

	if s.releaseHook != nil {
		name := ""
		if s.dev != nil {
			name = s.dev.Platform().Name
		}
		s.releaseHook("device", name)
	}
	if s.dev != nil {
		s.dev.Close()
	}
}
