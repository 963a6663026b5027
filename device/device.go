// Package device discovers and selects a compute device for kernel
// execution. Backends are probed in a fixed preference order, mirroring
// platform enumeration: the first platform that both matches the requested
// device class and opens successfully wins.
package device

import (
	"fmt"
	"runtime"

	"github.com/gpupipe/cuboidbench/status"
	"github.com/notargets/gocca"
)

// Class is the broad hardware category a platform exposes.
type Class int

const (
	ClassAny Class = iota
	ClassGPU
	ClassCPU
)

func (c Class) String() string {
	switch c {
	case ClassGPU:
		return "gpu"
	case ClassCPU:
		return "cpu"
	default:
		return "any"
	}
}

// ParseClass maps a flag value onto a device class filter.
func ParseClass(s string) (Class, error) {
	switch s {
	case "gpu":
		return ClassGPU, nil
	case "cpu":
		return ClassCPU, nil
	case "any", "":
		return ClassAny, nil
	}
	return ClassAny, fmt.Errorf("unknown device class %q (want gpu, cpu or any)", s)
}

// matches reports whether a platform of class c satisfies the filter.
func (c Class) matches(filter Class) bool {
	return filter == ClassAny || c == filter
}

// Platform is one enumerable backend. Props is the device-properties JSON
// handed to the runtime when the platform is probed.
type Platform struct {
	Name  string
	Class Class
	props string
}

// registry lists platforms in enumeration order. GPU-class backends come
// first; Serial is last and always opens, so ClassAny selection cannot fail
// on a working install.
var registry = []Platform{
	{Name: "CUDA", Class: ClassGPU, props: `{"mode": "CUDA", "device_id": 0}`},
	{Name: "HIP", Class: ClassGPU, props: `{"mode": "HIP", "device_id": 0}`},
	{Name: "OpenCL", Class: ClassGPU, props: `{"mode": "OpenCL", "platform_id": 0, "device_id": 0}`},
	{Name: "Metal", Class: ClassGPU, props: `{"mode": "Metal", "device_id": 0}`},
	{Name: "OpenMP", Class: ClassCPU, props: `{"mode": "OpenMP"}`},
	{Name: "Serial", Class: ClassCPU, props: `{"mode": "Serial"}`},
}

// openDevice is swapped out in tests.
var openDevice = gocca.NewDevice

// DiscoveryError reports that no platform exposed a device matching the
// filter.
type DiscoveryError struct {
	Class  Class
	Probed int
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("no %s device found after probing %d platform(s): %s",
		e.Class, e.Probed, status.Text(status.DeviceNotFound))
}

// Device is a selected compute device. It owns the underlying runtime
// handle until a session adopts it.
type Device struct {
	handle       *gocca.OCCADevice
	platform     Platform
	computeUnits int
	closed       bool
}

// Select probes the platform registry in order and returns the first device
// matching the class filter. There is no scoring among qualifying devices.
func Select(filter Class) (*Device, error) {
	probed := 0
	for _, p := range registry {
		if !p.Class.matches(filter) {
			continue
		}
		probed++
		handle, err := openDevice(p.props)
		if err != nil || handle == nil {
			continue
		}
		units := 0
		if p.Class == ClassCPU {
			// The runtime does not expose a compute-unit query; host
			// backends schedule over the logical CPUs.
			units = runtime.NumCPU()
		}
		return &Device{handle: handle, platform: p, computeUnits: units}, nil
	}
	return nil, &DiscoveryError{Class: filter, Probed: probed}
}

// Handle exposes the runtime device handle to the execution layer.
func (d *Device) Handle() *gocca.OCCADevice { return d.handle }

// Platform returns the platform the device was found on.
func (d *Device) Platform() Platform { return d.platform }

// Class returns the device's hardware class.
func (d *Device) Class() Class { return d.platform.Class }

// ComputeUnits returns the parallel capacity of the device, or 0 when the
// backend does not report it.
func (d *Device) ComputeUnits() int { return d.computeUnits }

// Closed reports whether the device handle has been released.
func (d *Device) Closed() bool { return d.closed }

// Close releases the runtime handle. A session that adopts the device calls
// this as the final step of its own teardown.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.handle != nil {
		d.handle.Free()
	}
}
