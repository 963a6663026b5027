package runner

import (
	"fmt"
	"unsafe"

	"github.com/gpupipe/cuboidbench/status"
	"github.com/notargets/gocca"
)

// AccessMode declares the direction a buffer is used in. It records intent;
// callers must not read a write-only buffer before a dispatch has populated
// it.
type AccessMode int

const (
	ReadOnly AccessMode = iota
	WriteOnly
)

func (m AccessMode) String() string {
	if m == WriteOnly {
		return "write-only"
	}
	return "read-only"
}

// Buffer is a device-memory region of exactly count*elemSize bytes. It is
// created against a session and never outlives it.
type Buffer struct {
	mem      *gocca.OCCAMemory
	name     string
	mode     AccessMode
	count    int
	elemSize int
	byteLen  int64
	released bool
}

// Name returns the buffer's label, used in diagnostics.
func (b *Buffer) Name() string { return b.name }

// Mode returns the declared access mode.
func (b *Buffer) Mode() AccessMode { return b.mode }

// Len returns the element count.
func (b *Buffer) Len() int { return b.count }

// ByteLen returns the allocated size in bytes.
func (b *Buffer) ByteLen() int64 { return b.byteLen }

// Allocate creates a device buffer of count elements of elemSize bytes each.
// The byte length is count*elemSize by construction; a device that cannot
// satisfy the request yields a CreationError.
func Allocate(s *Session, name string, mode AccessMode, count, elemSize int) (*Buffer, error) {
	if s == nil || s.closed {
		return nil, &CreationError{Resource: "buffer " + name, Status: status.InvalidContext}
	}
	if count <= 0 || elemSize <= 0 {
		return nil, &CreationError{
			Resource: "buffer " + name,
			Status:   status.InvalidBufferSize,
			Err:      fmt.Errorf("count %d, element size %d", count, elemSize),
		}
	}

	byteLen := int64(count) * int64(elemSize)
	mem := s.handle().Malloc(byteLen, nil, nil)
	if mem == nil {
		return nil, &CreationError{
			Resource: "buffer " + name,
			Status:   status.MemObjectAllocationFailure,
			Err:      fmt.Errorf("%d bytes", byteLen),
		}
	}

	b := &Buffer{
		mem:      mem,
		name:     name,
		mode:     mode,
		count:    count,
		elemSize: elemSize,
		byteLen:  byteLen,
	}
	s.buffers = append(s.buffers, b)
	return b, nil
}

// Upload copies data into the buffer. The copy blocks until the device has
// taken the data.
func Upload(b *Buffer, data []int32) error {
	if err := b.checkTransfer(len(data), true); err != nil {
		return err
	}
	b.mem.CopyFrom(unsafe.Pointer(&data[0]), b.byteLen)
	return nil
}

// Download copies the buffer's contents into dst. The copy blocks until the
// data is resident on the host.
func Download(b *Buffer, dst []int32) error {
	if err := b.checkTransfer(len(dst), false); err != nil {
		return err
	}
	b.mem.CopyTo(unsafe.Pointer(&dst[0]), b.byteLen)
	return nil
}

const int32Size = 4

func (b *Buffer) checkTransfer(hostLen int, toDevice bool) error {
	if b == nil || b.released || b.mem == nil {
		name := ""
		if b != nil {
			name = b.name
		}
		return &TransferError{Buffer: name, ToDevice: toDevice, Status: status.InvalidMemObject}
	}
	if b.elemSize != int32Size {
		return &TransferError{
			Buffer:   b.name,
			ToDevice: toDevice,
			Status:   status.InvalidValue,
			Err:      fmt.Errorf("element size %d, host side is int32", b.elemSize),
		}
	}
	if hostLen != b.count {
		return &TransferError{
			Buffer:   b.name,
			ToDevice: toDevice,
			Status:   status.InvalidBufferSize,
			Err:      fmt.Errorf("host length %d, buffer holds %d elements", hostLen, b.count),
		}
	}
	return nil
}

func (b *Buffer) release(hook func(kind, name string)) {
	if b.released {
		return
	}
	b.released = true
	if hook != nil {
		hook("buffer", b.name)
	}
	if b.mem != nil {
		b.mem.Free()
	}
}
