package runner

import (
	"errors"
	"testing"

	"github.com/gpupipe/cuboidbench/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// Binding and pre-dispatch validation never touch the device, so these tests
// run against in-package fixtures with no backing memory.

func testBuffer(name string, mode AccessMode, count int) *Buffer {
	return &Buffer{
		name:     name,
		mode:     mode,
		count:    count,
		elemSize: int32Size,
		byteLen:  int64(count) * int32Size,
	}
}

func testKernel(n int) *Kernel {
	return &Kernel{name: "cuboidArea", elems: n}
}

func TestBindAllPositions(t *testing.T) {
	k := testKernel(8)
	a := testBuffer("a", ReadOnly, 8)
	b := testBuffer("b", ReadOnly, 8)
	c := testBuffer("c", ReadOnly, 8)
	area := testBuffer("area", WriteOnly, 8)

	require.NoError(t, Bind(k, a, b, c, area))
	assert.Equal(t, [KernelArity]*Buffer{a, b, c, area}, k.args)
}

func TestBindAccumulatesFailures(t *testing.T) {
	k := testKernel(8)
	// Position 0 nil, position 1 wrong mode, position 3 wrong mode: all
	// three must be reported together.
	b := testBuffer("b", WriteOnly, 8)
	c := testBuffer("c", ReadOnly, 8)
	area := testBuffer("area", ReadOnly, 8)

	err := Bind(k, nil, b, c, area)
	require.Error(t, err)

	var dispErr *DispatchError
	require.True(t, errors.As(err, &dispErr))
	assert.Equal(t, status.InvalidKernelArgs, dispErr.Status)
	assert.Len(t, multierr.Errors(dispErr.Err), 3)

	// The one valid bind still took effect.
	assert.Equal(t, c, k.args[2])
	assert.Nil(t, k.args[0])
}

func TestBindRejectsReleasedBuffer(t *testing.T) {
	k := testKernel(4)
	a := testBuffer("a", ReadOnly, 4)
	a.released = true

	err := Bind(k, a, testBuffer("b", ReadOnly, 4), testBuffer("c", ReadOnly, 4),
		testBuffer("area", WriteOnly, 4))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already released")
}

func TestDispatchValidation(t *testing.T) {
	newBound := func(n int) (*Session, *Kernel) {
		s := &Session{}
		k := testKernel(n)
		require.NoError(t, Bind(k,
			testBuffer("a", ReadOnly, n),
			testBuffer("b", ReadOnly, n),
			testBuffer("c", ReadOnly, n),
			testBuffer("area", WriteOnly, n)))
		return s, k
	}

	t.Run("UnboundArgument", func(t *testing.T) {
		s := &Session{}
		k := testKernel(4)
		k.args[0] = testBuffer("a", ReadOnly, 4)
		// Positions 1-3 never bound.
		err := Dispatch(s, k, 4)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidKernelArgs, dispErr.Status)
		assert.Contains(t, err.Error(), "argument 1 not bound")
	})

	t.Run("DomainMismatch", func(t *testing.T) {
		s, k := newBound(4)
		err := Dispatch(s, k, 8)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidGlobalWorkSize, dispErr.Status)
	})

	t.Run("BufferSizeMismatch", func(t *testing.T) {
		s, k := newBound(4)
		k.args[2] = testBuffer("c", ReadOnly, 5)
		err := Dispatch(s, k, 4)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidBufferSize, dispErr.Status)
	})

	t.Run("ReleasedBuffer", func(t *testing.T) {
		s, k := newBound(4)
		k.args[1].released = true
		err := Dispatch(s, k, 4)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidMemObject, dispErr.Status)
	})

	t.Run("ClosedSession", func(t *testing.T) {
		s, k := newBound(4)
		s.closed = true
		err := Dispatch(s, k, 4)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidCommandQueue, dispErr.Status)
	})

	t.Run("NilKernel", func(t *testing.T) {
		err := Dispatch(&Session{}, nil, 4)
		var dispErr *DispatchError
		require.True(t, errors.As(err, &dispErr))
		assert.Equal(t, status.InvalidKernel, dispErr.Status)
	})
}

func TestTransferValidation(t *testing.T) {
	t.Run("LengthMismatch", func(t *testing.T) {
		b := testBuffer("a", ReadOnly, 4)
		err := Upload(b, make([]int32, 3))
		var transErr *TransferError
		require.True(t, errors.As(err, &transErr))
		assert.Equal(t, status.InvalidBufferSize, transErr.Status)
		assert.True(t, transErr.ToDevice)
	})

	t.Run("ReleasedBuffer", func(t *testing.T) {
		b := testBuffer("area", WriteOnly, 4)
		b.released = true
		err := Download(b, make([]int32, 4))
		var transErr *TransferError
		require.True(t, errors.As(err, &transErr))
		assert.Equal(t, status.InvalidMemObject, transErr.Status)
		assert.False(t, transErr.ToDevice)
	})

	t.Run("NilBuffer", func(t *testing.T) {
		var b *Buffer
		err := Upload(b, make([]int32, 4))
		var transErr *TransferError
		require.True(t, errors.As(err, &transErr))
		assert.Equal(t, status.InvalidMemObject, transErr.Status)
	})
}

func TestAccessModeString(t *testing.T) {
	assert.Equal(t, "read-only", ReadOnly.String())
	assert.Equal(t, "write-only", WriteOnly.String())
}
