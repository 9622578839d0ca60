// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package plugin loads a PI plugin driving a native compute API.
package backend_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx-org/piopencl/cl/clsim"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

func (f *fixture) newBuffer(t *testing.T, flags pi.MemFlags, size uint, host []byte) pi.Mem {
	t.Helper()
	buffer, res := f.table.Mem.BufferCreate(f.ctx, flags, size, host)
	require.Equal(t, pi.Success, res)
	t.Cleanup(func() {
		assert.Equal(t, pi.Success, f.table.Mem.Release(buffer))
	})
	return buffer
}

func TestBufferReadWrite(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	buffer := f.newBuffer(t, pi.MemFlagsReadWrite, 16, nil)

	src := []byte("0123456789abcdef")
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferWrite(queue, buffer, true, 0, src, nil, nil))
	dst := make([]byte, 6)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, buffer, true, 10, dst, nil, nil))
	assert.Equal(t, []byte("abcdef"), dst)

	assert.Equal(t, pi.InvalidValue, f.table.Enqueue.MemBufferRead(queue, buffer, true, 12, dst, nil, nil))
	assert.Equal(t, pi.InvalidMemObject, f.table.Enqueue.MemBufferRead(queue, 0, true, 0, dst, nil, nil))

	size, res := hostlayout.Query[uint](func(value []byte) (uint, pi.Result) {
		return f.table.Mem.GetInfo(buffer, pi.MemInfoSize, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint(16), size)
}

func TestBufferCopyFill(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	src := f.newBuffer(t, pi.MemFlagsCopyHostPtr, 8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	dst := f.newBuffer(t, pi.MemFlagsReadWrite, 8, nil)

	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferFill(queue, dst, []byte{0xAB, 0xCD}, 0, 8, nil, nil))
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferCopy(queue, src, dst, 2, 4, 4, nil, nil))
	got := make([]byte, 8)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, dst, true, 0, got, nil, nil))
	assert.Equal(t, []byte{0xAB, 0xCD, 0xAB, 0xCD, 3, 4, 5, 6}, got)

	assert.Equal(t, pi.InvalidValue, f.table.Enqueue.MemBufferFill(queue, dst, []byte{1, 2, 3}, 0, 6, nil, nil))
}

func TestBufferRect(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	buffer := f.newBuffer(t, pi.MemFlagsReadWrite, 16, nil)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferFill(queue, buffer, []byte{0}, 0, 16, nil, nil))

	// Write a 2x2 block at column 1, row 1 of a 4x4 matrix.
	host := []byte{1, 2, 3, 4}
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferWriteRect(queue, buffer, true,
		[3]uint{1, 1, 0}, [3]uint{0, 0, 0}, [3]uint{2, 2, 1},
		4, 0, 2, 0, host, nil, nil))
	got := make([]byte, 16)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, buffer, true, 0, got, nil, nil))
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		0, 1, 2, 0,
		0, 3, 4, 0,
		0, 0, 0, 0,
	}, got)

	block := make([]byte, 4)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferReadRect(queue, buffer, true,
		[3]uint{1, 1, 0}, [3]uint{0, 0, 0}, [3]uint{2, 2, 1},
		4, 0, 2, 0, block, nil, nil))
	assert.Equal(t, host, block)
}

func TestBufferMap(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	buffer := f.newBuffer(t, pi.MemFlagsCopyHostPtr, 4, []byte{1, 2, 3, 4})

	mapped, res := f.table.Enqueue.MemBufferMap(queue, buffer, true, pi.MapRead|pi.MapWrite, 1, 2, nil, nil)
	require.Equal(t, pi.Success, res)
	assert.Equal(t, []byte{2, 3}, mapped)
	mapped[0] = 42
	count, res := hostlayout.Query[uint32](func(value []byte) (uint, pi.Result) {
		return f.table.Mem.GetInfo(buffer, pi.MemInfoMapCount, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint32(1), count)
	require.Equal(t, pi.Success, f.table.Enqueue.MemUnmap(queue, buffer, mapped, nil, nil))
	require.Equal(t, pi.Success, f.table.Queue.Finish(queue))

	got := make([]byte, 4)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, buffer, true, 0, got, nil, nil))
	assert.Equal(t, []byte{1, 42, 3, 4}, got)

	_, res = f.table.Enqueue.MemBufferMap(queue, buffer, true, pi.MapRead, 2, 4, nil, nil)
	assert.Equal(t, pi.InvalidValue, res)
}

func TestBufferPartition(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	data := bytes.Repeat([]byte{7}, 2*clsim.SubBufferAlignment)
	parent := f.newBuffer(t, pi.MemFlagsCopyHostPtr, uint(len(data)), data)

	region := &pi.BufferRegion{Origin: clsim.SubBufferAlignment, Size: 4}
	sub, res := f.table.Mem.BufferPartition(parent, pi.MemFlagsReadWrite, pi.BufferCreateTypeRegion, region)
	require.Equal(t, pi.Success, res)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferWrite(queue, sub, true, 0, []byte{1, 2, 3, 4}, nil, nil))
	got := make([]byte, 6)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, parent, true, clsim.SubBufferAlignment-1, got, nil, nil))
	assert.Equal(t, []byte{7, 1, 2, 3, 4, 7}, got)
	assert.Equal(t, pi.Success, f.table.Mem.Release(sub))

	_, res = f.table.Mem.BufferPartition(parent, pi.MemFlagsReadWrite, pi.BufferCreateTypeRegion, &pi.BufferRegion{Origin: 1, Size: 4})
	assert.Equal(t, pi.MisalignedSubBufferOffset, res)
}

func TestKernelLaunch(t *testing.T) {
	f := newFixture(t, "")
	f.sim.RegisterKernel("scale", clsim.Kernel{
		NumArgs: 2,
		Run: func(args []clsim.Arg, global []uint) {
			factor := args[1].Value[0]
			for i := uint(0); i < global[0]; i++ {
				args[0].Buffer[i] *= factor
			}
		},
	})
	queue := f.newQueue(t, 0)
	buffer := f.newBuffer(t, pi.MemFlagsCopyHostPtr, 4, []byte{1, 2, 3, 4})

	program, res := f.table.Program.Create(f.ctx, clsim.BuildSPIRV("scale"))
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Program.Release(program)) }()
	require.Equal(t, pi.Success, f.table.Program.Build(program, nil, "", nil, nil))
	kernel, res := f.table.Kernel.Create(program, "scale")
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Kernel.Release(kernel)) }()

	global := []uint{4}
	assert.Equal(t, pi.InvalidKernelArgs, f.table.Enqueue.KernelLaunch(queue, kernel, 1, nil, global, nil, nil, nil))

	handle := binary.NativeEndian.AppendUint64(nil, uint64(buffer))
	require.Equal(t, pi.Success, f.table.Kernel.SetArg(kernel, 0, uint(len(handle)), handle))
	require.Equal(t, pi.Success, f.table.Kernel.SetArg(kernel, 1, 1, []byte{3}))
	assert.Equal(t, pi.InvalidWorkDimension, f.table.Enqueue.KernelLaunch(queue, kernel, 0, nil, global, nil, nil, nil))
	assert.Equal(t, pi.InvalidWorkGroupSize, f.table.Enqueue.KernelLaunch(queue, kernel, 1, nil, global, []uint{3}, nil, nil))

	var event pi.Event
	require.Equal(t, pi.Success, f.table.Enqueue.KernelLaunch(queue, kernel, 1, nil, global, []uint{2}, nil, &event))
	require.Equal(t, pi.Success, f.table.Event.Wait([]pi.Event{event}))
	assert.Equal(t, pi.Success, f.table.Event.Release(event))

	got := make([]byte, 4)
	require.Equal(t, pi.Success, f.table.Enqueue.MemBufferRead(queue, buffer, true, 0, got, nil, nil))
	assert.Equal(t, []byte{3, 6, 9, 12}, got)
}

func TestNativeKernel(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	args := []byte{1, 2, 3}
	var seen []byte
	fn := func(copied []byte) {
		seen = copied
		copied[0] = 9
	}
	require.Equal(t, pi.Success, f.table.Enqueue.NativeKernel(queue, fn, args, nil, nil, nil, nil))
	require.Equal(t, pi.Success, f.table.Queue.Finish(queue))
	assert.Equal(t, []byte{9, 2, 3}, seen)
	assert.Equal(t, []byte{1, 2, 3}, args)
}

func TestImageReadWrite(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	format := &pi.ImageFormat{ChannelOrder: pi.ImageChannelOrderRGBA, ChannelType: pi.ImageChannelTypeUnsignedInt8}
	desc := &pi.ImageDesc{Type: pi.MemTypeImage2D, Width: 4, Height: 2}
	image, res := f.table.Mem.ImageCreate(f.ctx, pi.MemFlagsReadWrite, format, desc, nil)
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Mem.Release(image)) }()

	elemSize, res := hostlayout.Query[uint](func(value []byte) (uint, pi.Result) {
		return f.table.Mem.ImageGetInfo(image, pi.ImageInfoElementSize, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint(4), elemSize)

	color := make([]byte, 16)
	for i, c := range []uint32{10, 20, 30, 40} {
		binary.NativeEndian.PutUint32(color[4*i:], c)
	}
	require.Equal(t, pi.Success, f.table.Enqueue.MemImageFill(queue, image, color, [3]uint{1, 0, 0}, [3]uint{2, 2, 1}, nil, nil))

	pixels := make([]byte, 4*4*2)
	require.Equal(t, pi.Success, f.table.Enqueue.MemImageRead(queue, image, true, [3]uint{0, 0, 0}, [3]uint{4, 2, 1}, 0, 0, pixels, nil, nil))
	row := []byte{0, 0, 0, 0, 10, 20, 30, 40, 10, 20, 30, 40, 0, 0, 0, 0}
	assert.Equal(t, append(append([]byte{}, row...), row...), pixels)

	pixel := []byte{1, 2, 3, 4}
	require.Equal(t, pi.Success, f.table.Enqueue.MemImageWrite(queue, image, true, [3]uint{3, 1, 0}, [3]uint{1, 1, 1}, 0, 0, pixel, nil, nil))
	got := make([]byte, 4)
	require.Equal(t, pi.Success, f.table.Enqueue.MemImageRead(queue, image, true, [3]uint{3, 1, 0}, [3]uint{1, 1, 1}, 0, 0, got, nil, nil))
	assert.Equal(t, pixel, got)

	assert.Equal(t, pi.InvalidValue, f.table.Enqueue.MemImageRead(queue, image, true, [3]uint{4, 0, 0}, [3]uint{1, 1, 1}, 0, 0, got, nil, nil))
}
