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

package backend

import (
	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

func (b *Backend) enqueueKernelLaunch(queue pi.Queue, kernel pi.Kernel, workDim uint32, globalOffset, globalSize, localSize []uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueNDRangeKernel(
		piopencl.Queues.Native(queue),
		piopencl.Kernels.Native(kernel),
		workDim, globalOffset, globalSize, localSize,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueNativeKernel(queue pi.Queue, fn pi.NativeKernelFunc, args []byte, memList []pi.Mem, memLocs []uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueNativeKernel(
		piopencl.Queues.Native(queue),
		cl.NativeKernelFunc(fn),
		args,
		piopencl.Mems.NativeSlice(memList),
		memLocs,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueEventsWait(queue pi.Queue, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueMarkerWithWaitList(
		piopencl.Queues.Native(queue),
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferRead(queue pi.Queue, buffer pi.Mem, blocking bool, offset uint, dst []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueReadBuffer(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		piopencl.Bool(blocking),
		offset, dst,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferReadRect(queue pi.Queue, buffer pi.Mem, blocking bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, dst []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueReadBufferRect(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		piopencl.Bool(blocking),
		bufferOrigin, hostOrigin, region,
		bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch,
		dst,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferWrite(queue pi.Queue, buffer pi.Mem, blocking bool, offset uint, src []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueWriteBuffer(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		piopencl.Bool(blocking),
		offset, src,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferWriteRect(queue pi.Queue, buffer pi.Mem, blocking bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, src []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueWriteBufferRect(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		piopencl.Bool(blocking),
		bufferOrigin, hostOrigin, region,
		bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch,
		src,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferCopy(queue pi.Queue, src, dst pi.Mem, srcOffset, dstOffset, size uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueCopyBuffer(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(src),
		piopencl.Mems.Native(dst),
		srcOffset, dstOffset, size,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferCopyRect(queue pi.Queue, src, dst pi.Mem, srcOrigin, dstOrigin, region [3]uint, srcRowPitch, srcSlicePitch, dstRowPitch, dstSlicePitch uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueCopyBufferRect(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(src),
		piopencl.Mems.Native(dst),
		srcOrigin, dstOrigin, region,
		srcRowPitch, srcSlicePitch, dstRowPitch, dstSlicePitch,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemBufferFill(queue pi.Queue, buffer pi.Mem, pattern []byte, offset, size uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueFillBuffer(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		pattern, offset, size,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemImageRead(queue pi.Queue, image pi.Mem, blocking bool, origin, region [3]uint, rowPitch, slicePitch uint, dst []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueReadImage(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(image),
		piopencl.Bool(blocking),
		origin, region, rowPitch, slicePitch, dst,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemImageWrite(queue pi.Queue, image pi.Mem, blocking bool, origin, region [3]uint, rowPitch, slicePitch uint, src []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueWriteImage(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(image),
		piopencl.Bool(blocking),
		origin, region, rowPitch, slicePitch, src,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemImageCopy(queue pi.Queue, src, dst pi.Mem, srcOrigin, dstOrigin, region [3]uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueCopyImage(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(src),
		piopencl.Mems.Native(dst),
		srcOrigin, dstOrigin, region,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

func (b *Backend) enqueueMemImageFill(queue pi.Queue, image pi.Mem, fillColor []byte, origin, region [3]uint, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueFillImage(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(image),
		fillColor, origin, region,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}

// enqueueMemBufferMap returns a nil slice on failure.
func (b *Backend) enqueueMemBufferMap(queue pi.Queue, buffer pi.Mem, blocking bool, flags pi.MapFlags, offset, size uint, waitList []pi.Event, event *pi.Event) ([]byte, pi.Result) {
	mapped, status := b.api.EnqueueMapBuffer(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(buffer),
		piopencl.Bool(blocking),
		cl.MapFlags(flags),
		offset, size,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event))
	if status != cl.Success {
		return nil, piopencl.ToResult(status)
	}
	return mapped, pi.Success
}

func (b *Backend) enqueueMemUnmap(queue pi.Queue, mem pi.Mem, mapped []byte, waitList []pi.Event, event *pi.Event) pi.Result {
	return piopencl.ToResult(b.api.EnqueueUnmapMemObject(
		piopencl.Queues.Native(queue),
		piopencl.Mems.Native(mem),
		mapped,
		piopencl.Events.NativeSlice(waitList),
		piopencl.Events.NativeOut(event)))
}
