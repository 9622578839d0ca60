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

package clsim

import (
	"bytes"
	"slices"
	"unsafe"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

// prepareFunc validates the arguments of a command. It returns the function
// executing the command.
type prepareFunc func(q *queue) (exec func() cl.Int, status cl.Int)

// enqueue submits a command to a queue, runs the commands that can run, and
// waits for the command to complete if blocking is true.
func (s *Sim) enqueue(name string, queueID cl.CommandQueue, cmdType cl.CommandType, blocking bool, waitList []cl.Event, out *cl.Event, prepare prepareFunc) cl.Int {
	s.mu.Lock()
	s.calls[name]++
	ev, status := func() (*event, cl.Int) {
		q, ok := lookup[*queue](s, uintptr(queueID))
		if !ok {
			return nil, cl.InvalidCommandQueue
		}
		waits, status := s.waitEvents(q.ctx, waitList)
		if status != cl.Success {
			return nil, status
		}
		exec, status := prepare(q)
		if status != cl.Success {
			return nil, status
		}
		ev := s.submit(q, cmdType, waits, exec)
		if out != nil {
			s.retain(ev)
			*out = cl.Event(ev.id)
		}
		return ev, cl.Success
	}()
	if status != cl.Success {
		s.mu.Unlock()
		return status
	}
	deferred := s.flush()
	s.mu.Unlock()
	run(deferred)
	if !blocking {
		return cl.Success
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wait(ev)
}

// buffer returns a buffer of the context of a queue.
func (s *Sim) buffer(q *queue, id cl.Mem) (*mem, cl.Int) {
	m, ok := lookup[*mem](s, uintptr(id))
	if !ok || m.isImage() {
		return nil, cl.InvalidMemObject
	}
	if m.ctx != q.ctx {
		return nil, cl.InvalidContext
	}
	return m, cl.Success
}

// image returns an image of the context of a queue.
func (s *Sim) image(q *queue, id cl.Mem) (*mem, cl.Int) {
	m, ok := lookup[*mem](s, uintptr(id))
	if !ok || !m.isImage() {
		return nil, cl.InvalidMemObject
	}
	if m.ctx != q.ctx {
		return nil, cl.InvalidContext
	}
	return m, cl.Success
}

// root returns the buffer owning the storage of a buffer and the offset of
// the buffer in that storage.
func (m *mem) root() (*mem, uint) {
	if m.parent != nil {
		return m.parent, m.offset
	}
	return m, 0
}

func inRange(offset, size uint, data []byte) bool {
	return offset+size >= offset && offset+size <= uint(len(data))
}

// resolveArgs returns the arguments of a kernel launch. Arguments holding
// the handle of a memory object are replaced by the storage of the object.
func (s *Sim) resolveArgs(k *kernel) []Arg {
	args := make([]Arg, len(k.args))
	for i, arg := range k.args {
		switch {
		case arg.local > 0:
			args[i].LocalSize = arg.local
		case len(arg.value) == int(unsafe.Sizeof(cl.Mem(0))):
			if m, ok := lookup[*mem](s, uintptr(hostlayout.Get[cl.Mem](arg.value))); ok {
				args[i].Buffer = m.data
				continue
			}
			args[i].Value = arg.value
		default:
			args[i].Value = arg.value
		}
	}
	return args
}

// EnqueueNDRangeKernel launches a kernel. Kernels without a registered
// implementation complete without doing anything.
func (s *Sim) EnqueueNDRangeKernel(queueID cl.CommandQueue, kernelID cl.Kernel, workDim uint32, globalOffset, globalSize, localSize []uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueNDRangeKernel", queueID, cl.CommandNDRangeKernel, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		k, ok := lookup[*kernel](s, uintptr(kernelID))
		if !ok {
			return nil, cl.InvalidKernel
		}
		if k.prog.ctx != q.ctx {
			return nil, cl.InvalidContext
		}
		if !k.prog.hasDevice(q.dev) {
			return nil, cl.InvalidProgramExecutable
		}
		if workDim < 1 || workDim > 3 {
			return nil, cl.InvalidWorkDimension
		}
		if uint32(len(globalSize)) < workDim {
			return nil, cl.InvalidGlobalWorkSize
		}
		global := slices.Clone(globalSize[:workDim])
		if slices.Contains(global, 0) {
			return nil, cl.InvalidGlobalWorkSize
		}
		if globalOffset != nil && uint32(len(globalOffset)) < workDim {
			return nil, cl.InvalidGlobalOffset
		}
		if localSize != nil {
			if uint32(len(localSize)) < workDim {
				return nil, cl.InvalidWorkGroupSize
			}
			groupSize := uint(1)
			for i, l := range localSize[:workDim] {
				if l == 0 || global[i]%l != 0 {
					return nil, cl.InvalidWorkGroupSize
				}
				groupSize *= l
			}
			if groupSize > q.dev.cfg.MaxWorkGroup {
				return nil, cl.InvalidWorkGroupSize
			}
		}
		for _, arg := range k.args {
			if !arg.set {
				return nil, cl.InvalidKernelArgs
			}
		}
		impl, registered := s.kernels[k.name]
		args := s.resolveArgs(k)
		return func() cl.Int {
			if registered && impl.Run != nil {
				impl.Run(args, global)
			}
			return cl.Success
		}, cl.Success
	})
}

// EnqueueNativeKernel runs a host function on a copy of args. The handles
// at memLocs in the copy are replaced by the host address of the storage of
// the buffers of memList.
func (s *Sim) EnqueueNativeKernel(queueID cl.CommandQueue, fn cl.NativeKernelFunc, args []byte, memList []cl.Mem, memLocs []uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueNativeKernel", queueID, cl.CommandNativeKernel, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		if fn == nil || len(memList) != len(memLocs) || (args == nil && len(memList) > 0) {
			return nil, cl.InvalidValue
		}
		handleSize := uint(unsafe.Sizeof(cl.Mem(0)))
		buffers := make([]*mem, len(memList))
		for i, id := range memList {
			m, status := s.buffer(q, id)
			if status != cl.Success {
				return nil, cl.InvalidMemObject
			}
			if !inRange(memLocs[i], handleSize, args) {
				return nil, cl.InvalidValue
			}
			buffers[i] = m
		}
		argsCopy := slices.Clone(args)
		return func() cl.Int {
			for i, m := range buffers {
				hostlayout.Put(argsCopy[memLocs[i]:], hostAddress(m))
			}
			fn(argsCopy)
			return cl.Success
		}, cl.Success
	})
}

// hostAddress returns the address of the first byte of a buffer.
func hostAddress(m *mem) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(m.data)))
}

// EnqueueMarkerWithWaitList completes once the events of the wait list, or
// all the previous commands of the queue, complete.
func (s *Sim) EnqueueMarkerWithWaitList(queueID cl.CommandQueue, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueMarkerWithWaitList", queueID, cl.CommandMarker, false, waitList, event, func(*queue) (func() cl.Int, cl.Int) {
		return func() cl.Int { return cl.Success }, cl.Success
	})
}

// EnqueueReadBuffer copies a buffer range to host memory.
func (s *Sim) EnqueueReadBuffer(queueID cl.CommandQueue, buffer cl.Mem, blocking cl.Bool, offset uint, dst []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueReadBuffer", queueID, cl.CommandReadBuffer, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.buffer(q, buffer)
		if status != cl.Success {
			return nil, status
		}
		if len(dst) == 0 || !inRange(offset, uint(len(dst)), m.data) {
			return nil, cl.InvalidValue
		}
		return func() cl.Int {
			copy(dst, m.data[offset:])
			return cl.Success
		}, cl.Success
	})
}

// EnqueueWriteBuffer copies host memory to a buffer range.
func (s *Sim) EnqueueWriteBuffer(queueID cl.CommandQueue, buffer cl.Mem, blocking cl.Bool, offset uint, src []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueWriteBuffer", queueID, cl.CommandWriteBuffer, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.buffer(q, buffer)
		if status != cl.Success {
			return nil, status
		}
		if len(src) == 0 || !inRange(offset, uint(len(src)), m.data) {
			return nil, cl.InvalidValue
		}
		return func() cl.Int {
			copy(m.data[offset:], src)
			return cl.Success
		}, cl.Success
	})
}

func (s *Sim) enqueueBufferRect(name string, queueID cl.CommandQueue, cmdType cl.CommandType, buffer cl.Mem, blocking cl.Bool, r rect, host []byte, toHost bool, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue(name, queueID, cmdType, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.buffer(q, buffer)
		if status != cl.Success {
			return nil, status
		}
		src, dst := host, m.data
		if toHost {
			src, dst = m.data, host
		}
		if r.srcEnd() > uint(len(src)) || r.dstEnd() > uint(len(dst)) {
			return nil, cl.InvalidValue
		}
		return func() cl.Int {
			copyRect(dst, src, r)
			return cl.Success
		}, cl.Success
	})
}

// EnqueueReadBufferRect copies a 3D region of a buffer to host memory.
func (s *Sim) EnqueueReadBufferRect(queueID cl.CommandQueue, buffer cl.Mem, blocking cl.Bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, dst []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	r, status := bufferRect(bufferOrigin, hostOrigin, region, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch, true)
	if status != cl.Success {
		return status
	}
	return s.enqueueBufferRect("EnqueueReadBufferRect", queueID, cl.CommandReadBufferRect, buffer, blocking, r, dst, true, waitList, event)
}

// EnqueueWriteBufferRect copies a 3D region of host memory to a buffer.
func (s *Sim) EnqueueWriteBufferRect(queueID cl.CommandQueue, buffer cl.Mem, blocking cl.Bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, src []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	r, status := bufferRect(bufferOrigin, hostOrigin, region, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch, false)
	if status != cl.Success {
		return status
	}
	return s.enqueueBufferRect("EnqueueWriteBufferRect", queueID, cl.CommandWriteBufferRect, buffer, blocking, r, src, false, waitList, event)
}

// EnqueueCopyBuffer copies a range of a buffer to another buffer.
func (s *Sim) EnqueueCopyBuffer(queueID cl.CommandQueue, srcID, dstID cl.Mem, srcOffset, dstOffset, size uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueCopyBuffer", queueID, cl.CommandCopyBuffer, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		src, status := s.buffer(q, srcID)
		if status != cl.Success {
			return nil, status
		}
		dst, status := s.buffer(q, dstID)
		if status != cl.Success {
			return nil, status
		}
		if size == 0 || !inRange(srcOffset, size, src.data) || !inRange(dstOffset, size, dst.data) {
			return nil, cl.InvalidValue
		}
		srcRoot, srcBase := src.root()
		dstRoot, dstBase := dst.root()
		if srcRoot == dstRoot {
			srcStart, dstStart := srcBase+srcOffset, dstBase+dstOffset
			if srcStart < dstStart+size && dstStart < srcStart+size {
				return nil, cl.MemCopyOverlap
			}
		}
		return func() cl.Int {
			copy(dst.data[dstOffset:dstOffset+size], src.data[srcOffset:srcOffset+size])
			return cl.Success
		}, cl.Success
	})
}

// EnqueueCopyBufferRect copies a 3D region of a buffer to another buffer.
func (s *Sim) EnqueueCopyBufferRect(queueID cl.CommandQueue, srcID, dstID cl.Mem, srcOrigin, dstOrigin, region [3]uint, srcRowPitch, srcSlicePitch, dstRowPitch, dstSlicePitch uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueCopyBufferRect", queueID, cl.CommandCopyBufferRect, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		src, status := s.buffer(q, srcID)
		if status != cl.Success {
			return nil, status
		}
		dst, status := s.buffer(q, dstID)
		if status != cl.Success {
			return nil, status
		}
		if !validRegion(region) {
			return nil, cl.InvalidValue
		}
		srcPitch, status := pitches(region, srcRowPitch, srcSlicePitch)
		if status != cl.Success {
			return nil, status
		}
		dstPitch, status := pitches(region, dstRowPitch, dstSlicePitch)
		if status != cl.Success {
			return nil, status
		}
		r := rect{srcOrigin: srcOrigin, dstOrigin: dstOrigin, srcPitch: srcPitch, dstPitch: dstPitch, region: region}
		if r.srcEnd() > uint(len(src.data)) || r.dstEnd() > uint(len(dst.data)) {
			return nil, cl.InvalidValue
		}
		if src == dst && overlaps(&r) {
			return nil, cl.MemCopyOverlap
		}
		return func() cl.Int {
			copyRect(dst.data, src.data, r)
			return cl.Success
		}, cl.Success
	})
}

func validPattern(pattern []byte) bool {
	n := len(pattern)
	return n > 0 && n <= 128 && n&(n-1) == 0
}

// EnqueueFillBuffer fills a buffer range with a repeated pattern.
func (s *Sim) EnqueueFillBuffer(queueID cl.CommandQueue, buffer cl.Mem, pattern []byte, offset, size uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueFillBuffer", queueID, cl.CommandFillBuffer, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.buffer(q, buffer)
		if status != cl.Success {
			return nil, status
		}
		if !validPattern(pattern) {
			return nil, cl.InvalidValue
		}
		n := uint(len(pattern))
		if offset%n != 0 || size%n != 0 || !inRange(offset, size, m.data) {
			return nil, cl.InvalidValue
		}
		fill := bytes.Repeat(pattern, int(size/n))
		return func() cl.Int {
			copy(m.data[offset:offset+size], fill)
			return cl.Success
		}, cl.Success
	})
}

// hostImageRect returns the copy between an image region and host memory.
// The image is the source if toHost is true.
func hostImageRect(m *mem, origin, region [3]uint, rowPitch, slicePitch uint, toHost bool) (rect, cl.Int) {
	origin, region, status := imageRect(m, origin, region)
	if status != cl.Success {
		return rect{}, status
	}
	hostPitch, status := pitches(region, rowPitch, slicePitch)
	if status != cl.Success {
		return rect{}, status
	}
	if toHost {
		return rect{srcOrigin: origin, srcPitch: m.imagePitch(), dstPitch: hostPitch, region: region}, cl.Success
	}
	return rect{dstOrigin: origin, dstPitch: m.imagePitch(), srcPitch: hostPitch, region: region}, cl.Success
}

// EnqueueReadImage copies an image region to host memory.
func (s *Sim) EnqueueReadImage(queueID cl.CommandQueue, image cl.Mem, blocking cl.Bool, origin, region [3]uint, rowPitch, slicePitch uint, dst []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueReadImage", queueID, cl.CommandReadImage, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.image(q, image)
		if status != cl.Success {
			return nil, status
		}
		r, status := hostImageRect(m, origin, region, rowPitch, slicePitch, true)
		if status != cl.Success {
			return nil, status
		}
		if r.dstEnd() > uint(len(dst)) {
			return nil, cl.InvalidValue
		}
		return func() cl.Int {
			copyRect(dst, m.data, r)
			return cl.Success
		}, cl.Success
	})
}

// EnqueueWriteImage copies host memory to an image region.
func (s *Sim) EnqueueWriteImage(queueID cl.CommandQueue, image cl.Mem, blocking cl.Bool, origin, region [3]uint, rowPitch, slicePitch uint, src []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueWriteImage", queueID, cl.CommandWriteImage, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.image(q, image)
		if status != cl.Success {
			return nil, status
		}
		r, status := hostImageRect(m, origin, region, rowPitch, slicePitch, false)
		if status != cl.Success {
			return nil, status
		}
		if r.srcEnd() > uint(len(src)) {
			return nil, cl.InvalidValue
		}
		return func() cl.Int {
			copyRect(m.data, src, r)
			return cl.Success
		}, cl.Success
	})
}

// EnqueueCopyImage copies a region of an image to another image with the
// same format.
func (s *Sim) EnqueueCopyImage(queueID cl.CommandQueue, srcID, dstID cl.Mem, srcOrigin, dstOrigin, region [3]uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueCopyImage", queueID, cl.CommandCopyImage, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		src, status := s.image(q, srcID)
		if status != cl.Success {
			return nil, status
		}
		dst, status := s.image(q, dstID)
		if status != cl.Success {
			return nil, status
		}
		if src.format != dst.format {
			return nil, cl.ImageFormatMismatch
		}
		srcOrigin, srcRegion, status := imageRect(src, srcOrigin, region)
		if status != cl.Success {
			return nil, status
		}
		dstOrigin, _, status := imageRect(dst, dstOrigin, region)
		if status != cl.Success {
			return nil, status
		}
		r := rect{srcOrigin: srcOrigin, dstOrigin: dstOrigin, srcPitch: src.imagePitch(), dstPitch: dst.imagePitch(), region: srcRegion}
		if src == dst && overlaps(&r) {
			return nil, cl.MemCopyOverlap
		}
		return func() cl.Int {
			copyRect(dst.data, src.data, r)
			return cl.Success
		}, cl.Success
	})
}

// fillColorSize is the size of a fill color: four 32-bit components.
const fillColorSize = 16

// EnqueueFillImage fills an image region with a color.
func (s *Sim) EnqueueFillImage(queueID cl.CommandQueue, image cl.Mem, fillColor []byte, origin, region [3]uint, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueFillImage", queueID, cl.CommandFillImage, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.image(q, image)
		if status != cl.Success {
			return nil, status
		}
		if len(fillColor) != fillColorSize {
			return nil, cl.InvalidValue
		}
		origin, region, status := imageRect(m, origin, region)
		if status != cl.Success {
			return nil, status
		}
		pixel := encodePixel(m.format, fillColor)
		row := bytes.Repeat(pixel, int(region[0]/m.elemSize))
		r := rect{dstOrigin: origin, dstPitch: m.imagePitch(), srcPitch: [2]uint{0, 0}, region: region}
		return func() cl.Int {
			copyRect(m.data, row, r)
			return cl.Success
		}, cl.Success
	})
}

// EnqueueMapBuffer maps a buffer range. The returned slice is the storage
// of the buffer.
func (s *Sim) EnqueueMapBuffer(queueID cl.CommandQueue, buffer cl.Mem, blocking cl.Bool, flags cl.MapFlags, offset, size uint, waitList []cl.Event, event *cl.Event) ([]byte, cl.Int) {
	var mapped []byte
	status := s.enqueue("EnqueueMapBuffer", queueID, cl.CommandMapBuffer, blocking != cl.False, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, status := s.buffer(q, buffer)
		if status != cl.Success {
			return nil, status
		}
		if flags&^(cl.MapRead|cl.MapWrite|cl.MapWriteInvalidateRegion) != 0 {
			return nil, cl.InvalidValue
		}
		if flags&cl.MapWriteInvalidateRegion != 0 && flags&(cl.MapRead|cl.MapWrite) != 0 {
			return nil, cl.InvalidValue
		}
		if size == 0 || !inRange(offset, size, m.data) {
			return nil, cl.InvalidValue
		}
		mapped = m.data[offset : offset+size : offset+size]
		m.maps = append(m.maps, mapped)
		return func() cl.Int { return cl.Success }, cl.Success
	})
	if status != cl.Success {
		return nil, status
	}
	return mapped, cl.Success
}

// EnqueueUnmapMemObject unmaps a slice returned by EnqueueMapBuffer.
func (s *Sim) EnqueueUnmapMemObject(queueID cl.CommandQueue, memID cl.Mem, mapped []byte, waitList []cl.Event, event *cl.Event) cl.Int {
	return s.enqueue("EnqueueUnmapMemObject", queueID, cl.CommandUnmapMemObject, false, waitList, event, func(q *queue) (func() cl.Int, cl.Int) {
		m, ok := lookup[*mem](s, uintptr(memID))
		if !ok {
			return nil, cl.InvalidMemObject
		}
		if m.ctx != q.ctx {
			return nil, cl.InvalidContext
		}
		i := slices.IndexFunc(m.maps, func(b []byte) bool {
			return len(b) == len(mapped) && unsafe.SliceData(b) == unsafe.SliceData(mapped)
		})
		if i < 0 {
			return nil, cl.InvalidValue
		}
		m.maps = slices.Delete(m.maps, i, i+1)
		return func() cl.Int { return cl.Success }, cl.Success
	})
}
