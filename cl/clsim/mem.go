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
	"slices"
	"unsafe"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

// SubBufferAlignment is the alignment in bytes of sub-buffer origins.
const SubBufferAlignment = 128

type (
	mem struct {
		objectHeader
		ctx     *context
		flags   cl.MemFlags
		typ     cl.MemObjectType
		data    []byte
		hostPtr []byte
		parent  *mem
		offset  uint
		maps    [][]byte

		// Image fields.
		format     cl.ImageFormat
		desc       cl.ImageDesc
		elemSize   uint
		rowPitch   uint
		slicePitch uint
	}
)

func (m *mem) destroy(s *Sim) {
	if m.parent != nil {
		s.release(m.parent)
	}
	s.release(m.ctx)
}

func (m *mem) isImage() bool {
	return m.typ != cl.MemObjectBuffer
}

// extent returns the size of an image in elements, rows, and slices.
func (m *mem) extent() [3]uint {
	d := m.desc
	switch m.typ {
	case cl.MemObjectImage1D:
		return [3]uint{d.Width, 1, 1}
	case cl.MemObjectImage1DArray:
		return [3]uint{d.Width, d.ArraySize, 1}
	case cl.MemObjectImage2D:
		return [3]uint{d.Width, d.Height, 1}
	case cl.MemObjectImage2DArray:
		return [3]uint{d.Width, d.Height, d.ArraySize}
	case cl.MemObjectImage3D:
		return [3]uint{d.Width, d.Height, d.Depth}
	}
	return [3]uint{uint(len(m.data)), 1, 1}
}

const (
	accessFlags = cl.MemReadWrite | cl.MemWriteOnly | cl.MemReadOnly
	hostFlags   = cl.MemUseHostPtr | cl.MemAllocHostPtr | cl.MemCopyHostPtr
)

func checkFlags(flags cl.MemFlags) cl.Int {
	if flags&^(accessFlags|hostFlags) != 0 {
		return cl.InvalidValue
	}
	if access := flags & accessFlags; access&(access-1) != 0 {
		return cl.InvalidValue
	}
	if flags&cl.MemUseHostPtr != 0 && flags&(cl.MemAllocHostPtr|cl.MemCopyHostPtr) != 0 {
		return cl.InvalidValue
	}
	return cl.Success
}

// checkHostPtr checks that a host pointer is given if and only if the flags
// require one.
func checkHostPtr(flags cl.MemFlags, hostPtr []byte, size uint) cl.Int {
	wantHost := flags&(cl.MemUseHostPtr|cl.MemCopyHostPtr) != 0
	if wantHost != (hostPtr != nil) {
		return cl.InvalidHostPtr
	}
	if hostPtr != nil && uint(len(hostPtr)) < size {
		return cl.InvalidHostPtr
	}
	return cl.Success
}

// CreateBuffer creates a buffer. A buffer created with cl.MemUseHostPtr
// stores its content in hostPtr.
func (s *Sim) CreateBuffer(ctxID cl.Context, flags cl.MemFlags, size uint, hostPtr []byte) (cl.Mem, cl.Int) {
	defer s.enter("CreateBuffer")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if status := checkFlags(flags); status != cl.Success {
		return 0, status
	}
	if size == 0 {
		return 0, cl.InvalidBufferSize
	}
	for _, d := range ctx.devices {
		if uint64(size) > d.cfg.GlobalMemSize {
			return 0, cl.InvalidBufferSize
		}
	}
	if status := checkHostPtr(flags, hostPtr, size); status != cl.Success {
		return 0, status
	}
	m := &mem{ctx: ctx, flags: flags, typ: cl.MemObjectBuffer}
	if flags&cl.MemUseHostPtr != 0 {
		m.hostPtr = hostPtr[:size:size]
		m.data = m.hostPtr
	} else {
		m.data = make([]byte, size)
		copy(m.data, hostPtr)
	}
	s.retain(ctx)
	return cl.Mem(s.add(m, kindMem)), cl.Success
}

// CreateSubBuffer creates a buffer sharing the storage of another buffer.
func (s *Sim) CreateSubBuffer(id cl.Mem, flags cl.MemFlags, createType cl.BufferCreateType, info *cl.BufferRegion) (cl.Mem, cl.Int) {
	defer s.enter("CreateSubBuffer")()
	parent, ok := lookup[*mem](s, uintptr(id))
	if !ok || parent.isImage() || parent.parent != nil {
		return 0, cl.InvalidMemObject
	}
	if createType != cl.BufferCreateTypeRegion || info == nil {
		return 0, cl.InvalidValue
	}
	if flags&hostFlags != 0 {
		return 0, cl.InvalidValue
	}
	if status := checkFlags(flags); status != cl.Success {
		return 0, status
	}
	if flags&accessFlags == 0 {
		flags |= parent.flags & accessFlags
	}
	if info.Size == 0 {
		return 0, cl.InvalidBufferSize
	}
	if info.Origin+info.Size > uint(len(parent.data)) || info.Origin+info.Size < info.Origin {
		return 0, cl.InvalidValue
	}
	if info.Origin%SubBufferAlignment != 0 {
		return 0, cl.MisalignedSubBufferOffset
	}
	end := info.Origin + info.Size
	m := &mem{
		ctx:    parent.ctx,
		flags:  flags | parent.flags&hostFlags,
		typ:    cl.MemObjectBuffer,
		data:   parent.data[info.Origin:end:end],
		parent: parent,
		offset: info.Origin,
	}
	if parent.hostPtr != nil {
		m.hostPtr = m.data
	}
	s.retain(parent)
	s.retain(parent.ctx)
	return cl.Mem(s.add(m, kindMem)), cl.Success
}

var channelCounts = map[cl.ChannelOrder]uint{
	cl.ChannelR:    1,
	cl.ChannelA:    1,
	cl.ChannelRG:   2,
	cl.ChannelRA:   2,
	cl.ChannelRGB:  3,
	cl.ChannelRGBA: 4,
	cl.ChannelBGRA: 4,
}

var channelSizes = map[cl.ChannelType]uint{
	cl.SnormInt8:     1,
	cl.SnormInt16:    2,
	cl.UnormInt8:     1,
	cl.UnormInt16:    2,
	cl.SignedInt8:    1,
	cl.SignedInt16:   2,
	cl.SignedInt32:   4,
	cl.UnsignedInt8:  1,
	cl.UnsignedInt16: 2,
	cl.UnsignedInt32: 4,
	cl.HalfFloat:     2,
	cl.Float:         4,
}

// elementSize returns the size of an image element in bytes.
func elementSize(format *cl.ImageFormat) (uint, cl.Int) {
	count, okOrder := channelCounts[format.ChannelOrder]
	size, okType := channelSizes[format.ChannelDataType]
	if !okOrder || !okType {
		return 0, cl.InvalidImageFormatDescriptor
	}
	if format.ChannelOrder == cl.ChannelRGB {
		// RGB is only defined for packed types, which are not supported.
		return 0, cl.ImageFormatNotSupported
	}
	if format.ChannelOrder == cl.ChannelBGRA && size != 1 {
		return 0, cl.ImageFormatNotSupported
	}
	return count * size, cl.Success
}

// CreateImage creates an image. Images always own their storage: content
// given with cl.MemUseHostPtr is copied like with cl.MemCopyHostPtr.
func (s *Sim) CreateImage(ctxID cl.Context, flags cl.MemFlags, format *cl.ImageFormat, desc *cl.ImageDesc, hostPtr []byte) (cl.Mem, cl.Int) {
	defer s.enter("CreateImage")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if status := checkFlags(flags); status != cl.Success {
		return 0, status
	}
	if format == nil {
		return 0, cl.InvalidImageFormatDescriptor
	}
	if desc == nil {
		return 0, cl.InvalidImageDescriptor
	}
	elem, status := elementSize(format)
	if status != cl.Success {
		return 0, status
	}
	m := &mem{ctx: ctx, flags: flags, typ: desc.Type, format: *format, desc: *desc, elemSize: elem}
	switch desc.Type {
	case cl.MemObjectImage1D, cl.MemObjectImage1DArray, cl.MemObjectImage2D, cl.MemObjectImage2DArray, cl.MemObjectImage3D:
	default:
		return 0, cl.InvalidImageDescriptor
	}
	if desc.NumMipLevels != 0 || desc.NumSamples != 0 || desc.Buffer != 0 {
		return 0, cl.InvalidImageDescriptor
	}
	ext := m.extent()
	if ext[0] == 0 || ext[1] == 0 || ext[2] == 0 {
		return 0, cl.InvalidImageSize
	}
	if hostPtr == nil && (desc.RowPitch != 0 || desc.SlicePitch != 0) {
		return 0, cl.InvalidImageDescriptor
	}
	m.rowPitch = ext[0] * elem
	m.slicePitch = m.rowPitch * ext[1]
	if m.typ == cl.MemObjectImage1DArray {
		// Each element of a 1D array is a slice.
		m.slicePitch = m.rowPitch
		ext = [3]uint{ext[0], 1, ext[1]}
	}
	m.data = make([]byte, m.slicePitch*ext[2])
	hostRow, hostSlice := desc.RowPitch, desc.SlicePitch
	if hostRow == 0 {
		hostRow = m.rowPitch
	}
	if hostSlice == 0 {
		hostSlice = hostRow * ext[1]
	}
	if hostRow < m.rowPitch || hostSlice < hostRow*ext[1] {
		return 0, cl.InvalidImageDescriptor
	}
	if status := checkHostPtr(flags, hostPtr, hostSlice*(ext[2]-1)+hostRow*(ext[1]-1)+m.rowPitch); status != cl.Success {
		return 0, status
	}
	if hostPtr != nil {
		copyRect(m.data, hostPtr, rect{
			dstPitch: [2]uint{m.rowPitch, m.slicePitch},
			srcPitch: [2]uint{hostRow, hostSlice},
			region:   [3]uint{m.rowPitch, ext[1], ext[2]},
		})
	}
	s.retain(ctx)
	return cl.Mem(s.add(m, kindMem)), cl.Success
}

// GetMemObjectInfo queries a buffer or an image.
func (s *Sim) GetMemObjectInfo(id cl.Mem, name cl.MemInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetMemObjectInfo")()
	m, ok := lookup[*mem](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidMemObject
	}
	switch name {
	case cl.MemType:
		return put(hostlayout.Put(value, m.typ))
	case cl.MemFlagsInfo:
		return put(hostlayout.Put(value, m.flags))
	case cl.MemSize:
		return put(hostlayout.Put(value, uint(len(m.data))))
	case cl.MemHostPtr:
		var ptr uintptr
		if m.hostPtr != nil {
			ptr = uintptr(unsafe.Pointer(unsafe.SliceData(m.hostPtr)))
		}
		return put(hostlayout.Put(value, ptr))
	case cl.MemMapCount:
		return put(hostlayout.Put(value, uint32(len(m.maps))))
	case cl.MemReferenceCount:
		return put(hostlayout.Put(value, s.refCount(m)))
	case cl.MemContext:
		return put(hostlayout.Put(value, cl.Context(m.ctx.id)))
	case cl.MemAssociatedMemObject:
		var parent cl.Mem
		if m.parent != nil {
			parent = cl.Mem(m.parent.id)
		}
		return put(hostlayout.Put(value, parent))
	case cl.MemOffset:
		return put(hostlayout.Put(value, m.offset))
	}
	return 0, cl.InvalidValue
}

// GetImageInfo queries an image.
func (s *Sim) GetImageInfo(id cl.Mem, name cl.ImageInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetImageInfo")()
	m, ok := lookup[*mem](s, uintptr(id))
	if !ok || !m.isImage() {
		return 0, cl.InvalidMemObject
	}
	switch name {
	case cl.ImageFormatInfo:
		return put(hostlayout.PutSlice(value, []uint32{uint32(m.format.ChannelOrder), uint32(m.format.ChannelDataType)}))
	case cl.ImageElementSize:
		return put(hostlayout.Put(value, m.elemSize))
	case cl.ImageRowPitch:
		return put(hostlayout.Put(value, m.rowPitch))
	case cl.ImageSlicePitch:
		var pitch uint
		if slices.Contains([]cl.MemObjectType{cl.MemObjectImage1DArray, cl.MemObjectImage2DArray, cl.MemObjectImage3D}, m.typ) {
			pitch = m.slicePitch
		}
		return put(hostlayout.Put(value, pitch))
	case cl.ImageWidth:
		return put(hostlayout.Put(value, m.desc.Width))
	case cl.ImageHeight:
		var height uint
		if m.typ != cl.MemObjectImage1D && m.typ != cl.MemObjectImage1DArray {
			height = m.desc.Height
		}
		return put(hostlayout.Put(value, height))
	case cl.ImageDepth:
		var depth uint
		if m.typ == cl.MemObjectImage3D {
			depth = m.desc.Depth
		}
		return put(hostlayout.Put(value, depth))
	case cl.ImageArraySize:
		var size uint
		if m.typ == cl.MemObjectImage1DArray || m.typ == cl.MemObjectImage2DArray {
			size = m.desc.ArraySize
		}
		return put(hostlayout.Put(value, size))
	case cl.ImageNumMipLevels:
		return put(hostlayout.Put(value, m.desc.NumMipLevels))
	case cl.ImageNumSamples:
		return put(hostlayout.Put(value, m.desc.NumSamples))
	}
	return 0, cl.InvalidValue
}

// RetainMemObject retains a buffer or an image.
func (s *Sim) RetainMemObject(id cl.Mem) cl.Int {
	defer s.enter("RetainMemObject")()
	return retainHandle[*mem](s, uintptr(id), cl.InvalidMemObject)
}

// ReleaseMemObject releases a buffer or an image.
func (s *Sim) ReleaseMemObject(id cl.Mem) cl.Int {
	defer s.enter("ReleaseMemObject")()
	return releaseHandle[*mem](s, uintptr(id), cl.InvalidMemObject)
}
