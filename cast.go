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

// Package piopencl converts values between the Plugin Interface and the
// native compute API.
//
// Each resource category has one HandleCast. A PI handle of a category can
// only be converted to the native handle of the same category: converting a
// pi.Queue with Programs does not compile.
package piopencl

import (
	"unsafe"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

// Handle is an opaque handle.
type Handle interface{ ~uintptr }

// HandleCast converts the handles of one resource category.
type HandleCast[P, C Handle] struct{}

// Native returns the native handle of a PI handle.
func (HandleCast[P, C]) Native(h P) C {
	return C(h)
}

// Adapter returns the PI handle of a native handle.
func (HandleCast[P, C]) Adapter(h C) P {
	return P(h)
}

// NativeSlice reinterprets a slice of PI handles as native handles without
// copying.
func (HandleCast[P, C]) NativeSlice(hs []P) []C {
	if hs == nil {
		return nil
	}
	return unsafe.Slice((*C)(unsafe.Pointer(unsafe.SliceData(hs))), len(hs))
}

// AdapterSlice reinterprets a slice of native handles as PI handles without
// copying.
func (HandleCast[P, C]) AdapterSlice(hs []C) []P {
	if hs == nil {
		return nil
	}
	return unsafe.Slice((*P)(unsafe.Pointer(unsafe.SliceData(hs))), len(hs))
}

// NativeOut reinterprets an output location. nil stays nil.
func (HandleCast[P, C]) NativeOut(h *P) *C {
	return (*C)(unsafe.Pointer(h))
}

// Casts of each resource category.
var (
	Platforms HandleCast[pi.Platform, cl.PlatformID]
	Devices   HandleCast[pi.Device, cl.DeviceID]
	Contexts  HandleCast[pi.Context, cl.Context]
	Queues    HandleCast[pi.Queue, cl.CommandQueue]
	Mems      HandleCast[pi.Mem, cl.Mem]
	Programs  HandleCast[pi.Program, cl.Program]
	Kernels   HandleCast[pi.Kernel, cl.Kernel]
	Events    HandleCast[pi.Event, cl.Event]
	Samplers  HandleCast[pi.Sampler, cl.Sampler]
)

// Both sides of a cast must have the same size. A mismatch makes an array
// length negative and fails compilation.
var (
	_ [unsafe.Sizeof(pi.Platform(0)) - unsafe.Sizeof(cl.PlatformID(0))]struct{}
	_ [unsafe.Sizeof(cl.PlatformID(0)) - unsafe.Sizeof(pi.Platform(0))]struct{}
	_ [unsafe.Sizeof(pi.Device(0)) - unsafe.Sizeof(cl.DeviceID(0))]struct{}
	_ [unsafe.Sizeof(cl.DeviceID(0)) - unsafe.Sizeof(pi.Device(0))]struct{}
	_ [unsafe.Sizeof(pi.Context(0)) - unsafe.Sizeof(cl.Context(0))]struct{}
	_ [unsafe.Sizeof(cl.Context(0)) - unsafe.Sizeof(pi.Context(0))]struct{}
	_ [unsafe.Sizeof(pi.Queue(0)) - unsafe.Sizeof(cl.CommandQueue(0))]struct{}
	_ [unsafe.Sizeof(cl.CommandQueue(0)) - unsafe.Sizeof(pi.Queue(0))]struct{}
	_ [unsafe.Sizeof(pi.Mem(0)) - unsafe.Sizeof(cl.Mem(0))]struct{}
	_ [unsafe.Sizeof(cl.Mem(0)) - unsafe.Sizeof(pi.Mem(0))]struct{}
	_ [unsafe.Sizeof(pi.Program(0)) - unsafe.Sizeof(cl.Program(0))]struct{}
	_ [unsafe.Sizeof(cl.Program(0)) - unsafe.Sizeof(pi.Program(0))]struct{}
	_ [unsafe.Sizeof(pi.Kernel(0)) - unsafe.Sizeof(cl.Kernel(0))]struct{}
	_ [unsafe.Sizeof(cl.Kernel(0)) - unsafe.Sizeof(pi.Kernel(0))]struct{}
	_ [unsafe.Sizeof(pi.Event(0)) - unsafe.Sizeof(cl.Event(0))]struct{}
	_ [unsafe.Sizeof(cl.Event(0)) - unsafe.Sizeof(pi.Event(0))]struct{}
	_ [unsafe.Sizeof(pi.Sampler(0)) - unsafe.Sizeof(cl.Sampler(0))]struct{}
	_ [unsafe.Sizeof(cl.Sampler(0)) - unsafe.Sizeof(pi.Sampler(0))]struct{}

	_ [unsafe.Sizeof(pi.ImageDesc{}) - unsafe.Sizeof(cl.ImageDesc{})]struct{}
	_ [unsafe.Sizeof(cl.ImageDesc{}) - unsafe.Sizeof(pi.ImageDesc{})]struct{}
	_ [unsafe.Offsetof(pi.ImageDesc{}.Buffer) - unsafe.Offsetof(cl.ImageDesc{}.Buffer)]struct{}
	_ [unsafe.Offsetof(cl.ImageDesc{}.Buffer) - unsafe.Offsetof(pi.ImageDesc{}.Buffer)]struct{}
)

// NativeImageDesc reinterprets an image descriptor. nil stays nil.
func NativeImageDesc(desc *pi.ImageDesc) *cl.ImageDesc {
	return (*cl.ImageDesc)(unsafe.Pointer(desc))
}

// NativeImageFormat converts an image format. nil stays nil.
func NativeImageFormat(format *pi.ImageFormat) *cl.ImageFormat {
	if format == nil {
		return nil
	}
	return &cl.ImageFormat{
		ChannelOrder:    cl.ChannelOrder(format.ChannelOrder),
		ChannelDataType: cl.ChannelType(format.ChannelType),
	}
}

// NativeBufferRegion converts a buffer region. The two types share their
// layout.
func NativeBufferRegion(region *pi.BufferRegion) *cl.BufferRegion {
	return (*cl.BufferRegion)(region)
}
