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

package cl

type (
	// ContextNotify receives errors reported by an implementation for a context.
	ContextNotify func(errInfo string, privateInfo []byte, userData any)

	// ProgramNotify is called when a program build, compile, or link completes.
	ProgramNotify func(program Program, userData any)

	// EventNotify is called when an event reaches a given execution status.
	EventNotify func(event Event, status CommandExecutionStatus, userData any)

	// NativeKernelFunc is a host function enqueued as a native kernel.
	NativeKernelFunc func(args []byte)
)

// Extension entry points resolved with GetExtensionFunctionAddressForPlatform.
type (
	// CreateProgramWithILFunc is the signature of clCreateProgramWithILKHR.
	CreateProgramWithILFunc func(ctx Context, il []byte) (Program, Int)

	// GetDeviceFunctionPointerFunc is the signature of
	// clGetDeviceFunctionPointerINTEL.
	GetDeviceFunctionPointerFunc func(device DeviceID, program Program, name string) (uint64, Int)
)

// Names of the extension entry points.
const (
	CreateProgramWithILKHR         = "clCreateProgramWithILKHR"
	GetDeviceFunctionPointerINTEL  = "clGetDeviceFunctionPointerINTEL"
	ILProgramExtension             = "cl_khr_il_program"
	FunctionPointersINTELExtension = "cl_intel_function_pointers"
)

// API is the native compute API.
//
// Methods mirror the C entry points. Counts of input arrays are the slice
// lengths. Info queries write at most len(value) bytes and return the size of
// the full value; a nil value only queries the size. Optional event outputs
// are pointers: a nil pointer requests no event.
type API interface {
	GetPlatformIDs(platforms []PlatformID) (uint32, Int)
	GetPlatformInfo(platform PlatformID, name PlatformInfo, value []byte) (uint, Int)

	GetDeviceIDs(platform PlatformID, deviceType DeviceType, devices []DeviceID) (uint32, Int)
	GetDeviceInfo(device DeviceID, name DeviceInfo, value []byte) (uint, Int)
	CreateSubDevices(device DeviceID, properties []DevicePartitionProperty, devices []DeviceID) (uint32, Int)
	RetainDevice(device DeviceID) Int
	ReleaseDevice(device DeviceID) Int

	// GetExtensionFunctionAddressForPlatform returns the extension entry point
	// with the given name, or nil. The returned value has the Go function type
	// documented for that name.
	GetExtensionFunctionAddressForPlatform(platform PlatformID, name string) any

	CreateContext(properties []ContextProperties, devices []DeviceID, notify ContextNotify, userData any) (Context, Int)
	GetContextInfo(ctx Context, name ContextInfo, value []byte) (uint, Int)
	RetainContext(ctx Context) Int
	ReleaseContext(ctx Context) Int

	CreateCommandQueue(ctx Context, device DeviceID, properties CommandQueueProperties) (CommandQueue, Int)
	CreateCommandQueueWithProperties(ctx Context, device DeviceID, properties []QueueProperties) (CommandQueue, Int)
	GetCommandQueueInfo(queue CommandQueue, name CommandQueueInfo, value []byte) (uint, Int)
	Finish(queue CommandQueue) Int
	RetainCommandQueue(queue CommandQueue) Int
	ReleaseCommandQueue(queue CommandQueue) Int

	CreateBuffer(ctx Context, flags MemFlags, size uint, hostPtr []byte) (Mem, Int)
	CreateSubBuffer(buffer Mem, flags MemFlags, createType BufferCreateType, info *BufferRegion) (Mem, Int)
	CreateImage(ctx Context, flags MemFlags, format *ImageFormat, desc *ImageDesc, hostPtr []byte) (Mem, Int)
	GetMemObjectInfo(mem Mem, name MemInfo, value []byte) (uint, Int)
	GetImageInfo(image Mem, name ImageInfo, value []byte) (uint, Int)
	RetainMemObject(mem Mem) Int
	ReleaseMemObject(mem Mem) Int

	CreateProgramWithSource(ctx Context, sources []string) (Program, Int)
	CreateProgramWithBinary(ctx Context, devices []DeviceID, binaries [][]byte, binaryStatus []Int) (Program, Int)
	CreateProgramWithIL(ctx Context, il []byte) (Program, Int)
	GetProgramInfo(program Program, name ProgramInfo, value []byte) (uint, Int)
	CompileProgram(program Program, devices []DeviceID, options string, headers []Program, headerNames []string, notify ProgramNotify, userData any) Int
	BuildProgram(program Program, devices []DeviceID, options string, notify ProgramNotify, userData any) Int
	LinkProgram(ctx Context, devices []DeviceID, options string, inputs []Program, notify ProgramNotify, userData any) (Program, Int)
	GetProgramBuildInfo(program Program, device DeviceID, name ProgramBuildInfo, value []byte) (uint, Int)
	RetainProgram(program Program) Int
	ReleaseProgram(program Program) Int

	CreateKernel(program Program, name string) (Kernel, Int)
	// SetKernelArg binds argument index. A nil value with a non-zero size
	// declares local memory.
	SetKernelArg(kernel Kernel, index uint32, size uint, value []byte) Int
	GetKernelInfo(kernel Kernel, name KernelInfo, value []byte) (uint, Int)
	GetKernelWorkGroupInfo(kernel Kernel, device DeviceID, name KernelWorkGroupInfo, value []byte) (uint, Int)
	GetKernelSubGroupInfo(kernel Kernel, device DeviceID, name KernelSubGroupInfo, input []byte, value []byte) (uint, Int)
	RetainKernel(kernel Kernel) Int
	ReleaseKernel(kernel Kernel) Int

	CreateUserEvent(ctx Context) (Event, Int)
	GetEventInfo(event Event, name EventInfo, value []byte) (uint, Int)
	GetEventProfilingInfo(event Event, name ProfilingInfo, value []byte) (uint, Int)
	WaitForEvents(events []Event) Int
	SetEventCallback(event Event, status CommandExecutionStatus, notify EventNotify, userData any) Int
	SetUserEventStatus(event Event, status CommandExecutionStatus) Int
	RetainEvent(event Event) Int
	ReleaseEvent(event Event) Int

	CreateSampler(ctx Context, normalizedCoords Bool, addressing AddressingMode, filter FilterMode) (Sampler, Int)
	GetSamplerInfo(sampler Sampler, name SamplerInfo, value []byte) (uint, Int)
	RetainSampler(sampler Sampler) Int
	ReleaseSampler(sampler Sampler) Int

	EnqueueNDRangeKernel(queue CommandQueue, kernel Kernel, workDim uint32, globalOffset, globalSize, localSize []uint, waitList []Event, event *Event) Int
	// EnqueueNativeKernel runs fn on a copy of args. memLocs holds the byte
	// offsets in args where the handles of memList are stored.
	EnqueueNativeKernel(queue CommandQueue, fn NativeKernelFunc, args []byte, memList []Mem, memLocs []uint, waitList []Event, event *Event) Int
	EnqueueMarkerWithWaitList(queue CommandQueue, waitList []Event, event *Event) Int
	EnqueueReadBuffer(queue CommandQueue, buffer Mem, blocking Bool, offset uint, dst []byte, waitList []Event, event *Event) Int
	EnqueueReadBufferRect(queue CommandQueue, buffer Mem, blocking Bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, dst []byte, waitList []Event, event *Event) Int
	EnqueueWriteBuffer(queue CommandQueue, buffer Mem, blocking Bool, offset uint, src []byte, waitList []Event, event *Event) Int
	EnqueueWriteBufferRect(queue CommandQueue, buffer Mem, blocking Bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, src []byte, waitList []Event, event *Event) Int
	EnqueueCopyBuffer(queue CommandQueue, src, dst Mem, srcOffset, dstOffset, size uint, waitList []Event, event *Event) Int
	EnqueueCopyBufferRect(queue CommandQueue, src, dst Mem, srcOrigin, dstOrigin, region [3]uint, srcRowPitch, srcSlicePitch, dstRowPitch, dstSlicePitch uint, waitList []Event, event *Event) Int
	EnqueueFillBuffer(queue CommandQueue, buffer Mem, pattern []byte, offset, size uint, waitList []Event, event *Event) Int
	EnqueueReadImage(queue CommandQueue, image Mem, blocking Bool, origin, region [3]uint, rowPitch, slicePitch uint, dst []byte, waitList []Event, event *Event) Int
	EnqueueWriteImage(queue CommandQueue, image Mem, blocking Bool, origin, region [3]uint, rowPitch, slicePitch uint, src []byte, waitList []Event, event *Event) Int
	EnqueueCopyImage(queue CommandQueue, src, dst Mem, srcOrigin, dstOrigin, region [3]uint, waitList []Event, event *Event) Int
	// EnqueueFillImage fills a region with a color given as four 32-bit
	// components in host byte order.
	EnqueueFillImage(queue CommandQueue, image Mem, fillColor []byte, origin, region [3]uint, waitList []Event, event *Event) Int
	EnqueueMapBuffer(queue CommandQueue, buffer Mem, blocking Bool, flags MapFlags, offset, size uint, waitList []Event, event *Event) ([]byte, Int)
	EnqueueUnmapMemObject(queue CommandQueue, mem Mem, mapped []byte, waitList []Event, event *Event) Int
}
