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

// Package cl defines the native compute API driven by the adapter.
//
// Types and values follow the OpenCL C API: handles are opaque machine words
// owned by the implementation, every call returns a status code, and info
// queries fill a caller provided byte buffer laid out in host byte order.
package cl

import "fmt"

// Native handles. The zero value is the null handle.
type (
	// PlatformID identifies a platform.
	PlatformID uintptr
	// DeviceID identifies a device.
	DeviceID uintptr
	// Context identifies a context.
	Context uintptr
	// CommandQueue identifies a command queue.
	CommandQueue uintptr
	// Mem identifies a buffer or image.
	Mem uintptr
	// Program identifies a program.
	Program uintptr
	// Kernel identifies a kernel.
	Kernel uintptr
	// Event identifies an event.
	Event uintptr
	// Sampler identifies a sampler.
	Sampler uintptr
)

// Int is a status code returned by the native API.
type Int int32

// Status codes.
const (
	Success                            Int = 0
	DeviceNotFound                     Int = -1
	DeviceNotAvailable                 Int = -2
	CompilerNotAvailable               Int = -3
	MemObjectAllocationFailure         Int = -4
	OutOfResources                     Int = -5
	OutOfHostMemory                    Int = -6
	ProfilingInfoNotAvailable          Int = -7
	MemCopyOverlap                     Int = -8
	ImageFormatMismatch                Int = -9
	ImageFormatNotSupported            Int = -10
	BuildProgramFailure                Int = -11
	MapFailure                         Int = -12
	MisalignedSubBufferOffset          Int = -13
	ExecStatusErrorForEventsInWaitList Int = -14
	CompileProgramFailure              Int = -15
	LinkProgramFailure                 Int = -17
	DevicePartitionFailed              Int = -18
	InvalidValue                       Int = -30
	InvalidDeviceType                  Int = -31
	InvalidPlatform                    Int = -32
	InvalidDevice                      Int = -33
	InvalidContext                     Int = -34
	InvalidQueueProperties             Int = -35
	InvalidCommandQueue                Int = -36
	InvalidHostPtr                     Int = -37
	InvalidMemObject                   Int = -38
	InvalidImageFormatDescriptor       Int = -39
	InvalidImageSize                   Int = -40
	InvalidSampler                     Int = -41
	InvalidBinary                      Int = -42
	InvalidBuildOptions                Int = -43
	InvalidProgram                     Int = -44
	InvalidProgramExecutable           Int = -45
	InvalidKernelName                  Int = -46
	InvalidKernelDefinition            Int = -47
	InvalidKernel                      Int = -48
	InvalidArgIndex                    Int = -49
	InvalidArgValue                    Int = -50
	InvalidArgSize                     Int = -51
	InvalidKernelArgs                  Int = -52
	InvalidWorkDimension               Int = -53
	InvalidWorkGroupSize               Int = -54
	InvalidWorkItemSize                Int = -55
	InvalidGlobalOffset                Int = -56
	InvalidEventWaitList               Int = -57
	InvalidEvent                       Int = -58
	InvalidOperation                   Int = -59
	InvalidBufferSize                  Int = -61
	InvalidGlobalWorkSize              Int = -63
	InvalidProperty                    Int = -64
	InvalidImageDescriptor             Int = -65
	InvalidCompilerOptions             Int = -66
	InvalidLinkerOptions               Int = -67
	InvalidDevicePartitionCount        Int = -68
	PlatformNotFoundKHR                Int = -1001
)

var statusNames = map[Int]string{
	Success:                            "CL_SUCCESS",
	DeviceNotFound:                     "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:                 "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:               "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure:         "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:                     "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:                    "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:          "CL_PROFILING_INFO_NOT_AVAILABLE",
	MemCopyOverlap:                     "CL_MEM_COPY_OVERLAP",
	ImageFormatMismatch:                "CL_IMAGE_FORMAT_MISMATCH",
	ImageFormatNotSupported:            "CL_IMAGE_FORMAT_NOT_SUPPORTED",
	BuildProgramFailure:                "CL_BUILD_PROGRAM_FAILURE",
	MapFailure:                         "CL_MAP_FAILURE",
	MisalignedSubBufferOffset:          "CL_MISALIGNED_SUB_BUFFER_OFFSET",
	ExecStatusErrorForEventsInWaitList: "CL_EXEC_STATUS_ERROR_FOR_EVENTS_IN_WAIT_LIST",
	CompileProgramFailure:              "CL_COMPILE_PROGRAM_FAILURE",
	LinkProgramFailure:                 "CL_LINK_PROGRAM_FAILURE",
	DevicePartitionFailed:              "CL_DEVICE_PARTITION_FAILED",
	InvalidValue:                       "CL_INVALID_VALUE",
	InvalidDeviceType:                  "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:                    "CL_INVALID_PLATFORM",
	InvalidDevice:                      "CL_INVALID_DEVICE",
	InvalidContext:                     "CL_INVALID_CONTEXT",
	InvalidQueueProperties:             "CL_INVALID_QUEUE_PROPERTIES",
	InvalidCommandQueue:                "CL_INVALID_COMMAND_QUEUE",
	InvalidHostPtr:                     "CL_INVALID_HOST_PTR",
	InvalidMemObject:                   "CL_INVALID_MEM_OBJECT",
	InvalidImageFormatDescriptor:       "CL_INVALID_IMAGE_FORMAT_DESCRIPTOR",
	InvalidImageSize:                   "CL_INVALID_IMAGE_SIZE",
	InvalidSampler:                     "CL_INVALID_SAMPLER",
	InvalidBinary:                      "CL_INVALID_BINARY",
	InvalidBuildOptions:                "CL_INVALID_BUILD_OPTIONS",
	InvalidProgram:                     "CL_INVALID_PROGRAM",
	InvalidProgramExecutable:           "CL_INVALID_PROGRAM_EXECUTABLE",
	InvalidKernelName:                  "CL_INVALID_KERNEL_NAME",
	InvalidKernelDefinition:            "CL_INVALID_KERNEL_DEFINITION",
	InvalidKernel:                      "CL_INVALID_KERNEL",
	InvalidArgIndex:                    "CL_INVALID_ARG_INDEX",
	InvalidArgValue:                    "CL_INVALID_ARG_VALUE",
	InvalidArgSize:                     "CL_INVALID_ARG_SIZE",
	InvalidKernelArgs:                  "CL_INVALID_KERNEL_ARGS",
	InvalidWorkDimension:               "CL_INVALID_WORK_DIMENSION",
	InvalidWorkGroupSize:               "CL_INVALID_WORK_GROUP_SIZE",
	InvalidWorkItemSize:                "CL_INVALID_WORK_ITEM_SIZE",
	InvalidGlobalOffset:                "CL_INVALID_GLOBAL_OFFSET",
	InvalidEventWaitList:               "CL_INVALID_EVENT_WAIT_LIST",
	InvalidEvent:                       "CL_INVALID_EVENT",
	InvalidOperation:                   "CL_INVALID_OPERATION",
	InvalidBufferSize:                  "CL_INVALID_BUFFER_SIZE",
	InvalidGlobalWorkSize:              "CL_INVALID_GLOBAL_WORK_SIZE",
	InvalidProperty:                    "CL_INVALID_PROPERTY",
	InvalidImageDescriptor:             "CL_INVALID_IMAGE_DESCRIPTOR",
	InvalidCompilerOptions:             "CL_INVALID_COMPILER_OPTIONS",
	InvalidLinkerOptions:               "CL_INVALID_LINKER_OPTIONS",
	InvalidDevicePartitionCount:        "CL_INVALID_DEVICE_PARTITION_COUNT",
	PlatformNotFoundKHR:                "CL_PLATFORM_NOT_FOUND_KHR",
}

// String returns the C name of the status code.
func (c Int) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("cl.Int(%d)", int32(c))
}
