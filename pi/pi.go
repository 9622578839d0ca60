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

// Package pi defines the vendor neutral Plugin Interface.
//
// A host runtime only sees the types of this package: opaque handles, result
// codes, and the Table of entry points filled by a plugin. Handles are owned
// by the plugin's native backend; a handle is valid for as long as the
// backend considers the resource alive.
package pi

import "fmt"

// Opaque handles. The zero value is the null handle.
type (
	// Platform is a handle on a platform.
	Platform uintptr
	// Device is a handle on a device.
	Device uintptr
	// Context is a handle on a context.
	Context uintptr
	// Queue is a handle on a command queue.
	Queue uintptr
	// Mem is a handle on a buffer or image.
	Mem uintptr
	// Program is a handle on a program.
	Program uintptr
	// Kernel is a handle on a kernel.
	Kernel uintptr
	// Event is a handle on an event.
	Event uintptr
	// Sampler is a handle on a sampler.
	Sampler uintptr
)

// Result is the uniform result code returned by every entry point.
type Result int32

// Result codes.
const (
	Success                            Result = 0
	DeviceNotFound                     Result = -1
	CompilerNotAvailable               Result = -3
	MemObjectAllocationFailure         Result = -4
	OutOfResources                     Result = -5
	OutOfHostMemory                    Result = -6
	ProfilingInfoNotAvailable          Result = -7
	ImageFormatNotSupported            Result = -10
	BuildProgramFailure                Result = -11
	MapFailure                         Result = -12
	MisalignedSubBufferOffset          Result = -13
	ExecStatusErrorForEventsInWaitList Result = -14
	LinkProgramFailure                 Result = -17
	InvalidValue                       Result = -30
	InvalidPlatform                    Result = -32
	InvalidDevice                      Result = -33
	InvalidContext                     Result = -34
	InvalidQueueProperties             Result = -35
	InvalidQueue                       Result = -36
	InvalidHostPtr                     Result = -37
	InvalidMemObject                   Result = -38
	InvalidImageFormatDescriptor       Result = -39
	InvalidImageSize                   Result = -40
	InvalidSampler                     Result = -41
	InvalidBinary                      Result = -42
	InvalidProgram                     Result = -44
	InvalidProgramExecutable           Result = -45
	InvalidKernelName                  Result = -46
	InvalidKernel                      Result = -48
	InvalidArgIndex                    Result = -49
	InvalidArgValue                    Result = -50
	InvalidArgSize                     Result = -51
	InvalidKernelArgs                  Result = -52
	InvalidWorkDimension               Result = -53
	InvalidWorkGroupSize               Result = -54
	InvalidWorkItemSize                Result = -55
	InvalidEventWaitList               Result = -57
	InvalidEvent                       Result = -58
	InvalidOperation                   Result = -59
	InvalidBufferSize                  Result = -61
	InvalidGlobalWorkSize              Result = -63
	// FunctionNotAvailable reports that the backend does not provide an
	// optional entry point needed to serve the call.
	FunctionNotAvailable Result = -998
)

var resultNames = map[Result]string{
	Success:                            "PI_SUCCESS",
	DeviceNotFound:                     "PI_DEVICE_NOT_FOUND",
	CompilerNotAvailable:               "PI_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure:         "PI_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:                     "PI_OUT_OF_RESOURCES",
	OutOfHostMemory:                    "PI_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:          "PI_PROFILING_INFO_NOT_AVAILABLE",
	ImageFormatNotSupported:            "PI_IMAGE_FORMAT_NOT_SUPPORTED",
	BuildProgramFailure:                "PI_BUILD_PROGRAM_FAILURE",
	MapFailure:                         "PI_MAP_FAILURE",
	MisalignedSubBufferOffset:          "PI_MISALIGNED_SUB_BUFFER_OFFSET",
	ExecStatusErrorForEventsInWaitList: "PI_EXEC_STATUS_ERROR_FOR_EVENTS_IN_WAIT_LIST",
	LinkProgramFailure:                 "PI_LINK_PROGRAM_FAILURE",
	InvalidValue:                       "PI_INVALID_VALUE",
	InvalidPlatform:                    "PI_INVALID_PLATFORM",
	InvalidDevice:                      "PI_INVALID_DEVICE",
	InvalidContext:                     "PI_INVALID_CONTEXT",
	InvalidQueueProperties:             "PI_INVALID_QUEUE_PROPERTIES",
	InvalidQueue:                       "PI_INVALID_QUEUE",
	InvalidHostPtr:                     "PI_INVALID_HOST_PTR",
	InvalidMemObject:                   "PI_INVALID_MEM_OBJECT",
	InvalidImageFormatDescriptor:       "PI_INVALID_IMAGE_FORMAT_DESCRIPTOR",
	InvalidImageSize:                   "PI_INVALID_IMAGE_SIZE",
	InvalidSampler:                     "PI_INVALID_SAMPLER",
	InvalidBinary:                      "PI_INVALID_BINARY",
	InvalidProgram:                     "PI_INVALID_PROGRAM",
	InvalidProgramExecutable:           "PI_INVALID_PROGRAM_EXECUTABLE",
	InvalidKernelName:                  "PI_INVALID_KERNEL_NAME",
	InvalidKernel:                      "PI_INVALID_KERNEL",
	InvalidArgIndex:                    "PI_INVALID_ARG_INDEX",
	InvalidArgValue:                    "PI_INVALID_ARG_VALUE",
	InvalidArgSize:                     "PI_INVALID_ARG_SIZE",
	InvalidKernelArgs:                  "PI_INVALID_KERNEL_ARGS",
	InvalidWorkDimension:               "PI_INVALID_WORK_DIMENSION",
	InvalidWorkGroupSize:               "PI_INVALID_WORK_GROUP_SIZE",
	InvalidWorkItemSize:                "PI_INVALID_WORK_ITEM_SIZE",
	InvalidEventWaitList:               "PI_INVALID_EVENT_WAIT_LIST",
	InvalidEvent:                       "PI_INVALID_EVENT",
	InvalidOperation:                   "PI_INVALID_OPERATION",
	InvalidBufferSize:                  "PI_INVALID_BUFFER_SIZE",
	InvalidGlobalWorkSize:              "PI_INVALID_GLOBAL_WORK_SIZE",
	FunctionNotAvailable:               "PI_FUNCTION_NOT_AVAILABLE",
}

// String returns the name of the result code.
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("PI_RESULT(%d)", int32(r))
}

// Error implements the error interface.
func (r Result) Error() string {
	return r.String()
}

// Err returns nil if r is Success, r otherwise.
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return r
}
