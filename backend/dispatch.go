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
	"github.com/gx-org/piopencl/pi"
)

// entries binds every entry point of the Plugin Interface.
func (b *Backend) entries() []pi.Entry {
	api := b.api
	return []pi.Entry{
		// Platform
		{ID: pi.PlatformsGet, Func: b.platformsGet},
		{ID: pi.PlatformGetInfo, Func: getInfo[pi.PlatformInfo](piopencl.Platforms, api.GetPlatformInfo)},

		// Device
		{ID: pi.DevicesGet, Func: b.devicesGet},
		{ID: pi.DeviceGetInfo, Func: getInfo[pi.DeviceInfo](piopencl.Devices, api.GetDeviceInfo)},
		{ID: pi.DevicePartition, Func: b.devicePartition},
		{ID: pi.DeviceRetain, Func: apply(piopencl.Devices, api.RetainDevice)},
		{ID: pi.DeviceRelease, Func: apply(piopencl.Devices, api.ReleaseDevice)},
		{ID: pi.DeviceSelectBinary, Func: b.deviceSelectBinary},
		{ID: pi.DeviceGetFunctionPointer, Func: b.deviceGetFunctionPointer},

		// Context
		{ID: pi.ContextCreate, Func: b.contextCreate},
		{ID: pi.ContextGetInfo, Func: getInfo[pi.ContextInfo](piopencl.Contexts, api.GetContextInfo)},
		{ID: pi.ContextRetain, Func: apply(piopencl.Contexts, api.RetainContext)},
		{ID: pi.ContextRelease, Func: apply(piopencl.Contexts, api.ReleaseContext)},

		// Queue
		{ID: pi.QueueCreate, Func: b.queueCreate},
		{ID: pi.QueueGetInfo, Func: getInfo[pi.QueueInfo](piopencl.Queues, api.GetCommandQueueInfo)},
		{ID: pi.QueueFinish, Func: apply(piopencl.Queues, api.Finish)},
		{ID: pi.QueueRetain, Func: apply(piopencl.Queues, api.RetainCommandQueue)},
		{ID: pi.QueueRelease, Func: apply(piopencl.Queues, api.ReleaseCommandQueue)},

		// Memory
		{ID: pi.MemBufferCreate, Func: b.memBufferCreate},
		{ID: pi.MemImageCreate, Func: b.memImageCreate},
		{ID: pi.MemGetInfo, Func: getInfo[pi.MemInfo](piopencl.Mems, api.GetMemObjectInfo)},
		{ID: pi.MemImageGetInfo, Func: getInfo[pi.ImageInfo](piopencl.Mems, api.GetImageInfo)},
		{ID: pi.MemRetain, Func: apply(piopencl.Mems, api.RetainMemObject)},
		{ID: pi.MemRelease, Func: apply(piopencl.Mems, api.ReleaseMemObject)},
		{ID: pi.MemBufferPartition, Func: b.memBufferPartition},

		// Program
		{ID: pi.ProgramCreate, Func: b.programCreate},
		{ID: pi.ProgramCreateWithSource, Func: b.programCreateWithSource},
		{ID: pi.ProgramCreateWithBinary, Func: b.programCreateWithBinary},
		{ID: pi.ProgramGetInfo, Func: getInfo[pi.ProgramInfo](piopencl.Programs, api.GetProgramInfo)},
		{ID: pi.ProgramCompile, Func: b.programCompile},
		{ID: pi.ProgramBuild, Func: b.programBuild},
		{ID: pi.ProgramLink, Func: b.programLink},
		{ID: pi.ProgramGetBuildInfo, Func: getDeviceInfo[pi.ProgramBuildInfo](piopencl.Programs, api.GetProgramBuildInfo)},
		{ID: pi.ProgramRetain, Func: apply(piopencl.Programs, api.RetainProgram)},
		{ID: pi.ProgramRelease, Func: apply(piopencl.Programs, api.ReleaseProgram)},

		// Kernel
		{ID: pi.KernelCreate, Func: b.kernelCreate},
		{ID: pi.KernelSetArg, Func: b.kernelSetArg},
		{ID: pi.KernelGetInfo, Func: getInfo[pi.KernelInfo](piopencl.Kernels, api.GetKernelInfo)},
		{ID: pi.KernelGetGroupInfo, Func: getDeviceInfo[pi.KernelGroupInfo](piopencl.Kernels, api.GetKernelWorkGroupInfo)},
		{ID: pi.KernelGetSubGroupInfo, Func: b.kernelGetSubGroupInfo},
		{ID: pi.KernelRetain, Func: apply(piopencl.Kernels, api.RetainKernel)},
		{ID: pi.KernelRelease, Func: apply(piopencl.Kernels, api.ReleaseKernel)},

		// Event
		{ID: pi.EventCreate, Func: b.eventCreate},
		{ID: pi.EventGetInfo, Func: getInfo[pi.EventInfo](piopencl.Events, api.GetEventInfo)},
		{ID: pi.EventGetProfilingInfo, Func: getInfo[pi.ProfilingInfo](piopencl.Events, api.GetEventProfilingInfo)},
		{ID: pi.EventsWait, Func: b.eventsWait},
		{ID: pi.EventSetCallback, Func: b.eventSetCallback},
		{ID: pi.EventSetStatus, Func: b.eventSetStatus},
		{ID: pi.EventRetain, Func: apply(piopencl.Events, api.RetainEvent)},
		{ID: pi.EventRelease, Func: apply(piopencl.Events, api.ReleaseEvent)},

		// Sampler
		{ID: pi.SamplerCreate, Func: b.samplerCreate},
		{ID: pi.SamplerGetInfo, Func: getInfo[pi.SamplerInfo](piopencl.Samplers, api.GetSamplerInfo)},
		{ID: pi.SamplerRetain, Func: apply(piopencl.Samplers, api.RetainSampler)},
		{ID: pi.SamplerRelease, Func: apply(piopencl.Samplers, api.ReleaseSampler)},

		// Enqueue
		{ID: pi.EnqueueKernelLaunch, Func: b.enqueueKernelLaunch},
		{ID: pi.EnqueueNativeKernel, Func: b.enqueueNativeKernel},
		{ID: pi.EnqueueEventsWait, Func: b.enqueueEventsWait},
		{ID: pi.EnqueueMemBufferRead, Func: b.enqueueMemBufferRead},
		{ID: pi.EnqueueMemBufferReadRect, Func: b.enqueueMemBufferReadRect},
		{ID: pi.EnqueueMemBufferWrite, Func: b.enqueueMemBufferWrite},
		{ID: pi.EnqueueMemBufferWriteRect, Func: b.enqueueMemBufferWriteRect},
		{ID: pi.EnqueueMemBufferCopy, Func: b.enqueueMemBufferCopy},
		{ID: pi.EnqueueMemBufferCopyRect, Func: b.enqueueMemBufferCopyRect},
		{ID: pi.EnqueueMemBufferFill, Func: b.enqueueMemBufferFill},
		{ID: pi.EnqueueMemImageRead, Func: b.enqueueMemImageRead},
		{ID: pi.EnqueueMemImageWrite, Func: b.enqueueMemImageWrite},
		{ID: pi.EnqueueMemImageCopy, Func: b.enqueueMemImageCopy},
		{ID: pi.EnqueueMemImageFill, Func: b.enqueueMemImageFill},
		{ID: pi.EnqueueMemBufferMap, Func: b.enqueueMemBufferMap},
		{ID: pi.EnqueueMemUnmap, Func: b.enqueueMemUnmap},
	}
}
