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

package pi

import (
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Table is the set of entry points a plugin provides to the host runtime.
//
// Info queries write at most len(value) bytes and return the size of the
// full value; a nil value only queries the size. Optional event outputs are
// pointers: a nil pointer requests no event.
type Table struct {
	Platform PlatformEntries
	Device   DeviceEntries
	Context  ContextEntries
	Queue    QueueEntries
	Mem      MemEntries
	Program  ProgramEntries
	Kernel   KernelEntries
	Event    EventEntries
	Sampler  SamplerEntries
	Enqueue  EnqueueEntries
}

// PlatformEntries are the platform entry points.
type PlatformEntries struct {
	// Get fills platforms and returns the number of available platforms.
	// A nil platforms only counts.
	Get     func(platforms []Platform) (uint32, Result)
	GetInfo func(platform Platform, name PlatformInfo, value []byte) (uint, Result)
}

// DeviceEntries are the device entry points.
type DeviceEntries struct {
	// Get fills devices and returns the number of devices of a type.
	// A nil devices only counts.
	Get       func(platform Platform, deviceType DeviceType, devices []Device) (uint32, Result)
	GetInfo   func(device Device, name DeviceInfo, value []byte) (uint, Result)
	Partition func(device Device, properties []DevicePartitionProperty, devices []Device) (uint32, Result)
	Retain    func(device Device) Result
	Release   func(device Device) Result

	// SelectBinary returns the image of binaries best suited to device.
	SelectBinary func(device Device, binaries []*DeviceBinary) (*DeviceBinary, Result)
	// GetFunctionPointer returns the device address of a function of a
	// program.
	GetFunctionPointer func(device Device, program Program, name string) (uint64, Result)
}

// ContextEntries are the context entry points.
type ContextEntries struct {
	Create  func(properties []ContextProperties, devices []Device, notify ContextNotify, userData any) (Context, Result)
	GetInfo func(ctx Context, name ContextInfo, value []byte) (uint, Result)
	Retain  func(ctx Context) Result
	Release func(ctx Context) Result
}

// QueueEntries are the command queue entry points.
type QueueEntries struct {
	Create  func(ctx Context, device Device, properties QueueProperties) (Queue, Result)
	GetInfo func(queue Queue, name QueueInfo, value []byte) (uint, Result)
	Finish  func(queue Queue) Result
	Retain  func(queue Queue) Result
	Release func(queue Queue) Result
}

// MemEntries are the memory object entry points.
type MemEntries struct {
	BufferCreate    func(ctx Context, flags MemFlags, size uint, hostPtr []byte) (Mem, Result)
	ImageCreate     func(ctx Context, flags MemFlags, format *ImageFormat, desc *ImageDesc, hostPtr []byte) (Mem, Result)
	GetInfo         func(mem Mem, name MemInfo, value []byte) (uint, Result)
	ImageGetInfo    func(image Mem, name ImageInfo, value []byte) (uint, Result)
	Retain          func(mem Mem) Result
	Release         func(mem Mem) Result
	BufferPartition func(buffer Mem, flags MemFlags, createType BufferCreateType, region *BufferRegion) (Mem, Result)
}

// ProgramEntries are the program entry points.
type ProgramEntries struct {
	// Create creates a program from an intermediate language image.
	Create           func(ctx Context, il []byte) (Program, Result)
	CreateWithSource func(ctx Context, sources []string) (Program, Result)
	CreateWithBinary func(ctx Context, devices []Device, binaries [][]byte, binaryStatus []Result) (Program, Result)
	GetInfo          func(program Program, name ProgramInfo, value []byte) (uint, Result)
	Compile          func(program Program, devices []Device, options string, headers []Program, headerNames []string, notify ProgramNotify, userData any) Result
	Build            func(program Program, devices []Device, options string, notify ProgramNotify, userData any) Result
	Link             func(ctx Context, devices []Device, options string, inputs []Program, notify ProgramNotify, userData any) (Program, Result)
	GetBuildInfo     func(program Program, device Device, name ProgramBuildInfo, value []byte) (uint, Result)
	Retain           func(program Program) Result
	Release          func(program Program) Result
}

// KernelEntries are the kernel entry points.
type KernelEntries struct {
	Create func(program Program, name string) (Kernel, Result)
	// SetArg binds argument index. A nil value with a non-zero size declares
	// local memory.
	SetArg          func(kernel Kernel, index uint32, size uint, value []byte) Result
	GetInfo         func(kernel Kernel, name KernelInfo, value []byte) (uint, Result)
	GetGroupInfo    func(kernel Kernel, device Device, name KernelGroupInfo, value []byte) (uint, Result)
	GetSubGroupInfo func(kernel Kernel, device Device, name KernelSubGroupInfo, input []byte, value []byte) (uint, Result)
	Retain          func(kernel Kernel) Result
	Release         func(kernel Kernel) Result
}

// EventEntries are the event entry points.
type EventEntries struct {
	// Create creates a user event.
	Create           func(ctx Context) (Event, Result)
	GetInfo          func(event Event, name EventInfo, value []byte) (uint, Result)
	GetProfilingInfo func(event Event, name ProfilingInfo, value []byte) (uint, Result)
	Wait             func(events []Event) Result
	SetCallback      func(event Event, status EventStatus, notify EventNotify, userData any) Result
	// SetStatus sets the execution state of a user event.
	SetStatus func(event Event, status EventStatus) Result
	Retain    func(event Event) Result
	Release   func(event Event) Result
}

// SamplerEntries are the sampler entry points.
type SamplerEntries struct {
	Create  func(ctx Context, properties []SamplerProperties) (Sampler, Result)
	GetInfo func(sampler Sampler, name SamplerInfo, value []byte) (uint, Result)
	Retain  func(sampler Sampler) Result
	Release func(sampler Sampler) Result
}

// EnqueueEntries are the entry points submitting commands to a queue.
type EnqueueEntries struct {
	KernelLaunch func(queue Queue, kernel Kernel, workDim uint32, globalOffset, globalSize, localSize []uint, waitList []Event, event *Event) Result
	// NativeKernel runs fn on a copy of args. memLocs holds the byte offsets
	// in args where the handles of memList are stored.
	NativeKernel       func(queue Queue, fn NativeKernelFunc, args []byte, memList []Mem, memLocs []uint, waitList []Event, event *Event) Result
	EventsWait         func(queue Queue, waitList []Event, event *Event) Result
	MemBufferRead      func(queue Queue, buffer Mem, blocking bool, offset uint, dst []byte, waitList []Event, event *Event) Result
	MemBufferReadRect  func(queue Queue, buffer Mem, blocking bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, dst []byte, waitList []Event, event *Event) Result
	MemBufferWrite     func(queue Queue, buffer Mem, blocking bool, offset uint, src []byte, waitList []Event, event *Event) Result
	MemBufferWriteRect func(queue Queue, buffer Mem, blocking bool, bufferOrigin, hostOrigin, region [3]uint, bufferRowPitch, bufferSlicePitch, hostRowPitch, hostSlicePitch uint, src []byte, waitList []Event, event *Event) Result
	MemBufferCopy      func(queue Queue, src, dst Mem, srcOffset, dstOffset, size uint, waitList []Event, event *Event) Result
	MemBufferCopyRect  func(queue Queue, src, dst Mem, srcOrigin, dstOrigin, region [3]uint, srcRowPitch, srcSlicePitch, dstRowPitch, dstSlicePitch uint, waitList []Event, event *Event) Result
	MemBufferFill      func(queue Queue, buffer Mem, pattern []byte, offset, size uint, waitList []Event, event *Event) Result
	MemImageRead       func(queue Queue, image Mem, blocking bool, origin, region [3]uint, rowPitch, slicePitch uint, dst []byte, waitList []Event, event *Event) Result
	MemImageWrite      func(queue Queue, image Mem, blocking bool, origin, region [3]uint, rowPitch, slicePitch uint, src []byte, waitList []Event, event *Event) Result
	MemImageCopy       func(queue Queue, src, dst Mem, srcOrigin, dstOrigin, region [3]uint, waitList []Event, event *Event) Result
	// MemImageFill fills a region with a color given as four 32-bit
	// components.
	MemImageFill func(queue Queue, image Mem, fillColor []byte, origin, region [3]uint, waitList []Event, event *Event) Result
	MemBufferMap func(queue Queue, buffer Mem, blocking bool, flags MapFlags, offset, size uint, waitList []Event, event *Event) ([]byte, Result)
	MemUnmap     func(queue Queue, mem Mem, mapped []byte, waitList []Event, event *Event) Result
}

// EntryPoint identifies an entry point of the Table.
type EntryPoint string

// Entry points.
const (
	PlatformsGet              EntryPoint = "piPlatformsGet"
	PlatformGetInfo           EntryPoint = "piPlatformGetInfo"
	DevicesGet                EntryPoint = "piDevicesGet"
	DeviceGetInfo             EntryPoint = "piDeviceGetInfo"
	DevicePartition           EntryPoint = "piDevicePartition"
	DeviceRetain              EntryPoint = "piDeviceRetain"
	DeviceRelease             EntryPoint = "piDeviceRelease"
	DeviceSelectBinary        EntryPoint = "piextDeviceSelectBinary"
	DeviceGetFunctionPointer  EntryPoint = "piextGetDeviceFunctionPointer"
	ContextCreate             EntryPoint = "piContextCreate"
	ContextGetInfo            EntryPoint = "piContextGetInfo"
	ContextRetain             EntryPoint = "piContextRetain"
	ContextRelease            EntryPoint = "piContextRelease"
	QueueCreate               EntryPoint = "piQueueCreate"
	QueueGetInfo              EntryPoint = "piQueueGetInfo"
	QueueFinish               EntryPoint = "piQueueFinish"
	QueueRetain               EntryPoint = "piQueueRetain"
	QueueRelease              EntryPoint = "piQueueRelease"
	MemBufferCreate           EntryPoint = "piMemBufferCreate"
	MemImageCreate            EntryPoint = "piMemImageCreate"
	MemGetInfo                EntryPoint = "piMemGetInfo"
	MemImageGetInfo           EntryPoint = "piMemImageGetInfo"
	MemRetain                 EntryPoint = "piMemRetain"
	MemRelease                EntryPoint = "piMemRelease"
	MemBufferPartition        EntryPoint = "piMemBufferPartition"
	ProgramCreate             EntryPoint = "piProgramCreate"
	ProgramCreateWithSource   EntryPoint = "piclProgramCreateWithSource"
	ProgramCreateWithBinary   EntryPoint = "piclProgramCreateWithBinary"
	ProgramGetInfo            EntryPoint = "piProgramGetInfo"
	ProgramCompile            EntryPoint = "piProgramCompile"
	ProgramBuild              EntryPoint = "piProgramBuild"
	ProgramLink               EntryPoint = "piProgramLink"
	ProgramGetBuildInfo       EntryPoint = "piProgramGetBuildInfo"
	ProgramRetain             EntryPoint = "piProgramRetain"
	ProgramRelease            EntryPoint = "piProgramRelease"
	KernelCreate              EntryPoint = "piKernelCreate"
	KernelSetArg              EntryPoint = "piKernelSetArg"
	KernelGetInfo             EntryPoint = "piKernelGetInfo"
	KernelGetGroupInfo        EntryPoint = "piKernelGetGroupInfo"
	KernelGetSubGroupInfo     EntryPoint = "piKernelGetSubGroupInfo"
	KernelRetain              EntryPoint = "piKernelRetain"
	KernelRelease             EntryPoint = "piKernelRelease"
	EventCreate               EntryPoint = "piEventCreate"
	EventGetInfo              EntryPoint = "piEventGetInfo"
	EventGetProfilingInfo     EntryPoint = "piEventGetProfilingInfo"
	EventsWait                EntryPoint = "piEventsWait"
	EventSetCallback          EntryPoint = "piEventSetCallback"
	EventSetStatus            EntryPoint = "piEventSetStatus"
	EventRetain               EntryPoint = "piEventRetain"
	EventRelease              EntryPoint = "piEventRelease"
	SamplerCreate             EntryPoint = "piSamplerCreate"
	SamplerGetInfo            EntryPoint = "piSamplerGetInfo"
	SamplerRetain             EntryPoint = "piSamplerRetain"
	SamplerRelease            EntryPoint = "piSamplerRelease"
	EnqueueKernelLaunch       EntryPoint = "piEnqueueKernelLaunch"
	EnqueueNativeKernel       EntryPoint = "piEnqueueNativeKernel"
	EnqueueEventsWait         EntryPoint = "piEnqueueEventsWait"
	EnqueueMemBufferRead      EntryPoint = "piEnqueueMemBufferRead"
	EnqueueMemBufferReadRect  EntryPoint = "piEnqueueMemBufferReadRect"
	EnqueueMemBufferWrite     EntryPoint = "piEnqueueMemBufferWrite"
	EnqueueMemBufferWriteRect EntryPoint = "piEnqueueMemBufferWriteRect"
	EnqueueMemBufferCopy      EntryPoint = "piEnqueueMemBufferCopy"
	EnqueueMemBufferCopyRect  EntryPoint = "piEnqueueMemBufferCopyRect"
	EnqueueMemBufferFill      EntryPoint = "piEnqueueMemBufferFill"
	EnqueueMemImageRead       EntryPoint = "piEnqueueMemImageRead"
	EnqueueMemImageWrite      EntryPoint = "piEnqueueMemImageWrite"
	EnqueueMemImageCopy       EntryPoint = "piEnqueueMemImageCopy"
	EnqueueMemImageFill       EntryPoint = "piEnqueueMemImageFill"
	EnqueueMemBufferMap       EntryPoint = "piEnqueueMemBufferMap"
	EnqueueMemUnmap           EntryPoint = "piEnqueueMemUnmap"
)

type slot struct {
	set func(t *Table, fn any) bool
	get func(t *Table) any
}

// bind returns the slot of a table field of function type F.
func bind[F any](field func(t *Table) *F) slot {
	return slot{
		set: func(t *Table, fn any) bool {
			f, ok := fn.(F)
			if !ok {
				return false
			}
			*field(t) = f
			return true
		},
		get: func(t *Table) any { return *field(t) },
	}
}

var slots = map[EntryPoint]slot{
	PlatformsGet:    bind(func(t *Table) *func([]Platform) (uint32, Result) { return &t.Platform.Get }),
	PlatformGetInfo: bind(func(t *Table) *func(Platform, PlatformInfo, []byte) (uint, Result) { return &t.Platform.GetInfo }),

	DevicesGet:               bind(func(t *Table) *func(Platform, DeviceType, []Device) (uint32, Result) { return &t.Device.Get }),
	DeviceGetInfo:            bind(func(t *Table) *func(Device, DeviceInfo, []byte) (uint, Result) { return &t.Device.GetInfo }),
	DevicePartition:          bind(func(t *Table) *func(Device, []DevicePartitionProperty, []Device) (uint32, Result) { return &t.Device.Partition }),
	DeviceRetain:             bind(func(t *Table) *func(Device) Result { return &t.Device.Retain }),
	DeviceRelease:            bind(func(t *Table) *func(Device) Result { return &t.Device.Release }),
	DeviceSelectBinary:       bind(func(t *Table) *func(Device, []*DeviceBinary) (*DeviceBinary, Result) { return &t.Device.SelectBinary }),
	DeviceGetFunctionPointer: bind(func(t *Table) *func(Device, Program, string) (uint64, Result) { return &t.Device.GetFunctionPointer }),

	ContextCreate:  bind(func(t *Table) *func([]ContextProperties, []Device, ContextNotify, any) (Context, Result) { return &t.Context.Create }),
	ContextGetInfo: bind(func(t *Table) *func(Context, ContextInfo, []byte) (uint, Result) { return &t.Context.GetInfo }),
	ContextRetain:  bind(func(t *Table) *func(Context) Result { return &t.Context.Retain }),
	ContextRelease: bind(func(t *Table) *func(Context) Result { return &t.Context.Release }),

	QueueCreate:  bind(func(t *Table) *func(Context, Device, QueueProperties) (Queue, Result) { return &t.Queue.Create }),
	QueueGetInfo: bind(func(t *Table) *func(Queue, QueueInfo, []byte) (uint, Result) { return &t.Queue.GetInfo }),
	QueueFinish:  bind(func(t *Table) *func(Queue) Result { return &t.Queue.Finish }),
	QueueRetain:  bind(func(t *Table) *func(Queue) Result { return &t.Queue.Retain }),
	QueueRelease: bind(func(t *Table) *func(Queue) Result { return &t.Queue.Release }),

	MemBufferCreate:    bind(func(t *Table) *func(Context, MemFlags, uint, []byte) (Mem, Result) { return &t.Mem.BufferCreate }),
	MemImageCreate:     bind(func(t *Table) *func(Context, MemFlags, *ImageFormat, *ImageDesc, []byte) (Mem, Result) { return &t.Mem.ImageCreate }),
	MemGetInfo:         bind(func(t *Table) *func(Mem, MemInfo, []byte) (uint, Result) { return &t.Mem.GetInfo }),
	MemImageGetInfo:    bind(func(t *Table) *func(Mem, ImageInfo, []byte) (uint, Result) { return &t.Mem.ImageGetInfo }),
	MemRetain:          bind(func(t *Table) *func(Mem) Result { return &t.Mem.Retain }),
	MemRelease:         bind(func(t *Table) *func(Mem) Result { return &t.Mem.Release }),
	MemBufferPartition: bind(func(t *Table) *func(Mem, MemFlags, BufferCreateType, *BufferRegion) (Mem, Result) { return &t.Mem.BufferPartition }),

	ProgramCreate:           bind(func(t *Table) *func(Context, []byte) (Program, Result) { return &t.Program.Create }),
	ProgramCreateWithSource: bind(func(t *Table) *func(Context, []string) (Program, Result) { return &t.Program.CreateWithSource }),
	ProgramCreateWithBinary: bind(func(t *Table) *func(Context, []Device, [][]byte, []Result) (Program, Result) { return &t.Program.CreateWithBinary }),
	ProgramGetInfo:          bind(func(t *Table) *func(Program, ProgramInfo, []byte) (uint, Result) { return &t.Program.GetInfo }),
	ProgramCompile: bind(func(t *Table) *func(Program, []Device, string, []Program, []string, ProgramNotify, any) Result {
		return &t.Program.Compile
	}),
	ProgramBuild: bind(func(t *Table) *func(Program, []Device, string, ProgramNotify, any) Result { return &t.Program.Build }),
	ProgramLink: bind(func(t *Table) *func(Context, []Device, string, []Program, ProgramNotify, any) (Program, Result) {
		return &t.Program.Link
	}),
	ProgramGetBuildInfo: bind(func(t *Table) *func(Program, Device, ProgramBuildInfo, []byte) (uint, Result) { return &t.Program.GetBuildInfo }),
	ProgramRetain:       bind(func(t *Table) *func(Program) Result { return &t.Program.Retain }),
	ProgramRelease:      bind(func(t *Table) *func(Program) Result { return &t.Program.Release }),

	KernelCreate:          bind(func(t *Table) *func(Program, string) (Kernel, Result) { return &t.Kernel.Create }),
	KernelSetArg:          bind(func(t *Table) *func(Kernel, uint32, uint, []byte) Result { return &t.Kernel.SetArg }),
	KernelGetInfo:         bind(func(t *Table) *func(Kernel, KernelInfo, []byte) (uint, Result) { return &t.Kernel.GetInfo }),
	KernelGetGroupInfo:    bind(func(t *Table) *func(Kernel, Device, KernelGroupInfo, []byte) (uint, Result) { return &t.Kernel.GetGroupInfo }),
	KernelGetSubGroupInfo: bind(func(t *Table) *func(Kernel, Device, KernelSubGroupInfo, []byte, []byte) (uint, Result) { return &t.Kernel.GetSubGroupInfo }),
	KernelRetain:          bind(func(t *Table) *func(Kernel) Result { return &t.Kernel.Retain }),
	KernelRelease:         bind(func(t *Table) *func(Kernel) Result { return &t.Kernel.Release }),

	EventCreate:           bind(func(t *Table) *func(Context) (Event, Result) { return &t.Event.Create }),
	EventGetInfo:          bind(func(t *Table) *func(Event, EventInfo, []byte) (uint, Result) { return &t.Event.GetInfo }),
	EventGetProfilingInfo: bind(func(t *Table) *func(Event, ProfilingInfo, []byte) (uint, Result) { return &t.Event.GetProfilingInfo }),
	EventsWait:            bind(func(t *Table) *func([]Event) Result { return &t.Event.Wait }),
	EventSetCallback:      bind(func(t *Table) *func(Event, EventStatus, EventNotify, any) Result { return &t.Event.SetCallback }),
	EventSetStatus:        bind(func(t *Table) *func(Event, EventStatus) Result { return &t.Event.SetStatus }),
	EventRetain:           bind(func(t *Table) *func(Event) Result { return &t.Event.Retain }),
	EventRelease:          bind(func(t *Table) *func(Event) Result { return &t.Event.Release }),

	SamplerCreate:  bind(func(t *Table) *func(Context, []SamplerProperties) (Sampler, Result) { return &t.Sampler.Create }),
	SamplerGetInfo: bind(func(t *Table) *func(Sampler, SamplerInfo, []byte) (uint, Result) { return &t.Sampler.GetInfo }),
	SamplerRetain:  bind(func(t *Table) *func(Sampler) Result { return &t.Sampler.Retain }),
	SamplerRelease: bind(func(t *Table) *func(Sampler) Result { return &t.Sampler.Release }),

	EnqueueKernelLaunch: bind(func(t *Table) *func(Queue, Kernel, uint32, []uint, []uint, []uint, []Event, *Event) Result {
		return &t.Enqueue.KernelLaunch
	}),
	EnqueueNativeKernel: bind(func(t *Table) *func(Queue, NativeKernelFunc, []byte, []Mem, []uint, []Event, *Event) Result {
		return &t.Enqueue.NativeKernel
	}),
	EnqueueEventsWait: bind(func(t *Table) *func(Queue, []Event, *Event) Result { return &t.Enqueue.EventsWait }),
	EnqueueMemBufferRead: bind(func(t *Table) *func(Queue, Mem, bool, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemBufferRead
	}),
	EnqueueMemBufferReadRect: bind(func(t *Table) *func(Queue, Mem, bool, [3]uint, [3]uint, [3]uint, uint, uint, uint, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemBufferReadRect
	}),
	EnqueueMemBufferWrite: bind(func(t *Table) *func(Queue, Mem, bool, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemBufferWrite
	}),
	EnqueueMemBufferWriteRect: bind(func(t *Table) *func(Queue, Mem, bool, [3]uint, [3]uint, [3]uint, uint, uint, uint, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemBufferWriteRect
	}),
	EnqueueMemBufferCopy: bind(func(t *Table) *func(Queue, Mem, Mem, uint, uint, uint, []Event, *Event) Result {
		return &t.Enqueue.MemBufferCopy
	}),
	EnqueueMemBufferCopyRect: bind(func(t *Table) *func(Queue, Mem, Mem, [3]uint, [3]uint, [3]uint, uint, uint, uint, uint, []Event, *Event) Result {
		return &t.Enqueue.MemBufferCopyRect
	}),
	EnqueueMemBufferFill: bind(func(t *Table) *func(Queue, Mem, []byte, uint, uint, []Event, *Event) Result {
		return &t.Enqueue.MemBufferFill
	}),
	EnqueueMemImageRead: bind(func(t *Table) *func(Queue, Mem, bool, [3]uint, [3]uint, uint, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemImageRead
	}),
	EnqueueMemImageWrite: bind(func(t *Table) *func(Queue, Mem, bool, [3]uint, [3]uint, uint, uint, []byte, []Event, *Event) Result {
		return &t.Enqueue.MemImageWrite
	}),
	EnqueueMemImageCopy: bind(func(t *Table) *func(Queue, Mem, Mem, [3]uint, [3]uint, [3]uint, []Event, *Event) Result {
		return &t.Enqueue.MemImageCopy
	}),
	EnqueueMemImageFill: bind(func(t *Table) *func(Queue, Mem, []byte, [3]uint, [3]uint, []Event, *Event) Result {
		return &t.Enqueue.MemImageFill
	}),
	EnqueueMemBufferMap: bind(func(t *Table) *func(Queue, Mem, bool, MapFlags, uint, uint, []Event, *Event) ([]byte, Result) {
		return &t.Enqueue.MemBufferMap
	}),
	EnqueueMemUnmap: bind(func(t *Table) *func(Queue, Mem, []byte, []Event, *Event) Result { return &t.Enqueue.MemUnmap }),
}

// EntryPoints returns the identifiers of all the entry points, sorted.
func EntryPoints() []EntryPoint {
	ids := make([]EntryPoint, 0, len(slots))
	for id := range slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Entry binds an entry point identifier to its implementation.
type Entry struct {
	ID   EntryPoint
	Func any
}

// NewTable builds a table from a list of entries. Every entry point must be
// bound exactly once with a function of the type of its Table field.
func NewTable(entries []Entry) (Table, error) {
	var t Table
	bound := make(map[EntryPoint]bool, len(entries))
	for _, entry := range entries {
		s, ok := slots[entry.ID]
		if !ok {
			return Table{}, errors.Errorf("unknown entry point %q", entry.ID)
		}
		if bound[entry.ID] {
			return Table{}, errors.Errorf("entry point %q bound more than once", entry.ID)
		}
		if entry.Func == nil || reflect.ValueOf(entry.Func).Kind() == reflect.Func && reflect.ValueOf(entry.Func).IsNil() {
			return Table{}, errors.Errorf("entry point %q bound to a nil function", entry.ID)
		}
		if !s.set(&t, entry.Func) {
			return Table{}, errors.Errorf("entry point %q: cannot bind a value of type %T", entry.ID, entry.Func)
		}
		bound[entry.ID] = true
	}
	var missing []string
	for _, id := range EntryPoints() {
		if !bound[id] {
			missing = append(missing, string(id))
		}
	}
	if len(missing) > 0 {
		return Table{}, errors.Errorf("missing entry points: %s", strings.Join(missing, ", "))
	}
	return t, nil
}

// Func returns the function bound to an entry point, or nil.
func (t *Table) Func(id EntryPoint) any {
	s, ok := slots[id]
	if !ok {
		return nil
	}
	return s.get(t)
}
