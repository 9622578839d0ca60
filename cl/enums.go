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

// Bool is the native boolean.
type Bool uint32

// Boolean values.
const (
	False Bool = 0
	True  Bool = 1
)

// BoolOf converts a Go boolean.
func BoolOf(b bool) Bool {
	if b {
		return True
	}
	return False
}

// DeviceType is a bitfield of device classes.
type DeviceType uint64

// Device classes.
const (
	DeviceTypeDefault     DeviceType = 1 << 0
	DeviceTypeCPU         DeviceType = 1 << 1
	DeviceTypeGPU         DeviceType = 1 << 2
	DeviceTypeAccelerator DeviceType = 1 << 3
	DeviceTypeCustom      DeviceType = 1 << 4
	DeviceTypeAll         DeviceType = 0xFFFFFFFF
)

// PlatformInfo names a platform query.
type PlatformInfo uint32

// Platform queries.
const (
	PlatformProfile    PlatformInfo = 0x0900
	PlatformVersion    PlatformInfo = 0x0901
	PlatformName       PlatformInfo = 0x0902
	PlatformVendor     PlatformInfo = 0x0903
	PlatformExtensions PlatformInfo = 0x0904
)

// DeviceInfo names a device query.
type DeviceInfo uint32

// Device queries.
const (
	DeviceTypeInfo               DeviceInfo = 0x1000
	DeviceVendorID               DeviceInfo = 0x1001
	DeviceMaxComputeUnits        DeviceInfo = 0x1002
	DeviceMaxWorkGroupSize       DeviceInfo = 0x1004
	DeviceGlobalMemSize          DeviceInfo = 0x101F
	DeviceAvailable              DeviceInfo = 0x1027
	DeviceName                   DeviceInfo = 0x102B
	DeviceVendor                 DeviceInfo = 0x102C
	DriverVersion                DeviceInfo = 0x102D
	DeviceProfile                DeviceInfo = 0x102E
	DeviceVersion                DeviceInfo = 0x102F
	DeviceExtensions             DeviceInfo = 0x1030
	DevicePlatform               DeviceInfo = 0x1031
	DeviceParentDevice           DeviceInfo = 0x1042
	DevicePartitionMaxSubDevices DeviceInfo = 0x1043
	DeviceReferenceCount         DeviceInfo = 0x1047
)

// DevicePartitionProperty is an element of a sub-device partition list.
type DevicePartitionProperty uintptr

// Partition schemes.
const (
	DevicePartitionEqually         DevicePartitionProperty = 0x1086
	DevicePartitionByCounts        DevicePartitionProperty = 0x1087
	DevicePartitionByCountsListEnd DevicePartitionProperty = 0x0
)

// ContextProperties is an element of a context property list.
type ContextProperties uintptr

// ContextPlatform is the context property key naming the platform.
const ContextPlatform ContextProperties = 0x1084

// ContextInfo names a context query.
type ContextInfo uint32

// Context queries.
const (
	ContextReferenceCount ContextInfo = 0x1080
	ContextDevices        ContextInfo = 0x1081
	ContextPropertiesInfo ContextInfo = 0x1082
	ContextNumDevices     ContextInfo = 0x1083
)

// CommandQueueProperties is a bitfield of queue behaviors.
type CommandQueueProperties uint64

// Queue behaviors.
const (
	QueueOutOfOrderExecModeEnable CommandQueueProperties = 1 << 0
	QueueProfilingEnable          CommandQueueProperties = 1 << 1
)

// QueueProperties is an element of a zero terminated queue property list.
type QueueProperties uint64

// QueuePropertiesKey is the queue property list key carrying
// CommandQueueProperties.
const QueuePropertiesKey QueueProperties = 0x1093

// CommandQueueInfo names a queue query.
type CommandQueueInfo uint32

// Queue queries.
const (
	QueueContext        CommandQueueInfo = 0x1090
	QueueDevice         CommandQueueInfo = 0x1091
	QueueReferenceCount CommandQueueInfo = 0x1092
	QueuePropertiesInfo CommandQueueInfo = 0x1093
)

// MemFlags is a bitfield of memory object flags.
type MemFlags uint64

// Memory object flags.
const (
	MemReadWrite    MemFlags = 1 << 0
	MemWriteOnly    MemFlags = 1 << 1
	MemReadOnly     MemFlags = 1 << 2
	MemUseHostPtr   MemFlags = 1 << 3
	MemAllocHostPtr MemFlags = 1 << 4
	MemCopyHostPtr  MemFlags = 1 << 5
)

// MemObjectType identifies the kind of a memory object.
type MemObjectType uint32

// Memory object kinds.
const (
	MemObjectBuffer        MemObjectType = 0x10F0
	MemObjectImage2D       MemObjectType = 0x10F1
	MemObjectImage3D       MemObjectType = 0x10F2
	MemObjectImage2DArray  MemObjectType = 0x10F3
	MemObjectImage1D       MemObjectType = 0x10F4
	MemObjectImage1DArray  MemObjectType = 0x10F5
	MemObjectImage1DBuffer MemObjectType = 0x10F6
)

// MemInfo names a memory object query.
type MemInfo uint32

// Memory object queries.
const (
	MemType                MemInfo = 0x1100
	MemFlagsInfo           MemInfo = 0x1101
	MemSize                MemInfo = 0x1102
	MemHostPtr             MemInfo = 0x1103
	MemMapCount            MemInfo = 0x1104
	MemReferenceCount      MemInfo = 0x1105
	MemContext             MemInfo = 0x1106
	MemAssociatedMemObject MemInfo = 0x1107
	MemOffset              MemInfo = 0x1108
)

// ImageInfo names an image query.
type ImageInfo uint32

// Image queries.
const (
	ImageFormatInfo   ImageInfo = 0x1110
	ImageElementSize  ImageInfo = 0x1111
	ImageRowPitch     ImageInfo = 0x1112
	ImageSlicePitch   ImageInfo = 0x1113
	ImageWidth        ImageInfo = 0x1114
	ImageHeight       ImageInfo = 0x1115
	ImageDepth        ImageInfo = 0x1116
	ImageArraySize    ImageInfo = 0x1117
	ImageNumMipLevels ImageInfo = 0x1119
	ImageNumSamples   ImageInfo = 0x111A
)

// ChannelOrder is the component layout of an image element.
type ChannelOrder uint32

// Channel orders.
const (
	ChannelR    ChannelOrder = 0x10B0
	ChannelA    ChannelOrder = 0x10B1
	ChannelRG   ChannelOrder = 0x10B2
	ChannelRA   ChannelOrder = 0x10B3
	ChannelRGB  ChannelOrder = 0x10B4
	ChannelRGBA ChannelOrder = 0x10B5
	ChannelBGRA ChannelOrder = 0x10B6
)

// ChannelType is the storage type of an image component.
type ChannelType uint32

// Channel types.
const (
	SnormInt8     ChannelType = 0x10D0
	SnormInt16    ChannelType = 0x10D1
	UnormInt8     ChannelType = 0x10D2
	UnormInt16    ChannelType = 0x10D3
	SignedInt8    ChannelType = 0x10D7
	SignedInt16   ChannelType = 0x10D8
	SignedInt32   ChannelType = 0x10D9
	UnsignedInt8  ChannelType = 0x10DA
	UnsignedInt16 ChannelType = 0x10DB
	UnsignedInt32 ChannelType = 0x10DC
	HalfFloat     ChannelType = 0x10DD
	Float         ChannelType = 0x10DE
)

// ImageFormat describes the layout of an image element.
type ImageFormat struct {
	ChannelOrder    ChannelOrder
	ChannelDataType ChannelType
}

// ImageDesc describes the shape of an image.
type ImageDesc struct {
	Type         MemObjectType
	Width        uint
	Height       uint
	Depth        uint
	ArraySize    uint
	RowPitch     uint
	SlicePitch   uint
	NumMipLevels uint32
	NumSamples   uint32
	Buffer       Mem
}

// BufferCreateType identifies the descriptor passed to CreateSubBuffer.
type BufferCreateType uint32

// BufferCreateTypeRegion selects a BufferRegion descriptor.
const BufferCreateTypeRegion BufferCreateType = 0x1220

// BufferRegion is a byte range of a buffer.
type BufferRegion struct {
	Origin uint
	Size   uint
}

// MapFlags is a bitfield of map access modes.
type MapFlags uint64

// Map access modes.
const (
	MapRead                  MapFlags = 1 << 0
	MapWrite                 MapFlags = 1 << 1
	MapWriteInvalidateRegion MapFlags = 1 << 2
)

// ProgramInfo names a program query.
type ProgramInfo uint32

// Program queries.
const (
	ProgramReferenceCount ProgramInfo = 0x1160
	ProgramContext        ProgramInfo = 0x1161
	ProgramNumDevices     ProgramInfo = 0x1162
	ProgramDevices        ProgramInfo = 0x1163
	ProgramSource         ProgramInfo = 0x1164
	ProgramBinarySizes    ProgramInfo = 0x1165
	ProgramBinaries       ProgramInfo = 0x1166
	ProgramNumKernels     ProgramInfo = 0x1167
	ProgramKernelNames    ProgramInfo = 0x1168
	ProgramIL             ProgramInfo = 0x1169
)

// ProgramBuildInfo names a per-device program build query.
type ProgramBuildInfo uint32

// Program build queries.
const (
	ProgramBuildStatus     ProgramBuildInfo = 0x1181
	ProgramBuildOptions    ProgramBuildInfo = 0x1182
	ProgramBuildLog        ProgramBuildInfo = 0x1183
	ProgramBuildBinaryType ProgramBuildInfo = 0x1184
)

// BuildStatus is the state of a program build on a device.
type BuildStatus int32

// Build states.
const (
	BuildSuccess    BuildStatus = 0
	BuildNone       BuildStatus = -1
	BuildError      BuildStatus = -2
	BuildInProgress BuildStatus = -3
)

// ProgramBinaryType classifies what a program holds for a device.
type ProgramBinaryType uint32

// Program binary types.
const (
	ProgramBinaryTypeNone           ProgramBinaryType = 0x0
	ProgramBinaryTypeCompiledObject ProgramBinaryType = 0x1
	ProgramBinaryTypeLibrary        ProgramBinaryType = 0x2
	ProgramBinaryTypeExecutable     ProgramBinaryType = 0x4
)

// KernelInfo names a kernel query.
type KernelInfo uint32

// Kernel queries.
const (
	KernelFunctionName   KernelInfo = 0x1190
	KernelNumArgs        KernelInfo = 0x1191
	KernelReferenceCount KernelInfo = 0x1192
	KernelContext        KernelInfo = 0x1193
	KernelProgram        KernelInfo = 0x1194
	KernelAttributes     KernelInfo = 0x1195
)

// KernelWorkGroupInfo names a per-device kernel query.
type KernelWorkGroupInfo uint32

// Per-device kernel queries.
const (
	KernelWorkGroupSize                  KernelWorkGroupInfo = 0x11B0
	KernelCompileWorkGroupSize           KernelWorkGroupInfo = 0x11B1
	KernelLocalMemSize                   KernelWorkGroupInfo = 0x11B2
	KernelPreferredWorkGroupSizeMultiple KernelWorkGroupInfo = 0x11B3
	KernelPrivateMemSize                 KernelWorkGroupInfo = 0x11B4
)

// KernelSubGroupInfo names a per-device kernel sub-group query.
type KernelSubGroupInfo uint32

// Sub-group queries.
const (
	KernelMaxSubGroupSizeForNDRange KernelSubGroupInfo = 0x2033
	KernelSubGroupCountForNDRange   KernelSubGroupInfo = 0x2034
	KernelLocalSizeForSubGroupCount KernelSubGroupInfo = 0x11B8
	KernelMaxNumSubGroups           KernelSubGroupInfo = 0x11B9
	KernelCompileNumSubGroups       KernelSubGroupInfo = 0x11BA
)

// EventInfo names an event query.
type EventInfo uint32

// Event queries.
const (
	EventCommandQueue           EventInfo = 0x11D0
	EventCommandType            EventInfo = 0x11D1
	EventReferenceCount         EventInfo = 0x11D2
	EventCommandExecutionStatus EventInfo = 0x11D3
	EventContext                EventInfo = 0x11D4
)

// CommandExecutionStatus is the state of a command. Negative values are
// errors.
type CommandExecutionStatus int32

// Command states.
const (
	Complete  CommandExecutionStatus = 0
	Running   CommandExecutionStatus = 1
	Submitted CommandExecutionStatus = 2
	Queued    CommandExecutionStatus = 3
)

// CommandType identifies the command an event is associated with.
type CommandType uint32

// Command types.
const (
	CommandNDRangeKernel   CommandType = 0x11F0
	CommandNativeKernel    CommandType = 0x11F2
	CommandReadBuffer      CommandType = 0x11F3
	CommandWriteBuffer     CommandType = 0x11F4
	CommandCopyBuffer      CommandType = 0x11F5
	CommandReadImage       CommandType = 0x11F6
	CommandWriteImage      CommandType = 0x11F7
	CommandCopyImage       CommandType = 0x11F8
	CommandMapBuffer       CommandType = 0x11FB
	CommandUnmapMemObject  CommandType = 0x11FD
	CommandMarker          CommandType = 0x11FE
	CommandReadBufferRect  CommandType = 0x1201
	CommandWriteBufferRect CommandType = 0x1202
	CommandCopyBufferRect  CommandType = 0x1203
	CommandUser            CommandType = 0x1204
	CommandFillBuffer      CommandType = 0x1207
	CommandFillImage       CommandType = 0x1208
)

// ProfilingInfo names an event profiling query.
type ProfilingInfo uint32

// Profiling queries.
const (
	ProfilingCommandQueued ProfilingInfo = 0x1280
	ProfilingCommandSubmit ProfilingInfo = 0x1281
	ProfilingCommandStart  ProfilingInfo = 0x1282
	ProfilingCommandEnd    ProfilingInfo = 0x1283
)

// SamplerInfo names a sampler query.
type SamplerInfo uint32

// Sampler queries.
const (
	SamplerReferenceCount   SamplerInfo = 0x1150
	SamplerContext          SamplerInfo = 0x1151
	SamplerNormalizedCoords SamplerInfo = 0x1152
	SamplerAddressingMode   SamplerInfo = 0x1153
	SamplerFilterMode       SamplerInfo = 0x1154
)

// AddressingMode controls out-of-range image coordinates.
type AddressingMode uint32

// Addressing modes.
const (
	AddressNone           AddressingMode = 0x1130
	AddressClampToEdge    AddressingMode = 0x1131
	AddressClamp          AddressingMode = 0x1132
	AddressRepeat         AddressingMode = 0x1133
	AddressMirroredRepeat AddressingMode = 0x1134
)

// FilterMode controls image sampling.
type FilterMode uint32

// Filter modes.
const (
	FilterNearest FilterMode = 0x1140
	FilterLinear  FilterMode = 0x1141
)
