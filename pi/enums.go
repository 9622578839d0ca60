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
	PlatformInfoProfile    PlatformInfo = 0x0900
	PlatformInfoVersion    PlatformInfo = 0x0901
	PlatformInfoName       PlatformInfo = 0x0902
	PlatformInfoVendor     PlatformInfo = 0x0903
	PlatformInfoExtensions PlatformInfo = 0x0904
)

// DeviceInfo names a device query.
type DeviceInfo uint32

// Device queries.
const (
	DeviceInfoType                   DeviceInfo = 0x1000
	DeviceInfoVendorID               DeviceInfo = 0x1001
	DeviceInfoMaxComputeUnits        DeviceInfo = 0x1002
	DeviceInfoMaxWorkGroupSize       DeviceInfo = 0x1004
	DeviceInfoGlobalMemSize          DeviceInfo = 0x101F
	DeviceInfoAvailable              DeviceInfo = 0x1027
	DeviceInfoName                   DeviceInfo = 0x102B
	DeviceInfoVendor                 DeviceInfo = 0x102C
	DeviceInfoDriverVersion          DeviceInfo = 0x102D
	DeviceInfoProfile                DeviceInfo = 0x102E
	DeviceInfoVersion                DeviceInfo = 0x102F
	DeviceInfoExtensions             DeviceInfo = 0x1030
	DeviceInfoPlatform               DeviceInfo = 0x1031
	DeviceInfoParent                 DeviceInfo = 0x1042
	DeviceInfoPartitionMaxSubDevices DeviceInfo = 0x1043
	DeviceInfoReferenceCount         DeviceInfo = 0x1047
)

// DevicePartitionProperty is an element of a sub-device partition list.
type DevicePartitionProperty uintptr

// Partition schemes.
const (
	DevicePartitionEqually  DevicePartitionProperty = 0x1086
	DevicePartitionByCounts DevicePartitionProperty = 0x1087
)

// ContextProperties is an element of a context property list.
type ContextProperties uintptr

// ContextPropertiesPlatform is the context property key naming the platform.
const ContextPropertiesPlatform ContextProperties = 0x1084

// ContextInfo names a context query.
type ContextInfo uint32

// Context queries.
const (
	ContextInfoReferenceCount ContextInfo = 0x1080
	ContextInfoDevices        ContextInfo = 0x1081
	ContextInfoProperties     ContextInfo = 0x1082
	ContextInfoNumDevices     ContextInfo = 0x1083
)

// QueueProperties is a bitfield of queue behaviors.
type QueueProperties uint64

// Queue behaviors.
const (
	QueueOutOfOrderExecModeEnable QueueProperties = 1 << 0
	QueueProfilingEnable          QueueProperties = 1 << 1
)

// QueueInfo names a queue query.
type QueueInfo uint32

// Queue queries.
const (
	QueueInfoContext        QueueInfo = 0x1090
	QueueInfoDevice         QueueInfo = 0x1091
	QueueInfoReferenceCount QueueInfo = 0x1092
	QueueInfoProperties     QueueInfo = 0x1093
)

// MemFlags is a bitfield of memory object flags.
type MemFlags uint64

// Memory object flags.
const (
	MemFlagsReadWrite    MemFlags = 1 << 0
	MemFlagsWriteOnly    MemFlags = 1 << 1
	MemFlagsReadOnly     MemFlags = 1 << 2
	MemFlagsUseHostPtr   MemFlags = 1 << 3
	MemFlagsAllocHostPtr MemFlags = 1 << 4
	MemFlagsCopyHostPtr  MemFlags = 1 << 5
)

// MemType identifies the kind of a memory object.
type MemType uint32

// Memory object kinds.
const (
	MemTypeBuffer        MemType = 0x10F0
	MemTypeImage2D       MemType = 0x10F1
	MemTypeImage3D       MemType = 0x10F2
	MemTypeImage2DArray  MemType = 0x10F3
	MemTypeImage1D       MemType = 0x10F4
	MemTypeImage1DArray  MemType = 0x10F5
	MemTypeImage1DBuffer MemType = 0x10F6
)

// MemInfo names a memory object query.
type MemInfo uint32

// Memory object queries.
const (
	MemInfoType           MemInfo = 0x1100
	MemInfoFlags          MemInfo = 0x1101
	MemInfoSize           MemInfo = 0x1102
	MemInfoHostPtr        MemInfo = 0x1103
	MemInfoMapCount       MemInfo = 0x1104
	MemInfoReferenceCount MemInfo = 0x1105
	MemInfoContext        MemInfo = 0x1106
	MemInfoAssociated     MemInfo = 0x1107
	MemInfoOffset         MemInfo = 0x1108
)

// ImageInfo names an image query.
type ImageInfo uint32

// Image queries.
const (
	ImageInfoFormat       ImageInfo = 0x1110
	ImageInfoElementSize  ImageInfo = 0x1111
	ImageInfoRowPitch     ImageInfo = 0x1112
	ImageInfoSlicePitch   ImageInfo = 0x1113
	ImageInfoWidth        ImageInfo = 0x1114
	ImageInfoHeight       ImageInfo = 0x1115
	ImageInfoDepth        ImageInfo = 0x1116
	ImageInfoArraySize    ImageInfo = 0x1117
	ImageInfoNumMipLevels ImageInfo = 0x1119
	ImageInfoNumSamples   ImageInfo = 0x111A
)

// ImageChannelOrder is the component layout of an image element.
type ImageChannelOrder uint32

// Channel orders.
const (
	ImageChannelOrderR    ImageChannelOrder = 0x10B0
	ImageChannelOrderA    ImageChannelOrder = 0x10B1
	ImageChannelOrderRG   ImageChannelOrder = 0x10B2
	ImageChannelOrderRA   ImageChannelOrder = 0x10B3
	ImageChannelOrderRGB  ImageChannelOrder = 0x10B4
	ImageChannelOrderRGBA ImageChannelOrder = 0x10B5
	ImageChannelOrderBGRA ImageChannelOrder = 0x10B6
)

// ImageChannelType is the storage type of an image component.
type ImageChannelType uint32

// Channel types.
const (
	ImageChannelTypeSnormInt8     ImageChannelType = 0x10D0
	ImageChannelTypeSnormInt16    ImageChannelType = 0x10D1
	ImageChannelTypeUnormInt8     ImageChannelType = 0x10D2
	ImageChannelTypeUnormInt16    ImageChannelType = 0x10D3
	ImageChannelTypeSignedInt8    ImageChannelType = 0x10D7
	ImageChannelTypeSignedInt16   ImageChannelType = 0x10D8
	ImageChannelTypeSignedInt32   ImageChannelType = 0x10D9
	ImageChannelTypeUnsignedInt8  ImageChannelType = 0x10DA
	ImageChannelTypeUnsignedInt16 ImageChannelType = 0x10DB
	ImageChannelTypeUnsignedInt32 ImageChannelType = 0x10DC
	ImageChannelTypeHalfFloat     ImageChannelType = 0x10DD
	ImageChannelTypeFloat         ImageChannelType = 0x10DE
)

// ImageFormat describes the layout of an image element.
type ImageFormat struct {
	ChannelOrder ImageChannelOrder
	ChannelType  ImageChannelType
}

// ImageDesc describes the shape of an image.
//
// The layout matches the native image descriptor.
type ImageDesc struct {
	Type         MemType
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

// BufferCreateType identifies the descriptor of a buffer partition.
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
	ProgramInfoReferenceCount ProgramInfo = 0x1160
	ProgramInfoContext        ProgramInfo = 0x1161
	ProgramInfoNumDevices     ProgramInfo = 0x1162
	ProgramInfoDevices        ProgramInfo = 0x1163
	ProgramInfoSource         ProgramInfo = 0x1164
	ProgramInfoBinarySizes    ProgramInfo = 0x1165
	ProgramInfoBinaries       ProgramInfo = 0x1166
	ProgramInfoNumKernels     ProgramInfo = 0x1167
	ProgramInfoKernelNames    ProgramInfo = 0x1168
	ProgramInfoIL             ProgramInfo = 0x1169
)

// ProgramBuildInfo names a per-device program build query.
type ProgramBuildInfo uint32

// Program build queries.
const (
	ProgramBuildInfoStatus     ProgramBuildInfo = 0x1181
	ProgramBuildInfoOptions    ProgramBuildInfo = 0x1182
	ProgramBuildInfoLog        ProgramBuildInfo = 0x1183
	ProgramBuildInfoBinaryType ProgramBuildInfo = 0x1184
)

// ProgramBuildStatus is the state of a program build on a device.
type ProgramBuildStatus int32

// Build states.
const (
	ProgramBuildStatusSuccess    ProgramBuildStatus = 0
	ProgramBuildStatusNone       ProgramBuildStatus = -1
	ProgramBuildStatusError      ProgramBuildStatus = -2
	ProgramBuildStatusInProgress ProgramBuildStatus = -3
)

// KernelInfo names a kernel query.
type KernelInfo uint32

// Kernel queries.
const (
	KernelInfoFunctionName   KernelInfo = 0x1190
	KernelInfoNumArgs        KernelInfo = 0x1191
	KernelInfoReferenceCount KernelInfo = 0x1192
	KernelInfoContext        KernelInfo = 0x1193
	KernelInfoProgram        KernelInfo = 0x1194
	KernelInfoAttributes     KernelInfo = 0x1195
)

// KernelGroupInfo names a per-device kernel query.
type KernelGroupInfo uint32

// Per-device kernel queries.
const (
	KernelGroupInfoWorkGroupSize        KernelGroupInfo = 0x11B0
	KernelGroupInfoCompileWorkGroupSize KernelGroupInfo = 0x11B1
	KernelGroupInfoLocalMemSize         KernelGroupInfo = 0x11B2
	KernelGroupInfoPreferredSizeMul     KernelGroupInfo = 0x11B3
	KernelGroupInfoPrivateMemSize       KernelGroupInfo = 0x11B4
)

// KernelSubGroupInfo names a per-device kernel sub-group query.
type KernelSubGroupInfo uint32

// Sub-group queries.
const (
	KernelSubGroupInfoMaxSubGroupSize   KernelSubGroupInfo = 0x2033
	KernelSubGroupInfoSubGroupCount     KernelSubGroupInfo = 0x2034
	KernelSubGroupInfoLocalSizeForCount KernelSubGroupInfo = 0x11B8
	KernelSubGroupInfoMaxNumSubGroups   KernelSubGroupInfo = 0x11B9
	KernelSubGroupInfoCompileNum        KernelSubGroupInfo = 0x11BA
)

// EventInfo names an event query.
type EventInfo uint32

// Event queries.
const (
	EventInfoCommandQueue           EventInfo = 0x11D0
	EventInfoCommandType            EventInfo = 0x11D1
	EventInfoReferenceCount         EventInfo = 0x11D2
	EventInfoCommandExecutionStatus EventInfo = 0x11D3
	EventInfoContext                EventInfo = 0x11D4
)

// EventStatus is the execution state of the command of an event. Negative
// values are errors.
type EventStatus int32

// Execution states.
const (
	EventComplete  EventStatus = 0
	EventRunning   EventStatus = 1
	EventSubmitted EventStatus = 2
	EventQueued    EventStatus = 3
)

// ProfilingInfo names an event profiling query.
type ProfilingInfo uint32

// Profiling queries.
const (
	ProfilingInfoCommandQueued ProfilingInfo = 0x1280
	ProfilingInfoCommandSubmit ProfilingInfo = 0x1281
	ProfilingInfoCommandStart  ProfilingInfo = 0x1282
	ProfilingInfoCommandEnd    ProfilingInfo = 0x1283
)

// SamplerInfo names a sampler query.
type SamplerInfo uint32

// Sampler queries.
const (
	SamplerInfoReferenceCount   SamplerInfo = 0x1150
	SamplerInfoContext          SamplerInfo = 0x1151
	SamplerInfoNormalizedCoords SamplerInfo = 0x1152
	SamplerInfoAddressingMode   SamplerInfo = 0x1153
	SamplerInfoFilterMode       SamplerInfo = 0x1154
)

// SamplerProperties is an element of a sampler property list: alternating
// keys and values, terminated by a zero key or the end of the list.
type SamplerProperties uint64

// Sampler property keys.
const (
	SamplerPropertiesNormalizedCoords SamplerProperties = 0x1152
	SamplerPropertiesAddressingMode   SamplerProperties = 0x1153
	SamplerPropertiesFilterMode       SamplerProperties = 0x1154
)

// SamplerAddressingMode controls out-of-range image coordinates.
type SamplerAddressingMode uint32

// Addressing modes.
const (
	SamplerAddressingModeNone           SamplerAddressingMode = 0x1130
	SamplerAddressingModeClampToEdge    SamplerAddressingMode = 0x1131
	SamplerAddressingModeClamp          SamplerAddressingMode = 0x1132
	SamplerAddressingModeRepeat         SamplerAddressingMode = 0x1133
	SamplerAddressingModeMirroredRepeat SamplerAddressingMode = 0x1134
)

// SamplerFilterMode controls image sampling.
type SamplerFilterMode uint32

// Filter modes.
const (
	SamplerFilterModeNearest SamplerFilterMode = 0x1140
	SamplerFilterModeLinear  SamplerFilterMode = 0x1141
)

type (
	// ContextNotify receives errors reported by the backend for a context.
	ContextNotify func(errInfo string, privateInfo []byte, userData any)

	// ProgramNotify is called when a program compile, build, or link completes.
	ProgramNotify func(program Program, userData any)

	// EventNotify is called when an event reaches a given execution state.
	EventNotify func(event Event, status EventStatus, userData any)

	// NativeKernelFunc is a host function enqueued as a kernel.
	NativeKernelFunc func(args []byte)
)
