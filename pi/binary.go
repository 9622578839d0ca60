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

import "fmt"

// BinaryFormat is the encoding of a device binary image.
type BinaryFormat uint8

// Binary image encodings.
const (
	BinaryFormatNone BinaryFormat = iota
	BinaryFormatNative
	BinaryFormatSPIRV
	BinaryFormatLLVMBitcode
)

func (f BinaryFormat) String() string {
	switch f {
	case BinaryFormatNone:
		return "none"
	case BinaryFormatNative:
		return "native"
	case BinaryFormatSPIRV:
		return "spirv"
	case BinaryFormatLLVMBitcode:
		return "llvm"
	}
	return fmt.Sprintf("BinaryFormat(%d)", uint8(f))
}

// Device target specifications of binary images.
const (
	// TargetSPIRV64 is a generic 64-bit SPIR-V image any device can consume.
	TargetSPIRV64 = "spir64"
	// TargetSPIRV64X86_64 is an image compiled ahead of time for CPUs.
	TargetSPIRV64X86_64 = "spir64_x86_64"
	// TargetSPIRV64Gen is an image compiled ahead of time for GPUs.
	TargetSPIRV64Gen = "spir64_gen"
	// TargetSPIRV64FPGA is an image compiled ahead of time for accelerators.
	TargetSPIRV64FPGA = "spir64_fpga"
)

// DeviceBinary is one compiled image of a multi-target application.
type DeviceBinary struct {
	// Format is the encoding of Image.
	Format BinaryFormat
	// DeviceTargetSpec is the target the image was produced for.
	DeviceTargetSpec string
	CompileOptions   string
	LinkOptions      string
	Image            []byte
}

func (b *DeviceBinary) String() string {
	return fmt.Sprintf("%s[%s,%d bytes]", b.DeviceTargetSpec, b.Format, len(b.Image))
}
