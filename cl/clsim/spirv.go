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
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	spirvMagic       = 0x07230203
	spirvVersion     = 0x00010000
	spirvHeaderWords = 5

	opEntryPoint         = 15
	executionModelKernel = 6
)

// IsSPIRV reports whether image starts with the SPIR-V magic number in
// either byte order.
func IsSPIRV(image []byte) bool {
	if len(image) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(image) == spirvMagic || binary.BigEndian.Uint32(image) == spirvMagic
}

// spirvEntryPoints returns the names of the kernel entry points of a SPIR-V
// module.
func spirvEntryPoints(image []byte) ([]string, error) {
	if len(image)%4 != 0 || len(image) < 4*spirvHeaderWords {
		return nil, errors.Errorf("invalid SPIR-V module size: %d bytes", len(image))
	}
	var order binary.ByteOrder = binary.LittleEndian
	if order.Uint32(image) != spirvMagic {
		order = binary.BigEndian
		if order.Uint32(image) != spirvMagic {
			return nil, errors.Errorf("invalid SPIR-V magic number %#x", binary.LittleEndian.Uint32(image))
		}
	}
	var names []string
	for pos := 4 * spirvHeaderWords; pos < len(image); {
		word := order.Uint32(image[pos:])
		count, opcode := int(word>>16), word&0xffff
		if count == 0 || pos+4*count > len(image) {
			return nil, errors.Errorf("invalid SPIR-V instruction at byte %d", pos)
		}
		inst := image[pos : pos+4*count]
		pos += 4 * count
		if opcode != opEntryPoint || count < 4 || order.Uint32(inst[4:]) != executionModelKernel {
			continue
		}
		// The name is a NUL terminated literal starting at the fourth word.
		var name []byte
		for j := 12; j < len(inst); j += 4 {
			name = binary.LittleEndian.AppendUint32(name, order.Uint32(inst[j:]))
		}
		end := bytes.IndexByte(name, 0)
		if end < 0 {
			return nil, errors.Errorf("unterminated SPIR-V entry point name")
		}
		names = append(names, string(name[:end]))
	}
	return names, nil
}

// BuildSPIRV returns a little-endian SPIR-V module declaring one kernel
// entry point per name. The module carries no code: the simulator runs
// kernels registered with RegisterKernel.
func BuildSPIRV(names ...string) []byte {
	words := []uint32{spirvMagic, spirvVersion, 0, uint32(len(names) + 1), 0}
	for i, name := range names {
		literal := make([]byte, (len(name)/4+1)*4)
		copy(literal, name)
		inst := []uint32{0, executionModelKernel, uint32(i + 1)}
		for j := 0; j < len(literal); j += 4 {
			inst = append(inst, binary.LittleEndian.Uint32(literal[j:]))
		}
		inst[0] = uint32(len(inst))<<16 | opEntryPoint
		words = append(words, inst...)
	}
	image := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(image[4*i:], w)
	}
	return image
}
