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
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
)

func (b *Backend) memBufferCreate(ctx pi.Context, flags pi.MemFlags, size uint, hostPtr []byte) (pi.Mem, pi.Result) {
	mem, status := b.api.CreateBuffer(piopencl.Contexts.Native(ctx), cl.MemFlags(flags), size, hostPtr)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Mems.Adapter(mem), pi.Success
}

func (b *Backend) memImageCreate(ctx pi.Context, flags pi.MemFlags, format *pi.ImageFormat, desc *pi.ImageDesc, hostPtr []byte) (pi.Mem, pi.Result) {
	mem, status := b.api.CreateImage(
		piopencl.Contexts.Native(ctx),
		cl.MemFlags(flags),
		piopencl.NativeImageFormat(format),
		piopencl.NativeImageDesc(desc),
		hostPtr)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Mems.Adapter(mem), pi.Success
}

func (b *Backend) memBufferPartition(buffer pi.Mem, flags pi.MemFlags, createType pi.BufferCreateType, region *pi.BufferRegion) (pi.Mem, pi.Result) {
	mem, status := b.api.CreateSubBuffer(
		piopencl.Mems.Native(buffer),
		cl.MemFlags(flags),
		cl.BufferCreateType(createType),
		piopencl.NativeBufferRegion(region))
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Mems.Adapter(mem), pi.Success
}
