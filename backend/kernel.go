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

func (b *Backend) kernelCreate(program pi.Program, name string) (pi.Kernel, pi.Result) {
	kernel, status := b.api.CreateKernel(piopencl.Programs.Native(program), name)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Kernels.Adapter(kernel), pi.Success
}

func (b *Backend) kernelSetArg(kernel pi.Kernel, index uint32, size uint, value []byte) pi.Result {
	return piopencl.ToResult(b.api.SetKernelArg(piopencl.Kernels.Native(kernel), index, size, value))
}

func (b *Backend) kernelGetSubGroupInfo(kernel pi.Kernel, device pi.Device, name pi.KernelSubGroupInfo, input []byte, value []byte) (uint, pi.Result) {
	size, status := b.api.GetKernelSubGroupInfo(
		piopencl.Kernels.Native(kernel),
		piopencl.Devices.Native(device),
		cl.KernelSubGroupInfo(name),
		input,
		value)
	return size, piopencl.ToResult(status)
}
