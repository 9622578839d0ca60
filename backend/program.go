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
	"k8s.io/klog/v2"

	"github.com/gx-org/piopencl"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

// programCreate creates a program from an intermediate language image.
//
// Platforms newer than 2.0 provide a core entry point. Older platforms need
// the IL program extension.
func (b *Backend) programCreate(ctx pi.Context, il []byte) (program pi.Program, res pi.Result) {
	res = pi.InvalidOperation
	clCtx := piopencl.Contexts.Native(ctx)
	devices, status := hostlayout.QuerySlice[cl.DeviceID](func(value []byte) (uint, cl.Int) {
		return b.api.GetContextInfo(clCtx, cl.ContextDevices, value)
	})
	if status != cl.Success || len(devices) == 0 {
		klog.V(1).Infof("cannot get the devices of context %#x: %s", ctx, piopencl.ToResult(status))
		return 0, pi.InvalidContext
	}
	platform, status := b.devicePlatform(devices[0])
	if status != cl.Success {
		klog.V(1).Infof("cannot get the platform of device %#x: %s", devices[0], piopencl.ToResult(status))
		return 0, pi.InvalidContext
	}
	caps, status := b.caps.get(platform)
	if status != cl.Success {
		klog.V(1).Infof("cannot get the capabilities of platform %#x: %s", platform, piopencl.ToResult(status))
		return 0, pi.InvalidContext
	}
	var clProgram cl.Program
	if caps.CoreIL() {
		klog.V(2).Infof("platform %#x: creating a program with the core IL entry point", platform)
		clProgram, status = b.api.CreateProgramWithIL(clCtx, il)
	} else {
		if caps.ExtensionsStatus != cl.Success || !caps.HasExtension(cl.ILProgramExtension) {
			klog.V(1).Infof("platform %#x version %s does not support %s", platform, caps.Version, cl.ILProgramExtension)
			return 0, pi.InvalidContext
		}
		createWithIL, ok := caps.CreateProgramWithILKHR()
		if !ok {
			klog.V(1).Infof("platform %#x reports %s but does not provide %s", platform, cl.ILProgramExtension, cl.CreateProgramWithILKHR)
			return 0, pi.FunctionNotAvailable
		}
		klog.V(2).Infof("platform %#x: creating a program with %s", platform, cl.CreateProgramWithILKHR)
		clProgram, status = createWithIL(clCtx, il)
	}
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot create a program from %d bytes of IL: %s", len(il), res)
		return 0, res
	}
	return piopencl.Programs.Adapter(clProgram), pi.Success
}

func (b *Backend) programCreateWithSource(ctx pi.Context, sources []string) (pi.Program, pi.Result) {
	program, status := b.api.CreateProgramWithSource(piopencl.Contexts.Native(ctx), sources)
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Programs.Adapter(program), pi.Success
}

// programCreateWithBinary writes the status of each binary to binaryStatus
// if it is not nil.
func (b *Backend) programCreateWithBinary(ctx pi.Context, devices []pi.Device, binaries [][]byte, binaryStatus []pi.Result) (pi.Program, pi.Result) {
	var clStatus []cl.Int
	if binaryStatus != nil {
		clStatus = make([]cl.Int, len(binaryStatus))
	}
	program, status := b.api.CreateProgramWithBinary(
		piopencl.Contexts.Native(ctx),
		piopencl.Devices.NativeSlice(devices),
		binaries,
		clStatus)
	for i, st := range clStatus {
		binaryStatus[i] = piopencl.ToResult(st)
	}
	if status != cl.Success {
		return 0, piopencl.ToResult(status)
	}
	return piopencl.Programs.Adapter(program), pi.Success
}

// programNotify wraps a PI callback to receive native handles.
func programNotify(notify pi.ProgramNotify) cl.ProgramNotify {
	if notify == nil {
		return nil
	}
	return func(program cl.Program, userData any) {
		notify(piopencl.Programs.Adapter(program), userData)
	}
}

func (b *Backend) programCompile(program pi.Program, devices []pi.Device, options string, headers []pi.Program, headerNames []string, notify pi.ProgramNotify, userData any) pi.Result {
	return piopencl.ToResult(b.api.CompileProgram(
		piopencl.Programs.Native(program),
		piopencl.Devices.NativeSlice(devices),
		options,
		piopencl.Programs.NativeSlice(headers),
		headerNames,
		programNotify(notify),
		userData))
}

func (b *Backend) programBuild(program pi.Program, devices []pi.Device, options string, notify pi.ProgramNotify, userData any) pi.Result {
	res := piopencl.ToResult(b.api.BuildProgram(
		piopencl.Programs.Native(program),
		piopencl.Devices.NativeSlice(devices),
		options,
		programNotify(notify),
		userData))
	if res != pi.Success {
		klog.V(1).Infof("cannot build program %#x with options %q: %s", program, options, res)
	}
	return res
}

func (b *Backend) programLink(ctx pi.Context, devices []pi.Device, options string, inputs []pi.Program, notify pi.ProgramNotify, userData any) (program pi.Program, res pi.Result) {
	res = pi.InvalidOperation
	clProgram, status := b.api.LinkProgram(
		piopencl.Contexts.Native(ctx),
		piopencl.Devices.NativeSlice(devices),
		options,
		piopencl.Programs.NativeSlice(inputs),
		programNotify(notify),
		userData)
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot link %d programs: %s", len(inputs), res)
		return 0, res
	}
	return piopencl.Programs.Adapter(clProgram), pi.Success
}
