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
// Package plugin loads a PI plugin driving a native compute API.
package backend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/cl/clsim"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

const hiddenILConfig = `
[[platform]]
name = "Test Platform"
version = "OpenCL 1.2 test"
extensions = ["cl_khr_il_program"]
hidden_functions = ["clCreateProgramWithILKHR"]

[[platform.device]]
name = "Test CPU"
type = "cpu"
`

func TestProgramCreate(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		want     pi.Result
		wantCore int
		wantKHR  int
	}{
		{
			name:     "core 3.0",
			config:   platformConfig("OpenCL 3.0 test"),
			want:     pi.Success,
			wantCore: 1,
		},
		{
			name:     "core 2.1",
			config:   platformConfig("OpenCL 2.1 test", cl.ILProgramExtension),
			want:     pi.Success,
			wantCore: 1,
		},
		{
			name:    "extension 2.0",
			config:  platformConfig("OpenCL 2.0 test", cl.ILProgramExtension),
			want:    pi.Success,
			wantKHR: 1,
		},
		{
			name:    "extension 1.2",
			config:  platformConfig("OpenCL 1.2 test", cl.ILProgramExtension),
			want:    pi.Success,
			wantKHR: 1,
		},
		{
			name:   "missing extension",
			config: platformConfig("OpenCL 1.2 test"),
			want:   pi.InvalidContext,
		},
		{
			name:   "hidden function",
			config: hiddenILConfig,
			want:   pi.FunctionNotAvailable,
		},
	}
	il := clsim.BuildSPIRV("scale")
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t, test.config)
			f.sim.ResetCalls()
			program, res := f.table.Program.Create(f.ctx, il)
			require.Equal(t, test.want, res)
			assert.Equal(t, test.wantCore, f.sim.Calls("CreateProgramWithIL"))
			assert.Equal(t, test.wantKHR, f.sim.Calls(cl.CreateProgramWithILKHR))
			if res != pi.Success {
				assert.Zero(t, program)
				return
			}
			got, res := hostlayout.QueryBytes(func(value []byte) (uint, pi.Result) {
				return f.table.Program.GetInfo(program, pi.ProgramInfoIL, value)
			})
			require.Equal(t, pi.Success, res)
			assert.Equal(t, il, got)
			assert.Equal(t, pi.Success, f.table.Program.Release(program))
		})
	}
}

func TestProgramCreateInvalidContext(t *testing.T) {
	f := newFixture(t, "")
	_, res := f.table.Program.Create(0, clsim.BuildSPIRV("scale"))
	assert.Equal(t, pi.InvalidContext, res)
}

func TestProgramBuild(t *testing.T) {
	f := newFixture(t, "")
	program, res := f.table.Program.CreateWithSource(f.ctx, []string{
		"kernel void scale(global float* x, float a) {}\n",
		"kernel void offset(global float* x) {}\n",
	})
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Program.Release(program)) }()

	_, res = f.table.Program.GetInfo(program, pi.ProgramInfoNumKernels, nil)
	assert.Equal(t, pi.InvalidProgramExecutable, res)

	var notified []pi.Program
	notify := func(program pi.Program, userData any) {
		notified = append(notified, program)
		assert.Equal(t, "user data", userData)
	}
	require.Equal(t, pi.Success, f.table.Program.Build(program, nil, "-O2", notify, "user data"))
	assert.Equal(t, []pi.Program{program}, notified)

	names, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetInfo(program, pi.ProgramInfoKernelNames, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, "scale;offset", names)

	options, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetBuildInfo(program, f.devices[0], pi.ProgramBuildInfoOptions, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, "-O2", options)

	kernel, res := f.table.Kernel.Create(program, "scale")
	require.Equal(t, pi.Success, res)
	numArgs, res := hostlayout.Query[uint32](func(value []byte) (uint, pi.Result) {
		return f.table.Kernel.GetInfo(kernel, pi.KernelInfoNumArgs, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint32(2), numArgs)
	assert.Equal(t, pi.InvalidArgIndex, f.table.Kernel.SetArg(kernel, 2, 4, make([]byte, 4)))
	assert.Equal(t, pi.InvalidArgSize, f.table.Kernel.SetArg(kernel, 1, 4, make([]byte, 2)))
	assert.Equal(t, pi.Success, f.table.Kernel.SetArg(kernel, 1, 4, make([]byte, 4)))
	assert.Equal(t, pi.Success, f.table.Kernel.Release(kernel))

	_, res = f.table.Kernel.Create(program, "missing")
	assert.Equal(t, pi.InvalidKernelName, res)
}

func TestProgramBuildFailure(t *testing.T) {
	var reports []string
	f := newFixture(t, "")
	ctx, res := f.table.Context.Create(nil, f.devices, func(errInfo string, _ []byte, _ any) {
		reports = append(reports, errInfo)
	}, nil)
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Context.Release(ctx)) }()

	program, res := f.table.Program.CreateWithSource(ctx, []string{"#error unsupported\nkernel void k() {}\n"})
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Program.Release(program)) }()
	assert.Equal(t, pi.BuildProgramFailure, f.table.Program.Build(program, nil, "", nil, nil))
	assert.Len(t, reports, 1)

	status, res := hostlayout.Query[pi.ProgramBuildStatus](func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetBuildInfo(program, f.devices[0], pi.ProgramBuildInfoStatus, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, pi.ProgramBuildStatusError, status)
}

func TestProgramCompileLink(t *testing.T) {
	f := newFixture(t, "")
	var objects []pi.Program
	for _, src := range []string{"kernel void a() {}", "kernel void b(int x) {}"} {
		program, res := f.table.Program.CreateWithSource(f.ctx, []string{src})
		require.Equal(t, pi.Success, res)
		require.Equal(t, pi.Success, f.table.Program.Compile(program, nil, "", nil, nil, nil, nil))
		objects = append(objects, program)
	}
	linked, res := f.table.Program.Link(f.ctx, nil, "", objects, nil, nil)
	require.Equal(t, pi.Success, res)
	names, res := hostlayout.QueryString(func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetInfo(linked, pi.ProgramInfoKernelNames, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, "a;b", names)

	_, res = f.table.Program.Link(f.ctx, nil, "", append(objects, objects[0]), nil, nil)
	assert.Equal(t, pi.LinkProgramFailure, res)

	assert.Equal(t, pi.Success, f.table.Program.Release(linked))
	for _, program := range objects {
		assert.Equal(t, pi.Success, f.table.Program.Release(program))
	}
}

func TestProgramBinaries(t *testing.T) {
	f := newFixture(t, "")
	source, res := f.table.Program.CreateWithSource(f.ctx, []string{"kernel void k(int x) {}"})
	require.Equal(t, pi.Success, res)
	require.Equal(t, pi.Success, f.table.Program.Build(source, nil, "", nil, nil))
	sizes, res := hostlayout.QuerySlice[uint](func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetInfo(source, pi.ProgramInfoBinarySizes, value)
	})
	require.Equal(t, pi.Success, res)
	require.Len(t, sizes, len(f.devices))
	binaries, res := hostlayout.QueryBytes(func(value []byte) (uint, pi.Result) {
		return f.table.Program.GetInfo(source, pi.ProgramInfoBinaries, value)
	})
	require.Equal(t, pi.Success, res)
	require.Equal(t, pi.Success, f.table.Program.Release(source))
	binary := binaries[:sizes[0]]

	status := make([]pi.Result, 2)
	fromBinary, res := f.table.Program.CreateWithBinary(f.ctx, f.devices, [][]byte{binary, []byte("garbage")}, status)
	assert.Equal(t, pi.InvalidBinary, res)
	assert.Zero(t, fromBinary)
	assert.Equal(t, []pi.Result{pi.Success, pi.InvalidBinary}, status)

	fromBinary, res = f.table.Program.CreateWithBinary(f.ctx, f.devices[:1], [][]byte{binary}, status[:1])
	require.Equal(t, pi.Success, res)
	_, res = f.table.Kernel.Create(fromBinary, "k")
	assert.Equal(t, pi.InvalidProgramExecutable, res)
	require.Equal(t, pi.Success, f.table.Program.Build(fromBinary, nil, "", nil, nil))
	kernel, res := f.table.Kernel.Create(fromBinary, "k")
	require.Equal(t, pi.Success, res)
	numArgs, res := hostlayout.Query[uint32](func(value []byte) (uint, pi.Result) {
		return f.table.Kernel.GetInfo(kernel, pi.KernelInfoNumArgs, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint32(1), numArgs)
	assert.Equal(t, pi.Success, f.table.Kernel.Release(kernel))
	assert.Equal(t, pi.Success, f.table.Program.Release(fromBinary))
}

func TestFunctionPointer(t *testing.T) {
	f := newFixture(t, "")
	program, res := f.table.Program.CreateWithSource(f.ctx, []string{"kernel void k() {}"})
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Program.Release(program)) }()

	_, res = f.table.Device.GetFunctionPointer(f.devices[0], program, "k")
	assert.Equal(t, pi.InvalidProgramExecutable, res)

	require.Equal(t, pi.Success, f.table.Program.Build(program, nil, "", nil, nil))
	addr, res := f.table.Device.GetFunctionPointer(f.devices[0], program, "k")
	require.Equal(t, pi.Success, res)
	assert.NotZero(t, addr)

	addr, res = f.table.Device.GetFunctionPointer(f.devices[0], program, "missing")
	assert.Equal(t, pi.InvalidKernelName, res)
	assert.Zero(t, addr)
}

func TestFunctionPointerUnsupported(t *testing.T) {
	f := newFixture(t, platformConfig("OpenCL 3.0 test"))
	program, res := f.table.Program.CreateWithSource(f.ctx, []string{"kernel void k() {}"})
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Program.Release(program)) }()
	require.Equal(t, pi.Success, f.table.Program.Build(program, nil, "", nil, nil))

	addr, res := f.table.Device.GetFunctionPointer(f.devices[0], program, "k")
	assert.Equal(t, pi.InvalidDevice, res)
	assert.Zero(t, addr)
}
