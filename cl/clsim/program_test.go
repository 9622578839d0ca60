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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

const twoKernels = `
__kernel void scale(__global float *x, float a) {}
kernel void reset(void) {}
`

func (f *fixture) sourceProgram(t *testing.T, source string) cl.Program {
	t.Helper()
	p, st := f.s.CreateProgramWithSource(f.ctx, []string{source})
	require.Equal(t, cl.Success, st)
	t.Cleanup(func() { assert.Equal(t, cl.Success, f.s.ReleaseProgram(p)) })
	return p
}

func programString(t *testing.T, s *Sim, p cl.Program, name cl.ProgramInfo) string {
	t.Helper()
	value, st := hostlayout.QueryString(func(value []byte) (uint, cl.Int) {
		return s.GetProgramInfo(p, name, value)
	})
	require.Equal(t, cl.Success, st)
	return value
}

func buildStatus(t *testing.T, s *Sim, p cl.Program, dev cl.DeviceID) cl.BuildStatus {
	t.Helper()
	status, st := hostlayout.Query[cl.BuildStatus](func(value []byte) (uint, cl.Int) {
		return s.GetProgramBuildInfo(p, dev, cl.ProgramBuildStatus, value)
	})
	require.Equal(t, cl.Success, st)
	return status
}

func TestSourceKernels(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, twoKernels)
	assert.Equal(t, twoKernels, programString(t, f.s, p, cl.ProgramSource))
	_, st := f.s.GetProgramInfo(p, cl.ProgramKernelNames, nil)
	assert.Equal(t, cl.InvalidProgramExecutable, st)
	_, st = f.s.CreateKernel(p, "scale")
	assert.Equal(t, cl.InvalidProgramExecutable, st)

	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "-O2", nil, nil))
	assert.Equal(t, "scale;reset", programString(t, f.s, p, cl.ProgramKernelNames))
	assert.Equal(t, cl.BuildSuccess, buildStatus(t, f.s, p, f.devices[1]))

	for name, want := range map[string]uint32{"scale": 2, "reset": 0} {
		k, st := f.s.CreateKernel(p, name)
		require.Equal(t, cl.Success, st)
		numArgs, st := hostlayout.Query[uint32](func(value []byte) (uint, cl.Int) {
			return f.s.GetKernelInfo(k, cl.KernelNumArgs, value)
		})
		require.Equal(t, cl.Success, st)
		assert.Equal(t, want, numArgs, name)
		assert.Equal(t, cl.Success, f.s.ReleaseKernel(k))
	}
	_, st = f.s.CreateKernel(p, "missing")
	assert.Equal(t, cl.InvalidKernelName, st)
}

func TestBuildWithKernels(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, twoKernels)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	k, st := f.s.CreateKernel(p, "reset")
	require.Equal(t, cl.Success, st)
	assert.Equal(t, cl.InvalidOperation, f.s.BuildProgram(p, nil, "", nil, nil))
	require.Equal(t, cl.Success, f.s.ReleaseKernel(k))
	assert.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
}

func TestBuildFailure(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	var reports []string
	ctx, st := f.s.CreateContext(nil, f.devices, func(errInfo string, _ []byte, _ any) {
		reports = append(reports, errInfo)
	}, nil)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseContext(ctx)
	p, st := f.s.CreateProgramWithSource(ctx, []string{"#error missing header\n"})
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(p)

	notified := 0
	st = f.s.BuildProgram(p, nil, "", func(got cl.Program, data any) {
		assert.Equal(t, p, got)
		assert.Equal(t, "build", data)
		notified++
	}, "build")
	assert.Equal(t, cl.BuildProgramFailure, st)
	assert.Equal(t, 1, notified)
	assert.Equal(t, cl.BuildError, buildStatus(t, f.s, p, f.devices[0]))
	log, st := hostlayout.QueryString(func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramBuildInfo(p, f.devices[0], cl.ProgramBuildLog, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, "error: missing header", log)
	require.Len(t, reports, 1)
	assert.True(t, strings.HasPrefix(reports[0], "build failed"))
}

func TestCompileLink(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	a := f.sourceProgram(t, "kernel void a(int x) {}")
	b := f.sourceProgram(t, "kernel void b(int x, int y) {}")
	require.Equal(t, cl.Success, f.s.CompileProgram(a, nil, "", nil, nil, nil, nil))
	require.Equal(t, cl.Success, f.s.CompileProgram(b, nil, "", nil, nil, nil, nil))
	binaryType, st := hostlayout.Query[cl.ProgramBinaryType](func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramBuildInfo(a, f.devices[0], cl.ProgramBuildBinaryType, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, cl.ProgramBinaryTypeCompiledObject, binaryType)

	lib, st := f.s.LinkProgram(f.ctx, nil, createLibraryOption, []cl.Program{a}, nil, nil)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(lib)
	_, st = f.s.CreateKernel(lib, "a")
	assert.Equal(t, cl.InvalidProgramExecutable, st, "libraries are not executable")

	exe, st := f.s.LinkProgram(f.ctx, f.devices[:1], "", []cl.Program{lib, b}, nil, nil)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(exe)
	assert.Equal(t, "a;b", programString(t, f.s, exe, cl.ProgramKernelNames))
	numDevices, st := hostlayout.Query[uint32](func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramInfo(exe, cl.ProgramNumDevices, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(1), numDevices)

	_, st = f.s.LinkProgram(f.ctx, nil, "", []cl.Program{a, a}, nil, nil)
	assert.Equal(t, cl.LinkProgramFailure, st)
	_, st = f.s.LinkProgram(f.ctx, nil, "", []cl.Program{exe}, nil, nil)
	assert.Equal(t, cl.InvalidOperation, st)
	_, st = f.s.LinkProgram(f.ctx, nil, "", nil, nil, nil)
	assert.Equal(t, cl.InvalidValue, st)
}

func TestCompileErrors(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, "#error bad")
	assert.Equal(t, cl.CompileProgramFailure, f.s.CompileProgram(p, nil, "", nil, nil, nil, nil))
	assert.Equal(t, cl.InvalidValue, f.s.CompileProgram(p, nil, "", []cl.Program{p}, nil, nil, nil))
	assert.Equal(t, cl.InvalidDevice, f.s.CompileProgram(p, []cl.DeviceID{0}, "", nil, nil, nil, nil))

	il, st := f.s.CreateProgramWithIL(f.ctx, BuildSPIRV("k"))
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(il)
	assert.Equal(t, cl.InvalidOperation, f.s.CompileProgram(il, nil, "", nil, nil, nil, nil))
}

func TestBinaryRoundTrip(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, twoKernels)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	sizes, st := hostlayout.QuerySlice[uint](func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramInfo(p, cl.ProgramBinarySizes, value)
	})
	require.Equal(t, cl.Success, st)
	require.Len(t, sizes, 2)
	binaries, st := hostlayout.QueryBytes(func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramInfo(p, cl.ProgramBinaries, value)
	})
	require.Equal(t, cl.Success, st)
	require.Len(t, binaries, int(sizes[0]+sizes[1]))
	image := binaries[:sizes[0]]
	assert.True(t, strings.HasPrefix(string(image), binaryMagic))

	status := make([]cl.Int, 1)
	loaded, st := f.s.CreateProgramWithBinary(f.ctx, f.devices[1:], [][]byte{image}, status)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(loaded)
	assert.Equal(t, []cl.Int{cl.Success}, status)
	_, st = f.s.CreateKernel(loaded, "scale")
	assert.Equal(t, cl.InvalidProgramExecutable, st, "binaries must be built")
	require.Equal(t, cl.Success, f.s.BuildProgram(loaded, nil, "", nil, nil))
	k, st := f.s.CreateKernel(loaded, "scale")
	require.Equal(t, cl.Success, st)
	assert.Equal(t, cl.Success, f.s.ReleaseKernel(k))
}

func TestBinaryErrors(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	tests := []struct {
		name     string
		devices  []cl.DeviceID
		binaries [][]byte
		want     cl.Int
	}{
		{"no device", nil, nil, cl.InvalidValue},
		{"count mismatch", f.devices, [][]byte{[]byte(binaryMagic)}, cl.InvalidValue},
		{"empty binary", f.devices[:1], [][]byte{nil}, cl.InvalidValue},
		{"unknown device", []cl.DeviceID{0}, [][]byte{[]byte(binaryMagic)}, cl.InvalidDevice},
		{"garbage", f.devices[:1], [][]byte{[]byte("garbage")}, cl.InvalidBinary},
		{"no type", f.devices[:1], [][]byte{[]byte(binaryMagic + "\nkernel k 1\n")}, cl.InvalidBinary},
		{"bad field", f.devices[:1], [][]byte{[]byte(binaryMagic + "\ntype 4\nkernel k x\n")}, cl.InvalidBinary},
		{"truncated SPIR-V", f.devices[:1], [][]byte{BuildSPIRV("k")[:22]}, cl.InvalidBinary},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, st := f.s.CreateProgramWithBinary(f.ctx, test.devices, test.binaries, nil)
			assert.Equal(t, test.want, st)
		})
	}
}

func TestSPIRVBinary(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p, st := f.s.CreateProgramWithBinary(f.ctx, f.devices[:1], [][]byte{BuildSPIRV("first", "second")}, nil)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(p)
	_, st = f.s.CreateKernel(p, "first")
	assert.Equal(t, cl.InvalidProgramExecutable, st)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	assert.Equal(t, "first;second", programString(t, f.s, p, cl.ProgramKernelNames))
}

func TestProgramWithIL(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	il := BuildSPIRV("k")
	p, st := f.s.CreateProgramWithIL(f.ctx, il)
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseProgram(p)
	got, st := hostlayout.QueryBytes(func(value []byte) (uint, cl.Int) {
		return f.s.GetProgramInfo(p, cl.ProgramIL, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, il, got)

	_, st = f.s.CreateProgramWithIL(f.ctx, []byte("not SPIR-V"))
	assert.Equal(t, cl.InvalidValue, st)
}

func TestProgramWithILLegacy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platforms[0].Version = "OpenCL 2.0"
	f := newFixture(t, cfg, 0)
	_, st := f.s.CreateProgramWithIL(f.ctx, BuildSPIRV("k"))
	assert.Equal(t, cl.InvalidOperation, st)

	fn, ok := f.s.GetExtensionFunctionAddressForPlatform(f.platform, cl.CreateProgramWithILKHR).(cl.CreateProgramWithILFunc)
	require.True(t, ok)
	p, st := fn(f.ctx, BuildSPIRV("k"))
	require.Equal(t, cl.Success, st)
	assert.Equal(t, cl.Success, f.s.ReleaseProgram(p))
	assert.Equal(t, 1, f.s.Calls(cl.CreateProgramWithILKHR))
}

func TestExtensionFunctions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platforms[0].HiddenFunctions = []string{cl.GetDeviceFunctionPointerINTEL}
	f := newFixture(t, cfg, 0)
	assert.NotNil(t, f.s.GetExtensionFunctionAddressForPlatform(f.platform, cl.CreateProgramWithILKHR))
	assert.Nil(t, f.s.GetExtensionFunctionAddressForPlatform(f.platform, cl.GetDeviceFunctionPointerINTEL))
	assert.Nil(t, f.s.GetExtensionFunctionAddressForPlatform(f.platform, "clUnknownFunction"))
	assert.Nil(t, f.s.GetExtensionFunctionAddressForPlatform(0, cl.CreateProgramWithILKHR))

	cfg = DefaultConfig()
	cfg.Platforms[0].Extensions = nil
	g := newFixture(t, cfg, 0)
	assert.Nil(t, g.s.GetExtensionFunctionAddressForPlatform(g.platform, cl.CreateProgramWithILKHR))
}

func TestDeviceFunctionPointer(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	fn, ok := f.s.GetExtensionFunctionAddressForPlatform(f.platform, cl.GetDeviceFunctionPointerINTEL).(cl.GetDeviceFunctionPointerFunc)
	require.True(t, ok)
	p := f.sourceProgram(t, twoKernels)
	_, st := fn(f.devices[0], p, "reset")
	assert.Equal(t, cl.InvalidProgramExecutable, st)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	scale, st := fn(f.devices[0], p, "scale")
	require.Equal(t, cl.Success, st)
	reset, st := fn(f.devices[0], p, "reset")
	require.Equal(t, cl.Success, st)
	assert.Equal(t, scale+1, reset)
	assert.NotZero(t, scale)
	_, st = fn(f.devices[0], p, "missing")
	assert.Equal(t, cl.InvalidKernelName, st)
	_, st = fn(0, p, "scale")
	assert.Equal(t, cl.InvalidDevice, st)
}

func TestKernelArgs(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, twoKernels)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	k, st := f.s.CreateKernel(p, "scale")
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseKernel(k)

	assert.Equal(t, cl.InvalidArgIndex, f.s.SetKernelArg(k, 2, 4, make([]byte, 4)))
	assert.Equal(t, cl.InvalidArgValue, f.s.SetKernelArg(k, 0, 0, nil))
	assert.Equal(t, cl.InvalidArgSize, f.s.SetKernelArg(k, 1, 8, make([]byte, 4)))
	require.Equal(t, cl.Success, f.s.SetKernelArg(k, 0, 64, nil))
	require.Equal(t, cl.Success, f.s.SetKernelArg(k, 1, 4, make([]byte, 4)))

	local, st := hostlayout.Query[uint64](func(value []byte) (uint, cl.Int) {
		return f.s.GetKernelWorkGroupInfo(k, f.devices[0], cl.KernelLocalMemSize, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint64(64), local)
	_, st = f.s.GetKernelWorkGroupInfo(k, 0, cl.KernelWorkGroupSize, nil)
	assert.Equal(t, cl.InvalidDevice, st, "the program has two devices")
}

func TestKernelSubGroups(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	p := f.sourceProgram(t, twoKernels)
	require.Equal(t, cl.Success, f.s.BuildProgram(p, nil, "", nil, nil))
	k, st := f.s.CreateKernel(p, "reset")
	require.Equal(t, cl.Success, st)
	defer f.s.ReleaseKernel(k)

	query := func(name cl.KernelSubGroupInfo, input []byte) (uint, cl.Int) {
		return hostlayout.Query[uint](func(value []byte) (uint, cl.Int) {
			return f.s.GetKernelSubGroupInfo(k, f.devices[0], name, input, value)
		})
	}
	local := func(sizes ...uint) []byte {
		b := make([]byte, 8*len(sizes))
		hostlayout.PutSlice(b, sizes)
		return b
	}
	size, st := query(cl.KernelMaxSubGroupSizeForNDRange, local(4, 1))
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint(4), size)
	count, st := query(cl.KernelSubGroupCountForNDRange, local(20))
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint(3), count)
	items, st := query(cl.KernelLocalSizeForSubGroupCount, local(2))
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint(16), items)
	groups, st := query(cl.KernelMaxNumSubGroups, nil)
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint(defaultMaxWorkGroup/subGroupSize), groups)
	_, st = query(cl.KernelMaxSubGroupSizeForNDRange, nil)
	assert.Equal(t, cl.InvalidValue, st)
}
