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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type fixture struct {
	s        *Sim
	platform cl.PlatformID
	devices  []cl.DeviceID
	ctx      cl.Context
	q        cl.CommandQueue
}

// newFixture creates a context over all the devices of the first platform
// and a queue on the first device. Cleanup checks that the test released
// all the objects it created.
func newFixture(t *testing.T, cfg *Config, props cl.CommandQueueProperties) *fixture {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	f := &fixture{s: s}
	platforms := make([]cl.PlatformID, 1)
	_, st := s.GetPlatformIDs(platforms)
	require.Equal(t, cl.Success, st)
	f.platform = platforms[0]
	n, st := s.GetDeviceIDs(f.platform, cl.DeviceTypeAll, nil)
	require.Equal(t, cl.Success, st)
	f.devices = make([]cl.DeviceID, n)
	_, st = s.GetDeviceIDs(f.platform, cl.DeviceTypeAll, f.devices)
	require.Equal(t, cl.Success, st)
	f.ctx, st = s.CreateContext(nil, f.devices, nil, nil)
	require.Equal(t, cl.Success, st)
	f.q, st = s.CreateCommandQueue(f.ctx, f.devices[0], props)
	require.Equal(t, cl.Success, st)
	t.Cleanup(func() {
		assert.Equal(t, cl.Success, s.ReleaseCommandQueue(f.q))
		assert.Equal(t, cl.Success, s.ReleaseContext(f.ctx))
		assert.Equal(t, 0, s.LiveObjects(), "live objects:\n%s", s.DumpObjects())
	})
	return f
}

// newBuffer creates a buffer holding content, released at cleanup.
func (f *fixture) newBuffer(t *testing.T, content []byte) cl.Mem {
	t.Helper()
	m, st := f.s.CreateBuffer(f.ctx, cl.MemReadWrite|cl.MemCopyHostPtr, uint(len(content)), content)
	require.Equal(t, cl.Success, st)
	t.Cleanup(func() { assert.Equal(t, cl.Success, f.s.ReleaseMemObject(m)) })
	return m
}

func (f *fixture) read(t *testing.T, m cl.Mem, size int) []byte {
	t.Helper()
	out := make([]byte, size)
	require.Equal(t, cl.Success, f.s.EnqueueReadBuffer(f.q, m, cl.True, 0, out, nil, nil))
	return out
}

func eventStatus(t *testing.T, s *Sim, ev cl.Event) cl.CommandExecutionStatus {
	t.Helper()
	status, st := hostlayout.Query[cl.CommandExecutionStatus](func(value []byte) (uint, cl.Int) {
		return s.GetEventInfo(ev, cl.EventCommandExecutionStatus, value)
	})
	require.Equal(t, cl.Success, st)
	return status
}

func TestRegistered(t *testing.T) {
	assert.Contains(t, cl.Registered(), Name)
	api, err := cl.New(Name, "")
	require.NoError(t, err)
	n, st := api.GetPlatformIDs(nil)
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(1), n)

	_, err = cl.New(Name, "/does/not/exist.toml")
	assert.Error(t, err)
}

func TestCalls(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	for range 3 {
		_, _ = s.GetPlatformIDs(nil)
	}
	assert.Equal(t, 3, s.Calls("GetPlatformIDs"))
	assert.Equal(t, 0, s.Calls("GetDeviceIDs"))
	s.ResetCalls()
	assert.Equal(t, 0, s.Calls("GetPlatformIDs"))
}

func TestNoPlatform(t *testing.T) {
	s, err := New(&Config{})
	require.NoError(t, err)
	n, st := s.GetPlatformIDs(nil)
	assert.Equal(t, cl.PlatformNotFoundKHR, st)
	assert.Zero(t, n)
}

func TestPlatformInfo(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	query := func(name cl.PlatformInfo) string {
		value, st := hostlayout.QueryString(func(value []byte) (uint, cl.Int) {
			return f.s.GetPlatformInfo(f.platform, name, value)
		})
		require.Equal(t, cl.Success, st)
		return value
	}
	assert.Equal(t, "Simulated Platform", query(cl.PlatformName))
	assert.Equal(t, "GX", query(cl.PlatformVendor))
	assert.Equal(t, "OpenCL 3.0 clsim", query(cl.PlatformVersion))
	assert.Equal(t, defaultProfile, query(cl.PlatformProfile))
	assert.Equal(t, "cl_khr_il_program cl_intel_function_pointers", query(cl.PlatformExtensions))

	short := make([]byte, 2)
	_, st := f.s.GetPlatformInfo(f.platform, cl.PlatformName, short)
	assert.Equal(t, cl.InvalidValue, st)
	_, st = f.s.GetPlatformInfo(0, cl.PlatformName, nil)
	assert.Equal(t, cl.InvalidPlatform, st)
}

func TestDeviceIDs(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	require.Len(t, f.devices, 2)
	gpus := make([]cl.DeviceID, 2)
	n, st := f.s.GetDeviceIDs(f.platform, cl.DeviceTypeGPU, gpus)
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(1), n)
	assert.Equal(t, f.devices[1], gpus[0])

	n, st = f.s.GetDeviceIDs(f.platform, cl.DeviceTypeDefault, nil)
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(1), n)

	_, st = f.s.GetDeviceIDs(f.platform, cl.DeviceTypeAccelerator, nil)
	assert.Equal(t, cl.DeviceNotFound, st)
	_, st = f.s.GetDeviceIDs(f.platform, 0, nil)
	assert.Equal(t, cl.InvalidDeviceType, st)

	units, st := hostlayout.Query[uint32](func(value []byte) (uint, cl.Int) {
		return f.s.GetDeviceInfo(f.devices[1], cl.DeviceMaxComputeUnits, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(16), units)
	version, st := hostlayout.QueryString(func(value []byte) (uint, cl.Int) {
		return f.s.GetDeviceInfo(f.devices[0], cl.DeviceVersion, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, "OpenCL 3.0 clsim", version)
}

func TestSubDevices(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	gpu := f.devices[1]
	props := []cl.DevicePartitionProperty{cl.DevicePartitionByCounts, 4, 8, cl.DevicePartitionByCountsListEnd}
	live := f.s.LiveObjects()
	n, st := f.s.CreateSubDevices(gpu, props, nil)
	require.Equal(t, cl.Success, st)
	require.Equal(t, uint32(2), n)
	subs := make([]cl.DeviceID, n)
	_, st = f.s.CreateSubDevices(gpu, props, subs)
	require.Equal(t, cl.Success, st)
	units, st := hostlayout.Query[uint32](func(value []byte) (uint, cl.Int) {
		return f.s.GetDeviceInfo(subs[1], cl.DeviceMaxComputeUnits, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, uint32(8), units)
	assert.Equal(t, live+2, f.s.LiveObjects())
	for _, sub := range subs {
		assert.Equal(t, cl.Success, f.s.ReleaseDevice(sub))
	}
	assert.Equal(t, cl.Success, f.s.ReleaseDevice(gpu), "root devices ignore reference counting")

	tests := []struct {
		name  string
		props []cl.DevicePartitionProperty
		want  cl.Int
	}{
		{"empty", nil, cl.InvalidValue},
		{"zero", []cl.DevicePartitionProperty{cl.DevicePartitionEqually, 0}, cl.InvalidValue},
		{"too large", []cl.DevicePartitionProperty{cl.DevicePartitionEqually, 32}, cl.DevicePartitionFailed},
		{"over count", []cl.DevicePartitionProperty{cl.DevicePartitionByCounts, 16, 1, cl.DevicePartitionByCountsListEnd}, cl.InvalidDevicePartitionCount},
		{"unknown scheme", []cl.DevicePartitionProperty{0x1088, 1}, cl.InvalidValue},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, st := f.s.CreateSubDevices(gpu, test.props, nil)
			assert.Equal(t, test.want, st)
		})
	}
}

func TestContext(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	devices, st := hostlayout.QuerySlice[cl.DeviceID](func(value []byte) (uint, cl.Int) {
		return f.s.GetContextInfo(f.ctx, cl.ContextDevices, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, f.devices, devices)

	props := []cl.ContextProperties{cl.ContextPlatform, cl.ContextProperties(f.platform), 0}
	ctx, st := f.s.CreateContext(props, f.devices[:1], nil, nil)
	require.Equal(t, cl.Success, st)
	got, st := hostlayout.QuerySlice[cl.ContextProperties](func(value []byte) (uint, cl.Int) {
		return f.s.GetContextInfo(ctx, cl.ContextPropertiesInfo, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, props, got)
	assert.Equal(t, cl.Success, f.s.ReleaseContext(ctx))

	_, st = f.s.CreateContext(nil, nil, nil, nil)
	assert.Equal(t, cl.InvalidValue, st)
	_, st = f.s.CreateContext([]cl.ContextProperties{cl.ContextPlatform, 1, 0}, f.devices, nil, nil)
	assert.Equal(t, cl.InvalidPlatform, st)
	_, st = f.s.CreateContext([]cl.ContextProperties{0x9999, 1, 0}, f.devices, nil, nil)
	assert.Equal(t, cl.InvalidProperty, st)
	_, st = f.s.CreateContext(nil, []cl.DeviceID{0}, nil, nil)
	assert.Equal(t, cl.InvalidDevice, st)
}

func TestReferenceCounting(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	refs := func() uint32 {
		n, st := hostlayout.Query[uint32](func(value []byte) (uint, cl.Int) {
			return f.s.GetContextInfo(f.ctx, cl.ContextReferenceCount, value)
		})
		require.Equal(t, cl.Success, st)
		return n
	}
	// The queue of the fixture holds a reference.
	assert.Equal(t, uint32(2), refs())
	require.Equal(t, cl.Success, f.s.RetainContext(f.ctx))
	assert.Equal(t, uint32(3), refs())
	require.Equal(t, cl.Success, f.s.ReleaseContext(f.ctx))
	assert.Equal(t, uint32(2), refs())
	assert.Equal(t, cl.InvalidContext, f.s.RetainContext(0))
	assert.Equal(t, cl.InvalidCommandQueue, f.s.ReleaseCommandQueue(cl.CommandQueue(f.ctx)))
}

func TestQueueWithProperties(t *testing.T) {
	f := newFixture(t, DefaultConfig(), 0)
	q, st := f.s.CreateCommandQueueWithProperties(f.ctx, f.devices[1], []cl.QueueProperties{cl.QueuePropertiesKey, cl.QueueProperties(cl.QueueProfilingEnable), 0})
	require.Equal(t, cl.Success, st)
	props, st := hostlayout.Query[cl.CommandQueueProperties](func(value []byte) (uint, cl.Int) {
		return f.s.GetCommandQueueInfo(q, cl.QueuePropertiesInfo, value)
	})
	require.Equal(t, cl.Success, st)
	assert.Equal(t, cl.QueueProfilingEnable, props)
	assert.Equal(t, cl.Success, f.s.ReleaseCommandQueue(q))

	_, st = f.s.CreateCommandQueueWithProperties(f.ctx, f.devices[1], []cl.QueueProperties{0x1, 0})
	assert.Equal(t, cl.InvalidValue, st)
	_, st = f.s.CreateCommandQueue(f.ctx, f.devices[0], 1<<7)
	assert.Equal(t, cl.InvalidValue, st)
}

func TestQueueWithPropertiesLegacy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platforms[0].Version = "OpenCL 1.2"
	f := newFixture(t, cfg, 0)
	_, st := f.s.CreateCommandQueueWithProperties(f.ctx, f.devices[0], nil)
	assert.Equal(t, cl.InvalidOperation, st)
}
