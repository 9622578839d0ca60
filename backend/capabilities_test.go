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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gx-org/piopencl/backend"
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/pi"
	pitesting "github.com/gx-org/piopencl/testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   backend.Version
		wantOK bool
	}{
		{in: "OpenCL 1.2 CUDA 12.0", want: backend.Version{Major: 1, Minor: 2}, wantOK: true},
		{in: "OpenCL 2.0", want: backend.Version{Major: 2, Minor: 0}, wantOK: true},
		{in: "OpenCL 3.10\tdriver", want: backend.Version{Major: 3, Minor: 10}, wantOK: true},
		{in: "Vendor OpenCL 1.1 x", want: backend.Version{Major: 1, Minor: 1}, wantOK: true},
		{in: "OpenCL 3"},
		{in: "OpenCL x.y"},
		{in: "OpenCL -1.2"},
		{in: "1.2"},
		{in: ""},
	}
	for _, test := range tests {
		got, ok := backend.ParseVersion(test.in)
		assert.Equal(t, test.wantOK, ok, "version %q", test.in)
		assert.Equal(t, test.want, got, "version %q", test.in)
	}
}

func TestVersionCompare(t *testing.T) {
	v12 := backend.Version{Major: 1, Minor: 2}
	v20 := backend.Version{Major: 2, Minor: 0}
	v21 := backend.Version{Major: 2, Minor: 1}
	assert.Equal(t, -1, v12.Compare(v20))
	assert.Equal(t, 1, v21.Compare(v20))
	assert.Equal(t, 0, v20.Compare(v20))
	assert.Equal(t, -1, v20.Compare(v21))
	assert.Equal(t, "2.1", v21.String())
}

func firstPlatform(t *testing.T, b *backend.Backend) pi.Platform {
	t.Helper()
	platforms := make([]pi.Platform, 1)
	_, res := b.Table().Platform.Get(platforms)
	require.Equal(t, pi.Success, res)
	return platforms[0]
}

func TestCapabilityTiers(t *testing.T) {
	tests := []struct {
		version    string
		wantLegacy bool
		wantCoreIL bool
	}{
		{version: "OpenCL 1.2 test", wantLegacy: true},
		{version: "Vendor OpenCL 1.1 x", wantLegacy: true},
		{version: "OpenCL 2.0 test"},
		{version: "OpenCL 2.1 test", wantCoreIL: true},
		{version: "OpenCL 3.0 test", wantCoreIL: true},
		{version: "garbage", wantCoreIL: true},
	}
	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			_, b := pitesting.NewBackend(t, platformConfig(test.version, cl.ILProgramExtension))
			caps, res := b.Capabilities(firstPlatform(t, b))
			require.Equal(t, pi.Success, res)
			assert.Equal(t, test.version, caps.VersionString)
			assert.Equal(t, test.wantLegacy, caps.LegacyQueues())
			assert.Equal(t, test.wantCoreIL, caps.CoreIL())
			assert.True(t, caps.HasExtension(cl.ILProgramExtension))
			assert.False(t, caps.HasExtension(cl.FunctionPointersINTELExtension))
			_, ok := caps.DeviceFunctionPointer()
			assert.False(t, ok)
			_, ok = caps.CreateProgramWithILKHR()
			assert.True(t, ok)
		})
	}
}

func TestCapabilityCache(t *testing.T) {
	sim, b := pitesting.NewBackend(t, "")
	platform := firstPlatform(t, b)
	sim.ResetCalls()
	first, res := b.Capabilities(platform)
	require.Equal(t, pi.Success, res)
	second, res := b.Capabilities(platform)
	require.Equal(t, pi.Success, res)
	assert.Same(t, first, second)
	// Version and extension strings take a size query and a value query each.
	assert.Equal(t, 4, sim.Calls("GetPlatformInfo"))

	b.PurgeCapabilities()
	third, res := b.Capabilities(platform)
	require.Equal(t, pi.Success, res)
	assert.NotSame(t, first, third)
	assert.Equal(t, 8, sim.Calls("GetPlatformInfo"))

	_, res = b.Capabilities(0)
	assert.Equal(t, pi.InvalidPlatform, res)
}

func TestCapabilityCacheConcurrent(t *testing.T) {
	sim, b := pitesting.NewBackend(t, "")
	platform := firstPlatform(t, b)
	sim.ResetCalls()
	const n = 16
	caps := make([]*backend.Capabilities, n)
	var wg sync.WaitGroup
	for i := range caps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caps[i], _ = b.Capabilities(platform)
		}()
	}
	wg.Wait()
	for _, c := range caps {
		require.NotNil(t, c)
		assert.Equal(t, "OpenCL 3.0 clsim", c.VersionString)
	}
	assert.Equal(t, 4, sim.Calls("GetPlatformInfo"))
}

func TestCapabilityCacheDisabled(t *testing.T) {
	sim := pitesting.NewSim(t, "")
	b, err := backend.New(sim, backend.Config{CapabilityCacheSize: -1})
	require.NoError(t, err)
	platform := firstPlatform(t, b)
	sim.ResetCalls()
	first, res := b.Capabilities(platform)
	require.Equal(t, pi.Success, res)
	second, res := b.Capabilities(platform)
	require.Equal(t, pi.Success, res)
	assert.NotSame(t, first, second)
	assert.Equal(t, 8, sim.Calls("GetPlatformInfo"))
	assert.Equal(t, -1, b.Config().CapabilityCacheSize)
}

func TestDefaultConfig(t *testing.T) {
	_, b := pitesting.NewBackend(t, "")
	assert.Equal(t, 16, b.Config().CapabilityCacheSize)
	assert.NotNil(t, b.API())
}
