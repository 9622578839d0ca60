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

	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

func TestQueueCreateRouting(t *testing.T) {
	tests := []struct {
		version        string
		wantLegacy     int
		wantProperties int
	}{
		{version: "OpenCL 1.2 test", wantLegacy: 1},
		{version: "OpenCL 1.0", wantLegacy: 1},
		{version: "Vendor OpenCL 1.1 x", wantLegacy: 1},
		{version: "OpenCL 2.0 test", wantProperties: 1},
		{version: "OpenCL 3.0 test", wantProperties: 1},
		{version: "unknown version", wantProperties: 1},
	}
	for _, test := range tests {
		t.Run(test.version, func(t *testing.T) {
			f := newFixture(t, platformConfig(test.version))
			f.sim.ResetCalls()
			queue := f.newQueue(t, pi.QueueProfilingEnable)
			assert.Equal(t, test.wantLegacy, f.sim.Calls("CreateCommandQueue"))
			assert.Equal(t, test.wantProperties, f.sim.Calls("CreateCommandQueueWithProperties"))

			properties, res := hostlayout.Query[pi.QueueProperties](func(value []byte) (uint, pi.Result) {
				return f.table.Queue.GetInfo(queue, pi.QueueInfoProperties, value)
			})
			require.Equal(t, pi.Success, res)
			assert.Equal(t, pi.QueueProfilingEnable, properties)
		})
	}
}

func TestQueueCreateErrors(t *testing.T) {
	f := newFixture(t, "")
	_, res := f.table.Queue.Create(f.ctx, 0, 0)
	assert.Equal(t, pi.InvalidDevice, res)

	_, res = f.table.Queue.Create(f.ctx, f.devices[0], pi.QueueProperties(1<<8))
	assert.Equal(t, pi.InvalidValue, res)

	_, res = f.table.Queue.Create(0, f.devices[0], 0)
	assert.Equal(t, pi.InvalidContext, res)
}

func TestQueueCapabilitiesCached(t *testing.T) {
	f := newFixture(t, platformConfig("OpenCL 1.2 test"))
	f.sim.ResetCalls()
	f.newQueue(t, 0)
	f.newQueue(t, 0)
	assert.Equal(t, 2, f.sim.Calls("CreateCommandQueue"))
	// Version and extensions are queried once, a size and a value each.
	assert.Equal(t, 4, f.sim.Calls("GetPlatformInfo"))
}

func TestQueueRetainRelease(t *testing.T) {
	f := newFixture(t, "")
	queue := f.newQueue(t, 0)
	require.Equal(t, pi.Success, f.table.Queue.Retain(queue))
	count := referenceCount(t, func(value []byte) (uint, pi.Result) {
		return f.table.Queue.GetInfo(queue, pi.QueueInfoReferenceCount, value)
	})
	assert.Equal(t, uint32(2), count)
	require.Equal(t, pi.Success, f.table.Queue.Release(queue))
	assert.Equal(t, pi.Success, f.table.Queue.Finish(queue))
	assert.Equal(t, pi.InvalidQueue, f.table.Queue.Finish(0))
}
