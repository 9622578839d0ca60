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

	"github.com/gx-org/piopencl/backend"
	"github.com/gx-org/piopencl/internal/hostlayout"
	"github.com/gx-org/piopencl/pi"
)

func TestDecodeSamplerProperties(t *testing.T) {
	tests := []struct {
		name       string
		properties []pi.SamplerProperties
		want       backend.SamplerDesc
		wantRes    pi.Result
	}{
		{
			name: "empty",
			want: backend.DefaultSamplerDesc,
		},
		{
			name:       "terminator only",
			properties: []pi.SamplerProperties{0},
			want:       backend.DefaultSamplerDesc,
		},
		{
			name: "all keys",
			properties: []pi.SamplerProperties{
				pi.SamplerPropertiesNormalizedCoords, 0,
				pi.SamplerPropertiesAddressingMode, pi.SamplerProperties(pi.SamplerAddressingModeClampToEdge),
				pi.SamplerPropertiesFilterMode, pi.SamplerProperties(pi.SamplerFilterModeLinear),
				0,
			},
			want: backend.SamplerDesc{
				NormalizedCoords: false,
				AddressingMode:   pi.SamplerAddressingModeClampToEdge,
				FilterMode:       pi.SamplerFilterModeLinear,
			},
		},
		{
			name: "no terminator",
			properties: []pi.SamplerProperties{
				pi.SamplerPropertiesFilterMode, pi.SamplerProperties(pi.SamplerFilterModeLinear),
			},
			want: backend.SamplerDesc{
				NormalizedCoords: true,
				AddressingMode:   pi.SamplerAddressingModeClamp,
				FilterMode:       pi.SamplerFilterModeLinear,
			},
		},
		{
			name: "keys after terminator",
			properties: []pi.SamplerProperties{
				0, pi.SamplerPropertiesFilterMode, pi.SamplerProperties(pi.SamplerFilterModeLinear),
			},
			want: backend.DefaultSamplerDesc,
		},
		{
			name:       "unknown key",
			properties: []pi.SamplerProperties{0x1234, 1, 0},
			wantRes:    pi.InvalidValue,
		},
		{
			name:       "missing value",
			properties: []pi.SamplerProperties{pi.SamplerPropertiesAddressingMode},
			wantRes:    pi.InvalidValue,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, res := backend.DecodeSamplerProperties(test.properties)
			require.Equal(t, test.wantRes, res)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestSamplerCreate(t *testing.T) {
	f := newFixture(t, "")
	sampler, res := f.table.Sampler.Create(f.ctx, []pi.SamplerProperties{
		pi.SamplerPropertiesAddressingMode, pi.SamplerProperties(pi.SamplerAddressingModeRepeat),
		0,
	})
	require.Equal(t, pi.Success, res)
	defer func() { assert.Equal(t, pi.Success, f.table.Sampler.Release(sampler)) }()

	normalized, res := hostlayout.Query[uint32](func(value []byte) (uint, pi.Result) {
		return f.table.Sampler.GetInfo(sampler, pi.SamplerInfoNormalizedCoords, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, uint32(1), normalized)
	addressing, res := hostlayout.Query[pi.SamplerAddressingMode](func(value []byte) (uint, pi.Result) {
		return f.table.Sampler.GetInfo(sampler, pi.SamplerInfoAddressingMode, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, pi.SamplerAddressingModeRepeat, addressing)
	filter, res := hostlayout.Query[pi.SamplerFilterMode](func(value []byte) (uint, pi.Result) {
		return f.table.Sampler.GetInfo(sampler, pi.SamplerInfoFilterMode, value)
	})
	require.Equal(t, pi.Success, res)
	assert.Equal(t, pi.SamplerFilterModeNearest, filter)
}

func TestSamplerCreateErrors(t *testing.T) {
	f := newFixture(t, "")
	f.sim.ResetCalls()
	_, res := f.table.Sampler.Create(f.ctx, []pi.SamplerProperties{0x1234, 1})
	assert.Equal(t, pi.InvalidValue, res)
	assert.Zero(t, f.sim.Calls("CreateSampler"))

	_, res = f.table.Sampler.Create(f.ctx, []pi.SamplerProperties{
		pi.SamplerPropertiesNormalizedCoords, 0,
		pi.SamplerPropertiesAddressingMode, pi.SamplerProperties(pi.SamplerAddressingModeRepeat),
	})
	assert.Equal(t, pi.InvalidValue, res)
	assert.Equal(t, 1, f.sim.Calls("CreateSampler"))
}
