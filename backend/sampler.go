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
	"github.com/gx-org/piopencl/pi"
)

// SamplerDesc describes a sampler.
type SamplerDesc struct {
	NormalizedCoords bool
	AddressingMode   pi.SamplerAddressingMode
	FilterMode       pi.SamplerFilterMode
}

// DefaultSamplerDesc is the sampler created from an empty property list.
var DefaultSamplerDesc = SamplerDesc{
	NormalizedCoords: true,
	AddressingMode:   pi.SamplerAddressingModeClamp,
	FilterMode:       pi.SamplerFilterModeNearest,
}

// DecodeSamplerProperties decodes a sampler property list. The list ends at
// a zero key or at the end of the slice. Returns pi.InvalidValue for an
// unknown key or a key without a value.
func DecodeSamplerProperties(properties []pi.SamplerProperties) (SamplerDesc, pi.Result) {
	desc := DefaultSamplerDesc
	for i := 0; i < len(properties) && properties[i] != 0; i += 2 {
		key := properties[i]
		if i+1 >= len(properties) {
			klog.Warningf("sampler property %#x has no value", key)
			return SamplerDesc{}, pi.InvalidValue
		}
		value := properties[i+1]
		switch key {
		case pi.SamplerPropertiesNormalizedCoords:
			desc.NormalizedCoords = value != 0
		case pi.SamplerPropertiesAddressingMode:
			desc.AddressingMode = pi.SamplerAddressingMode(value)
		case pi.SamplerPropertiesFilterMode:
			desc.FilterMode = pi.SamplerFilterMode(value)
		default:
			klog.Warningf("unknown sampler property %#x", key)
			return SamplerDesc{}, pi.InvalidValue
		}
	}
	return desc, pi.Success
}

func (b *Backend) samplerCreate(ctx pi.Context, properties []pi.SamplerProperties) (sampler pi.Sampler, res pi.Result) {
	res = pi.InvalidOperation
	desc, res := DecodeSamplerProperties(properties)
	if res != pi.Success {
		return 0, res
	}
	clSampler, status := b.api.CreateSampler(
		piopencl.Contexts.Native(ctx),
		piopencl.Bool(desc.NormalizedCoords),
		cl.AddressingMode(desc.AddressingMode),
		cl.FilterMode(desc.FilterMode))
	if status != cl.Success {
		res = piopencl.ToResult(status)
		klog.V(1).Infof("cannot create sampler %+v: %s", desc, res)
		return 0, res
	}
	return piopencl.Samplers.Adapter(clSampler), pi.Success
}
