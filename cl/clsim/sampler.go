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
	"github.com/gx-org/piopencl/cl"
	"github.com/gx-org/piopencl/internal/hostlayout"
)

type sampler struct {
	objectHeader
	ctx        *context
	normalized cl.Bool
	addressing cl.AddressingMode
	filter     cl.FilterMode
}

func (sp *sampler) destroy(s *Sim) {
	s.release(sp.ctx)
}

// CreateSampler creates a sampler.
func (s *Sim) CreateSampler(ctxID cl.Context, normalizedCoords cl.Bool, addressing cl.AddressingMode, filter cl.FilterMode) (cl.Sampler, cl.Int) {
	defer s.enter("CreateSampler")()
	ctx, ok := lookup[*context](s, uintptr(ctxID))
	if !ok {
		return 0, cl.InvalidContext
	}
	if normalizedCoords != cl.True && normalizedCoords != cl.False {
		return 0, cl.InvalidValue
	}
	if addressing < cl.AddressNone || addressing > cl.AddressMirroredRepeat {
		return 0, cl.InvalidValue
	}
	if filter != cl.FilterNearest && filter != cl.FilterLinear {
		return 0, cl.InvalidValue
	}
	// Repeating addresses are only defined for normalized coordinates.
	if normalizedCoords == cl.False && (addressing == cl.AddressRepeat || addressing == cl.AddressMirroredRepeat) {
		return 0, cl.InvalidValue
	}
	s.retain(ctx)
	sp := &sampler{ctx: ctx, normalized: normalizedCoords, addressing: addressing, filter: filter}
	return cl.Sampler(s.add(sp, kindSampler)), cl.Success
}

// GetSamplerInfo queries a sampler.
func (s *Sim) GetSamplerInfo(id cl.Sampler, name cl.SamplerInfo, value []byte) (uint, cl.Int) {
	defer s.enter("GetSamplerInfo")()
	sp, ok := lookup[*sampler](s, uintptr(id))
	if !ok {
		return 0, cl.InvalidSampler
	}
	switch name {
	case cl.SamplerReferenceCount:
		return put(hostlayout.Put(value, s.refCount(sp)))
	case cl.SamplerContext:
		return put(hostlayout.Put(value, cl.Context(sp.ctx.id)))
	case cl.SamplerNormalizedCoords:
		return put(hostlayout.Put(value, sp.normalized))
	case cl.SamplerAddressingMode:
		return put(hostlayout.Put(value, sp.addressing))
	case cl.SamplerFilterMode:
		return put(hostlayout.Put(value, sp.filter))
	}
	return 0, cl.InvalidValue
}

// RetainSampler retains a sampler.
func (s *Sim) RetainSampler(id cl.Sampler) cl.Int {
	defer s.enter("RetainSampler")()
	return retainHandle[*sampler](s, uintptr(id), cl.InvalidSampler)
}

// ReleaseSampler releases a sampler.
func (s *Sim) ReleaseSampler(id cl.Sampler) cl.Int {
	defer s.enter("ReleaseSampler")()
	return releaseHandle[*sampler](s, uintptr(id), cl.InvalidSampler)
}
